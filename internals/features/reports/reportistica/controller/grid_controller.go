package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fisiocatania_backend/internals/features/reports/export/dossier"
	"fisiocatania_backend/internals/features/reports/export/sheet"
	"fisiocatania_backend/internals/features/reports/reportistica/dto"
	"fisiocatania_backend/internals/features/reports/reportistica/service"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
)

var validate = helper.NewValidator()

type SheetExporter interface {
	ExportRange(ctx context.Context, from, to time.Time) ([]byte, error)
}

type DossierExporter interface {
	ExportAthleteRange(ctx context.Context, athleteID uint, from, to time.Time) ([]byte, error)
	ExportDay(ctx context.Context, day time.Time) ([]byte, error)
}

type GridController struct {
	Grid    *service.GridService
	Sheet   SheetExporter
	Dossier DossierExporter
	Today   func() time.Time
}

func NewGridController(grid *service.GridService, sh SheetExporter, dos DossierExporter, loc *time.Location) *GridController {
	return &GridController{
		Grid:    grid,
		Sheet:   sh,
		Dossier: dos,
		Today:   func() time.Time { return helper.Today(loc) },
	}
}

// dayParam reads ?date=, defaulting to today.
func (h *GridController) dayParam(c *fiber.Ctx, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return h.Today(), nil
	}
	return helper.ParseDate(key, raw)
}

// rangeParams reads ?from=&to=; a missing end takes the other one, both missing means today.
func (h *GridController) rangeParams(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, to := strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to"))
	switch {
	case from == "" && to == "":
		d := helper.FormatDate(h.Today())
		from, to = d, d
	case from == "":
		from = to
	case to == "":
		to = from
	}
	return helper.ParseDateRange(from, to)
}

// =========================================================
// GET /reportistica?date=YYYY-MM-DD
// =========================================================
func (h *GridController) GetGrid(c *fiber.Ctx) error {
	day, err := h.dayParam(c, "date")
	if err != nil {
		return helper.WriteError(c, err)
	}

	grid, err := h.Grid.Day(c.UserContext(), day)
	if err != nil {
		var se *helper.StorageError
		if errors.As(err, &se) {
			log.Error().Err(err).Str("reqid", helper.RequestID(c)).Msg("grid unavailable")
			return helper.JsonOK(c, "Griglia non disponibile", dto.EmptyGrid(day, "Impossibile caricare la reportistica, riprovare più tardi."))
		}
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToGridResponse(grid))
}

// =========================================================
// POST /api/reportistica/upsert
// =========================================================
func (h *GridController) UpsertCell(c *fiber.Ctx) error {
	var req dto.UpsertCellRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "Dati non validi", helper.FieldErrors(err))
	}
	in, err := req.ToInput(helperAuth.GetOperatorName(c))
	if err != nil {
		return helper.WriteError(c, err)
	}

	stored, err := h.Grid.UpsertCell(c.UserContext(), in)
	if err != nil {
		return helper.WriteError(c, err)
	}
	msg := "Sigla salvata"
	if stored == nil {
		msg = "Sigla rimossa"
	}
	return helper.JsonUpdated(c, msg, dto.ToCellResponse(in, stored))
}

// =========================================================
// POST /api/reportistica/copia
// =========================================================
func (h *GridController) CopyForward(c *fiber.Ctx) error {
	var req dto.CopyForwardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "Dati non validi", helper.FieldErrors(err))
	}
	target, err := helper.ParseDate("to_date", req.ToDate)
	if err != nil {
		return helper.WriteError(c, err)
	}

	n, err := h.Grid.CopyForward(c.UserContext(), target, helperAuth.GetOperatorName(c))
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, fmt.Sprintf("%d sigle copiate", n), dto.CopyForwardResponse{
		FromDate: helper.FormatDate(target.AddDate(0, 0, -1)),
		ToDate:   helper.FormatDate(target),
		Copied:   n,
	})
}

// =========================================================
// GET /reportistica/export?from=&to=
// =========================================================
func (h *GridController) ExportSheet(c *fiber.Ctx) error {
	from, to, err := h.rangeParams(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	out, err := h.Sheet.ExportRange(c.UserContext(), from, to)
	if err != nil {
		return helper.WriteError(c, err)
	}
	name := fmt.Sprintf("reportistica_%s_%s.xlsx", helper.FormatDate(from), helper.FormatDate(to))
	return sendFile(c, sheet.ContentType, name, out)
}

// =========================================================
// GET /reportistica/export-pdf?date=
// =========================================================
func (h *GridController) ExportDayPDF(c *fiber.Ctx) error {
	day, err := h.dayParam(c, "date")
	if err != nil {
		return helper.WriteError(c, err)
	}
	out, err := h.Dossier.ExportDay(c.UserContext(), day)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return sendFile(c, dossier.ContentType, fmt.Sprintf("terapie_%s.pdf", helper.FormatDate(day)), out)
}

// =========================================================
// GET /fascicoli/:id/export-range?from=&to=
// =========================================================
func (h *GridController) ExportAthleteRange(c *fiber.Ctx) error {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return helper.WriteError(c, err)
	}
	from, to, err := h.rangeParams(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	out, err := h.Dossier.ExportAthleteRange(c.UserContext(), id, from, to)
	if err != nil {
		return helper.WriteError(c, err)
	}
	name := fmt.Sprintf("fascicolo_%d_%s_%s.pdf", id, helper.FormatDate(from), helper.FormatDate(to))
	return sendFile(c, dossier.ContentType, name, out)
}

func sendFile(c *fiber.Ctx, contentType, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Send(body)
}
