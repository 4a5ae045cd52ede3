package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/catalog/distretti/dto"
	"fisiocatania_backend/internals/features/catalog/distretti/model"
	helper "fisiocatania_backend/internals/helpers"
)

var validate = helper.NewValidator()

type DistrettoController struct {
	DB *gorm.DB
}

func NewDistrettoController(db *gorm.DB) *DistrettoController {
	return &DistrettoController{DB: db}
}

// GET /api/distretti?q=
func (h *DistrettoController) List(c *fiber.Ctx) error {
	tx := h.DB.WithContext(c.UserContext()).Model(&model.DistrettoModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("nome ILIKE ?", "%"+q+"%")
	}
	var rows []model.DistrettoModel
	if err := tx.Order("nome ASC, id ASC").Find(&rows).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list regions", err))
	}
	out := make([]dto.DistrettoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToDistrettoResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// GET /api/distretti/:id
func (h *DistrettoController) Get(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToDistrettoResponse(m))
}

// POST /api/distretti
func (h *DistrettoController) Create(c *fiber.Ctx) error {
	var req dto.CreateDistrettoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "Dati non validi", helper.FieldErrors(err))
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Esiste già un distretto con questo nome")
		}
		return helper.WriteError(c, helper.NewStorageError("create region", err))
	}
	return helper.JsonCreated(c, "Distretto creato", dto.ToDistrettoResponse(m))
}

// PUT /api/distretti/:id
func (h *DistrettoController) Update(c *fiber.Ctx) error {
	var req dto.UpdateDistrettoRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, "Dati non validi", helper.FieldErrors(err))
	}

	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	req.ApplyToModel(m)
	if err := h.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Esiste già un distretto con questo nome")
		}
		return helper.WriteError(c, helper.NewStorageError("update region", err))
	}
	return helper.JsonUpdated(c, "Distretto aggiornato", dto.ToDistrettoResponse(m))
}

// DELETE /api/distretti/:id
// Sessions and grid cells of the region go with it (FK cascade).
func (h *DistrettoController) Delete(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("delete region", err))
	}
	return helper.JsonDeleted(c, "Distretto eliminato", fiber.Map{"id": m.ID})
}

func (h *DistrettoController) find(c *fiber.Ctx) (*model.DistrettoModel, error) {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return nil, err
	}
	var m model.DistrettoModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, helper.NewStorageError("load region", err)
	}
	return &m, nil
}
