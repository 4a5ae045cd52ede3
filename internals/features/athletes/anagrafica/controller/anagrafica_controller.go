package controller

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/athletes/anagrafica/dto"
	"fisiocatania_backend/internals/features/athletes/anagrafica/model"
	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	allegatoModel "fisiocatania_backend/internals/features/therapies/allegati/model"
	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
	"fisiocatania_backend/internals/helpers/media"
)

var validate = helper.NewValidator()

// MaxPhotoBytes bounds the uploaded original, before conversion.
const MaxPhotoBytes = 8 << 20

type AnagraficaController struct {
	DB          *gorm.DB
	Media       media.Store
	MediaPrefix string
	Now         func() time.Time
}

func NewAnagraficaController(db *gorm.DB, store media.Store, prefix string) *AnagraficaController {
	return &AnagraficaController{DB: db, Media: store, MediaPrefix: prefix, Now: time.Now}
}

var sortColumns = map[string]string{
	"cognome":    "cognome",
	"nome":       "nome",
	"created_at": "created_at",
	"id":         "id",
}

// =========================================================
// GET /api/anagrafica?q=&infortunati=true&page=&per_page=&sort_by=&order=
// =========================================================
func (h *AnagraficaController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "cognome", "asc", helper.ListAllOpts)

	tx := h.DB.WithContext(c.UserContext()).Model(&model.AnagraficaModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("cognome ILIKE ? OR nome ILIKE ? OR (cognome || ' ' || nome) ILIKE ?", like, like, like)
	}
	if c.QueryBool("infortunati") {
		tx = tx.Where("infortunato = TRUE")
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("count athletes", err))
	}

	var rows []model.AnagraficaModel
	if err := tx.Order(p.OrderClause(sortColumns, "cognome")).
		Order("nome ASC").Order("id ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list athletes", err))
	}
	return helper.JsonList(c, "ok", dto.ToAnagraficaResponses(rows), helper.BuildMeta(total, p))
}

// GET /api/anagrafica/:id
func (h *AnagraficaController) Get(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToAnagraficaResponse(m))
}

// POST /api/anagrafica
func (h *AnagraficaController) Create(c *fiber.Ctx) error {
	var req dto.CreateAnagraficaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}
	m, err := req.ToModel()
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("create athlete", err))
	}
	return helper.JsonCreated(c, "Atleta registrato", dto.ToAnagraficaResponse(m))
}

// PUT /api/anagrafica/:id
func (h *AnagraficaController) Update(c *fiber.Ctx) error {
	var req dto.UpdateAnagraficaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := req.ApplyToModel(m); err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("update athlete", err))
	}
	return helper.JsonUpdated(c, "Anagrafica aggiornata", dto.ToAnagraficaResponse(m))
}

// PATCH /api/anagrafica/:id/infortunio
func (h *AnagraficaController) SetInfortunio(c *fiber.Ctx) error {
	var req dto.InfortunioRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := req.Apply(m); err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Model(m).
		Updates(map[string]any{"infortunato": m.Infortunato, "data_rientro": m.DataRientro}).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("update injury", err))
	}
	return helper.JsonUpdated(c, "Stato infortunio aggiornato", dto.ToAnagraficaResponse(m))
}

// =========================================================
// DELETE /api/anagrafica/:id
// Remote objects go first; if the media host refuses, nothing local is touched.
// =========================================================
func (h *AnagraficaController) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}

	var keys []string
	if err := h.DB.WithContext(ctx).Model(&allegatoModel.AllegatoModel{}).
		Joins("JOIN terapie ON terapie.id = allegati.terapia_id").
		Where("terapie.anagrafica_id = ?", m.ID).
		Pluck("allegati.object_key", &keys).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list athlete attachments", err))
	}
	if m.FotoObjectKey != nil {
		keys = append(keys, *m.FotoObjectKey)
	}
	if err := media.DeleteAll(ctx, h.Media, keys...); err != nil {
		return helper.WriteError(c, err)
	}

	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := tx.Model(&terapiaModel.TerapiaModel{}).Select("id").Where("anagrafica_id = ?", m.ID)
		if err := tx.Where("terapia_id IN (?)", sessions).Delete(&allegatoModel.AllegatoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("anagrafica_id = ?", m.ID).Delete(&terapiaModel.TerapiaModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("anagrafica_id = ?", m.ID).Delete(&reportModel.ReportSiglaModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return helper.WriteError(c, helper.NewStorageError("delete athlete", err))
	}
	log.Info().Uint("anagrafica_id", m.ID).Int("objects", len(keys)).Msg("athlete deleted")
	return helper.JsonDeleted(c, "Atleta eliminato", fiber.Map{"id": m.ID})
}

// =========================================================
// POST /api/anagrafica/:id/foto (multipart "foto")
// =========================================================
func (h *AnagraficaController) UploadFoto(c *fiber.Ctx) error {
	ctx := c.UserContext()
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}

	fh, err := c.FormFile("foto")
	if err != nil {
		return helper.WriteError(c, helper.NewValidationError("foto", "file mancante"))
	}
	if fh.Size > MaxPhotoBytes {
		return helper.WriteError(c, helper.NewValidationError("foto", "file troppo grande (max 8MB)"))
	}
	f, err := fh.Open()
	if err != nil {
		return helper.WriteError(c, helper.NewValidationError("foto", "file non leggibile"))
	}
	raw, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return helper.WriteError(c, helper.NewValidationError("foto", "file non leggibile"))
	}

	webp, err := media.ConvertToWebP(raw, fh.Filename, media.DefaultPhotoOptions)
	if err != nil {
		return helper.WriteError(c, helper.NewValidationError("foto", "immagine non valida: %v", err))
	}

	name := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp"
	key := media.BuildKey(h.MediaPrefix, media.FolderFoto, name, h.Now())
	url, err := h.Media.Put(ctx, key, bytes.NewReader(webp), "image/webp")
	if err != nil {
		return helper.WriteError(c, &helper.ExternalServiceError{Service: "media", Op: "put " + key, Err: err})
	}

	previous := m.FotoObjectKey
	m.FotoURL, m.FotoObjectKey = &url, &key
	if err := h.DB.WithContext(ctx).Model(m).
		Updates(map[string]any{"foto_url": url, "foto_object_key": key}).Error; err != nil {
		if derr := h.Media.Delete(ctx, key); derr != nil {
			log.Warn().Err(derr).Str("key", key).Msg("orphan photo left on media host")
		}
		return helper.WriteError(c, helper.NewStorageError("save photo", err))
	}
	if previous != nil && *previous != key {
		if err := h.Media.Delete(ctx, *previous); err != nil {
			log.Warn().Err(err).Str("key", *previous).Msg("previous photo not removed")
		}
	}
	return helper.JsonUpdated(c, "Foto aggiornata", dto.ToAnagraficaResponse(m))
}

func (h *AnagraficaController) find(c *fiber.Ctx) (*model.AnagraficaModel, error) {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return nil, err
	}
	var m model.AnagraficaModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, helper.NewStorageError("load athlete", err)
	}
	return &m, nil
}
