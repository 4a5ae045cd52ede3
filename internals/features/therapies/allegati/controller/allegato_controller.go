package controller

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/therapies/allegati/dto"
	"fisiocatania_backend/internals/features/therapies/allegati/model"
	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
	"fisiocatania_backend/internals/helpers/media"
)

// MaxUploadBytes is the attachment size limit.
const MaxUploadBytes = 10 << 20

type AllegatoController struct {
	DB          *gorm.DB
	Media       media.Store
	MediaPrefix string
	Now         func() time.Time
}

func NewAllegatoController(db *gorm.DB, store media.Store, prefix string) *AllegatoController {
	return &AllegatoController{DB: db, Media: store, MediaPrefix: prefix, Now: time.Now}
}

// GET /api/terapie/:id/allegati
func (h *AllegatoController) ListBySession(c *fiber.Ctx) error {
	sessionID, err := h.session(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	var rows []model.AllegatoModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("terapia_id = ?", sessionID).Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list attachments", err))
	}
	return helper.JsonList(c, "ok", dto.ToAllegatoResponses(rows), nil)
}

// =========================================================
// POST /api/terapie/:id/allegati (multipart "file")
// Upload first, then insert; a failed insert removes the upload.
// =========================================================
func (h *AllegatoController) Upload(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sessionID, err := h.session(c)
	if err != nil {
		return helper.WriteError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.WriteError(c, helper.NewValidationError("file", "file mancante"))
	}
	if fh.Size > MaxUploadBytes {
		return helper.WriteError(c, helper.NewValidationError("file", "file troppo grande (max 10MB)"))
	}
	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename)))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	f, err := fh.Open()
	if err != nil {
		return helper.WriteError(c, helper.NewValidationError("file", "file non leggibile"))
	}
	defer f.Close()

	key := media.BuildKey(h.MediaPrefix, media.FolderAllegati, fh.Filename, h.Now())
	url, err := h.Media.Put(ctx, key, f, ct)
	if err != nil {
		return helper.WriteError(c, &helper.ExternalServiceError{Service: "media", Op: "put " + key, Err: err})
	}

	m := &model.AllegatoModel{
		TerapiaID:   sessionID,
		URL:         url,
		ObjectKey:   key,
		FileName:    filepath.Base(fh.Filename),
		ContentType: ct,
	}
	if err := h.DB.WithContext(ctx).Omit("Terapia").Create(m).Error; err != nil {
		if derr := h.Media.Delete(ctx, key); derr != nil {
			log.Warn().Err(derr).Str("key", key).Msg("orphan attachment left on media host")
		}
		return helper.WriteError(c, helper.NewStorageError("create attachment", err))
	}
	return helper.JsonCreated(c, "Allegato caricato", dto.ToAllegatoResponse(m))
}

// =========================================================
// DELETE /api/allegati/:id
// The remote object goes first; on failure the record is kept (502).
// =========================================================
func (h *AllegatoController) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return helper.WriteError(c, err)
	}
	var m model.AllegatoModel
	if err := h.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.WriteError(c, err)
		}
		return helper.WriteError(c, helper.NewStorageError("load attachment", err))
	}

	if err := media.DeleteAll(ctx, h.Media, m.ObjectKey); err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(ctx).Delete(&m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("delete attachment", err))
	}
	return helper.JsonDeleted(c, "Allegato eliminato", fiber.Map{"id": m.ID})
}

// session resolves :id to an existing therapy session.
func (h *AllegatoController) session(c *fiber.Ctx) (uint, error) {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return 0, err
	}
	var n int64
	if err := h.DB.WithContext(c.UserContext()).Model(&terapiaModel.TerapiaModel{}).
		Where("id = ?", id).Count(&n).Error; err != nil {
		return 0, helper.NewStorageError("load session", err)
	}
	if n == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}
