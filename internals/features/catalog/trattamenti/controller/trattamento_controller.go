package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/catalog/trattamenti/dto"
	"fisiocatania_backend/internals/features/catalog/trattamenti/model"
	helper "fisiocatania_backend/internals/helpers"
)

var validate = helper.NewValidator()

const msgDuplicate = "Esiste già un trattamento con questo nome"

type TrattamentoController struct {
	DB *gorm.DB
}

func NewTrattamentoController(db *gorm.DB) *TrattamentoController {
	return &TrattamentoController{DB: db}
}

func (h *TrattamentoController) List(c *fiber.Ctx) error {
	var rows []model.TrattamentoModel
	if err := h.DB.WithContext(c.UserContext()).Order("nome ASC, id ASC").Find(&rows).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list treatments", err))
	}
	return helper.JsonList(c, "ok", dto.ToTrattamentoResponses(rows), nil)
}

func (h *TrattamentoController) Get(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToTrattamentoResponse(m))
}

func (h *TrattamentoController) Create(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	m := &model.TrattamentoModel{Nome: req.Nome}
	if err := h.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, msgDuplicate)
		}
		return helper.WriteError(c, helper.NewStorageError("create treatment", err))
	}
	return helper.JsonCreated(c, "Trattamento creato", dto.ToTrattamentoResponse(m))
}

func (h *TrattamentoController) Update(c *fiber.Ctx) error {
	req, err := parse(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Model(m).Update("nome", req.Nome).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, msgDuplicate)
		}
		return helper.WriteError(c, helper.NewStorageError("update treatment", err))
	}
	return helper.JsonUpdated(c, "Trattamento aggiornato", dto.ToTrattamentoResponse(m))
}

func (h *TrattamentoController) Delete(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("delete treatment", err))
	}
	return helper.JsonDeleted(c, "Trattamento eliminato", fiber.Map{"id": m.ID})
}

func parse(c *fiber.Ctx) (*dto.TrattamentoRequest, error) {
	var req dto.TrattamentoRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *TrattamentoController) find(c *fiber.Ctx) (*model.TrattamentoModel, error) {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return nil, err
	}
	var m model.TrattamentoModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, helper.NewStorageError("load treatment", err)
	}
	return &m, nil
}
