package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fisiocatania_backend/internals/features/operators/operatori/dto"
	"fisiocatania_backend/internals/features/operators/operatori/service"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
)

var validate = helper.NewValidator()

type OperatoreController struct {
	Svc *service.OperatoreService
}

func NewOperatoreController(svc *service.OperatoreService) *OperatoreController {
	return &OperatoreController{Svc: svc}
}

// GET /api/operatori
func (h *OperatoreController) List(c *fiber.Ctx) error {
	rows, err := h.Svc.List(c.UserContext())
	if err != nil {
		return helper.WriteError(c, err)
	}
	out := make([]dto.OperatoreResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToOperatoreResponse(&rows[i]))
	}
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/operatori
func (h *OperatoreController) Create(c *fiber.Ctx) error {
	var req dto.CreateOperatoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}
	m, err := h.Svc.Create(c.UserContext(), req.ToInput())
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email già registrata")
		}
		return helper.WriteError(c, err)
	}
	return helper.JsonCreated(c, "Operatore creato", dto.ToOperatoreResponse(m))
}

// DELETE /api/operatori/:id
func (h *OperatoreController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return helper.WriteError(c, err)
	}
	me, err := helperAuth.GetOperatorID(c)
	if err != nil {
		return err
	}
	n, err := h.Svc.Delete(c.UserContext(), id, me)
	if err != nil {
		if errors.Is(err, service.ErrSelfDelete) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Non puoi eliminare il tuo account")
		}
		return helper.WriteError(c, err)
	}
	return helper.JsonDeleted(c, "Operatore eliminato", fiber.Map{
		"id":       id,
		"policy":   h.Svc.DeletePolicy,
		"sessions": n,
	})
}
