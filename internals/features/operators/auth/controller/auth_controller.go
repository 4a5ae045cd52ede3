package controller

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"fisiocatania_backend/internals/features/operators/operatori/dto"
	"fisiocatania_backend/internals/features/operators/operatori/model"
	"fisiocatania_backend/internals/features/operators/operatori/service"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
)

var validate = helper.NewValidator()

// Operators is what the auth endpoints need from the operator store.
type Operators interface {
	Authenticate(ctx context.Context, email, password string) (*model.OperatoreModel, error)
	Get(ctx context.Context, id uint) (*model.OperatoreModel, error)
	DashboardCounts(ctx context.Context, today string) (service.Counts, error)
}

// Revoker blacklists a token until its own expiry.
type Revoker interface {
	Revoke(ctx context.Context, raw string, operatorID uint, expiresAt time.Time) error
}

type AuthController struct {
	Ops          Operators
	Sessions     Revoker
	Secret       string
	TTL          time.Duration
	CookieSecure bool
	AppName      string
	Location     *time.Location
	Now          func() time.Time
}

func NewAuthController(ops Operators, sessions Revoker, secret string, ttl time.Duration, cookieSecure bool, appName string, loc *time.Location) *AuthController {
	return &AuthController{
		Ops:          ops,
		Sessions:     sessions,
		Secret:       secret,
		TTL:          ttl,
		CookieSecure: cookieSecure,
		AppName:      appName,
		Location:     loc,
		Now:          time.Now,
	}
}

// GET /
func (h *AuthController) Index(c *fiber.Ctx) error {
	return helper.JsonOK(c, h.AppName, fiber.Map{"login": "/login"})
}

// =========================================================
// POST /login {email, password}
// =========================================================
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}

	op, err := h.Ops.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn().Str("email", service.NormalizeEmail(req.Email)).Str("ip", c.IP()).Msg("login failed")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Credenziali errate")
		}
		return helper.WriteError(c, err)
	}

	now := h.Now()
	token, exp, err := helperAuth.IssueAccessToken(h.Secret, h.TTL, now, op.ID, op.Email, dto.DisplayName(op), op.IsAdmin)
	if err != nil {
		return helper.WriteError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: "Lax",
		Expires:  exp,
	})
	log.Info().Uint("operator_id", op.ID).Msg("login")
	return helper.JsonOK(c, "Accesso effettuato", dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   exp,
		Operatore:   dto.ToOperatoreResponse(op),
	})
}

// POST /logout
// A still valid token is blacklisted so copies of it stop working too.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	if raw := helperAuth.GetRawAccessToken(c, true); raw != "" {
		if claims, id, err := helperAuth.ParseAccessToken(h.Secret, raw); err == nil {
			exp := h.Now().Add(h.TTL)
			if claims.ExpiresAt != nil {
				exp = claims.ExpiresAt.Time
			}
			if err := h.Sessions.Revoke(c.UserContext(), raw, id, exp); err != nil {
				return helper.WriteError(c, err)
			}
			log.Info().Uint("operator_id", id).Msg("logout")
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     helperAuth.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.CookieSecure,
		SameSite: "Lax",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Disconnesso", nil)
}

// GET /api/me
func (h *AuthController) Me(c *fiber.Ctx) error {
	id, err := helperAuth.GetOperatorID(c)
	if err != nil {
		return err
	}
	op, err := h.Ops.Get(c.UserContext(), id)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToOperatoreResponse(op))
}

// GET /dashboard
func (h *AuthController) Dashboard(c *fiber.Ctx) error {
	today := helper.FormatDate(helper.TruncateDay(h.Now().In(h.Location)))
	counts, err := h.Ops.DashboardCounts(c.UserContext(), today)
	if err != nil {
		return helper.WriteError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"operatore": helperAuth.GetOperatorName(c),
		"is_admin":  helperAuth.IsAdmin(c),
		"date":      today,
		"counts":    counts,
	})
}
