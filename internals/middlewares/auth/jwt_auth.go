package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	helperAuth "fisiocatania_backend/internals/helpers/auth"
)

// Session is the server-side view of a token's operator.
// Active is false when the token was logged out or the operator no longer exists.
type Session struct {
	Active  bool
	Email   string
	Name    string
	IsAdmin bool
}

// Sessions looks up what the database says about a verified token.
type Sessions interface {
	Session(ctx context.Context, rawToken string, operatorID uint) (Session, error)
}

type AuthJWTOpts struct {
	Secret              string
	Sessions            Sessions
	AllowCookieFallback bool // accept the access_token cookie when there is no Bearer
	// RedirectTo, when set, sends unauthenticated page requests (non /api) there
	// instead of answering 401.
	RedirectTo string
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}
	if o.Sessions == nil {
		panic("AuthJWT: Sessions is required")
	}

	reject := func(c *fiber.Ctx, msg string) error {
		if o.RedirectTo != "" && !strings.HasPrefix(c.Path(), "/api") {
			return c.Redirect(o.RedirectTo, fiber.StatusFound)
		}
		return fiber.NewError(fiber.StatusUnauthorized, msg)
	}

	return func(c *fiber.Ctx) error {
		raw := helperAuth.GetRawAccessToken(c, o.AllowCookieFallback)
		if raw == "" {
			return reject(c, "Unauthorized")
		}

		_, id, err := helperAuth.ParseAccessToken(secret, raw)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
			return reject(c, "Invalid token")
		}

		// claims are a snapshot from login; role and name come from the DB
		sess, err := o.Sessions.Session(c.UserContext(), raw, id)
		if err != nil {
			log.Error().Err(err).Uint("operator_id", id).Msg("session lookup failed")
			return fiber.NewError(fiber.StatusServiceUnavailable, "Sessione non verificabile")
		}
		if !sess.Active {
			log.Info().Uint("operator_id", id).Str("path", c.Path()).Msg("revoked session")
			return reject(c, "Sessione non più valida")
		}

		c.Locals(helperAuth.LocRawToken, raw)
		c.Locals(helperAuth.LocOperatorID, id)
		c.Locals(helperAuth.LocOperatorEmail, sess.Email)
		c.Locals(helperAuth.LocOperatorName, sess.Name)
		c.Locals(helperAuth.LocIsAdmin, sess.IsAdmin)
		return c.Next()
	}
}
