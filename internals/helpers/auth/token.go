package helper

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

/* ============================================
   Locals keys (set by middlewares/auth.AuthJWT)
   ============================================ */

const (
	LocOperatorID    = "operator_id"    // uint
	LocOperatorEmail = "operator_email" // string
	LocOperatorName  = "operator_name"  // "Nome Cognome"
	LocIsAdmin       = "is_admin"       // bool
	LocRawToken      = "raw_token"

	AccessTokenCookie = "access_token"
)

// OperatorClaims is the payload of the access token.
type OperatorClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs an HS256 token for the operator.
func IssueAccessToken(secret string, ttl time.Duration, now time.Time, id uint, email, name string, isAdmin bool) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("empty JWT secret")
	}
	exp := now.Add(ttl)
	claims := OperatorClaims{
		Email:   email,
		Name:    name,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return signed, exp, err
}

// ParseAccessToken verifies signature, algorithm and expiry.
func ParseAccessToken(secret, raw string) (*OperatorClaims, uint, error) {
	claims := &OperatorClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, 0, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, 0, errors.New("invalid subject")
	}
	return claims, uint(id), nil
}

// GetRawAccessToken reads "Authorization: Bearer" first, then the cookie when allowed.
func GetRawAccessToken(c *fiber.Ctx, cookieFallback bool) string {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	if cookieFallback {
		return strings.TrimSpace(c.Cookies(AccessTokenCookie))
	}
	return ""
}

/* ============================================
   Readers
   ============================================ */

func GetOperatorID(c *fiber.Ctx) (uint, error) {
	if v, ok := c.Locals(LocOperatorID).(uint); ok && v > 0 {
		return v, nil
	}
	return 0, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}

// GetOperatorName is what ends up in report_sigle.operatore.
func GetOperatorName(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocOperatorName).(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := c.Locals(LocOperatorEmail).(string); ok {
		return v
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocIsAdmin).(bool)
	return v
}
