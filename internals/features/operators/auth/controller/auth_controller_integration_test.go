//go:build integration

package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fisiocatania_backend/internals/databases/dbtest"
	"fisiocatania_backend/internals/features/operators/auth/repository"
	"fisiocatania_backend/internals/features/operators/operatori/service"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
	authMiddleware "fisiocatania_backend/internals/middlewares/auth"
)

type stack struct {
	app *fiber.App
	ops *service.OperatoreService
}

func newStack(t *testing.T) stack {
	t.Helper()
	db := dbtest.DB(t)
	ops := service.NewOperatoreService(db, service.PolicyCascade)
	ops.Cost = bcrypt.MinCost
	sessions := repository.NewSessionStore(db, secret)
	ctrl := NewAuthController(ops, sessions, secret, time.Hour, false, "fisiocatania", time.UTC)

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	guard := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: secret, Sessions: sessions, AllowCookieFallback: true})
	app.Post("/logout", ctrl.Logout)
	app.Get("/api/me", guard, ctrl.Me)
	app.Get("/api/admin", guard, authMiddleware.RequireAdmin(), ctrl.Me)
	return stack{app: app, ops: ops}
}

func adminToken(t *testing.T, st stack, email string) (uint, string) {
	t.Helper()
	op, err := st.ops.Create(context.Background(), service.CreateInput{Nome: "Anna", Cognome: "Bianchi", Email: email, Password: "segreta123", IsAdmin: true})
	require.NoError(t, err)
	raw, _, err := helperAuth.IssueAccessToken(secret, time.Hour, time.Now(), op.ID, op.Email, "Anna Bianchi", true)
	require.NoError(t, err)
	return op.ID, raw
}

func TestReplayAfterLogoutIsRejected(t *testing.T) {
	st := newStack(t)
	_, raw := adminToken(t, st, "anna@clinic.it")
	require.Equal(t, http.StatusOK, bearer(t, st.app, http.MethodGet, "/api/admin", raw).StatusCode)

	require.Equal(t, http.StatusOK, bearer(t, st.app, http.MethodPost, "/logout", raw).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, bearer(t, st.app, http.MethodGet, "/api/admin", raw).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, bearer(t, st.app, http.MethodGet, "/api/me", raw).StatusCode)
}

func TestReplayAfterDeleteIsRejected(t *testing.T) {
	st := newStack(t)
	id, raw := adminToken(t, st, "anna@clinic.it")
	otherID, _ := adminToken(t, st, "luca@clinic.it")
	require.Equal(t, http.StatusOK, bearer(t, st.app, http.MethodGet, "/api/admin", raw).StatusCode)

	_, err := st.ops.Delete(context.Background(), id, otherID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, bearer(t, st.app, http.MethodGet, "/api/admin", raw).StatusCode)
}

func TestDemotionTakesEffectImmediately(t *testing.T) {
	st := newStack(t)
	id, raw := adminToken(t, st, "anna@clinic.it")

	require.NoError(t, st.ops.DB.Table("operatori").Where("id = ?", id).Update("is_admin", false).Error)
	assert.Equal(t, http.StatusForbidden, bearer(t, st.app, http.MethodGet, "/api/admin", raw).StatusCode)
	assert.Equal(t, http.StatusOK, bearer(t, st.app, http.MethodGet, "/api/me", raw).StatusCode)
}
