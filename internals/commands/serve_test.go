package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisiocatania_backend/internals/configs"
	helper "fisiocatania_backend/internals/helpers"
)

func testConfig() *configs.Config {
	return &configs.Config{AppName: "fisiocatania-test", CORSOrigins: []string{"http://localhost:5173"}}
}

func body(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNewAppRendersErrorsWithEnvelope(t *testing.T) {
	app := NewApp(testConfig())
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return helper.NewValidationError("date", "bad")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	b := body(t, resp)
	assert.Equal(t, false, b["success"])
	assert.Equal(t, "VALIDATION_ERROR", b["error_code"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body(t, resp)["error_code"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "operator"} {
		assert.True(t, names[want], want)
	}
	create, _, err := rootCmd.Find([]string{"operator", "create"})
	require.NoError(t, err)
	assert.Equal(t, "create", create.Name())
	assert.NotNil(t, create.Flags().Lookup("admin"))
}
