//go:build integration

package route

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fisiocatania_backend/internals/databases/dbtest"
	helper "fisiocatania_backend/internals/helpers"
)

func TestTrattamentiDuplicateAndMissing(t *testing.T) {
	db := dbtest.DB(t)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	TrattamentiRoutes(app, db)

	send := func(method, path, body string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 201, send("POST", "/trattamenti", `{"nome":"Tecar"}`))
	assert.Equal(t, 201, send("POST", "/trattamenti", `{"nome":"Laser"}`))
	assert.Equal(t, 409, send("POST", "/trattamenti", `{"nome":"Tecar"}`))
	assert.Equal(t, 409, send("PUT", "/trattamenti/2", `{"nome":"Tecar"}`))
	assert.Equal(t, 400, send("POST", "/trattamenti", `{}`))
	assert.Equal(t, 404, send("DELETE", "/trattamenti/9", ""))
	assert.Equal(t, 400, send("GET", "/trattamenti/abc", ""))
}
