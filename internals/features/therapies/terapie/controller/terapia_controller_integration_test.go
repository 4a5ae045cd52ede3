//go:build integration

package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/databases/dbtest"
	allegatoModel "fisiocatania_backend/internals/features/therapies/allegati/model"
	"fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
	"fisiocatania_backend/internals/helpers/media"
)

func newApp(db *gorm.DB, store media.Store, operatorID uint) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocOperatorID, operatorID)
		return c.Next()
	})
	h := NewTerapiaController(db, store)
	g := app.Group("/terapie")
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Post("/", h.Create)
	g.Delete("/:id", h.Delete)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env.Data
}

func TestCreateAttributesOperatorAndJoinsNames(t *testing.T) {
	db := dbtest.DB(t)
	c := dbtest.SeedClinic(t, db)
	app := newApp(db, media.NewMemoryStore(), c.Operator.ID)

	code, _ := call(t, app, "POST", "/terapie", `{"anagrafica_id":"1","distretto_id":1,"trattamento_id":1,"data":"2024-05-01","note":"  ok ","sigla":"DV"}`)
	require.Equal(t, 201, code)

	code, data := call(t, app, "GET", "/terapie/1", "")
	require.Equal(t, 200, code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Rossi Mario", got["atleta"])
	assert.Equal(t, "Ginocchio", got["distretto"])
	assert.Equal(t, "Tecar", got["trattamento"])
	assert.Equal(t, "Anna Verdi", got["operatore"])
	assert.Equal(t, "ok", got["note"])
	assert.Equal(t, "2024-05-01", got["data"])
}

func TestCreateWithDanglingReferenceIsBadRequest(t *testing.T) {
	db := dbtest.DB(t)
	c := dbtest.SeedClinic(t, db)
	app := newApp(db, media.NewMemoryStore(), c.Operator.ID)

	code, _ := call(t, app, "POST", "/terapie", `{"anagrafica_id":1,"distretto_id":1,"trattamento_id":42,"data":"2024-05-01"}`)
	assert.Equal(t, 400, code)
	code, _ = call(t, app, "POST", "/terapie", `{"anagrafica_id":1,"distretto_id":1,"trattamento_id":1,"data":"2024-05-01","sigla":"ZZ"}`)
	assert.Equal(t, 400, code)
}

func TestListFiltersByAthleteAndRange(t *testing.T) {
	db := dbtest.DB(t)
	c := dbtest.SeedClinic(t, db)
	for _, d := range []string{"2024-04-30", "2024-05-01", "2024-05-02", "2024-05-10"} {
		c.AddSession(t, db, d)
	}
	app := newApp(db, media.NewMemoryStore(), c.Operator.ID)

	code, data := call(t, app, "GET", "/terapie?anagrafica_id=1&from=2024-05-01&to=2024-05-02&order=asc", "")
	require.Equal(t, 200, code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-05-01", rows[0]["data"])
	assert.Equal(t, "2024-05-02", rows[1]["data"])

	code, _ = call(t, app, "GET", "/terapie?from=2024-05-03&to=2024-05-01", "")
	assert.Equal(t, 400, code)
}

func TestDeleteRemovesAttachmentObjectsFirst(t *testing.T) {
	db := dbtest.DB(t)
	c := dbtest.SeedClinic(t, db)
	s := c.AddSession(t, db, "2024-05-01")
	store := media.NewMemoryStore()
	_, err := store.Put(t.Context(), "k/a.pdf", strings.NewReader("x"), "application/pdf")
	require.NoError(t, err)
	require.NoError(t, db.Omit("Terapia").Create(&allegatoModel.AllegatoModel{TerapiaID: s.ID, URL: "u", ObjectKey: "k/a.pdf"}).Error)
	app := newApp(db, store, c.Operator.ID)

	store.FailDelete = errors.New("host down")
	code, _ := call(t, app, "DELETE", "/terapie/1", "")
	assert.Equal(t, 502, code)
	require.NoError(t, db.First(&model.TerapiaModel{}, s.ID).Error)

	store.FailDelete = nil
	code, _ = call(t, app, "DELETE", "/terapie/1", "")
	assert.Equal(t, 200, code)
	assert.False(t, store.Has("k/a.pdf"))
	var n int64
	require.NoError(t, db.Model(&allegatoModel.AllegatoModel{}).Count(&n).Error)
	assert.Zero(t, n)
}
