//go:build integration

package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/databases/dbtest"
	"fisiocatania_backend/internals/features/athletes/anagrafica/model"
	allegatoModel "fisiocatania_backend/internals/features/therapies/allegati/model"
	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
	"fisiocatania_backend/internals/helpers/media"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newApp(db *gorm.DB, store media.Store) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	h := NewAnagraficaController(db, store, "test")
	g := app.Group("/anagrafica")
	g.Get("/", h.List)
	g.Get("/:id", h.Get)
	g.Post("/", h.Create)
	g.Patch("/:id/infortunio", h.SetInfortunio)
	g.Post("/:id/foto", h.UploadFoto)
	g.Delete("/:id", h.Delete)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp.StatusCode, env
}

func TestCreateListAndInjury(t *testing.T) {
	db := dbtest.DB(t)
	app := newApp(db, media.NewMemoryStore())

	code, _ := do(t, app, "POST", "/anagrafica", `{"cognome":" Rossi ","nome":"Mario","data_rientro":"2024-06-01"}`)
	require.Equal(t, 201, code)
	code, _ = do(t, app, "POST", "/anagrafica", `{"cognome":"Bianchi","nome":"Luca","infortunato":true,"data_rientro":"2024-06-01"}`)
	require.Equal(t, 201, code)

	var rossi model.AnagraficaModel
	require.NoError(t, db.Where("cognome = ?", "Rossi").First(&rossi).Error)
	assert.Nil(t, rossi.DataRientro)

	code, env := do(t, app, "GET", "/anagrafica?infortunati=true", "")
	require.Equal(t, 200, code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Bianchi", rows[0]["cognome"])
	assert.Equal(t, "2024-06-01", rows[0]["data_rientro"])

	code, _ = do(t, app, "PATCH", "/anagrafica/2/infortunio", `{"infortunato":false}`)
	require.Equal(t, 200, code)
	var bianchi model.AnagraficaModel
	require.NoError(t, db.First(&bianchi, 2).Error)
	assert.False(t, bianchi.Infortunato)
	assert.Nil(t, bianchi.DataRientro)

	code, _ = do(t, app, "GET", "/anagrafica/99", "")
	assert.Equal(t, 404, code)
}

func withAttachment(t *testing.T, db *gorm.DB, store *media.MemoryStore) (dbtest.Clinic, string) {
	t.Helper()
	c := dbtest.SeedClinic(t, db)
	s := c.AddSession(t, db, "2024-05-01")
	key := "test/allegati/2024/05/referto.pdf"
	url, err := store.Put(context.Background(), key, strings.NewReader("%PDF"), "application/pdf")
	require.NoError(t, err)
	require.NoError(t, db.Omit("Terapia").Create(&allegatoModel.AllegatoModel{TerapiaID: s.ID, URL: url, ObjectKey: key, FileName: "referto.pdf"}).Error)
	return c, key
}

func TestDeleteKeepsEverythingWhenMediaHostFails(t *testing.T) {
	db := dbtest.DB(t)
	store := media.NewMemoryStore()
	c, key := withAttachment(t, db, store)
	store.FailDelete = errors.New("host down")

	code, _ := do(t, newApp(db, store), "DELETE", "/anagrafica/1", "")
	assert.Equal(t, 502, code)

	var n int64
	require.NoError(t, db.Model(&model.AnagraficaModel{}).Where("id = ?", c.Athlete.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	require.NoError(t, db.Model(&allegatoModel.AllegatoModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	assert.True(t, store.Has(key))
}

func TestDeleteRemovesObjectsThenRows(t *testing.T) {
	db := dbtest.DB(t)
	store := media.NewMemoryStore()
	_, key := withAttachment(t, db, store)

	code, _ := do(t, newApp(db, store), "DELETE", "/anagrafica/1", "")
	require.Equal(t, 200, code)

	assert.False(t, store.Has(key))
	var n int64
	require.NoError(t, db.Model(&terapiaModel.TerapiaModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&allegatoModel.AllegatoModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUploadFotoReplacesPrevious(t *testing.T) {
	db := dbtest.DB(t)
	store := media.NewMemoryStore()
	c := dbtest.SeedClinic(t, db)
	app := newApp(db, store)

	upload := func(name string) int {
		img := image.NewRGBA(image.Rect(0, 0, 40, 30))
		img.Set(1, 1, color.RGBA{R: 200, A: 255})
		var pic bytes.Buffer
		require.NoError(t, png.Encode(&pic, img))

		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		fw, err := w.CreateFormFile("foto", name)
		require.NoError(t, err)
		_, _ = fw.Write(pic.Bytes())
		require.NoError(t, w.Close())

		req := httptest.NewRequest("POST", "/anagrafica/1/foto", &body)
		req.Header.Set("Content-Type", w.FormDataContentType())
		code, _ := send(t, app, req)
		return code
	}

	require.Equal(t, 200, upload("prima.png"))
	var first model.AnagraficaModel
	require.NoError(t, db.First(&first, c.Athlete.ID).Error)
	require.NotNil(t, first.FotoObjectKey)
	assert.True(t, strings.HasSuffix(*first.FotoObjectKey, ".webp"))
	assert.True(t, store.Has(*first.FotoObjectKey))

	require.Equal(t, 200, upload("seconda.png"))
	var second model.AnagraficaModel
	require.NoError(t, db.First(&second, c.Athlete.ID).Error)
	assert.NotEqual(t, *first.FotoObjectKey, *second.FotoObjectKey)
	assert.False(t, store.Has(*first.FotoObjectKey))
	assert.True(t, store.Has(*second.FotoObjectKey))
}
