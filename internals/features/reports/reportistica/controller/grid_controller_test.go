package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	"fisiocatania_backend/internals/features/reports/export/sheet"
	"fisiocatania_backend/internals/features/reports/reportistica/repository"
	"fisiocatania_backend/internals/features/reports/reportistica/service"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
)

type fakeDossier struct {
	gotID   uint
	gotFrom time.Time
	gotTo   time.Time
	err     error
}

func (f *fakeDossier) ExportAthleteRange(_ context.Context, id uint, from, to time.Time) ([]byte, error) {
	f.gotID, f.gotFrom, f.gotTo = id, from, to
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

func (f *fakeDossier) ExportDay(_ context.Context, day time.Time) ([]byte, error) {
	f.gotFrom = day
	return []byte("%PDF-day"), f.err
}

type fixture struct {
	app     *fiber.App
	store   *repository.MemoryGridStore
	dossier *fakeDossier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryGridStore()
	store.AddAthlete(anagraficaModel.AnagraficaModel{ID: 7, Cognome: "Rossi", Nome: "Mario"})
	store.AddAthlete(anagraficaModel.AnagraficaModel{ID: 9, Cognome: "Bianchi", Nome: "Luca"})
	store.AddRegion(distrettoModel.DistrettoModel{ID: 2, Nome: "Ginocchio"})
	store.AddRegion(distrettoModel.DistrettoModel{ID: 3, Nome: "Caviglia"})

	dos := &fakeDossier{}
	ctrl := NewGridController(service.NewGridService(store), sheet.NewExporter(store), dos, time.UTC)
	ctrl.Today = func() time.Time { return time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC) }

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocOperatorName, "Anna Bianchi")
		return c.Next()
	})
	app.Get("/reportistica", ctrl.GetGrid)
	app.Get("/reportistica/export", ctrl.ExportSheet)
	app.Get("/reportistica/export-pdf", ctrl.ExportDayPDF)
	app.Get("/fascicoli/:id/export-range", ctrl.ExportAthleteRange)
	app.Post("/api/reportistica/upsert", ctrl.UpsertCell)
	app.Post("/api/reportistica/copia", ctrl.CopyForward)
	return &fixture{app: app, store: store, dossier: dos}
}

func (f *fixture) do(t *testing.T, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func TestUpsertThenGrid(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/reportistica/upsert",
		`{"date":"2024-05-01","anagrafica_id":"7","distretto_id":2,"sigla":"DV"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "DV", data["sigla"])
	assert.Equal(t, "Anna Bianchi", data["operatore"])

	resp, body = f.do(t, http.MethodGet, "/reportistica?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	assert.Equal(t, map[string]any{"7|2": "DV"}, data["cells"])

	athletes := data["athletes"].([]any)
	require.Len(t, athletes, 2)
	assert.Equal(t, "Bianchi Luca", athletes[0].(map[string]any)["nominativo"])
	regions := data["regions"].([]any)
	assert.Equal(t, "Caviglia", regions[0].(map[string]any)["nome"])
	assert.Len(t, data["legend"], 4)
}

func TestUpsertEmptySiglaClears(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/reportistica/upsert", `{"date":"2024-05-01","anagrafica_id":7,"distretto_id":2,"sigla":"I"}`)
	resp, body := f.do(t, http.MethodPost, "/api/reportistica/upsert", `{"date":"2024-05-01","anagrafica_id":7,"distretto_id":2,"sigla":""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]any)["cleared"])
	assert.Equal(t, 0, f.store.Len())
}

func TestUpsertRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown code", `{"date":"2024-05-01","anagrafica_id":7,"distretto_id":2,"sigla":"X"}`, "sigla"},
		{"bad date", `{"date":"01/05/2024","anagrafica_id":7,"distretto_id":2,"sigla":"D"}`, "date"},
		{"missing athlete", `{"date":"2024-05-01","distretto_id":2,"sigla":"D"}`, "anagrafica_id"},
		{"dangling region", `{"date":"2024-05-01","anagrafica_id":7,"distretto_id":99,"sigla":"D"}`, "distretto_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := f.do(t, http.MethodPost, "/api/reportistica/upsert", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
			assert.Contains(t, body["errors"], tc.field)
		})
	}
	assert.Equal(t, 0, f.store.Len())
}

func TestCopyForward(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/reportistica/upsert", `{"date":"2024-05-01","anagrafica_id":7,"distretto_id":2,"sigla":"D"}`)
	f.do(t, http.MethodPost, "/api/reportistica/upsert", `{"date":"2024-05-02","anagrafica_id":9,"distretto_id":3,"sigla":"I"}`)

	resp, body := f.do(t, http.MethodPost, "/api/reportistica/copia", `{"to_date":"2024-05-02"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 1, data["copied"])
	assert.Equal(t, "2024-05-01", data["from_date"])

	_, body = f.do(t, http.MethodGet, "/reportistica?date=2024-05-02", "")
	assert.Equal(t, map[string]any{"7|2": "D", "9|3": "I"}, body["data"].(map[string]any)["cells"])

	resp, _ = f.do(t, http.MethodPost, "/api/reportistica/copia", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGridDefaultsToToday(t *testing.T) {
	f := newFixture(t)
	_, body := f.do(t, http.MethodGet, "/reportistica", "")
	assert.Equal(t, "2024-05-02", body["data"].(map[string]any)["date"])
}

func TestGridDegradesOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.Err = errors.New("connection refused")

	resp, body := f.do(t, http.MethodGet, "/reportistica?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Empty(t, data["cells"])
	assert.Empty(t, data["athletes"])
	assert.NotEmpty(t, data["warning"])

	resp, _ = f.do(t, http.MethodPost, "/api/reportistica/upsert", `{"date":"2024-05-01","anagrafica_id":7,"distretto_id":2,"sigla":"D"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestExportSheet(t *testing.T) {
	f := newFixture(t)
	resp, _ := f.do(t, http.MethodGet, "/reportistica/export?from=2024-05-01&to=2024-05-03", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sheet.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reportistica_2024-05-01_2024-05-03.xlsx")

	resp, body := f.do(t, http.MethodGet, "/reportistica/export?from=2024-05-03&to=2024-05-01", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["errors"], "from")
}

func TestExportAthleteRange(t *testing.T) {
	f := newFixture(t)
	resp, _ := f.do(t, http.MethodGet, "/fascicoli/7/export-range?from=2024-05-01&to=2024-05-31", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, uint(7), f.dossier.gotID)
	assert.Equal(t, "2024-05-31", helper.FormatDate(f.dossier.gotTo))

	resp, _ = f.do(t, http.MethodGet, "/fascicoli/abc/export-range", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	f.dossier.err = helper.NewStorageError("load sessions", errors.New("down"))
	resp, _ = f.do(t, http.MethodGet, "/fascicoli/7/export-range?from=2024-05-01&to=2024-05-02", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestExportDayPDF(t *testing.T) {
	f := newFixture(t)
	resp, _ := f.do(t, http.MethodGet, "/reportistica/export-pdf?date=2024-05-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "terapie_2024-05-01.pdf")
	assert.Equal(t, "2024-05-01", helper.FormatDate(f.dossier.gotFrom))
}
