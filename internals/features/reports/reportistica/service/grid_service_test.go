package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	"fisiocatania_backend/internals/features/reports/reportistica/repository"
	helper "fisiocatania_backend/internals/helpers"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := helper.ParseDate("date", s)
	require.NoError(t, err)
	return d
}

func newFixture(t *testing.T) (*GridService, *repository.MemoryGridStore) {
	t.Helper()
	store := repository.NewMemoryGridStore()
	for _, a := range []anagraficaModel.AnagraficaModel{
		{ID: 7, Cognome: "Rossi", Nome: "Mario"},
		{ID: 9, Cognome: "Bianchi", Nome: "Luca"},
	} {
		store.AddAthlete(a)
	}
	for _, r := range []distrettoModel.DistrettoModel{
		{ID: 2, Nome: "Caviglia"},
		{ID: 3, Nome: "Ginocchio"},
	} {
		store.AddRegion(r)
	}
	svc := NewGridService(store)
	svc.Now = func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func upsert(t *testing.T, svc *GridService, date string, a, r uint, sigla string) {
	t.Helper()
	_, err := svc.UpsertCell(context.Background(), CellInput{Date: day(t, date), AthleteID: a, RegionID: r, Sigla: sigla, Operatore: "test"})
	require.NoError(t, err)
}

func query(t *testing.T, svc *GridService, date string) map[string]string {
	t.Helper()
	got, err := svc.QueryGrid(context.Background(), day(t, date))
	require.NoError(t, err)
	return got
}

func TestScenarioUpsertThenQuery(t *testing.T) {
	svc, _ := newFixture(t)
	assert.Empty(t, query(t, svc, "2024-05-01"))

	upsert(t, svc, "2024-05-01", 7, 3, "D")
	assert.Equal(t, map[string]string{"7|3": "D"}, query(t, svc, "2024-05-01"))

	upsert(t, svc, "2024-05-01", 7, 3, "")
	assert.Empty(t, query(t, svc, "2024-05-01"))
}

func TestUpsertKeepsOneRowPerKey(t *testing.T) {
	svc, store := newFixture(t)
	for _, s := range []string{"D", "I", "DV", "D (GRADUALE)", "I"} {
		upsert(t, svc, "2024-05-01", 7, 3, s)
	}
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, map[string]string{"7|3": "I"}, query(t, svc, "2024-05-01"))

	cells, err := store.CellsOn(context.Background(), day(t, "2024-05-01"))
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, "test", cells[0].Operatore)
}

func TestEmptyWriteDeletes(t *testing.T) {
	svc, _ := newFixture(t)

	// clearing a cell that was never written is fine
	upsert(t, svc, "2024-05-01", 9, 2, "")
	assert.NotContains(t, query(t, svc, "2024-05-01"), "9|2")

	upsert(t, svc, "2024-05-01", 9, 2, "DV")
	upsert(t, svc, "2024-05-01", 9, 2, "   ")
	assert.NotContains(t, query(t, svc, "2024-05-01"), "9|2")
}

func TestUpsertValidation(t *testing.T) {
	svc, store := newFixture(t)
	cases := []struct {
		name  string
		in    CellInput
		field string
	}{
		{"zero athlete", CellInput{AthleteID: 0, RegionID: 3, Sigla: "D"}, "anagrafica_id"},
		{"zero region", CellInput{AthleteID: 7, RegionID: 0, Sigla: "D"}, "distretto_id"},
		{"unknown code", CellInput{AthleteID: 7, RegionID: 3, Sigla: "X"}, "sigla"},
		{"lowercase code", CellInput{AthleteID: 7, RegionID: 3, Sigla: "d"}, "sigla"},
		{"missing athlete", CellInput{AthleteID: 99, RegionID: 3, Sigla: "D"}, "anagrafica_id"},
		{"missing region", CellInput{AthleteID: 7, RegionID: 99, Sigla: "D"}, "distretto_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Date = day(t, "2024-05-01")
			_, err := svc.UpsertCell(context.Background(), tc.in)
			var ve *helper.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Zero(t, store.Len())
}

func TestUpsertStorageFailure(t *testing.T) {
	svc, store := newFixture(t)
	upsert(t, svc, "2024-05-01", 7, 3, "D")

	store.Err = errors.New("connection reset")
	_, err := svc.UpsertCell(context.Background(), CellInput{Date: day(t, "2024-05-01"), AthleteID: 7, RegionID: 3, Sigla: "I"})
	var se *helper.StorageError
	require.ErrorAs(t, err, &se)

	store.Err = nil
	assert.Equal(t, map[string]string{"7|3": "D"}, query(t, svc, "2024-05-01"))
}

func TestCopyForward(t *testing.T) {
	t.Run("scenario: fills gaps, keeps target", func(t *testing.T) {
		svc, _ := newFixture(t)
		upsert(t, svc, "2024-05-01", 7, 3, "I")
		upsert(t, svc, "2024-05-01", 9, 2, "D")
		upsert(t, svc, "2024-05-02", 7, 3, "DV")

		n, err := svc.CopyForward(context.Background(), day(t, "2024-05-02"), "op")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, map[string]string{"7|3": "DV", "9|2": "D"}, query(t, svc, "2024-05-02"))
		assert.Equal(t, map[string]string{"7|3": "I", "9|2": "D"}, query(t, svc, "2024-05-01"))
	})

	t.Run("never overwrites", func(t *testing.T) {
		svc, _ := newFixture(t)
		upsert(t, svc, "2024-05-01", 7, 3, "D")
		upsert(t, svc, "2024-05-02", 7, 3, "I")
		_, err := svc.CopyForward(context.Background(), day(t, "2024-05-02"), "op")
		require.NoError(t, err)
		assert.Equal(t, "I", query(t, svc, "2024-05-02")["7|3"])
	})

	t.Run("fills an empty key", func(t *testing.T) {
		svc, _ := newFixture(t)
		upsert(t, svc, "2024-05-01", 7, 3, "D")
		_, err := svc.CopyForward(context.Background(), day(t, "2024-05-02"), "op")
		require.NoError(t, err)
		assert.Equal(t, "D", query(t, svc, "2024-05-02")["7|3"])
	})

	t.Run("idempotent", func(t *testing.T) {
		svc, _ := newFixture(t)
		upsert(t, svc, "2024-05-01", 7, 3, "D")
		upsert(t, svc, "2024-05-01", 9, 3, "DV")
		upsert(t, svc, "2024-05-02", 9, 2, "I")

		first, err := svc.CopyForward(context.Background(), day(t, "2024-05-02"), "op")
		require.NoError(t, err)
		once := query(t, svc, "2024-05-02")

		second, err := svc.CopyForward(context.Background(), day(t, "2024-05-02"), "op")
		require.NoError(t, err)
		assert.Equal(t, int64(2), first)
		assert.Zero(t, second)
		assert.Equal(t, once, query(t, svc, "2024-05-02"))
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		svc, _ := newFixture(t)
		upsert(t, svc, "2024-02-29", 7, 3, "I")
		_, err := svc.CopyForward(context.Background(), day(t, "2024-03-01"), "op")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"7|3": "I"}, query(t, svc, "2024-03-01"))
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, store := newFixture(t)
		store.Err = errors.New("down")
		_, err := svc.CopyForward(context.Background(), day(t, "2024-05-02"), "op")
		var se *helper.StorageError
		assert.ErrorAs(t, err, &se)
	})
}

func TestDaySortsAxes(t *testing.T) {
	svc, store := newFixture(t)
	store.AddAthlete(anagraficaModel.AnagraficaModel{ID: 11, Cognome: "bianchi", Nome: "Anna"})
	store.AddRegion(distrettoModel.DistrettoModel{ID: 5, Nome: "Àdduttori"})
	upsert(t, svc, "2024-05-01", 9, 2, "D")

	g, err := svc.Day(context.Background(), day(t, "2024-05-01"))
	require.NoError(t, err)

	var names []string
	for _, a := range g.Axes.Athletes {
		names = append(names, a.Nominativo())
	}
	assert.Equal(t, []string{"bianchi Anna", "Bianchi Luca", "Rossi Mario"}, names)

	var regions []string
	for _, r := range g.Axes.Regions {
		regions = append(regions, r.Nome)
	}
	assert.Equal(t, []string{"Àdduttori", "Caviglia", "Ginocchio"}, regions)
	assert.Equal(t, map[string]string{"9|2": "D"}, g.Cells)
}
