//go:build integration

package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/databases/dbtest"
	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	helper "fisiocatania_backend/internals/helpers"
)

func seedAxes(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&[]anagraficaModel.AnagraficaModel{
		{Cognome: "Rossi", Nome: "Mario"},
		{Cognome: "Bianchi", Nome: "Luca"},
	}).Error)
	require.NoError(t, db.Create(&[]distrettoModel.DistrettoModel{{Nome: "Ginocchio"}, {Nome: "Caviglia"}}).Error)
}

func d(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := helper.ParseDate("date", s)
	require.NoError(t, err)
	return v
}

func cell(t *testing.T, day string, a, r uint, sigla string) *reportModel.ReportSiglaModel {
	return &reportModel.ReportSiglaModel{Data: datatypes.Date(d(t, day)), AnagraficaID: a, DistrettoID: r, Sigla: sigla, Operatore: "test", UpdatedAt: time.Now()}
}

func TestGormUpsertIsLastWriteWins(t *testing.T) {
	db := dbtest.DB(t)
	seedAxes(t, db)
	s := NewGormGridStore(db)
	ctx := context.Background()

	require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-05-01", 1, 1, reportModel.SiglaDaValutare)))
	require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-05-01", 1, 1, reportModel.SiglaDisponibile)))

	rows, err := s.CellsOn(ctx, d(t, "2024-05-01"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, reportModel.SiglaDisponibile, rows[0].Sigla)

	require.NoError(t, s.DeleteCell(ctx, d(t, "2024-05-01"), 1, 1))
	rows, err = s.CellsOn(ctx, d(t, "2024-05-01"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGormConstraintsRejectBadRows(t *testing.T) {
	db := dbtest.DB(t)
	seedAxes(t, db)
	s := NewGormGridStore(db)
	ctx := context.Background()

	err := s.UpsertCell(ctx, cell(t, "2024-05-01", 1, 1, "X"))
	require.Error(t, err)

	err = s.UpsertCell(ctx, cell(t, "2024-05-01", 99, 1, reportModel.SiglaDisponibile))
	require.Error(t, err)
	status, _ := helper.MapPGError(err)
	assert.Equal(t, 400, status)
}

func TestGormCopyDayOnlyFillsGaps(t *testing.T) {
	db := dbtest.DB(t)
	seedAxes(t, db)
	s := NewGormGridStore(db)
	ctx := context.Background()

	require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-05-31", 1, 1, reportModel.SiglaDisponibile)))
	require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-05-31", 2, 2, reportModel.SiglaIndisponibile)))
	require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-06-01", 2, 2, reportModel.SiglaDaValutare)))

	n, err := s.CopyDay(ctx, d(t, "2024-05-31"), d(t, "2024-06-01"), "copia", time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	again, err := s.CopyDay(ctx, d(t, "2024-05-31"), d(t, "2024-06-01"), "copia", time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 0, again)

	rows, err := s.CellsBetween(ctx, d(t, "2024-06-01"), d(t, "2024-06-01"))
	require.NoError(t, err)
	got := map[uint]string{}
	for _, r := range rows {
		got[r.AnagraficaID*10+r.DistrettoID] = r.Sigla
	}
	assert.Equal(t, map[uint]string{11: reportModel.SiglaDisponibile, 22: reportModel.SiglaDaValutare}, got)
}

func TestGormCopyDayConcurrentWithUpsert(t *testing.T) {
	db := dbtest.DB(t)
	seedAxes(t, db)
	s := NewGormGridStore(db)
	ctx := context.Background()

	source := map[uint]string{
		11: reportModel.SiglaDisponibile,
		12: reportModel.SiglaDisponibileGraduale,
		21: reportModel.SiglaIndisponibile,
		22: reportModel.SiglaDisponibile,
	}
	for k, v := range source {
		require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-05-31", k/10, k%10, v)))
	}
	// (2,2) is already filled on the target, so three keys are gaps
	require.NoError(t, s.UpsertCell(ctx, cell(t, "2024-06-01", 2, 2, reportModel.SiglaDaValutare)))

	from, to := d(t, "2024-05-31"), d(t, "2024-06-01")
	edit := cell(t, "2024-06-01", 1, 1, reportModel.SiglaDaValutare)
	edit.Operatore = "mano"

	const copiers = 8
	var (
		wg       sync.WaitGroup
		inserted atomic.Int64
		errs     = make(chan error, copiers+1)
		start    = make(chan struct{})
	)
	for i := 0; i < copiers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			n, err := s.CopyDay(ctx, from, to, "copia", time.Now())
			if err != nil {
				errs <- err
				return
			}
			inserted.Add(n)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		if err := s.UpsertCell(ctx, edit); err != nil {
			errs <- err
		}
	}()
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rows, err := s.CellsOn(ctx, to)
	require.NoError(t, err)
	got := map[uint]reportModel.ReportSiglaModel{}
	for _, r := range rows {
		got[r.AnagraficaID*10+r.DistrettoID] = r
	}
	require.Len(t, got, 4)
	require.Len(t, rows, 4)

	// the manual edit wins whichever statement reached (1,1) first
	assert.Equal(t, reportModel.SiglaDaValutare, got[11].Sigla)
	assert.Equal(t, "mano", got[11].Operatore)
	assert.Equal(t, reportModel.SiglaDaValutare, got[22].Sigla)
	for _, k := range []uint{12, 21} {
		assert.Equal(t, source[k], got[k].Sigla)
		assert.Equal(t, "copia", got[k].Operatore)
	}

	// each gap is inserted by exactly one copier; (1,1) is not counted
	// when the edit inserted it before any copy did
	total := inserted.Load()
	assert.True(t, total == 3 || total == 2, "inserted %d rows", total)

	// with the edit settled, the counts are exact
	require.NoError(t, s.DeleteCell(ctx, to, 1, 2))
	require.NoError(t, s.DeleteCell(ctx, to, 2, 1))
	inserted.Store(0)
	var wg2 sync.WaitGroup
	for i := 0; i < copiers; i++ {
		wg2.Add(1)
		go func() {
			defer wg2.Done()
			n, err := s.CopyDay(ctx, from, to, "copia", time.Now())
			assert.NoError(t, err)
			inserted.Add(n)
		}()
	}
	wg2.Wait()
	assert.EqualValues(t, 2, inserted.Load())
	rows, err = s.CellsOn(ctx, to)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestGormListAxesAndExistence(t *testing.T) {
	db := dbtest.DB(t)
	seedAxes(t, db)
	s := NewGormGridStore(db)
	ctx := context.Background()

	athletes, err := s.ListAthletes(ctx)
	require.NoError(t, err)
	require.Len(t, athletes, 2)
	assert.Equal(t, "Rossi", athletes[0].Cognome)

	ok, err := s.AthleteExists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.RegionExists(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}
