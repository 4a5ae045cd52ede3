package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
)

// GridStore is the persistence gateway of the status grid.
type GridStore interface {
	AthleteExists(ctx context.Context, id uint) (bool, error)
	RegionExists(ctx context.Context, id uint) (bool, error)
	// ListAthletes and ListRegions return rows in primary key order;
	// presentation ordering is the caller's business.
	ListAthletes(ctx context.Context) ([]anagraficaModel.AnagraficaModel, error)
	ListRegions(ctx context.Context) ([]distrettoModel.DistrettoModel, error)

	CellsOn(ctx context.Context, day time.Time) ([]reportModel.ReportSiglaModel, error)
	CellsBetween(ctx context.Context, from, to time.Time) ([]reportModel.ReportSiglaModel, error)

	UpsertCell(ctx context.Context, cell *reportModel.ReportSiglaModel) error
	DeleteCell(ctx context.Context, day time.Time, athleteID, regionID uint) error
	// CopyDay inserts every non-empty cell of from into to unless the key is
	// already taken, in one statement. Returns the inserted count.
	CopyDay(ctx context.Context, from, to time.Time, operatore string, at time.Time) (int64, error)
}

type GormGridStore struct {
	DB *gorm.DB
}

func NewGormGridStore(db *gorm.DB) *GormGridStore {
	return &GormGridStore{DB: db}
}

var gridKey = []clause.Column{{Name: "data"}, {Name: "anagrafica_id"}, {Name: "distretto_id"}}

func (s *GormGridStore) AthleteExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&anagraficaModel.AnagraficaModel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *GormGridStore) RegionExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&distrettoModel.DistrettoModel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (s *GormGridStore) ListAthletes(ctx context.Context) ([]anagraficaModel.AnagraficaModel, error) {
	var rows []anagraficaModel.AnagraficaModel
	err := s.DB.WithContext(ctx).
		Select("id", "cognome", "nome", "infortunato", "data_rientro").
		Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormGridStore) ListRegions(ctx context.Context) ([]distrettoModel.DistrettoModel, error) {
	var rows []distrettoModel.DistrettoModel
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormGridStore) CellsOn(ctx context.Context, day time.Time) ([]reportModel.ReportSiglaModel, error) {
	var rows []reportModel.ReportSiglaModel
	err := s.DB.WithContext(ctx).
		Where("data = ?", datatypes.Date(day)).
		Order("anagrafica_id ASC, distretto_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormGridStore) CellsBetween(ctx context.Context, from, to time.Time) ([]reportModel.ReportSiglaModel, error) {
	var rows []reportModel.ReportSiglaModel
	err := s.DB.WithContext(ctx).
		Where("data BETWEEN ? AND ?", datatypes.Date(from), datatypes.Date(to)).
		Order("data ASC, anagrafica_id ASC, distretto_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormGridStore) UpsertCell(ctx context.Context, cell *reportModel.ReportSiglaModel) error {
	return s.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   gridKey,
			DoUpdates: clause.AssignmentColumns([]string{"sigla", "operatore", "updated_at"}),
		}).
		Create(cell).Error
}

func (s *GormGridStore) DeleteCell(ctx context.Context, day time.Time, athleteID, regionID uint) error {
	return s.DB.WithContext(ctx).
		Where("data = ? AND anagrafica_id = ? AND distretto_id = ?", datatypes.Date(day), athleteID, regionID).
		Delete(&reportModel.ReportSiglaModel{}).Error
}

// Keys are inserted in a fixed order so concurrent copies to the same day
// wait on each other instead of deadlocking.
const copyDaySQL = `
INSERT INTO report_sigle (data, anagrafica_id, distretto_id, sigla, operatore, updated_at)
SELECT CAST(? AS date), s.anagrafica_id, s.distretto_id, s.sigla, ?, ?
FROM report_sigle s
WHERE s.data = CAST(? AS date) AND s.sigla <> ''
ORDER BY s.anagrafica_id, s.distretto_id
ON CONFLICT (data, anagrafica_id, distretto_id) DO NOTHING`

func (s *GormGridStore) CopyDay(ctx context.Context, from, to time.Time, operatore string, at time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(copyDaySQL,
		to.Format("2006-01-02"), operatore, at, from.Format("2006-01-02"))
	return res.RowsAffected, res.Error
}
