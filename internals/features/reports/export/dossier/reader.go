package dossier

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
)

// SessionRow is one therapy session joined with its references. A nil
// pointer means the referenced row is gone.
type SessionRow struct {
	ID           uint
	Data         time.Time
	AnagraficaID uint
	Atleta       *string
	Distretto    *string
	Trattamento  *string
	Sigla        *string
	Note         *string
	Operatore    *string
}

// Reader is what the dossier needs from the store.
type Reader interface {
	Athlete(ctx context.Context, id uint) (*anagraficaModel.AnagraficaModel, error)
	SessionsForAthlete(ctx context.Context, athleteID uint, from, to time.Time) ([]SessionRow, error)
	SessionsOn(ctx context.Context, day time.Time) ([]SessionRow, error)
}

type GormReader struct {
	DB *gorm.DB
}

func NewGormReader(db *gorm.DB) *GormReader { return &GormReader{DB: db} }

func (g *GormReader) Athlete(ctx context.Context, id uint) (*anagraficaModel.AnagraficaModel, error) {
	var m anagraficaModel.AnagraficaModel
	if err := g.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

const sessionSelect = `
t.id, t.data, t.anagrafica_id, t.sigla, t.note,
NULLIF(TRIM(CONCAT_WS(' ', a.cognome, a.nome)), '') AS atleta,
d.nome AS distretto,
tr.nome AS trattamento,
NULLIF(TRIM(CONCAT_WS(' ', o.nome, o.cognome)), '') AS operatore`

func (g *GormReader) base(ctx context.Context) *gorm.DB {
	return g.DB.WithContext(ctx).
		Table("terapie AS t").
		Select(sessionSelect).
		Joins("LEFT JOIN anagrafica a ON a.id = t.anagrafica_id").
		Joins("LEFT JOIN distretti d ON d.id = t.distretto_id").
		Joins("LEFT JOIN trattamenti tr ON tr.id = t.trattamento_id").
		Joins("LEFT JOIN operatori o ON o.id = t.operatore_id")
}

func (g *GormReader) SessionsForAthlete(ctx context.Context, athleteID uint, from, to time.Time) ([]SessionRow, error) {
	var rows []SessionRow
	err := g.base(ctx).
		Where("t.anagrafica_id = ? AND t.data BETWEEN ? AND ?", athleteID, datatypes.Date(from), datatypes.Date(to)).
		Order("t.data ASC, t.created_at ASC, t.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (g *GormReader) SessionsOn(ctx context.Context, day time.Time) ([]SessionRow, error) {
	var rows []SessionRow
	err := g.base(ctx).
		Where("t.data = ?", datatypes.Date(day)).
		Order("a.cognome ASC, a.nome ASC, t.created_at ASC, t.id ASC").
		Scan(&rows).Error
	return rows, err
}
