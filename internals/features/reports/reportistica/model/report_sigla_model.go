package model

import (
	"time"

	"gorm.io/datatypes"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
)

// ReportSiglaModel is one cell of the daily status grid. At most one row
// exists per (data, anagrafica_id, distretto_id); an empty code is never stored.
type ReportSiglaModel struct {
	ID           uint           `json:"id" gorm:"primaryKey;column:id"`
	Data         datatypes.Date `json:"data" gorm:"type:date;not null;column:data;uniqueIndex:uq_report_sigle_key,priority:1"`
	AnagraficaID uint           `json:"anagrafica_id" gorm:"not null;column:anagrafica_id;uniqueIndex:uq_report_sigle_key,priority:2"`
	DistrettoID  uint           `json:"distretto_id" gorm:"not null;column:distretto_id;uniqueIndex:uq_report_sigle_key,priority:3"`
	Sigla        string         `json:"sigla" gorm:"type:varchar(20);not null;column:sigla"`
	Operatore    string         `json:"operatore" gorm:"type:text;not null;default:'';column:operatore"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"column:updated_at"`

	Anagrafica *anagraficaModel.AnagraficaModel `json:"-" gorm:"foreignKey:AnagraficaID;constraint:OnDelete:CASCADE"`
	Distretto  *distrettoModel.DistrettoModel   `json:"-" gorm:"foreignKey:DistrettoID;constraint:OnDelete:CASCADE"`
}

func (ReportSiglaModel) TableName() string { return "report_sigle" }

// Day returns the cell date as a UTC midnight time.
func (m ReportSiglaModel) Day() time.Time {
	y, mo, d := time.Time(m.Data).Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
