package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnagraficaModel is one athlete followed by the medical staff.
type AnagraficaModel struct {
	ID           uint            `json:"id" gorm:"primaryKey;column:id"`
	Cognome      string          `json:"cognome" gorm:"type:text;not null;column:cognome;index:idx_anagrafica_nominativo,priority:1"`
	Nome         string          `json:"nome" gorm:"type:text;not null;column:nome;index:idx_anagrafica_nominativo,priority:2"`
	DataNascita  *datatypes.Date `json:"data_nascita,omitempty" gorm:"type:date;column:data_nascita"`
	LuogoNascita *string         `json:"luogo_nascita,omitempty" gorm:"type:text;column:luogo_nascita"`
	Telefono     *string         `json:"telefono,omitempty" gorm:"type:varchar(40);column:telefono"`
	Note         *string         `json:"note,omitempty" gorm:"type:text;column:note"`

	FotoURL       *string `json:"foto_url,omitempty" gorm:"type:text;column:foto_url"`
	FotoObjectKey *string `json:"foto_object_key,omitempty" gorm:"type:text;column:foto_object_key"`

	Infortunato bool            `json:"infortunato" gorm:"not null;default:false;column:infortunato"`
	DataRientro *datatypes.Date `json:"data_rientro,omitempty" gorm:"type:date;column:data_rientro"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (AnagraficaModel) TableName() string { return "anagrafica" }

// Nominativo is "Cognome Nome", the label used in grids and documents.
func (m AnagraficaModel) Nominativo() string {
	if m.Nome == "" {
		return m.Cognome
	}
	return m.Cognome + " " + m.Nome
}
