package model

import (
	"time"

	"gorm.io/datatypes"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	trattamentoModel "fisiocatania_backend/internals/features/catalog/trattamenti/model"
	operatoreModel "fisiocatania_backend/internals/features/operators/operatori/model"
)

// TerapiaModel is one therapy session. The associations only exist so that
// AutoMigrate creates the foreign keys; they are never preloaded on writes.
type TerapiaModel struct {
	ID            uint           `json:"id" gorm:"primaryKey;column:id"`
	AnagraficaID  uint           `json:"anagrafica_id" gorm:"not null;column:anagrafica_id;index:idx_terapie_anagrafica_data,priority:1"`
	DistrettoID   uint           `json:"distretto_id" gorm:"not null;column:distretto_id;index"`
	TrattamentoID uint           `json:"trattamento_id" gorm:"not null;column:trattamento_id;index"`
	Data          datatypes.Date `json:"data" gorm:"type:date;not null;column:data;index:idx_terapie_anagrafica_data,priority:2;index:idx_terapie_data"`
	Note          *string        `json:"note,omitempty" gorm:"type:text;column:note"`
	Sigla         *string        `json:"sigla,omitempty" gorm:"type:varchar(20);column:sigla"`
	OperatoreID   *uint          `json:"operatore_id,omitempty" gorm:"column:operatore_id;index"`
	CreatedAt     time.Time      `json:"created_at" gorm:"column:created_at;autoCreateTime"`

	Anagrafica  *anagraficaModel.AnagraficaModel   `json:"-" gorm:"foreignKey:AnagraficaID;constraint:OnDelete:CASCADE"`
	Distretto   *distrettoModel.DistrettoModel     `json:"-" gorm:"foreignKey:DistrettoID;constraint:OnDelete:CASCADE"`
	Trattamento *trattamentoModel.TrattamentoModel `json:"-" gorm:"foreignKey:TrattamentoID;constraint:OnDelete:CASCADE"`
	Operatore   *operatoreModel.OperatoreModel     `json:"-" gorm:"foreignKey:OperatoreID;constraint:OnDelete:SET NULL"`
}

func (TerapiaModel) TableName() string { return "terapie" }
