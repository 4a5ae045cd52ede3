package model

import (
	"time"

	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
)

// AllegatoModel points at a file kept on the media host. ObjectKey is what
// the host needs to remove it later.
type AllegatoModel struct {
	ID          uint      `json:"id" gorm:"primaryKey;column:id"`
	TerapiaID   uint      `json:"terapia_id" gorm:"not null;column:terapia_id;index"`
	URL         string    `json:"url" gorm:"type:text;not null;column:url"`
	ObjectKey   string    `json:"object_key" gorm:"type:text;not null;column:object_key;uniqueIndex:uq_allegati_object_key"`
	FileName    string    `json:"file_name" gorm:"type:text;not null;default:'';column:file_name"`
	ContentType string    `json:"content_type" gorm:"type:text;not null;default:'application/octet-stream';column:content_type"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`

	Terapia *terapiaModel.TerapiaModel `json:"-" gorm:"foreignKey:TerapiaID;constraint:OnDelete:CASCADE"`
}

func (AllegatoModel) TableName() string { return "allegati" }
