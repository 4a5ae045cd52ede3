package model

import "time"

// DistrettoModel is a body region. PosX/PosY place it on the anatomical diagram.
type DistrettoModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;column:id"`
	Nome      string    `json:"nome" gorm:"type:text;not null;uniqueIndex:uq_distretti_nome;column:nome"`
	PosX      *float64  `json:"pos_x,omitempty" gorm:"column:pos_x"`
	PosY      *float64  `json:"pos_y,omitempty" gorm:"column:pos_y"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (DistrettoModel) TableName() string { return "distretti" }
