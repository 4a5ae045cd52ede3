package model

import "time"

type TrattamentoModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;column:id"`
	Nome      string    `json:"nome" gorm:"type:text;not null;uniqueIndex:uq_trattamenti_nome;column:nome"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (TrattamentoModel) TableName() string { return "trattamenti" }
