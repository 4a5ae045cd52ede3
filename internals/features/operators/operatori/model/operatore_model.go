package model

import "time"

// OperatoreModel is a staff member allowed to log in. There is no
// self-registration: operators are created by an admin or by the CLI.
type OperatoreModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;column:id"`
	Nome      string    `json:"nome" gorm:"type:text;not null;column:nome"`
	Cognome   string    `json:"cognome" gorm:"type:text;not null;column:cognome"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:uq_operatori_email;column:email"`
	Password  string    `json:"-" gorm:"type:text;not null;column:password"`
	IsAdmin   bool      `json:"is_admin" gorm:"not null;default:false;column:is_admin"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (OperatoreModel) TableName() string { return "operatori" }
