package dto

import (
	"strings"
	"time"

	"fisiocatania_backend/internals/features/operators/operatori/model"
	"fisiocatania_backend/internals/features/operators/operatori/service"
)

type CreateOperatoreRequest struct {
	Nome     string `json:"nome" validate:"required,max=80"`
	Cognome  string `json:"cognome" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

func (r *CreateOperatoreRequest) Normalize() {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Cognome = strings.TrimSpace(r.Cognome)
	r.Email = service.NormalizeEmail(r.Email)
}

func (r *CreateOperatoreRequest) ToInput() service.CreateInput {
	return service.CreateInput{Nome: r.Nome, Cognome: r.Cognome, Email: r.Email, Password: r.Password, IsAdmin: r.IsAdmin}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type OperatoreResponse struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	Cognome   string    `json:"cognome"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func ToOperatoreResponse(m *model.OperatoreModel) OperatoreResponse {
	return OperatoreResponse{ID: m.ID, Nome: m.Nome, Cognome: m.Cognome, Email: m.Email, IsAdmin: m.IsAdmin, CreatedAt: m.CreatedAt}
}

// DisplayName is what gets stamped on grid edits.
func DisplayName(m *model.OperatoreModel) string {
	return strings.TrimSpace(m.Nome + " " + m.Cognome)
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	Operatore   OperatoreResponse `json:"operatore"`
}
