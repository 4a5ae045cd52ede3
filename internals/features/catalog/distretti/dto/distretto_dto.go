package dto

import (
	"strings"
	"time"

	"fisiocatania_backend/internals/features/catalog/distretti/model"
)

type CreateDistrettoRequest struct {
	Nome string   `json:"nome" validate:"required,max=120"`
	PosX *float64 `json:"pos_x" validate:"omitempty,gte=0,lte=100"`
	PosY *float64 `json:"pos_y" validate:"omitempty,gte=0,lte=100"`
}

func (r *CreateDistrettoRequest) Normalize() { r.Nome = strings.TrimSpace(r.Nome) }

func (r *CreateDistrettoRequest) ToModel() *model.DistrettoModel {
	return &model.DistrettoModel{Nome: r.Nome, PosX: r.PosX, PosY: r.PosY}
}

// UpdateDistrettoRequest: nil fields are left untouched.
type UpdateDistrettoRequest struct {
	Nome *string  `json:"nome" validate:"omitempty,min=1,max=120"`
	PosX *float64 `json:"pos_x" validate:"omitempty,gte=0,lte=100"`
	PosY *float64 `json:"pos_y" validate:"omitempty,gte=0,lte=100"`
}

func (r *UpdateDistrettoRequest) Normalize() {
	if r.Nome != nil {
		s := strings.TrimSpace(*r.Nome)
		r.Nome = &s
	}
}

func (r *UpdateDistrettoRequest) ApplyToModel(m *model.DistrettoModel) {
	if r.Nome != nil {
		m.Nome = *r.Nome
	}
	if r.PosX != nil {
		m.PosX = r.PosX
	}
	if r.PosY != nil {
		m.PosY = r.PosY
	}
}

type DistrettoResponse struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	PosX      *float64  `json:"pos_x,omitempty"`
	PosY      *float64  `json:"pos_y,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDistrettoResponse(m *model.DistrettoModel) DistrettoResponse {
	return DistrettoResponse{ID: m.ID, Nome: m.Nome, PosX: m.PosX, PosY: m.PosY, UpdatedAt: m.UpdatedAt}
}
