package dto

import (
	"strings"

	"fisiocatania_backend/internals/features/catalog/trattamenti/model"
)

// TrattamentoRequest is used for both create and update; the only field is the name.
type TrattamentoRequest struct {
	Nome string `json:"nome" validate:"required,max=120"`
}

func (r *TrattamentoRequest) Normalize() { r.Nome = strings.TrimSpace(r.Nome) }

type TrattamentoResponse struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}

func ToTrattamentoResponse(m *model.TrattamentoModel) TrattamentoResponse {
	return TrattamentoResponse{ID: m.ID, Nome: m.Nome}
}

func ToTrattamentoResponses(rows []model.TrattamentoModel) []TrattamentoResponse {
	out := make([]TrattamentoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToTrattamentoResponse(&rows[i]))
	}
	return out
}
