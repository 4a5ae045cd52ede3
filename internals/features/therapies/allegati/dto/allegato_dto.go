package dto

import (
	"time"

	"fisiocatania_backend/internals/features/therapies/allegati/model"
)

type AllegatoResponse struct {
	ID          uint      `json:"id"`
	TerapiaID   uint      `json:"terapia_id"`
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToAllegatoResponse(m *model.AllegatoModel) AllegatoResponse {
	return AllegatoResponse{
		ID:          m.ID,
		TerapiaID:   m.TerapiaID,
		URL:         m.URL,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		CreatedAt:   m.CreatedAt,
	}
}

func ToAllegatoResponses(rows []model.AllegatoModel) []AllegatoResponse {
	out := make([]AllegatoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAllegatoResponse(&rows[i]))
	}
	return out
}
