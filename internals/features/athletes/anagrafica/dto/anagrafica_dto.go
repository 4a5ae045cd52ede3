package dto

import (
	"strings"
	"time"

	"fisiocatania_backend/internals/features/athletes/anagrafica/model"
	helper "fisiocatania_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

// CreateAnagraficaRequest is the intake form.
type CreateAnagraficaRequest struct {
	Cognome      string  `json:"cognome" validate:"required,max=120"`
	Nome         string  `json:"nome" validate:"required,max=120"`
	DataNascita  *string `json:"data_nascita" validate:"omitempty,isodate"`
	LuogoNascita *string `json:"luogo_nascita" validate:"omitempty,max=120"`
	Telefono     *string `json:"telefono" validate:"omitempty,max=40"`
	Note         *string `json:"note"`
	Infortunato  bool    `json:"infortunato"`
	DataRientro  *string `json:"data_rientro" validate:"omitempty,isodate"`
}

func (r *CreateAnagraficaRequest) Normalize() {
	r.Cognome = strings.TrimSpace(r.Cognome)
	r.Nome = strings.TrimSpace(r.Nome)
	r.LuogoNascita = trimPtr(r.LuogoNascita)
	r.Telefono = trimPtr(r.Telefono)
	r.Note = trimPtr(r.Note)
	r.DataNascita = trimPtr(r.DataNascita)
	r.DataRientro = trimPtr(r.DataRientro)
	if !r.Infortunato {
		r.DataRientro = nil
	}
}

func (r *CreateAnagraficaRequest) ToModel() (*model.AnagraficaModel, error) {
	nascita, err := helper.ParseOptionalDate("data_nascita", r.DataNascita)
	if err != nil {
		return nil, err
	}
	rientro, err := helper.ParseOptionalDate("data_rientro", r.DataRientro)
	if err != nil {
		return nil, err
	}
	return &model.AnagraficaModel{
		Cognome:      r.Cognome,
		Nome:         r.Nome,
		DataNascita:  nascita,
		LuogoNascita: r.LuogoNascita,
		Telefono:     r.Telefono,
		Note:         r.Note,
		Infortunato:  r.Infortunato,
		DataRientro:  rientro,
	}, nil
}

// UpdateAnagraficaRequest: nil fields are left untouched, "" clears optional ones.
type UpdateAnagraficaRequest struct {
	Cognome      *string `json:"cognome" validate:"omitempty,min=1,max=120"`
	Nome         *string `json:"nome" validate:"omitempty,min=1,max=120"`
	DataNascita  *string `json:"data_nascita" validate:"omitempty,isodate"`
	LuogoNascita *string `json:"luogo_nascita" validate:"omitempty,max=120"`
	Telefono     *string `json:"telefono" validate:"omitempty,max=40"`
	Note         *string `json:"note"`
}

func (r *UpdateAnagraficaRequest) Normalize() {
	for _, p := range []*string{r.Cognome, r.Nome, r.DataNascita, r.LuogoNascita, r.Telefono, r.Note} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

func (r *UpdateAnagraficaRequest) ApplyToModel(m *model.AnagraficaModel) error {
	if r.Cognome != nil {
		m.Cognome = *r.Cognome
	}
	if r.Nome != nil {
		m.Nome = *r.Nome
	}
	if r.DataNascita != nil {
		d, err := helper.ParseOptionalDate("data_nascita", r.DataNascita)
		if err != nil {
			return err
		}
		m.DataNascita = d
	}
	if r.LuogoNascita != nil {
		m.LuogoNascita = emptyToNil(*r.LuogoNascita)
	}
	if r.Telefono != nil {
		m.Telefono = emptyToNil(*r.Telefono)
	}
	if r.Note != nil {
		m.Note = emptyToNil(*r.Note)
	}
	return nil
}

// InfortunioRequest: PATCH /api/anagrafica/:id/infortunio
type InfortunioRequest struct {
	Infortunato *bool   `json:"infortunato" validate:"required"`
	DataRientro *string `json:"data_rientro" validate:"omitempty,isodate"`
}

// Apply sets the injury flag; clearing it clears the return date.
func (r *InfortunioRequest) Apply(m *model.AnagraficaModel) error {
	m.Infortunato = *r.Infortunato
	if !m.Infortunato {
		m.DataRientro = nil
		return nil
	}
	d, err := helper.ParseOptionalDate("data_rientro", r.DataRientro)
	if err != nil {
		return err
	}
	m.DataRientro = d
	return nil
}

/* ===================== RESPONSES ===================== */

type AnagraficaResponse struct {
	ID           uint      `json:"id"`
	Cognome      string    `json:"cognome"`
	Nome         string    `json:"nome"`
	Nominativo   string    `json:"nominativo"`
	DataNascita  *string   `json:"data_nascita,omitempty"`
	LuogoNascita *string   `json:"luogo_nascita,omitempty"`
	Telefono     *string   `json:"telefono,omitempty"`
	Note         *string   `json:"note,omitempty"`
	FotoURL      *string   `json:"foto_url,omitempty"`
	Infortunato  bool      `json:"infortunato"`
	DataRientro  *string   `json:"data_rientro,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToAnagraficaResponse(m *model.AnagraficaModel) AnagraficaResponse {
	return AnagraficaResponse{
		ID:           m.ID,
		Cognome:      m.Cognome,
		Nome:         m.Nome,
		Nominativo:   m.Nominativo(),
		DataNascita:  helper.FormatDatePtr(m.DataNascita),
		LuogoNascita: m.LuogoNascita,
		Telefono:     m.Telefono,
		Note:         m.Note,
		FotoURL:      m.FotoURL,
		Infortunato:  m.Infortunato,
		DataRientro:  helper.FormatDatePtr(m.DataRientro),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToAnagraficaResponses(rows []model.AnagraficaModel) []AnagraficaResponse {
	out := make([]AnagraficaResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAnagraficaResponse(&rows[i]))
	}
	return out
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	return emptyToNil(strings.TrimSpace(*p))
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
