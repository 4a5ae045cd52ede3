package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	"fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
)

type CreateTerapiaRequest struct {
	AnagraficaID  helper.FlexID `json:"anagrafica_id" validate:"required"`
	DistrettoID   helper.FlexID `json:"distretto_id" validate:"required"`
	TrattamentoID helper.FlexID `json:"trattamento_id" validate:"required"`
	Data          string        `json:"data" validate:"required,isodate"`
	Note          *string       `json:"note"`
	Sigla         *string       `json:"sigla" validate:"omitempty,sigla"`
}

func (r *CreateTerapiaRequest) Normalize() {
	r.Data = strings.TrimSpace(r.Data)
	r.Note = cleanText(r.Note)
	r.Sigla = cleanSigla(r.Sigla)
}

func (r *CreateTerapiaRequest) ToModel(operatoreID uint) (*model.TerapiaModel, error) {
	day, err := helper.ParseDate("data", r.Data)
	if err != nil {
		return nil, err
	}
	m := &model.TerapiaModel{
		AnagraficaID:  uint(r.AnagraficaID),
		DistrettoID:   uint(r.DistrettoID),
		TrattamentoID: uint(r.TrattamentoID),
		Data:          datatypes.Date(day),
		Note:          r.Note,
		Sigla:         r.Sigla,
	}
	if operatoreID != 0 {
		m.OperatoreID = &operatoreID
	}
	return m, nil
}

// UpdateTerapiaRequest: nil fields are left untouched; "" clears note and sigla.
type UpdateTerapiaRequest struct {
	DistrettoID   *helper.FlexID `json:"distretto_id"`
	TrattamentoID *helper.FlexID `json:"trattamento_id"`
	Data          *string        `json:"data" validate:"omitempty,isodate"`
	Note          *string        `json:"note"`
	Sigla         *string        `json:"sigla" validate:"omitempty,sigla"`
}

func (r *UpdateTerapiaRequest) ApplyToModel(m *model.TerapiaModel) error {
	if r.DistrettoID != nil {
		if *r.DistrettoID == 0 {
			return helper.NewValidationError("distretto_id", "must be a positive integer")
		}
		m.DistrettoID = uint(*r.DistrettoID)
	}
	if r.TrattamentoID != nil {
		if *r.TrattamentoID == 0 {
			return helper.NewValidationError("trattamento_id", "must be a positive integer")
		}
		m.TrattamentoID = uint(*r.TrattamentoID)
	}
	if r.Data != nil {
		day, err := helper.ParseDate("data", *r.Data)
		if err != nil {
			return err
		}
		m.Data = datatypes.Date(day)
	}
	if r.Note != nil {
		m.Note = cleanText(r.Note)
	}
	if r.Sigla != nil {
		m.Sigla = cleanSigla(r.Sigla)
	}
	return nil
}

// ListFilter: GET /api/terapie?anagrafica_id=&from=&to=
type ListFilter struct {
	AnagraficaID uint
	From         *time.Time
	To           *time.Time
}

func ParseListFilter(anagraficaID, from, to string) (ListFilter, error) {
	var f ListFilter
	if s := strings.TrimSpace(anagraficaID); s != "" {
		id, err := helper.ParseID(s)
		if err != nil {
			return f, helper.NewValidationError("anagrafica_id", "must be a positive integer")
		}
		f.AnagraficaID = id
	}
	if s := strings.TrimSpace(from); s != "" {
		d, err := helper.ParseDate("from", s)
		if err != nil {
			return f, err
		}
		f.From = &d
	}
	if s := strings.TrimSpace(to); s != "" {
		d, err := helper.ParseDate("to", s)
		if err != nil {
			return f, err
		}
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, helper.NewValidationError("from", "from (%s) is after to (%s)", helper.FormatDate(*f.From), helper.FormatDate(*f.To))
	}
	return f, nil
}

// TerapiaRow is a session joined with the names of what it references.
type TerapiaRow struct {
	ID            uint           `json:"id"`
	Data          datatypes.Date `json:"-"`
	AnagraficaID  uint           `json:"anagrafica_id"`
	DistrettoID   uint           `json:"distretto_id"`
	TrattamentoID uint           `json:"trattamento_id"`
	OperatoreID   *uint          `json:"operatore_id,omitempty"`
	Atleta        *string        `json:"atleta,omitempty"`
	Distretto     *string        `json:"distretto,omitempty"`
	Trattamento   *string        `json:"trattamento,omitempty"`
	Operatore     *string        `json:"operatore,omitempty"`
	Note          *string        `json:"note,omitempty"`
	Sigla         *string        `json:"sigla,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type TerapiaResponse struct {
	TerapiaRow
	DataISO string `json:"data"`
}

func ToTerapiaResponses(rows []TerapiaRow) []TerapiaResponse {
	out := make([]TerapiaResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TerapiaResponse{TerapiaRow: r, DataISO: helper.FormatDate(time.Time(r.Data))})
	}
	return out
}

func ToTerapiaResponse(m *model.TerapiaModel) TerapiaResponse {
	return TerapiaResponse{
		TerapiaRow: TerapiaRow{
			ID:            m.ID,
			AnagraficaID:  m.AnagraficaID,
			DistrettoID:   m.DistrettoID,
			TrattamentoID: m.TrattamentoID,
			OperatoreID:   m.OperatoreID,
			Note:          m.Note,
			Sigla:         m.Sigla,
			CreatedAt:     m.CreatedAt,
		},
		DataISO: helper.FormatDate(time.Time(m.Data)),
	}
}

func cleanText(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

func cleanSigla(p *string) *string {
	if p == nil {
		return nil
	}
	s := reportModel.NormalizeSigla(*p)
	if s == "" {
		return nil
	}
	return &s
}
