package dto

import (
	"strings"
	"time"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	"fisiocatania_backend/internals/features/reports/reportistica/service"
	helper "fisiocatania_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

// UpsertCellRequest: POST /api/reportistica/upsert
type UpsertCellRequest struct {
	Date         string        `json:"date" validate:"required,isodate"`
	AnagraficaID helper.FlexID `json:"anagrafica_id" validate:"required"`
	DistrettoID  helper.FlexID `json:"distretto_id" validate:"required"`
	Sigla        string        `json:"sigla" validate:"omitempty,sigla"`
}

func (r *UpsertCellRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Sigla = reportModel.NormalizeSigla(r.Sigla)
}

func (r *UpsertCellRequest) ToInput(operatore string) (service.CellInput, error) {
	day, err := helper.ParseDate("date", r.Date)
	if err != nil {
		return service.CellInput{}, err
	}
	return service.CellInput{
		Date:      day,
		AthleteID: uint(r.AnagraficaID),
		RegionID:  uint(r.DistrettoID),
		Sigla:     r.Sigla,
		Operatore: operatore,
	}, nil
}

// CopyForwardRequest: POST /api/reportistica/copia
type CopyForwardRequest struct {
	ToDate string `json:"to_date" validate:"required,isodate"`
}

/* ===================== RESPONSES ===================== */

type AthleteAxis struct {
	ID          uint   `json:"id"`
	Nominativo  string `json:"nominativo"`
	Infortunato bool   `json:"infortunato"`
}

type RegionAxis struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
}

type LegendEntry struct {
	Sigla      string `json:"sigla"`
	Label      string `json:"label"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

type GridResponse struct {
	Date     string            `json:"date"`
	Athletes []AthleteAxis     `json:"athletes"`
	Regions  []RegionAxis      `json:"regions"`
	Cells    map[string]string `json:"cells"`
	Legend   []LegendEntry     `json:"legend"`
	Warning  string            `json:"warning,omitempty"`
}

type CellResponse struct {
	Date         string `json:"date"`
	AnagraficaID uint   `json:"anagrafica_id"`
	DistrettoID  uint   `json:"distretto_id"`
	Sigla        string `json:"sigla"`
	Operatore    string `json:"operatore,omitempty"`
	Cleared      bool   `json:"cleared"`
}

type CopyForwardResponse struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Copied   int64  `json:"copied"`
}

func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(reportModel.Sigle))
	for _, s := range reportModel.Sigle {
		b, _ := reportModel.BadgeFor(s)
		out = append(out, LegendEntry{
			Sigla:      s,
			Label:      reportModel.SiglaLabel(s),
			Background: b.Background.Hex(),
			Foreground: b.Foreground.Hex(),
		})
	}
	return out
}

func ToGridResponse(g *service.DayGrid) GridResponse {
	resp := GridResponse{
		Date:     helper.FormatDate(g.Date),
		Athletes: make([]AthleteAxis, 0, len(g.Axes.Athletes)),
		Regions:  make([]RegionAxis, 0, len(g.Axes.Regions)),
		Cells:    g.Cells,
		Legend:   Legend(),
	}
	for _, a := range g.Axes.Athletes {
		resp.Athletes = append(resp.Athletes, toAthleteAxis(a))
	}
	for _, r := range g.Axes.Regions {
		resp.Regions = append(resp.Regions, toRegionAxis(r))
	}
	if resp.Cells == nil {
		resp.Cells = map[string]string{}
	}
	return resp
}

// EmptyGrid is answered when the store cannot be read.
func EmptyGrid(day time.Time, warning string) GridResponse {
	return GridResponse{
		Date:     helper.FormatDate(day),
		Athletes: []AthleteAxis{},
		Regions:  []RegionAxis{},
		Cells:    map[string]string{},
		Legend:   Legend(),
		Warning:  warning,
	}
}

func ToCellResponse(in service.CellInput, stored *reportModel.ReportSiglaModel) CellResponse {
	out := CellResponse{
		Date:         helper.FormatDate(in.Date),
		AnagraficaID: in.AthleteID,
		DistrettoID:  in.RegionID,
		Cleared:      stored == nil,
	}
	if stored != nil {
		out.Sigla = stored.Sigla
		out.Operatore = stored.Operatore
	}
	return out
}

func toAthleteAxis(a anagraficaModel.AnagraficaModel) AthleteAxis {
	return AthleteAxis{ID: a.ID, Nominativo: a.Nominativo(), Infortunato: a.Infortunato}
}

func toRegionAxis(r distrettoModel.DistrettoModel) RegionAxis {
	return RegionAxis{ID: r.ID, Nome: r.Nome}
}
