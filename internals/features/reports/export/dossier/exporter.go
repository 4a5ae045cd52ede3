package dossier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	helper "fisiocatania_backend/internals/helpers"
)

const ContentType = "application/pdf"

// Exporter builds therapy dossiers as PDF.
type Exporter struct {
	Reader   Reader
	Clinic   string
	LogoPath string
	Geometry Geometry
}

func NewExporter(r Reader, clinic, logoPath string) *Exporter {
	return &Exporter{Reader: r, Clinic: clinic, LogoPath: logoPath, Geometry: DefaultGeometry}
}

var athleteColumns = []Column{
	{Title: "Distretto", Width: 42, Kind: ColText},
	{Title: "Trattamento", Width: 44, Kind: ColText},
	{Title: "Sigla", Width: 30, Kind: ColBadge},
	{Title: "Note", Width: ContentWidth - 42 - 44 - 30, Kind: ColText},
}

var dayColumns = []Column{
	{Title: "Distretto", Width: 40, Kind: ColText},
	{Title: "Trattamento", Width: 40, Kind: ColText},
	{Title: "Sigla", Width: 30, Kind: ColBadge},
	{Title: "Operatore", Width: 32, Kind: ColText},
	{Title: "Note", Width: ContentWidth - 40 - 40 - 30 - 32, Kind: ColText},
}

// ExportAthleteRange renders the sessions of one athlete in [from, to],
// one section per calendar day.
func (e *Exporter) ExportAthleteRange(ctx context.Context, athleteID uint, from, to time.Time) ([]byte, error) {
	if athleteID == 0 {
		return nil, helper.NewValidationError("id", "must be a positive integer")
	}
	from, to = helper.TruncateDay(from), helper.TruncateDay(to)
	if _, err := helper.ExportDays(from, to); err != nil {
		return nil, err
	}

	athlete, err := e.Reader.Athlete(ctx, athleteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, helper.NewStorageError("load athlete", err)
	}
	sessions, err := e.Reader.SessionsForAthlete(ctx, athleteID, from, to)
	if err != nil {
		return nil, helper.NewStorageError("load sessions", err)
	}

	doc := Document{
		Title:     "Fascicolo terapie: " + athlete.Nominativo(),
		Subtitle:  fmt.Sprintf("Periodo %s - %s  |  %s", italianDate(from), italianDate(to), e.Clinic),
		Columns:   athleteColumns,
		EmptyText: "Nessuna terapia registrata nel periodo.",
	}
	var cur *DocSection
	var curDay time.Time
	for _, s := range sessions {
		d := helper.TruncateDay(s.Data)
		if cur == nil || !d.Equal(curDay) {
			doc.Sections = append(doc.Sections, DocSection{Label: dayLabel(d)})
			cur = &doc.Sections[len(doc.Sections)-1]
			curDay = d
		}
		cur.Rows = append(cur.Rows, []string{str(s.Distretto), str(s.Trattamento), str(s.Sigla), str(s.Note)})
	}
	return e.render(doc, to)
}

// ExportDay renders every session of one day, one section per athlete.
func (e *Exporter) ExportDay(ctx context.Context, day time.Time) ([]byte, error) {
	day = helper.TruncateDay(day)
	sessions, err := e.Reader.SessionsOn(ctx, day)
	if err != nil {
		return nil, helper.NewStorageError("load sessions", err)
	}

	doc := Document{
		Title:     "Terapie del giorno: " + dayLabel(day),
		Subtitle:  e.Clinic,
		Columns:   dayColumns,
		EmptyText: "Nessuna terapia registrata in questa giornata.",
	}
	index := map[uint]int{}
	for _, s := range sessions {
		i, ok := index[s.AnagraficaID]
		if !ok {
			doc.Sections = append(doc.Sections, DocSection{Label: cellText(str(s.Atleta))})
			i = len(doc.Sections) - 1
			index[s.AnagraficaID] = i
		}
		doc.Sections[i].Rows = append(doc.Sections[i].Rows,
			[]string{str(s.Distretto), str(s.Trattamento), str(s.Sigla), str(s.Operatore), str(s.Note)})
	}
	col := collate.New(language.Italian, collate.IgnoreCase)
	sort.SliceStable(doc.Sections, func(i, j int) bool {
		return col.CompareString(doc.Sections[i].Label, doc.Sections[j].Label) < 0
	})
	return e.render(doc, day)
}

func (e *Exporter) render(doc Document, stamp time.Time) ([]byte, error) {
	out, _, err := Render(doc, e.Geometry, e.LogoPath, stamp)
	if err != nil {
		return nil, &helper.RenderError{Doc: "pdf", Err: err}
	}
	return out, nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

var weekdays = [...]string{"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato"}

func italianDate(t time.Time) string { return t.Format("02/01/2006") }

func dayLabel(t time.Time) string {
	return weekdays[t.Weekday()] + " " + italianDate(t)
}
