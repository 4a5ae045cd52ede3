package sheet

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	"fisiocatania_backend/internals/features/reports/reportistica/repository"
	"fisiocatania_backend/internals/features/reports/reportistica/service"
	helper "fisiocatania_backend/internals/helpers"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter renders the status grid of a date range as a workbook with one
// sheet per day.
type Exporter struct {
	Store repository.GridStore
}

func NewExporter(store repository.GridStore) *Exporter {
	return &Exporter{Store: store}
}

type styles struct {
	header int
	first  int
	codes  map[string]int
}

// ExportRange returns the xlsx bytes for [from, to].
func (e *Exporter) ExportRange(ctx context.Context, from, to time.Time) ([]byte, error) {
	from, to = helper.TruncateDay(from), helper.TruncateDay(to)
	days, err := helper.ExportDays(from, to)
	if err != nil {
		return nil, err
	}

	athletes, err := e.Store.ListAthletes(ctx)
	if err != nil {
		return nil, helper.NewStorageError("list athletes", err)
	}
	regions, err := e.Store.ListRegions(ctx)
	if err != nil {
		return nil, helper.NewStorageError("list regions", err)
	}
	service.SortAthletes(athletes)
	service.SortRegions(regions)

	cells, err := e.Store.CellsBetween(ctx, from, to)
	if err != nil {
		return nil, helper.NewStorageError("list cells", err)
	}
	byDay := map[string]map[string]string{}
	for _, c := range cells {
		if c.Sigla == "" {
			continue
		}
		d := helper.FormatDate(c.Day())
		if byDay[d] == nil {
			byDay[d] = map[string]string{}
		}
		byDay[d][service.GridKey(c.AnagraficaID, c.DistrettoID)] = c.Sigla
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, &helper.RenderError{Doc: "xlsx", Err: err}
	}

	for i, d := range days {
		name := helper.FormatDate(d)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, &helper.RenderError{Doc: "xlsx", Err: err}
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, &helper.RenderError{Doc: "xlsx", Err: err}
		}
		if err := writeDay(f, name, st, athletes, regions, byDay[name]); err != nil {
			return nil, &helper.RenderError{Doc: "xlsx", Err: fmt.Errorf("sheet %s: %w", name, err)}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &helper.RenderError{Doc: "xlsx", Err: err}
	}
	return buf.Bytes(), nil
}

func writeDay(f *excelize.File, sheet string, st styles, athletes []anagraficaRow, regions []distrettoRow, cells map[string]string) error {
	if err := f.SetCellStr(sheet, "A1", "Atleta"); err != nil {
		return err
	}
	for j, r := range regions {
		ref, _ := excelize.CoordinatesToCellName(j+2, 1)
		if err := f.SetCellStr(sheet, ref, r.Nome); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(regions)+1, 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol, st.header); err != nil {
		return err
	}

	for i, a := range athletes {
		row := i + 2
		ref, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStr(sheet, ref, a.Nominativo()); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, ref, ref, st.first); err != nil {
			return err
		}
		for j, r := range regions {
			code, ok := cells[service.GridKey(a.ID, r.ID)]
			if !ok {
				continue
			}
			ref, _ := excelize.CoordinatesToCellName(j+2, row)
			if err := f.SetCellStr(sheet, ref, code); err != nil {
				return err
			}
			if id, ok := st.codes[code]; ok {
				if err := f.SetCellStyle(sheet, ref, ref, id); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	if len(regions) > 0 {
		endCol, _ := excelize.ColumnNumberToName(len(regions) + 1)
		if err := f.SetColWidth(sheet, "B", endCol, 16); err != nil {
			return err
		}
	}
	if err := f.SetRowHeight(sheet, 1, 30); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F3864"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return styles{}, err
	}
	first, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return styles{}, err
	}

	st := styles{header: header, first: first, codes: map[string]int{}}
	for _, code := range reportModel.Sigle {
		b, _ := reportModel.BadgeFor(code)
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: b.Foreground.Hex()[1:]},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{b.Background.Hex()[1:]}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    border,
		})
		if err != nil {
			return styles{}, err
		}
		st.codes[code] = id
	}
	return st, nil
}
