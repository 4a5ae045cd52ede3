package dossier

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"

	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
)

const (
	pageW      = 210.0
	marginX    = 12.0
	fontFamily = "Helvetica"
	bodySize   = 9.0
	lineH      = 4.2
	cellPad    = 1.5
)

// DefaultGeometry is A4 portrait with the header used by every dossier.
var DefaultGeometry = Geometry{
	PageHeight:   297,
	MarginTop:    12,
	MarginBottom: 15,
	PageHeader:   36,
	SectionHead:  9,
	TableHeader:  7,
}

// ContentWidth is the printable width columns must add up to.
const ContentWidth = pageW - 2*marginX

type measuredRow struct {
	lines  [][]string // per column
	height float64
}

type renderer struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	geo  Geometry
	doc  Document
	logo string
	rows [][]measuredRow

	headers      int
	tableHeaders int
}

// Stats reports what Render emitted.
type Stats struct {
	Pages        int
	PageHeaders  int
	TableHeaders int
}

// Render lays out and draws doc. stamp fixes the PDF dates so equal inputs
// produce equal bytes.
func Render(doc Document, geo Geometry, logoPath string, stamp time.Time) ([]byte, Stats, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, geo.MarginTop, marginX)
	pdf.SetAutoPageBreak(false, geo.MarginBottom)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("fisiocatania", true)
	pdf.AliasNbPages("")

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), geo: geo, doc: doc}
	r.loadLogo(logoPath)

	r.measure()
	sections := make([]Section, len(doc.Sections))
	for i, s := range doc.Sections {
		sections[i].Label = s.Label
		for _, m := range r.rows[i] {
			sections[i].Rows = append(sections[i].Rows, m.height)
		}
	}
	pages := Paginate(geo, sections)

	pdf.SetHeaderFuncMode(r.pageHeader, true)
	pdf.SetFooterFunc(r.pageFooter)

	for _, p := range pages {
		pdf.AddPage()
		if len(doc.Sections) == 0 {
			r.emptyNotice()
		}
		for _, it := range p.Items {
			switch it.Kind {
			case PlaceSectionHead:
				r.sectionHead(it.Y, doc.Sections[it.Section].Label)
			case PlaceTableHeader:
				r.tableHeader(it.Y)
			case PlaceRow:
				r.row(it.Y, r.rows[it.Section][it.Row])
			}
		}
	}

	stats := Stats{Pages: pdf.PageCount(), PageHeaders: r.headers, TableHeaders: r.tableHeaders}
	if err := pdf.Error(); err != nil {
		return nil, stats, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

func (r *renderer) loadLogo(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("pdf logo not readable, skipping")
		return
	}
	r.pdf.RegisterImageOptions(path, fpdf.ImageOptions{ReadDpi: true})
	if err := r.pdf.Error(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("pdf logo not usable, skipping")
		r.pdf.ClearError()
		return
	}
	r.logo = path
}

/* ===== measurement ===== */

func (r *renderer) maxLines() int {
	n := int(math.Floor((r.geo.MaxRowHeight() - 2*cellPad) / lineH))
	if n < 1 {
		n = 1
	}
	return n
}

// measure wraps every cell with the body font and records row heights.
// Cells longer than a page are cut and end with "...".
func (r *renderer) measure() {
	r.pdf.SetFont(fontFamily, "", bodySize)
	limit := r.maxLines()
	r.rows = make([][]measuredRow, len(r.doc.Sections))
	for si, sec := range r.doc.Sections {
		for _, cells := range sec.Rows {
			m := measuredRow{lines: make([][]string, len(r.doc.Columns))}
			most := 1
			for ci, col := range r.doc.Columns {
				txt := ""
				if ci < len(cells) {
					txt = cells[ci]
				}
				var lines []string
				if col.Kind == ColBadge {
					lines = []string{txt}
				} else {
					for _, l := range r.pdf.SplitLines([]byte(r.tr(cellText(txt))), col.Width-2*cellPad) {
						lines = append(lines, string(l))
					}
					if len(lines) == 0 {
						lines = []string{r.tr(Placeholder)}
					}
					if len(lines) > limit {
						lines = lines[:limit]
						lines[limit-1] = r.ellipsize(lines[limit-1], col.Width-2*cellPad)
					}
				}
				m.lines[ci] = lines
				if len(lines) > most {
					most = len(lines)
				}
			}
			m.height = float64(most)*lineH + 2*cellPad
			r.rows[si] = append(r.rows[si], m)
		}
	}
}

const ellipsis = "..."

// ellipsize shortens line until it fits width with the ellipsis appended.
// Translated text is single-byte, so cutting bytes cuts glyphs.
func (r *renderer) ellipsize(line string, width float64) string {
	for line != "" && r.pdf.GetStringWidth(line+ellipsis) > width {
		line = line[:len(line)-1]
	}
	return strings.TrimRight(line, " ") + ellipsis
}

/* ===== drawing ===== */

func (r *renderer) pageHeader() {
	r.headers++
	pdf := r.pdf
	top := r.geo.MarginTop
	x := marginX
	if r.logo != "" {
		pdf.ImageOptions(r.logo, marginX, top, 0, 16, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		x = marginX + 20
	}

	pdf.SetTextColor(0x1F, 0x38, 0x64)
	pdf.SetFont(fontFamily, "B", 14)
	pdf.SetXY(x, top+1)
	pdf.CellFormat(pageW-marginX-x, 7, r.tr(r.doc.Title), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0x40, 0x40, 0x40)
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetXY(x, top+9)
	pdf.CellFormat(pageW-marginX-x, 5, r.tr(r.doc.Subtitle), "", 0, "L", false, 0, "")

	r.legend(top + 20)

	pdf.SetDrawColor(0xBF, 0xBF, 0xBF)
	pdf.SetLineWidth(0.3)
	y := top + r.geo.PageHeader - 3
	pdf.Line(marginX, y, pageW-marginX, y)
}

// legend prints every code with its colours and meaning on one line.
func (r *renderer) legend(y float64) {
	pdf := r.pdf
	pdf.SetFont(fontFamily, "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginX, y)
	pdf.CellFormat(16, 5, "Legenda:", "", 0, "L", false, 0, "")
	x := marginX + 16
	for _, code := range reportModel.Sigle {
		w := r.badge(x, y, code, 8)
		pdf.SetFont(fontFamily, "", 8)
		pdf.SetTextColor(0, 0, 0)
		label := r.tr(reportModel.SiglaLabel(code))
		lw := pdf.GetStringWidth(label) + 2
		pdf.SetXY(x+w+1, y)
		pdf.CellFormat(lw, 5, label, "", 0, "L", false, 0, "")
		x += w + lw + 4
	}
}

// badge draws a filled code pill at (x, y) and returns its width.
func (r *renderer) badge(x, y float64, code string, size float64) float64 {
	pdf := r.pdf
	pdf.SetFont(fontFamily, "B", size)
	b, ok := reportModel.BadgeFor(code)
	txt := r.tr(code)
	if !ok {
		txt = r.tr(Placeholder)
	}
	w := pdf.GetStringWidth(txt) + 4
	if ok {
		pdf.SetFillColor(int(b.Background.R), int(b.Background.G), int(b.Background.B))
		pdf.SetTextColor(int(b.Foreground.R), int(b.Foreground.G), int(b.Foreground.B))
	} else {
		pdf.SetFillColor(0xFF, 0xFF, 0xFF)
		pdf.SetTextColor(0x80, 0x80, 0x80)
	}
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 5, txt, "", 0, "C", ok, 0, "")
	return w
}

func (r *renderer) pageFooter() {
	pdf := r.pdf
	pdf.SetFont(fontFamily, "I", 8)
	pdf.SetTextColor(0x80, 0x80, 0x80)
	pdf.SetXY(marginX, r.geo.PageHeight-10)
	pdf.CellFormat(ContentWidth, 5, fmt.Sprintf("Pagina %d di {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
}

func (r *renderer) emptyNotice() {
	pdf := r.pdf
	pdf.SetFont(fontFamily, "I", 10)
	pdf.SetTextColor(0x60, 0x60, 0x60)
	pdf.SetXY(marginX, r.geo.BodyTop()+2)
	pdf.CellFormat(ContentWidth, 6, r.tr(r.doc.EmptyText), "", 0, "L", false, 0, "")
}

func (r *renderer) sectionHead(y float64, label string) {
	pdf := r.pdf
	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetTextColor(0x1F, 0x38, 0x64)
	pdf.SetXY(marginX, y+2)
	pdf.CellFormat(ContentWidth, r.geo.SectionHead-2, r.tr(label), "", 0, "L", false, 0, "")
}

func (r *renderer) tableHeader(y float64) {
	r.tableHeaders++
	pdf := r.pdf
	pdf.SetFont(fontFamily, "B", bodySize)
	pdf.SetFillColor(0x1F, 0x38, 0x64)
	pdf.SetTextColor(0xFF, 0xFF, 0xFF)
	pdf.SetDrawColor(0xBF, 0xBF, 0xBF)
	x := marginX
	for _, col := range r.doc.Columns {
		pdf.SetXY(x, y)
		pdf.CellFormat(col.Width, r.geo.TableHeader, r.tr(col.Title), "1", 0, "L", true, 0, "")
		x += col.Width
	}
}

func (r *renderer) row(y float64, m measuredRow) {
	pdf := r.pdf
	pdf.SetDrawColor(0xBF, 0xBF, 0xBF)
	pdf.SetLineWidth(0.2)
	x := marginX
	for ci, col := range r.doc.Columns {
		pdf.Rect(x, y, col.Width, m.height, "D")
		if col.Kind == ColBadge {
			code := ""
			if len(m.lines[ci]) > 0 {
				code = m.lines[ci][0]
			}
			r.badge(x+cellPad, y+cellPad-0.4, code, bodySize-1)
		} else {
			pdf.SetFont(fontFamily, "", bodySize)
			pdf.SetTextColor(0, 0, 0)
			for li, line := range m.lines[ci] {
				pdf.SetXY(x+cellPad, y+cellPad+float64(li)*lineH)
				pdf.CellFormat(col.Width-2*cellPad, lineH, line, "", 0, "L", false, 0, "")
			}
		}
		x += col.Width
	}
}
