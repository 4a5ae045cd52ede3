package dossier

// Geometry is the fixed page metrics the planner works with (mm).
type Geometry struct {
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	PageHeader   float64 // logo, title and legend
	SectionHead  float64 // the day (or athlete) label
	TableHeader  float64
}

// BodyTop is where content starts below the page header.
func (g Geometry) BodyTop() float64 { return g.MarginTop + g.PageHeader }

// BodyBottom is the lowest y content may reach.
func (g Geometry) BodyBottom() float64 { return g.PageHeight - g.MarginBottom }

// MaxRowHeight is the tallest row that fits on a fresh page under a table header.
func (g Geometry) MaxRowHeight() float64 {
	return g.BodyBottom() - g.BodyTop() - g.TableHeader
}

// Section is one labelled group of rows, measured.
type Section struct {
	Label string
	Rows  []float64 // heights
}

type PlacementKind int

const (
	PlaceSectionHead PlacementKind = iota
	PlaceTableHeader
	PlaceRow
)

// Placement positions one block on a page.
type Placement struct {
	Kind    PlacementKind
	Section int
	Row     int // valid for PlaceRow
	Y       float64
	Height  float64
}

// Page is everything drawn on one page below the page header.
type Page struct {
	Items []Placement
}

// Paginate lays sections out top to bottom. A section starts on a new page
// when its label, the table header and its first row do not fit; a row that
// does not fit moves to a new page preceded by a repeated table header.
// Every placement ends at or above BodyBottom provided rows were clamped to
// MaxRowHeight. The result always has at least one page.
func Paginate(g Geometry, sections []Section) []Page {
	pages := []Page{{}}
	y := g.BodyTop()
	bottom := g.BodyBottom()

	place := func(kind PlacementKind, sec, row int, h float64) {
		p := &pages[len(pages)-1]
		p.Items = append(p.Items, Placement{Kind: kind, Section: sec, Row: row, Y: y, Height: h})
		y += h
	}
	newPage := func() {
		pages = append(pages, Page{})
		y = g.BodyTop()
	}
	pageEmpty := func() bool { return len(pages[len(pages)-1].Items) == 0 }

	for si, sec := range sections {
		need := g.SectionHead + g.TableHeader
		if len(sec.Rows) > 0 {
			need += sec.Rows[0]
		}
		if y+need > bottom && !pageEmpty() {
			newPage()
		}
		place(PlaceSectionHead, si, -1, g.SectionHead)
		place(PlaceTableHeader, si, -1, g.TableHeader)

		for ri, h := range sec.Rows {
			if y+h > bottom {
				newPage()
				place(PlaceTableHeader, si, -1, g.TableHeader)
			}
			place(PlaceRow, si, ri, h)
		}
	}
	return pages
}
