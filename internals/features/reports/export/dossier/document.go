package dossier

// ColumnKind selects how a cell is drawn.
type ColumnKind int

const (
	ColText ColumnKind = iota
	ColBadge
)

type Column struct {
	Title string
	Width float64 // mm
	Kind  ColumnKind
}

// DocSection is one day (or one athlete) of the document.
type DocSection struct {
	Label string
	Rows  [][]string // one value per column; "" renders as Placeholder
}

// Document is the data of one dossier, independent of layout.
type Document struct {
	Title    string
	Subtitle string
	Columns  []Column
	Sections []DocSection
	// EmptyText is printed when there are no sections.
	EmptyText string
}

// Placeholder stands in for a missing value or a dangling reference.
const Placeholder = "—"

func cellText(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
