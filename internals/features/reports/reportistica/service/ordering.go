package service

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
)

// A collator is not safe for concurrent use, so each call builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Italian, collate.IgnoreCase, collate.IgnoreDiacritics)
}

// SortAthletes orders by cognome, then nome, then id.
func SortAthletes(rows []anagraficaModel.AnagraficaModel) {
	col := newCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		if c := col.CompareString(rows[i].Cognome, rows[j].Cognome); c != 0 {
			return c < 0
		}
		if c := col.CompareString(rows[i].Nome, rows[j].Nome); c != 0 {
			return c < 0
		}
		return rows[i].ID < rows[j].ID
	})
}

// SortRegions orders by nome, then id.
func SortRegions(rows []distrettoModel.DistrettoModel) {
	col := newCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		if c := col.CompareString(rows[i].Nome, rows[j].Nome); c != 0 {
			return c < 0
		}
		return rows[i].ID < rows[j].ID
	})
}
