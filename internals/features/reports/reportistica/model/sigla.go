package model

import (
	"strings"

	helper "fisiocatania_backend/internals/helpers"
)

// "sigla" validates request fields against the codes below.
func init() {
	helper.RegisterValidation("sigla", IsValidSigla)
}

// Status codes, stored verbatim and printed verbatim on every document.
const (
	SiglaDisponibile         = "D"
	SiglaDisponibileGraduale = "D (GRADUALE)"
	SiglaDaValutare          = "DV"
	SiglaIndisponibile       = "I"
)

// Sigle lists the codes in legend order.
var Sigle = []string{
	SiglaDisponibile,
	SiglaDisponibileGraduale,
	SiglaDaValutare,
	SiglaIndisponibile,
}

var sigleLabel = map[string]string{
	SiglaDisponibile:         "Disponibile",
	SiglaDisponibileGraduale: "Disponibile (rientro graduale)",
	SiglaDaValutare:          "Da valutare",
	SiglaIndisponibile:       "Indisponibile",
}

// IsValidSigla reports whether s is one of the closed set of codes.
// The empty string is not a code.
func IsValidSigla(s string) bool {
	_, ok := sigleLabel[s]
	return ok
}

// NormalizeSigla trims the input; codes are case sensitive.
func NormalizeSigla(s string) string {
	return strings.TrimSpace(s)
}

func SiglaLabel(s string) string {
	return sigleLabel[s]
}

// RGB is a plain 8-bit colour.
type RGB struct{ R, G, B uint8 }

// Badge is the background/foreground pair of a code.
type Badge struct {
	Background RGB
	Foreground RGB
}

var palette = map[string]Badge{
	SiglaDisponibile:         {Background: RGB{0xC6, 0xEF, 0xCE}, Foreground: RGB{0x00, 0x61, 0x00}},
	SiglaDisponibileGraduale: {Background: RGB{0xDD, 0xEB, 0xF7}, Foreground: RGB{0x1F, 0x4E, 0x79}},
	SiglaDaValutare:          {Background: RGB{0xFF, 0xEB, 0x9C}, Foreground: RGB{0x9C, 0x57, 0x00}},
	SiglaIndisponibile:       {Background: RGB{0xFF, 0xC7, 0xCE}, Foreground: RGB{0x9C, 0x00, 0x06}},
}

// BadgeFor returns the colours of a code; ok is false for blanks and unknown codes.
func BadgeFor(s string) (Badge, bool) {
	b, ok := palette[s]
	return b, ok
}

// Hex renders the colour as "#RRGGBB".
func (c RGB) Hex() string {
	const digits = "0123456789ABCDEF"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		out[1+i*2] = digits[v>>4]
		out[2+i*2] = digits[v&0x0F]
	}
	return string(out)
}
