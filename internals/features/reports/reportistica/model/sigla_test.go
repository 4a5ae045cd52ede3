package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	helper "fisiocatania_backend/internals/helpers"
)

func TestIsValidSigla(t *testing.T) {
	for _, s := range Sigle {
		assert.True(t, IsValidSigla(s), s)
	}
	for _, s := range []string{"", "d", "D(GRADUALE)", "X", " I"} {
		assert.False(t, IsValidSigla(s), s)
	}
}

func TestEveryCodeHasBadgeAndLabel(t *testing.T) {
	for _, s := range Sigle {
		_, ok := BadgeFor(s)
		assert.True(t, ok, s)
		assert.NotEmpty(t, SiglaLabel(s))
	}
	_, ok := BadgeFor("")
	assert.False(t, ok)
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#C6EFCE", RGB{0xC6, 0xEF, 0xCE}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
}

func TestSiglaValidationTag(t *testing.T) {
	type edit struct {
		Sigla string `json:"sigla" validate:"omitempty,sigla"`
	}
	v := helper.NewValidator()
	for _, s := range append([]string{"", " D "}, Sigle...) {
		assert.NoError(t, v.Struct(edit{Sigla: s}), s)
	}
	for _, s := range []string{"X", "d", "D(GRADUALE)"} {
		assert.Error(t, v.Struct(edit{Sigla: s}), s)
	}
}
