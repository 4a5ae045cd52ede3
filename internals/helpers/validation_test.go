package helper

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Sigla string `json:"sigla" validate:"omitempty,codice"`
	Data  string `json:"data" validate:"required,isodate"`
	Rif   FlexID `json:"rif" validate:"required"`
}

func TestValidatorCustomTags(t *testing.T) {
	// built before the feature tag exists
	v := NewValidator()
	RegisterValidation("codice", func(s string) bool { return s == "D (GRADUALE)" })

	cases := []struct {
		name   string
		in     sample
		failed map[string][]string
	}{
		{"ok", sample{Sigla: "D (GRADUALE)", Data: "2024-02-29", Rif: 3}, nil},
		{"empty sigla allowed", sample{Data: "2024-05-01", Rif: 1}, nil},
		{"unknown sigla", sample{Sigla: "X", Data: "2024-05-01", Rif: 1}, map[string][]string{"sigla": {"codice"}}},
		{"bad date", sample{Data: "2023-02-29", Rif: 1}, map[string][]string{"data": {"isodate"}}},
		{"missing id", sample{Data: "2024-05-01"}, map[string][]string{"rif": {"required"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, val := range []*validator.Validate{v, NewValidator()} {
				err := val.Struct(tc.in)
				if tc.failed == nil {
					assert.NoError(t, err)
					continue
				}
				var vs validator.ValidationErrors
				require.True(t, errors.As(err, &vs))
				assert.Equal(t, tc.failed, FieldErrors(vs))
			}
		})
	}
}

func TestFlexIDAcceptsNumbersAndStrings(t *testing.T) {
	var body struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
		C FlexID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12,"b":" 7 ","c":null}`), &body))
	assert.EqualValues(t, 12, body.A)
	assert.EqualValues(t, 7, body.B)
	assert.Zero(t, body.C)

	err := json.Unmarshal([]byte(`{"a":"dodici"}`), &body)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParseID(raw)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), raw)
	}
}
