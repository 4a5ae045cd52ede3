package helper

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	rulesMu    sync.Mutex
	rules      = map[string]func(string) bool{}
	validators []*validator.Validate
)

// RegisterValidation adds a string tag owned by a feature package, e.g.
// "sigla" from reportistica. It reaches validators built before and after the
// call; register from init so it happens before any request is validated.
// Values are trimmed and an empty value always passes.
func RegisterValidation(tag string, valid func(string) bool) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	rules[tag] = valid
	for _, v := range validators {
		_ = v.RegisterValidation(tag, stringRule(valid))
	}
}

func stringRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || valid(s)
	}
}

// NewValidator returns a validator that reports json field names and knows
// isodate (YYYY-MM-DD) plus every tag added with RegisterValidation.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("isodate", stringRule(func(s string) bool {
		_, err := ParseDate("date", s)
		return err == nil
	}))

	rulesMu.Lock()
	defer rulesMu.Unlock()
	for tag, valid := range rules {
		_ = v.RegisterValidation(tag, stringRule(valid))
	}
	validators = append(validators, v)
	return v
}

// FlexID accepts 12 or "12" in JSON bodies; the old forms post ids as strings.
type FlexID uint

func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NewValidationError("id", "%q is not a valid id", s)
	}
	*f = FlexID(n)
	return nil
}

// ParseID reads a positive path parameter.
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, NewValidationError("id", "must be a positive integer")
	}
	return uint(n), nil
}
