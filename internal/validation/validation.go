// Package validation checks request payloads before any handler logic
// runs.  Each check appends to a Validator; Err returns a *Error listing
// every failed field, or nil.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bounds shared by the catalogue resources.
const (
	NameMinLength  = 1
	NameMaxLength  = 255
	MinReleaseYear = 1970
	MaxReleaseYear = 2100
	DecimalPlaces  = 2
)

// MaxDecimal is the exclusive upper bound of a DECIMAL(10,2) column.
var MaxDecimal = decimal.New(1, 8)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed validation failure handlers turn into HTTP 400.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator accumulates field errors.
type Validator struct {
	fields []FieldError
}

// Add records a failure for field.
func (v *Validator) Add(field, format string, args ...any) {
	v.fields = append(v.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns a *Error when any check failed.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &Error{Fields: v.fields}
}

// Required fails when a required field is absent.
func (v *Validator) Required(field string, present bool) bool {
	if !present {
		v.Add(field, "is required")
	}
	return present
}

// Name trims value in place and checks its length in characters.
func (v *Validator) Name(field string, value *string) {
	if value == nil {
		return
	}
	*value = strings.TrimSpace(*value)
	n := utf8.RuneCountInString(*value)
	switch {
	case n < NameMinLength:
		v.Add(field, "must not be empty")
	case n > NameMaxLength:
		v.Add(field, "must be at most %d characters", NameMaxLength)
	}
}

// UUID normalizes value to canonical lower-case form in place.
func (v *Validator) UUID(field string, value *string) {
	if value == nil {
		return
	}
	id, err := ParseID(*value)
	if err != nil {
		v.Add(field, "must be a UUID")
		return
	}
	*value = id
}

// Decimal rounds value in place to DecimalPlaces and fails when the result
// is negative or does not fit below MaxDecimal.
func (v *Validator) Decimal(field string, value *decimal.Decimal) {
	if value == nil {
		return
	}
	*value = value.Round(DecimalPlaces)
	switch {
	case value.IsNegative():
		v.Add(field, "must be greater than or equal to 0")
	case value.GreaterThanOrEqual(MaxDecimal):
		v.Add(field, "must be less than %s", MaxDecimal)
	}
}

// NonNegativeInt fails when value is below zero.
func (v *Validator) NonNegativeInt(field string, value *int64) {
	if value != nil && *value < 0 {
		v.Add(field, "must be greater than or equal to 0")
	}
}

// IntRange fails when value lies outside [min, max].
func (v *Validator) IntRange(field string, value *int, min, max int) {
	if value != nil && (*value < min || *value > max) {
		v.Add(field, "must be between %d and %d", min, max)
	}
}

// IDs checks a bulk id list: at least one element, each a UUID.  The
// elements are normalized in place.
func (v *Validator) IDs(field string, ids []string) {
	if len(ids) == 0 {
		v.Add(field, "must contain at least 1 item")
		return
	}
	for i := range ids {
		id, err := ParseID(ids[i])
		if err != nil {
			v.Add(fmt.Sprintf("%s[%d]", field, i), "must be a UUID")
			continue
		}
		ids[i] = id
	}
}

// ParseID accepts only the canonical 36 character UUID form and returns it
// lower-cased.
func ParseID(raw string) (string, error) {
	if len(raw) != 36 {
		return "", fmt.Errorf("invalid uuid length %d", len(raw))
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
