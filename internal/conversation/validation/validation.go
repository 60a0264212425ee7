// Package validation checks single form fields. Every rule is total: any
// input yields either a normalized value or an *Error, never a panic.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	strs "recruit/pkg/platform/strings"
)

// Field names a collected form field.
type Field string

const (
	FieldName      Field = "name"
	FieldAge       Field = "age"
	FieldBirthDate Field = "birth_date"
	FieldCity      Field = "city"
	FieldNickname  Field = "nickname"
	FieldGameID    Field = "game_id"
	FieldCategory  Field = "category"
)

// Reasons reported in Error.
const (
	ReasonEmpty         = "empty"
	ReasonLettersOnly   = "letters_only"
	ReasonDigitsOnly    = "digits_only"
	ReasonDateFormat    = "date_format"
	ReasonUnknownChoice = "unknown_choice"
	ReasonUnknownField  = "unknown_field"
)

var (
	namePattern      = regexp.MustCompile(`^[A-Za-zА-Яа-яЇїІіЄєҐґ\s-]+$`)
	birthDatePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// Error reports why a value was rejected.
type Error struct {
	Field  Field
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Choice is one selectable category.
type Choice struct {
	Key   string
	Label string
}

// Rules validates fields against a fixed set of category choices.
type Rules struct {
	choices []Choice
}

func NewRules(choices []Choice) *Rules {
	return &Rules{choices: append([]Choice(nil), choices...)}
}

// Choices returns the configured categories in presentation order.
func (r *Rules) Choices() []Choice {
	return append([]Choice(nil), r.choices...)
}

// Validate checks raw against the rule for field and returns the value to
// store. For categories the canonical key is returned.
func (r *Rules) Validate(field Field, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	switch field {
	case FieldName:
		if value == "" {
			return "", &Error{Field: field, Reason: ReasonEmpty}
		}
		if !namePattern.MatchString(value) {
			return "", &Error{Field: field, Reason: ReasonLettersOnly}
		}
	case FieldAge:
		if value == "" {
			return "", &Error{Field: field, Reason: ReasonEmpty}
		}
		for _, c := range value {
			if !unicode.IsDigit(c) {
				return "", &Error{Field: field, Reason: ReasonDigitsOnly}
			}
		}
	case FieldBirthDate:
		if !birthDatePattern.MatchString(value) {
			return "", &Error{Field: field, Reason: ReasonDateFormat}
		}
	case FieldCity, FieldNickname, FieldGameID:
		if value == "" {
			return "", &Error{Field: field, Reason: ReasonEmpty}
		}
	case FieldCategory:
		return r.matchChoice(value)
	default:
		return "", &Error{Field: field, Reason: ReasonUnknownField}
	}
	return value, nil
}

func (r *Rules) matchChoice(value string) (string, error) {
	want := strs.NormalizeKey(value)
	if want != "" {
		for _, c := range r.choices {
			if strs.NormalizeKey(c.Key) == want || strs.NormalizeKey(c.Label) == want {
				return c.Key, nil
			}
		}
	}
	return "", &Error{Field: FieldCategory, Reason: ReasonUnknownChoice}
}
