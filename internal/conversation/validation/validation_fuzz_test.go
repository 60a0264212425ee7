//go:build go1.18

package validation

import (
	"errors"
	"testing"
)

func FuzzValidate(f *testing.F) {
	rules := NewRules([]Choice{{Key: "Academy", Label: "Academy"}})
	fields := []Field{FieldName, FieldAge, FieldBirthDate, FieldCity, FieldNickname, FieldGameID, FieldCategory}

	for _, seed := range []string{"Ann Lee", "20", "01.01.2000", "", " ", "\x00", "Ї-ї", "academy", "٣"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		for _, field := range fields {
			value, err := rules.Validate(field, raw)
			if err != nil {
				var verr *Error
				if !errors.As(err, &verr) {
					t.Fatalf("%s: unexpected error type %T", field, err)
				}
				continue
			}
			if value == "" {
				t.Fatalf("%s: accepted empty value for %q", field, raw)
			}
		}
	})
}
