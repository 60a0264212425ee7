//go:build go1.18

package domain

import (
	"testing"
)

// FuzzParseSubmissionID checks that parsing never panics on arbitrary input
// and that accepted ids round-trip through String.
func FuzzParseSubmissionID(f *testing.F) {
	f.Add("")
	f.Add("1")
	f.Add("0")
	f.Add("-1")
	f.Add("9223372036854775807")
	f.Add("9223372036854775808")
	f.Add("accept:12")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseSubmissionID(input)
		if err != nil {
			return
		}
		if id <= 0 {
			t.Errorf("accepted non-positive id %d from %q", id, input)
		}
		roundTrip, err := ParseSubmissionID(id.String())
		if err != nil {
			t.Errorf("valid id failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed id value")
		}
	})
}
