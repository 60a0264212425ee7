package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "recruit/pkg/domain-errors"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "accept:12", Accept(12).Encode())
	assert.Equal(t, "reject:7", Reject(7).Encode())
	assert.Equal(t, "category:academy", SelectCategory("academy").Encode())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Token
	}{
		{name: "accept", raw: "accept:12", want: Accept(12)},
		{name: "reject", raw: "reject:3", want: Reject(3)},
		{name: "category", raw: "category:academy", want: SelectCategory("academy")},
		{name: "category with colon in key", raw: "category:a:b", want: SelectCategory("a:b")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.Encode())
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"accept",
		"accept:",
		"accept:abc",
		"accept:-1",
		"reject:0",
		"category:",
		"category:   ",
		"approve:1",
		"accept:1234567890123456789012345678901234567890123456789012345678901234567890",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestIsDecision(t *testing.T) {
	assert.True(t, Accept(1).IsDecision())
	assert.True(t, Reject(1).IsDecision())
	assert.False(t, SelectCategory("x").IsDecision())
}
