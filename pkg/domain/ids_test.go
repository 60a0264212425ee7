package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "recruit/pkg/domain-errors"
)

// TestParseSubmissionID_Invariants validates the parsing invariant:
// "submission ids are positive base-10 integers"
func TestParseSubmissionID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSubmissionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		_, err := ParseSubmissionID("42abc")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects zero and negative", func(t *testing.T) {
		for _, in := range []string{"0", "-7"} {
			_, err := ParseSubmissionID(in)
			require.Error(t, err, in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("accepts positive id with surrounding spaces", func(t *testing.T) {
		id, err := ParseSubmissionID(" 42 ")
		require.NoError(t, err)
		assert.Equal(t, SubmissionID(42), id)
		assert.Equal(t, "42", id.String())
	})
}

func TestParseChatID(t *testing.T) {
	t.Run("accepts negative group ids", func(t *testing.T) {
		id, err := ParseChatID("-1001234567890")
		require.NoError(t, err)
		assert.Equal(t, ChatID(-1001234567890), id)
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParseChatID("0")
		require.Error(t, err)
	})
}

func TestPrivateChat(t *testing.T) {
	assert.Equal(t, ChatID(555), UserID(555).PrivateChat())
}
