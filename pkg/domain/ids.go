package domain

import (
	"strconv"
	"strings"

	dErrors "recruit/pkg/domain-errors"
)

// SubmissionID identifies a stored application. Assigned by the store,
// strictly positive.
type SubmissionID int64

// UserID is the chat platform's numeric user id.
type UserID int64

// ChatID addresses a chat: a private chat with an applicant or the moderation group.
type ChatID int64

func (id SubmissionID) IsZero() bool   { return id == 0 }
func (id SubmissionID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id UserID) IsZero() bool   { return id == 0 }
func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ChatID) String() string { return strconv.FormatInt(int64(id), 10) }

// PrivateChat returns the private chat address for a user. On the supported
// transport a private chat id equals the user id.
func (id UserID) PrivateChat() ChatID { return ChatID(id) }

// ParseSubmissionID parses a submission id from untrusted input (action tokens,
// URL params).
//
// Errors: CodeInvalidInput when the value is empty, not a base-10 integer, or
// not positive.
func ParseSubmissionID(s string) (SubmissionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "submission id cannot be empty")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "submission id must be an integer")
	}
	if n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "submission id must be positive")
	}
	return SubmissionID(n), nil
}

// ParseChatID parses a chat id from configuration. Group chats are negative,
// so any non-zero value is accepted.
func ParseChatID(s string) (ChatID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "chat id must be an integer")
	}
	if n == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "chat id cannot be zero")
	}
	return ChatID(n), nil
}
