// Package actions defines the payloads attached to selectable buttons.
//
// Tokens travel through the chat transport as short strings
// ("accept:12", "reject:12", "category:academy"). They are parsed into a
// Token at the transport boundary and never handled as raw text internally.
package actions

import (
	"fmt"
	"strings"

	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
)

// Kind identifies the operation a token requests.
type Kind string

const (
	KindAccept         Kind = "accept"
	KindReject         Kind = "reject"
	KindSelectCategory Kind = "category"
)

// MaxEncodedLen is the callback payload limit of the chat transport, in bytes.
const MaxEncodedLen = 64

// Token is a parsed action payload. SubmissionID is set for Accept and
// Reject; Category is set for SelectCategory.
type Token struct {
	Kind         Kind
	SubmissionID id.SubmissionID
	Category     string
}

func Accept(subID id.SubmissionID) Token {
	return Token{Kind: KindAccept, SubmissionID: subID}
}

func Reject(subID id.SubmissionID) Token {
	return Token{Kind: KindReject, SubmissionID: subID}
}

func SelectCategory(key string) Token {
	return Token{Kind: KindSelectCategory, Category: key}
}

// IsDecision reports whether the token is an Accept or Reject.
func (t Token) IsDecision() bool {
	return t.Kind == KindAccept || t.Kind == KindReject
}

// Encode renders the token for the transport.
func (t Token) Encode() string {
	switch t.Kind {
	case KindAccept, KindReject:
		return string(t.Kind) + ":" + t.SubmissionID.String()
	default:
		return string(t.Kind) + ":" + t.Category
	}
}

func (t Token) String() string { return t.Encode() }

// Parse decodes a transport payload.
//
// Errors: CodeInvalidInput for unknown kinds, malformed ids, empty category
// keys, or payloads longer than the transport allows.
func Parse(raw string) (Token, error) {
	if len(raw) > MaxEncodedLen {
		return Token{}, dErrors.New(dErrors.CodeInvalidInput, "action token too long")
	}
	kind, value, ok := strings.Cut(raw, ":")
	if !ok {
		return Token{}, dErrors.New(dErrors.CodeInvalidInput, "action token must be kind:value")
	}
	switch Kind(kind) {
	case KindAccept, KindReject:
		subID, err := id.ParseSubmissionID(value)
		if err != nil {
			return Token{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("invalid %s token", kind))
		}
		return Token{Kind: Kind(kind), SubmissionID: subID}, nil
	case KindSelectCategory:
		key := strings.TrimSpace(value)
		if key == "" {
			return Token{}, dErrors.New(dErrors.CodeInvalidInput, "category token requires a key")
		}
		return SelectCategory(key), nil
	default:
		return Token{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown action kind %q", kind))
	}
}
