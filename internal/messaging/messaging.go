// Package messaging is the boundary between the bot core and a chat transport.
//
// Core packages send through Gateway and receive Event values; only
// internal/messaging/telegram knows the concrete transport.
package messaging

//go:generate mockgen -source=messaging.go -destination=mocks/mocks.go -package=mocks Gateway

import (
	"context"

	"recruit/internal/messaging/actions"
	id "recruit/pkg/domain"
)

// MessageRef addresses a sent message so it can be edited later.
type MessageRef struct {
	ChatID    id.ChatID
	MessageID int
}

// Option is a selectable button rendered under a message.
type Option struct {
	Label string
	Token actions.Token
}

// AttachmentKind tells the transport how to present an asset.
type AttachmentKind string

const (
	AttachmentPhoto    AttachmentKind = "photo"
	AttachmentDocument AttachmentKind = "document"
)

// AssetRef names a static asset by key. The transport resolves the key
// through its asset source.
type AssetRef struct {
	Key     string
	Kind    AttachmentKind
	Caption string
}

// Gateway delivers outbound messages.
type Gateway interface {
	SendText(ctx context.Context, dest id.ChatID, text string) (MessageRef, error)
	SendTextWithOptions(ctx context.Context, dest id.ChatID, text string, options []Option) (MessageRef, error)
	SendAttachment(ctx context.Context, dest id.ChatID, asset AssetRef) error
	EditMessage(ctx context.Context, msg MessageRef, newText string) error
	AnswerAction(ctx context.Context, actionRef string, text string, highlighted bool) error
}

// Sender identifies the user behind an inbound event.
type Sender struct {
	UserID id.UserID
	// Handle is the public username without "@", empty when the user has none.
	Handle string
	// DisplayName is the first and last name as shown by the transport.
	DisplayName string
}

// Event is one inbound update, already decoded by the transport adapter.
type Event interface {
	isEvent()
	// Chat returns the chat the event originated in.
	Chat() id.ChatID
}

// CommandEvent is a slash command such as /form.
type CommandEvent struct {
	ChatID  id.ChatID
	From    Sender
	Command string
	Args    string
}

// TextEvent is a plain text message.
type TextEvent struct {
	ChatID id.ChatID
	From   Sender
	Text   string
}

// ActionEvent is a button press. Token is already parsed; RawToken keeps the
// transport payload for logging when parsing failed.
type ActionEvent struct {
	ActionRef string
	ChatID    id.ChatID
	Message   MessageRef
	From      Sender
	Token     actions.Token
	TokenErr  error
	RawToken  string
}

func (CommandEvent) isEvent() {}
func (TextEvent) isEvent()    {}
func (ActionEvent) isEvent()  {}

func (e CommandEvent) Chat() id.ChatID { return e.ChatID }
func (e TextEvent) Chat() id.ChatID    { return e.ChatID }
func (e ActionEvent) Chat() id.ChatID  { return e.ChatID }

// Handler consumes inbound events.
type Handler interface {
	Handle(ctx context.Context, event Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event)

func (f HandlerFunc) Handle(ctx context.Context, event Event) { f(ctx, event) }

// DisplayHandle renders a sender for moderator-facing text: "@handle" when
// available, otherwise the display name, otherwise fallback.
func (s Sender) DisplayHandle(fallback string) string {
	switch {
	case s.Handle != "":
		return "@" + s.Handle
	case s.DisplayName != "":
		return s.DisplayName
	default:
		return fallback
	}
}
