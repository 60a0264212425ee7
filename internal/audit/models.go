package audit

import (
	"context"
	"time"

	id "recruit/pkg/domain"
)

// EventType names an audited action.
type EventType string

const (
	EventSubmissionCreated  EventType = "submission_created"
	EventSubmissionAccepted EventType = "submission_accepted"
	EventSubmissionRejected EventType = "submission_rejected"
	// EventDecisionConflict records a moderator action that lost the race
	// to an earlier decision.
	EventDecisionConflict EventType = "decision_conflict"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID           string          `json:"id"`
	Type         EventType       `json:"type"`
	Timestamp    time.Time       `json:"timestamp"`
	SubmissionID id.SubmissionID `json:"submission_id,omitempty"`
	ApplicantID  id.UserID       `json:"applicant_id,omitempty"`
	// ActorID is the moderator for decision events, the applicant otherwise.
	ActorID   id.UserID `json:"actor_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
