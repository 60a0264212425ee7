package models

import (
	"time"

	"recruit/internal/messaging/actions"
	submission "recruit/internal/submission/models"
	dErrors "recruit/pkg/domain-errors"
)

// Action is a moderator decision.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

func (a Action) IsValid() bool {
	return a == ActionAccept || a == ActionReject
}

// TargetStatus is the submission status the action produces.
func (a Action) TargetStatus() submission.Status {
	if a == ActionAccept {
		return submission.StatusAccepted
	}
	return submission.StatusRejected
}

// ActionFromToken maps a decision token to an Action.
func ActionFromToken(tok actions.Token) (Action, error) {
	switch tok.Kind {
	case actions.KindAccept:
		return ActionAccept, nil
	case actions.KindReject:
		return ActionReject, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "token is not a decision")
	}
}

// Outcome is everything the notification step needs after a decision,
// so no second read of the submission is required.
type Outcome struct {
	Submission *submission.Submission
	Action     Action
	DecidedBy  submission.Moderator
	DecidedAt  time.Time
}

// Accepted reports whether the decision admitted the applicant.
func (o *Outcome) Accepted() bool {
	return o.Action == ActionAccept
}
