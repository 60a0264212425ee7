package models

import (
	"strings"
	"time"

	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
)

// Status is the lifecycle state of a submission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is one of the three known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether s is a decision outcome.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) String() string { return string(s) }

// Moderator identifies the admin who decided a submission. Display is a
// snapshot taken at decision time (handle or full name).
type Moderator struct {
	ID      id.UserID
	Display string
}

// Fields are the applicant-supplied values collected by the conversation.
type Fields struct {
	Name      string
	Age       string
	BirthDate string
	City      string
	Nickname  string
	GameID    string
	Category  string
}

// NewSubmission is the input to Store.Create.
type NewSubmission struct {
	ApplicantID     id.UserID
	ApplicantHandle string
	Fields
	CreatedAt time.Time
}

// Validate checks that every collected field is present.
// Partial rows are never persisted.
func (n NewSubmission) Validate() error {
	if n.ApplicantID.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "applicant id is required")
	}
	required := []struct {
		name  string
		value string
	}{
		{"name", n.Name},
		{"age", n.Age},
		{"birth date", n.BirthDate},
		{"city", n.City},
		{"nickname", n.Nickname},
		{"game id", n.GameID},
		{"category", n.Category},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, f.name+" is required")
		}
	}
	return nil
}

// Submission is one persisted application.
// DecidedBy and DecidedAt are set if and only if Status is terminal.
type Submission struct {
	ID              id.SubmissionID
	ApplicantID     id.UserID
	ApplicantHandle string
	Fields
	Status    Status
	DecidedBy *Moderator
	DecidedAt *time.Time
	CreatedAt time.Time
}

// IsPending reports whether the submission still awaits a decision.
func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}

// Counts summarizes submissions by status.
type Counts struct {
	Total    int `json:"total"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// Add increments the bucket for status and the total.
func (c *Counts) Add(status Status, n int) {
	switch status {
	case StatusAccepted:
		c.Accepted += n
	case StatusRejected:
		c.Rejected += n
	case StatusPending:
		c.Pending += n
	default:
		return
	}
	c.Total += n
}
