package models

import (
	"time"

	"recruit/internal/conversation/validation"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
)

// Step is a position in the form sequence. StepComplete is virtual: a
// session never rests there.
type Step int

const (
	StepName Step = iota + 1
	StepAge
	StepBirthDate
	StepCity
	StepNickname
	StepGameID
	StepCategory
	StepComplete
)

// sequence maps each collecting step to the field it fills, in order.
var sequence = []validation.Field{
	StepName:      validation.FieldName,
	StepAge:       validation.FieldAge,
	StepBirthDate: validation.FieldBirthDate,
	StepCity:      validation.FieldCity,
	StepNickname:  validation.FieldNickname,
	StepGameID:    validation.FieldGameID,
	StepCategory:  validation.FieldCategory,
}

// FirstStep is where every conversation begins.
const FirstStep = StepName

// IsCollecting reports whether the step prompts for a field.
func (s Step) IsCollecting() bool {
	return s >= StepName && s <= StepCategory
}

// Field returns the field collected at s, or "" for non-collecting steps.
func (s Step) Field() validation.Field {
	if !s.IsCollecting() {
		return ""
	}
	return sequence[s]
}

// Next returns the step after s.
func (s Step) Next() Step {
	if s >= StepComplete {
		return StepComplete
	}
	return s + 1
}

func (s Step) String() string {
	if s == StepComplete {
		return "complete"
	}
	if f := s.Field(); f != "" {
		return string(f)
	}
	return "unknown"
}

// Session is one applicant's in-progress form.
// Draft holds a value for every step before Step and none for Step or later.
type Session struct {
	ApplicantID     id.UserID                   `json:"applicant_id"`
	ApplicantHandle string                      `json:"applicant_handle,omitempty"`
	Step            Step                        `json:"step"`
	Draft           map[validation.Field]string `json:"draft"`
	StartedAt       time.Time                   `json:"started_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// NewSession starts an empty session at the first step.
func NewSession(applicant id.UserID, handle string, now time.Time) (*Session, error) {
	if applicant.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "applicant id is required")
	}
	return &Session{
		ApplicantID:     applicant,
		ApplicantHandle: handle,
		Step:            FirstStep,
		Draft:           make(map[validation.Field]string, len(sequence)),
		StartedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Record stores a validated value for the current step and advances.
func (s *Session) Record(value string, now time.Time) error {
	if !s.Step.IsCollecting() {
		return dErrors.New(dErrors.CodeInvariantViolation, "session is not collecting")
	}
	if s.Draft == nil {
		s.Draft = make(map[validation.Field]string, len(sequence))
	}
	s.Draft[s.Step.Field()] = value
	s.Step = s.Step.Next()
	s.UpdatedAt = now
	return nil
}

// IsComplete reports whether every field has been collected.
func (s *Session) IsComplete() bool {
	return s.Step == StepComplete
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	out := *s
	out.Draft = make(map[validation.Field]string, len(s.Draft))
	for k, v := range s.Draft {
		out.Draft[k] = v
	}
	return &out
}

// CheckPrefix verifies the draft prefix invariant.
func (s *Session) CheckPrefix() error {
	if !s.Step.IsCollecting() && s.Step != StepComplete {
		return dErrors.New(dErrors.CodeInvariantViolation, "session step out of range")
	}
	for step := FirstStep; step <= StepCategory; step++ {
		_, has := s.Draft[step.Field()]
		if step < s.Step && !has {
			return dErrors.New(dErrors.CodeInvariantViolation, "missing value for "+step.String())
		}
		if step >= s.Step && has {
			return dErrors.New(dErrors.CodeInvariantViolation, "unexpected value for "+step.String())
		}
	}
	return nil
}

// ToNewSubmission converts a complete session into a store input.
func (s *Session) ToNewSubmission(now time.Time) (submission.NewSubmission, error) {
	if !s.IsComplete() {
		return submission.NewSubmission{}, dErrors.New(dErrors.CodeInvariantViolation, "session is not complete")
	}
	return submission.NewSubmission{
		ApplicantID:     s.ApplicantID,
		ApplicantHandle: s.ApplicantHandle,
		Fields: submission.Fields{
			Name:      s.Draft[validation.FieldName],
			Age:       s.Draft[validation.FieldAge],
			BirthDate: s.Draft[validation.FieldBirthDate],
			City:      s.Draft[validation.FieldCity],
			Nickname:  s.Draft[validation.FieldNickname],
			GameID:    s.Draft[validation.FieldGameID],
			Category:  s.Draft[validation.FieldCategory],
		},
		CreatedAt: now,
	}, nil
}
