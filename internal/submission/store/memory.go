package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"recruit/internal/submission/models"
	id "recruit/pkg/domain"
	"recruit/pkg/platform/sentinel"
	"recruit/pkg/requestcontext"
)

// InMemoryStore keeps submissions in process memory.
// The map lock only guards membership; each row carries its own lock so
// transitions on different ids never contend.
type InMemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[id.SubmissionID]*row
}

type row struct {
	mu  sync.Mutex
	sub models.Submission
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{rows: make(map[id.SubmissionID]*row)}
}

func (s *InMemoryStore) Create(ctx context.Context, n models.NewSubmission) (id.SubmissionID, error) {
	if err := n.Validate(); err != nil {
		return 0, fmt.Errorf("create submission: %w", err)
	}
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = requestcontext.Now(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	subID := id.SubmissionID(s.nextID)
	s.rows[subID] = &row{sub: models.Submission{
		ID:              subID,
		ApplicantID:     n.ApplicantID,
		ApplicantHandle: n.ApplicantHandle,
		Fields:          n.Fields,
		Status:          models.StatusPending,
		CreatedAt:       createdAt,
	}}
	return subID, nil
}

func (s *InMemoryStore) Get(_ context.Context, subID id.SubmissionID) (*models.Submission, error) {
	r, ok := s.lookup(subID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSubmission(r.sub), nil
}

// Transition moves a pending submission to a terminal status.
func (s *InMemoryStore) Transition(_ context.Context, subID id.SubmissionID, status models.Status, decidedBy models.Moderator, decidedAt time.Time) (*models.Submission, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("transition to %q: %w", status, sentinel.ErrInvalidState)
	}
	r, ok := s.lookup(subID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.sub.IsPending() {
		return nil, sentinel.ErrAlreadyDecided
	}
	at := decidedAt
	by := decidedBy
	r.sub.Status = status
	r.sub.DecidedBy = &by
	r.sub.DecidedAt = &at
	return cloneSubmission(r.sub), nil
}

func (s *InMemoryStore) CountsByStatus(_ context.Context) (models.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts models.Counts
	for _, r := range s.rows {
		r.mu.Lock()
		counts.Add(r.sub.Status, 1)
		r.mu.Unlock()
	}
	return counts, nil
}

func (s *InMemoryStore) lookup(subID id.SubmissionID) (*row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[subID]
	return r, ok
}

func cloneSubmission(sub models.Submission) *models.Submission {
	out := sub
	if sub.DecidedBy != nil {
		by := *sub.DecidedBy
		out.DecidedBy = &by
	}
	if sub.DecidedAt != nil {
		at := *sub.DecidedAt
		out.DecidedAt = &at
	}
	return &out
}
