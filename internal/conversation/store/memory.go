package store

import (
	"context"
	"sync"
	"time"

	"recruit/internal/conversation/models"
	id "recruit/pkg/domain"
	"recruit/pkg/platform/sentinel"
	"recruit/pkg/requestcontext"
)

// InMemoryStore keeps sessions in process memory. Sessions idle for longer
// than ttl are treated as missing. They are dropped on access, and Save
// sweeps the whole map at most once per ttl.
type InMemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	sessions  map[id.UserID]*models.Session
	lastSweep time.Time
}

// NewInMemory constructs an in-memory session store. A zero ttl keeps
// sessions until they are deleted.
func NewInMemory(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{ttl: ttl, sessions: make(map[id.UserID]*models.Session)}
}

func (s *InMemoryStore) Get(ctx context.Context, applicant id.UserID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[applicant]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if s.expired(sess, requestcontext.Now(ctx)) {
		delete(s.sessions, applicant)
		return nil, sentinel.ErrNotFound
	}
	return sess.Clone(), nil
}

// Save creates or replaces the applicant's session.
func (s *InMemoryStore) Save(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(requestcontext.Now(ctx))
	s.sessions[sess.ApplicantID] = sess.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, applicant id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, applicant)
	return nil
}

// sweep must be called with mu held.
func (s *InMemoryStore) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for applicant, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, applicant)
		}
	}
}

func (s *InMemoryStore) expired(sess *models.Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.UpdatedAt) > s.ttl
}
