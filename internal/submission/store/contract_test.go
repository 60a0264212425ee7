package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/suite"

	"recruit/internal/submission/models"
	id "recruit/pkg/domain"
	"recruit/pkg/platform/sentinel"
)

type submissionStore interface {
	Create(ctx context.Context, n models.NewSubmission) (id.SubmissionID, error)
	Get(ctx context.Context, subID id.SubmissionID) (*models.Submission, error)
	Transition(ctx context.Context, subID id.SubmissionID, status models.Status, decidedBy models.Moderator, decidedAt time.Time) (*models.Submission, error)
	CountsByStatus(ctx context.Context) (models.Counts, error)
}

// storeContractSuite holds behaviour every submission store must share.
// Concrete suites embed it and assign store in SetupTest.
type storeContractSuite struct {
	suite.Suite
	store submissionStore
}

var fixedCreatedAt = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestSubmission(applicant id.UserID) models.NewSubmission {
	return models.NewSubmission{
		ApplicantID:     applicant,
		ApplicantHandle: "ann_lee",
		Fields: models.Fields{
			Name:      "Ann Lee",
			Age:       "20",
			BirthDate: "01.01.2000",
			City:      "Kyiv",
			Nickname:  "annL",
			GameID:    "G123",
			Category:  "Academy",
		},
		CreatedAt: fixedCreatedAt,
	}
}

func (s *storeContractSuite) TestCreateThenGet() {
	ctx := context.Background()

	s.Run("returns pending submission with exact fields", func() {
		input := newTestSubmission(101)
		subID, err := s.store.Create(ctx, input)
		s.Require().NoError(err)
		s.False(subID.IsZero())

		got, err := s.store.Get(ctx, subID)
		s.Require().NoError(err)
		s.Equal(subID, got.ID)
		s.Equal(input.ApplicantID, got.ApplicantID)
		s.Equal(input.ApplicantHandle, got.ApplicantHandle)
		s.Equal(input.Fields, got.Fields)
		s.Equal(models.StatusPending, got.Status)
		s.Nil(got.DecidedBy)
		s.Nil(got.DecidedAt)
		s.WithinDuration(fixedCreatedAt, got.CreatedAt, time.Millisecond)
	})

	s.Run("ids are monotonic", func() {
		first, err := s.store.Create(ctx, newTestSubmission(102))
		s.Require().NoError(err)
		second, err := s.store.Create(ctx, newTestSubmission(103))
		s.Require().NoError(err)
		s.Greater(int64(second), int64(first))
	})

	s.Run("incomplete submission is rejected", func() {
		input := newTestSubmission(104)
		input.GameID = "  "
		_, err := s.store.Create(ctx, input)
		s.Require().Error(err)
	})

	s.Run("unknown id returns not found", func() {
		_, err := s.store.Get(ctx, 999999)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *storeContractSuite) TestTransition() {
	ctx := context.Background()
	moderator := models.Moderator{ID: 7, Display: "@mod"}
	decidedAt := time.Date(2024, 6, 16, 9, 30, 0, 0, time.UTC)

	s.Run("pending submission is decided once", func() {
		subID, err := s.store.Create(ctx, newTestSubmission(201))
		s.Require().NoError(err)

		got, err := s.store.Transition(ctx, subID, models.StatusAccepted, moderator, decidedAt)
		s.Require().NoError(err)
		s.Equal(models.StatusAccepted, got.Status)
		s.Require().NotNil(got.DecidedBy)
		s.Equal(moderator, *got.DecidedBy)
		s.Require().NotNil(got.DecidedAt)
		s.WithinDuration(decidedAt, *got.DecidedAt, time.Millisecond)
		s.Equal("G123", got.GameID)
	})

	s.Run("terminal submission returns already decided and keeps decision", func() {
		subID, err := s.store.Create(ctx, newTestSubmission(202))
		s.Require().NoError(err)
		_, err = s.store.Transition(ctx, subID, models.StatusRejected, moderator, decidedAt)
		s.Require().NoError(err)

		other := models.Moderator{ID: 8, Display: "@other"}
		_, err = s.store.Transition(ctx, subID, models.StatusAccepted, other, decidedAt.Add(time.Hour))
		s.ErrorIs(err, sentinel.ErrAlreadyDecided)

		got, err := s.store.Get(ctx, subID)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, got.Status)
		s.Equal(moderator, *got.DecidedBy)
		s.WithinDuration(decidedAt, *got.DecidedAt, time.Millisecond)
	})

	s.Run("unknown id returns not found", func() {
		_, err := s.store.Transition(ctx, 999999, models.StatusAccepted, moderator, decidedAt)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("pending is not a valid target", func() {
		subID, err := s.store.Create(ctx, newTestSubmission(203))
		s.Require().NoError(err)
		_, err = s.store.Transition(ctx, subID, models.StatusPending, moderator, decidedAt)
		s.ErrorIs(err, sentinel.ErrInvalidState)
	})
}

// TestConcurrentTransition verifies that racing decisions on one submission
// produce exactly one winner whose action is persisted.
func (s *storeContractSuite) TestConcurrentTransition() {
	ctx := context.Background()
	subID, err := s.store.Create(ctx, newTestSubmission(301))
	s.Require().NoError(err)

	const goroutines = 20
	var wg sync.WaitGroup
	var successCount atomic.Int32
	var decidedCount atomic.Int32
	var winner atomic.Value

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := models.StatusAccepted
			if i%2 == 1 {
				status = models.StatusRejected
			}
			mod := models.Moderator{ID: id.UserID(1000 + i), Display: "admin"}
			_, err := s.store.Transition(ctx, subID, status, mod, time.Now())
			switch {
			case err == nil:
				successCount.Add(1)
				winner.Store(status)
			case errors.Is(err, sentinel.ErrAlreadyDecided):
				decidedCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one transition should succeed")
	s.Equal(int32(goroutines-1), decidedCount.Load(), "all others should see already decided")

	got, err := s.store.Get(ctx, subID)
	s.Require().NoError(err)
	s.Equal(winner.Load(), got.Status)
}

func (s *storeContractSuite) TestCountsByStatus() {
	ctx := context.Background()
	moderator := models.Moderator{ID: 7, Display: "@mod"}

	before, err := s.store.CountsByStatus(ctx)
	s.Require().NoError(err)

	ids := make([]id.SubmissionID, 0, 4)
	for i := 0; i < 4; i++ {
		subID, err := s.store.Create(ctx, newTestSubmission(id.UserID(400+i)))
		s.Require().NoError(err)
		ids = append(ids, subID)
	}
	_, err = s.store.Transition(ctx, ids[0], models.StatusAccepted, moderator, time.Now())
	s.Require().NoError(err)
	_, err = s.store.Transition(ctx, ids[1], models.StatusRejected, moderator, time.Now())
	s.Require().NoError(err)

	after, err := s.store.CountsByStatus(ctx)
	s.Require().NoError(err)
	s.Equal(before.Total+4, after.Total)
	s.Equal(before.Accepted+1, after.Accepted)
	s.Equal(before.Rejected+1, after.Rejected)
	s.Equal(before.Pending+2, after.Pending)
}
