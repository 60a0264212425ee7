package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recruit/internal/audit"
	"recruit/internal/moderation/metrics"
	"recruit/internal/moderation/models"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
	"recruit/pkg/platform/sentinel"
)

type SubmissionStore interface {
	Get(ctx context.Context, subID id.SubmissionID) (*submission.Submission, error)
	Transition(ctx context.Context, subID id.SubmissionID, status submission.Status, decidedBy submission.Moderator, decidedAt time.Time) (*submission.Submission, error)
	CountsByStatus(ctx context.Context) (submission.Counts, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

var (
	// ErrSubmissionNotFound means the action referenced an unknown id.
	ErrSubmissionNotFound = dErrors.New(dErrors.CodeNotFound, "submission not found")
	// ErrAlreadyDecided means another decision won. It is a normal outcome
	// of concurrent moderator actions, not a fault.
	ErrAlreadyDecided = dErrors.New(dErrors.CodeConflict, "decision already made")
)

const defaultMaxRetries = 3

// decisionPrecision is the coarsest timestamp resolution among the stores.
// Decision times are truncated to it so a re-read compares equal.
const decisionPrecision = time.Millisecond

// Service applies moderator decisions. Each submission is decided at most
// once; concurrent decisions resolve to a single winner in the store.
type Service struct {
	store          SubmissionStore
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
	maxRetries     uint64
	newBackOff     func() backoff.BackOff
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithMaxRetries bounds how often a transient storage fault is retried.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxRetries = uint64(n)
		}
	}
}

// WithBackOff replaces the retry delay policy.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(s *Service) {
		s.newBackOff = factory
	}
}

func New(store SubmissionStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("submission store is required")
	}
	s := &Service{
		store:      store,
		logger:     slog.Default(),
		tracer:     otel.Tracer("recruit/moderation"),
		maxRetries: defaultMaxRetries,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// Decide applies action to a pending submission.
//
// Errors:
//   - ErrSubmissionNotFound: no submission with that id
//   - ErrAlreadyDecided: the submission left pending before this call
//   - CodeInternal: storage kept failing after the retry budget
//
// now is truncated to millisecond precision before it is stored.
func (s *Service) Decide(ctx context.Context, subID id.SubmissionID, action models.Action, admin submission.Moderator, now time.Time) (*models.Outcome, error) {
	start := time.Now()
	defer s.metrics.ObserveDecision(start)

	ctx, span := s.tracer.Start(ctx, "moderation.Decide", trace.WithAttributes(
		attribute.Int64("submission_id", int64(subID)),
		attribute.String("action", string(action)),
	))
	defer span.End()

	if !action.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown moderation action")
	}
	now = now.UTC().Truncate(decisionPrecision)

	var (
		decided *submission.Submission
		attempt int
	)
	op := func() error {
		attempt++
		if attempt > 1 {
			s.metrics.IncrementRetry()
		}
		if _, err := s.store.Get(ctx, subID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return backoff.Permanent(ErrSubmissionNotFound)
			}
			return err
		}
		sub, err := s.store.Transition(ctx, subID, action.TargetStatus(), admin, now)
		switch {
		case err == nil:
			decided = sub
			return nil
		case errors.Is(err, sentinel.ErrNotFound):
			return backoff.Permanent(ErrSubmissionNotFound)
		case errors.Is(err, sentinel.ErrAlreadyDecided):
			if attempt > 1 {
				// An earlier attempt may have committed before its reply was lost.
				if own := s.ownDecision(ctx, subID, admin, now); own != nil {
					decided = own
					return nil
				}
			}
			return backoff.Permanent(ErrAlreadyDecided)
		case errors.Is(err, sentinel.ErrInvalidState):
			return backoff.Permanent(dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid decision"))
		default:
			return err
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, s.decideFailed(ctx, span, subID, action, admin, err)
	}

	outcome := &models.Outcome{
		Submission: decided,
		Action:     action,
		DecidedBy:  admin,
		DecidedAt:  now,
	}
	s.metrics.IncrementDecision(string(decided.Status))
	s.logger.InfoContext(ctx, "submission decided",
		"submission_id", subID,
		"action", action,
		"moderator_id", admin.ID,
		"attempts", attempt,
	)
	eventType := audit.EventSubmissionRejected
	if outcome.Accepted() {
		eventType = audit.EventSubmissionAccepted
	}
	s.emitAudit(ctx, audit.Event{
		Type:         eventType,
		SubmissionID: subID,
		ApplicantID:  decided.ApplicantID,
		ActorID:      admin.ID,
		Category:     decided.Category,
	})
	return outcome, nil
}

// Stats returns submission counts by status.
func (s *Service) Stats(ctx context.Context) (submission.Counts, error) {
	counts, err := s.store.CountsByStatus(ctx)
	if err != nil {
		return submission.Counts{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count submissions")
	}
	return counts, nil
}

func (s *Service) ownDecision(ctx context.Context, subID id.SubmissionID, admin submission.Moderator, now time.Time) *submission.Submission {
	sub, err := s.store.Get(ctx, subID)
	if err != nil || sub.DecidedBy == nil || sub.DecidedAt == nil {
		return nil
	}
	if sub.DecidedBy.ID != admin.ID || !sub.DecidedAt.Equal(now) {
		return nil
	}
	return sub
}

func (s *Service) decideFailed(ctx context.Context, span trace.Span, subID id.SubmissionID, action models.Action, admin submission.Moderator, err error) error {
	switch {
	case errors.Is(err, ErrSubmissionNotFound):
		s.metrics.IncrementDecision(metrics.OutcomeNotFound)
		s.logger.WarnContext(ctx, "decision for unknown submission",
			"submission_id", subID,
			"moderator_id", admin.ID,
		)
		return err
	case errors.Is(err, ErrAlreadyDecided):
		s.metrics.IncrementDecision(metrics.OutcomeAlreadyDecided)
		s.logger.InfoContext(ctx, "submission already decided",
			"submission_id", subID,
			"action", action,
			"moderator_id", admin.ID,
		)
		s.emitAudit(ctx, audit.Event{
			Type:         audit.EventDecisionConflict,
			SubmissionID: subID,
			ActorID:      admin.ID,
			Detail:       string(action),
		})
		return err
	case dErrors.HasCode(err, dErrors.CodeBadRequest):
		return err
	}

	s.metrics.IncrementDecision(metrics.OutcomeError)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.ErrorContext(ctx, "failed to apply decision",
		"submission_id", subID,
		"action", action,
		"error", err,
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply decision")
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"type", event.Type,
			"error", err,
		)
	}
}
