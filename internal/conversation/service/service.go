package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recruit/internal/audit"
	"recruit/internal/content"
	"recruit/internal/conversation/metrics"
	"recruit/internal/conversation/models"
	"recruit/internal/conversation/validation"
	"recruit/internal/messaging"
	"recruit/internal/messaging/actions"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
	"recruit/pkg/platform/sentinel"
	"recruit/pkg/requestcontext"
)

type SessionStore interface {
	Get(ctx context.Context, applicant id.UserID) (*models.Session, error)
	Save(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, applicant id.UserID) error
}

type SubmissionCreator interface {
	Create(ctx context.Context, n submission.NewSubmission) (id.SubmissionID, error)
}

type ModeratorNotifier interface {
	NotifyModerators(ctx context.Context, sub *submission.Submission) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// ErrSessionMissing is returned when input arrives without an active
// conversation. The applicant has already been told to start one.
var ErrSessionMissing = dErrors.New(dErrors.CodeNotFound, "start a conversation first")

// Result describes where a conversation stands after one input.
type Result struct {
	Step models.Step
	// Invalid is set when the input failed validation and the step was
	// re-prompted.
	Invalid bool
	// Stale is set when a category selection arrived outside the category step.
	Stale bool
	// SubmissionID is set once the form has been stored.
	SubmissionID id.SubmissionID
}

// Service drives applicants through the form, one field per message.
type Service struct {
	sessions       SessionStore
	submissions    SubmissionCreator
	gateway        messaging.Gateway
	notifier       ModeratorNotifier
	rules          *validation.Rules
	texts          content.Texts
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
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

// New constructs a Service.
func New(
	sessions SessionStore,
	submissions SubmissionCreator,
	gateway messaging.Gateway,
	notifier ModeratorNotifier,
	rules *validation.Rules,
	texts content.Texts,
	opts ...Option,
) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if submissions == nil {
		return nil, errors.New("submission store is required")
	}
	if gateway == nil {
		return nil, errors.New("messaging gateway is required")
	}
	if notifier == nil {
		return nil, errors.New("moderator notifier is required")
	}
	if rules == nil {
		return nil, errors.New("validation rules are required")
	}
	s := &Service{
		sessions:    sessions,
		submissions: submissions,
		gateway:     gateway,
		notifier:    notifier,
		rules:       rules,
		texts:       texts,
		logger:      slog.Default(),
		tracer:      otel.Tracer("recruit/conversation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins a new form for the applicant, discarding any form in progress.
func (s *Service) Start(ctx context.Context, applicant messaging.Sender) error {
	ctx, span := s.tracer.Start(ctx, "conversation.Start",
		trace.WithAttributes(attribute.Int64("applicant_id", int64(applicant.UserID))))
	defer span.End()

	sess, err := models.NewSession(applicant.UserID, applicant.Handle, requestcontext.Now(ctx))
	if err != nil {
		return err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.metrics.IncrementStoreFailure()
		s.reply(ctx, applicant.UserID, s.texts.StorageRetry)
		return s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session"))
	}
	s.metrics.IncrementStarted()
	s.logger.InfoContext(ctx, "conversation started",
		"applicant_id", applicant.UserID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.prompt(ctx, applicant.UserID, sess.Step, s.promptText(sess.Step))
	return nil
}

// Submit feeds one text input to the current step.
func (s *Service) Submit(ctx context.Context, applicant messaging.Sender, raw string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.Submit",
		trace.WithAttributes(attribute.Int64("applicant_id", int64(applicant.UserID))))
	defer span.End()

	sess, err := s.load(ctx, applicant.UserID)
	if err != nil {
		return Result{}, s.fail(span, err)
	}
	res, err := s.advance(ctx, sess, raw)
	if err != nil {
		return res, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("step", res.Step.String()))
	return res, nil
}

// SelectCategory feeds a category button press through the same path as
// text input. Selections that arrive outside the category step are stale.
func (s *Service) SelectCategory(ctx context.Context, applicant messaging.Sender, key string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.SelectCategory",
		trace.WithAttributes(attribute.Int64("applicant_id", int64(applicant.UserID))))
	defer span.End()

	sess, err := s.load(ctx, applicant.UserID)
	if err != nil {
		return Result{}, s.fail(span, err)
	}
	if sess.Step != models.StepCategory {
		s.reply(ctx, applicant.UserID, s.texts.StaleSelection)
		s.prompt(ctx, applicant.UserID, sess.Step, s.promptText(sess.Step))
		return Result{Step: sess.Step, Stale: true}, nil
	}
	res, err := s.advance(ctx, sess, key)
	if err != nil {
		return res, s.fail(span, err)
	}
	return res, nil
}

// Cancel drops the applicant's form in progress.
func (s *Service) Cancel(ctx context.Context, applicant messaging.Sender) error {
	sess, err := s.sessions.Get(ctx, applicant.UserID)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.reply(ctx, applicant.UserID, s.texts.NothingToCancel)
		return nil
	}
	if err != nil {
		s.reply(ctx, applicant.UserID, s.texts.StorageRetry)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if sess.IsComplete() {
		_ = s.sessions.Delete(ctx, applicant.UserID)
		s.reply(ctx, applicant.UserID, s.texts.NothingToCancel)
		return nil
	}
	if err := s.sessions.Delete(ctx, applicant.UserID); err != nil {
		s.metrics.IncrementStoreFailure()
		s.reply(ctx, applicant.UserID, s.texts.StorageRetry)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete session")
	}
	s.metrics.IncrementCancelled()
	s.reply(ctx, applicant.UserID, s.texts.Cancelled)
	return nil
}

func (s *Service) load(ctx context.Context, applicant id.UserID) (*models.Session, error) {
	sess, err := s.sessions.Get(ctx, applicant)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.reply(ctx, applicant, s.texts.SessionMissing)
		return nil, ErrSessionMissing
	}
	if err != nil {
		s.reply(ctx, applicant, s.texts.StorageRetry)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if sess.IsComplete() {
		// Left behind by retire; the form is already stored.
		if err := s.sessions.Delete(ctx, applicant); err != nil {
			s.logger.WarnContext(ctx, "failed to delete completed session",
				"applicant_id", applicant,
				"error", err,
			)
		}
		s.reply(ctx, applicant, s.texts.SessionMissing)
		return nil, ErrSessionMissing
	}
	return sess, nil
}

// retire removes a stored form's session. When the delete fails the session
// is overwritten at StepComplete so it can never be submitted twice.
func (s *Service) retire(ctx context.Context, done *models.Session, subID id.SubmissionID) {
	err := s.sessions.Delete(ctx, done.ApplicantID)
	if err == nil {
		return
	}
	s.metrics.IncrementStoreFailure()
	s.logger.ErrorContext(ctx, "failed to delete completed session",
		"applicant_id", done.ApplicantID,
		"submission_id", subID,
		"error", err,
	)
	if err := s.sessions.Save(ctx, done); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark session complete",
			"applicant_id", done.ApplicantID,
			"submission_id", subID,
			"error", err,
		)
	}
}

// advance validates raw for the session's current step. The stored session
// only changes when the value is accepted and the write succeeds.
func (s *Service) advance(ctx context.Context, sess *models.Session, raw string) (Result, error) {
	field := sess.Step.Field()
	value, err := s.rules.Validate(field, raw)
	if err != nil {
		var verr *validation.Error
		if !errors.As(err, &verr) {
			return Result{Step: sess.Step}, dErrors.Wrap(err, dErrors.CodeInternal, "validation failed")
		}
		s.metrics.IncrementValidationFailure(string(field))
		s.logger.InfoContext(ctx, "form input rejected",
			"applicant_id", sess.ApplicantID,
			"field", field,
			"reason", verr.Reason,
		)
		s.prompt(ctx, sess.ApplicantID, sess.Step, s.invalidText(sess.Step))
		return Result{Step: sess.Step, Invalid: true}, nil
	}

	now := requestcontext.Now(ctx)
	next := sess.Clone()
	if err := next.Record(value, now); err != nil {
		return Result{Step: sess.Step}, err
	}
	s.metrics.IncrementFieldAccepted(string(field))

	if !next.IsComplete() {
		if err := s.sessions.Save(ctx, next); err != nil {
			s.metrics.IncrementStoreFailure()
			s.reply(ctx, sess.ApplicantID, s.texts.StorageRetry)
			return Result{Step: sess.Step}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
		}
		s.prompt(ctx, next.ApplicantID, next.Step, s.promptText(next.Step))
		return Result{Step: next.Step}, nil
	}
	return s.complete(ctx, sess, next, now)
}

// complete stores the finished form. On a storage fault the saved session is
// left at the last step so the applicant can simply retry.
func (s *Service) complete(ctx context.Context, sess, done *models.Session, now time.Time) (Result, error) {
	input, err := done.ToNewSubmission(now)
	if err != nil {
		return Result{Step: sess.Step}, err
	}
	subID, err := s.submissions.Create(ctx, input)
	if err != nil {
		s.metrics.IncrementStoreFailure()
		s.logger.ErrorContext(ctx, "failed to store submission",
			"applicant_id", sess.ApplicantID,
			"error", err,
		)
		s.reply(ctx, sess.ApplicantID, s.texts.StorageRetry)
		s.prompt(ctx, sess.ApplicantID, sess.Step, s.promptText(sess.Step))
		return Result{Step: sess.Step}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store submission")
	}

	s.retire(ctx, done, subID)
	s.metrics.IncrementCompleted()
	s.logger.InfoContext(ctx, "submission created",
		"applicant_id", sess.ApplicantID,
		"submission_id", subID,
		"category", input.Category,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.emitAudit(ctx, audit.Event{
		Type:         audit.EventSubmissionCreated,
		SubmissionID: subID,
		ApplicantID:  sess.ApplicantID,
		ActorID:      sess.ApplicantID,
		Category:     input.Category,
	})
	s.reply(ctx, sess.ApplicantID, s.texts.Submitted)

	sub := &submission.Submission{
		ID:              subID,
		ApplicantID:     input.ApplicantID,
		ApplicantHandle: input.ApplicantHandle,
		Fields:          input.Fields,
		Status:          submission.StatusPending,
		CreatedAt:       input.CreatedAt,
	}
	if err := s.notifier.NotifyModerators(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "failed to notify moderators",
			"submission_id", subID,
			"error", err,
		)
	}
	return Result{Step: models.StepComplete, SubmissionID: subID}, nil
}

func (s *Service) promptText(step models.Step) string {
	return s.texts.Prompts[string(step.Field())]
}

func (s *Service) invalidText(step models.Step) string {
	if text := s.texts.Invalid[string(step.Field())]; text != "" {
		return text
	}
	return s.promptText(step)
}

// prompt asks for the field of step. The category step carries one button
// per configured category.
func (s *Service) prompt(ctx context.Context, applicant id.UserID, step models.Step, text string) {
	if step != models.StepCategory {
		s.reply(ctx, applicant, text)
		return
	}
	choices := s.rules.Choices()
	options := make([]messaging.Option, 0, len(choices))
	for _, c := range choices {
		label := c.Label
		if label == "" {
			label = c.Key
		}
		options = append(options, messaging.Option{Label: label, Token: actions.SelectCategory(c.Key)})
	}
	if _, err := s.gateway.SendTextWithOptions(ctx, applicant.PrivateChat(), text, options); err != nil {
		s.logDeliveryFailure(ctx, applicant, err)
	}
}

func (s *Service) reply(ctx context.Context, applicant id.UserID, text string) {
	if text == "" {
		return
	}
	if _, err := s.gateway.SendText(ctx, applicant.PrivateChat(), text); err != nil {
		s.logDeliveryFailure(ctx, applicant, err)
	}
}

func (s *Service) logDeliveryFailure(ctx context.Context, applicant id.UserID, err error) {
	s.logger.WarnContext(ctx, "failed to deliver message to applicant",
		"applicant_id", applicant,
		"error", err,
	)
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

func (s *Service) fail(span trace.Span, err error) error {
	if err != nil && !errors.Is(err, ErrSessionMissing) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
