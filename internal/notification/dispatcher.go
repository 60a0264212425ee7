// Package notification composes the messages sent around a submission:
// the moderator summary on creation and the applicant follow-up on decision.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"recruit/internal/content"
	"recruit/internal/messaging"
	"recruit/internal/messaging/actions"
	moderation "recruit/internal/moderation/models"
	"recruit/internal/notification/metrics"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
	strs "recruit/pkg/platform/strings"
)

// Dispatcher sends notifications through a messaging gateway. Delivery
// failures are logged and the remaining steps still run.
type Dispatcher struct {
	gateway        messaging.Gateway
	moderationChat id.ChatID
	content        *content.Content
	logger         *slog.Logger
	metrics        *metrics.Metrics
	location       *time.Location
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithLocation sets the time zone used for decision timestamps.
func WithLocation(loc *time.Location) Option {
	return func(d *Dispatcher) {
		if loc != nil {
			d.location = loc
		}
	}
}

func New(gateway messaging.Gateway, moderationChat id.ChatID, c *content.Content, opts ...Option) (*Dispatcher, error) {
	if gateway == nil {
		return nil, errors.New("messaging gateway is required")
	}
	if moderationChat == 0 {
		return nil, errors.New("moderation chat is required")
	}
	if c == nil {
		return nil, errors.New("content is required")
	}
	d := &Dispatcher{
		gateway:        gateway,
		moderationChat: moderationChat,
		content:        c,
		logger:         slog.Default(),
		location:       time.UTC,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NotifyModerators posts the submission summary with accept and reject
// options to the moderation chat.
func (d *Dispatcher) NotifyModerators(ctx context.Context, sub *submission.Submission) error {
	texts := d.content.Texts
	options := []messaging.Option{
		{Label: texts.AcceptButton, Token: actions.Accept(sub.ID)},
		{Label: texts.RejectButton, Token: actions.Reject(sub.ID)},
	}
	_, err := d.gateway.SendTextWithOptions(ctx, d.moderationChat, d.Summary(sub), options)
	if err != nil {
		d.failed(ctx, metrics.StepModeratorSummary, sub.ID, err)
		return fmt.Errorf("send moderator summary: %w", err)
	}
	d.metrics.IncrementDelivered(metrics.StepModeratorSummary)
	return nil
}

// NotifyApplicant tells the applicant about the decision and amends the
// moderator message. Accepted applicants also get the category attachments
// and chat links. Every step runs even if an earlier one failed; the
// returned error joins all step failures.
func (d *Dispatcher) NotifyApplicant(ctx context.Context, outcome *moderation.Outcome, moderatorMessage messaging.MessageRef) error {
	sub := outcome.Submission
	dest := sub.ApplicantID.PrivateChat()
	texts := d.content.Texts

	var errs []error
	if outcome.Accepted() {
		errs = append(errs, d.sendText(ctx, metrics.StepVerdict, sub.ID, dest, texts.Accepted))
		category, _ := d.content.Category(sub.Category)
		for _, a := range category.Attachments {
			asset := messaging.AssetRef{Key: a.Key, Kind: messaging.AttachmentKind(a.Kind), Caption: a.Caption}
			if err := d.gateway.SendAttachment(ctx, dest, asset); err != nil {
				d.failed(ctx, metrics.StepAttachment, sub.ID, err, "asset", a.Key)
				errs = append(errs, fmt.Errorf("send attachment %s: %w", a.Key, err))
				continue
			}
			d.metrics.IncrementDelivered(metrics.StepAttachment)
		}
		errs = append(errs, d.sendText(ctx, metrics.StepInstructions, sub.ID, dest, d.Instructions(sub)))
	} else {
		errs = append(errs, d.sendText(ctx, metrics.StepVerdict, sub.ID, dest, texts.Rejected))
	}

	if moderatorMessage.MessageID != 0 {
		if err := d.gateway.EditMessage(ctx, moderatorMessage, d.Amended(outcome)); err != nil {
			d.failed(ctx, metrics.StepAmendment, sub.ID, err)
			errs = append(errs, fmt.Errorf("amend moderator message: %w", err))
		} else {
			d.metrics.IncrementDelivered(metrics.StepAmendment)
		}
	}
	return errors.Join(errs...)
}

// Summary renders the moderator-facing description of a submission.
func (d *Dispatcher) Summary(sub *submission.Submission) string {
	category := sub.Category
	if c, ok := d.content.Category(sub.Category); ok && c.Label != "" {
		category = c.Label
	}
	handle := d.content.Texts.NoHandle
	if sub.ApplicantHandle != "" {
		handle = "@" + sub.ApplicantHandle
	}
	return strs.Fill(d.content.Texts.ModeratorSummary, map[string]string{
		"name":       sub.Name,
		"age":        sub.Age,
		"birth_date": sub.BirthDate,
		"city":       sub.City,
		"nickname":   sub.Nickname,
		"game_id":    sub.GameID,
		"category":   category,
		"handle":     handle,
	})
}

// Instructions renders the chat links for the applicant's category, echoing
// the nickname and game id back for a final check.
func (d *Dispatcher) Instructions(sub *submission.Submission) string {
	links := d.content.LinksFor(sub.Category)
	return strs.Fill(d.content.Texts.Instructions, map[string]string{
		"category_link": links.Category,
		"common_link":   links.Common,
		"nickname":      sub.Nickname,
		"game_id":       sub.GameID,
	})
}

// Amended is the moderator message after a decision: the summary followed by
// the decision, the moderator and the time.
func (d *Dispatcher) Amended(outcome *moderation.Outcome) string {
	texts := d.content.Texts
	decision := texts.DecisionRejected
	if outcome.Accepted() {
		decision = texts.DecisionAccepted
	}
	footer := strs.Fill(texts.DecisionFooter, map[string]string{
		"decision":  decision,
		"moderator": strs.FirstNonEmpty(outcome.DecidedBy.Display, outcome.DecidedBy.ID.String()),
		"time":      outcome.DecidedAt.In(d.location).Format(texts.TimeLayout),
	})
	return d.Summary(outcome.Submission) + "\n\n" + footer
}

func (d *Dispatcher) sendText(ctx context.Context, step string, subID id.SubmissionID, dest id.ChatID, text string) error {
	if _, err := d.gateway.SendText(ctx, dest, text); err != nil {
		d.failed(ctx, step, subID, err)
		return fmt.Errorf("send %s: %w", step, err)
	}
	d.metrics.IncrementDelivered(step)
	return nil
}

func (d *Dispatcher) failed(ctx context.Context, step string, subID id.SubmissionID, err error, attrs ...any) {
	d.metrics.IncrementFailed(step)
	args := append([]any{"step", step, "submission_id", subID, "error", err}, attrs...)
	d.logger.ErrorContext(ctx, "notification delivery failed", args...)
}
