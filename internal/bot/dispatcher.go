// Package bot routes inbound chat events to the conversation and moderation
// services.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"

	"recruit/internal/content"
	convservice "recruit/internal/conversation/service"
	"recruit/internal/messaging"
	"recruit/internal/messaging/actions"
	moderation "recruit/internal/moderation/models"
	modservice "recruit/internal/moderation/service"
	"recruit/internal/platform/metrics"
	submission "recruit/internal/submission/models"
	id "recruit/pkg/domain"
	dErrors "recruit/pkg/domain-errors"
	strs "recruit/pkg/platform/strings"
	"recruit/pkg/requestcontext"
)

// Conversation is the applicant-facing form flow.
type Conversation interface {
	Start(ctx context.Context, applicant messaging.Sender) error
	Submit(ctx context.Context, applicant messaging.Sender, raw string) (convservice.Result, error)
	SelectCategory(ctx context.Context, applicant messaging.Sender, key string) (convservice.Result, error)
	Cancel(ctx context.Context, applicant messaging.Sender) error
}

// Moderation applies decisions and reports counts.
type Moderation interface {
	Decide(ctx context.Context, subID id.SubmissionID, action moderation.Action, admin submission.Moderator, now time.Time) (*moderation.Outcome, error)
	Stats(ctx context.Context) (submission.Counts, error)
}

// ApplicantNotifier delivers the decision follow-up.
type ApplicantNotifier interface {
	NotifyApplicant(ctx context.Context, outcome *moderation.Outcome, moderatorMessage messaging.MessageRef) error
}

// Event kind labels for the updates counter.
const (
	kindCommand = "command"
	kindText    = "text"
	kindAction  = "action"
)

// Dispatcher implements messaging.Handler. Events from one chat are handled
// in order; decision actions run concurrently and rely on the store to pick
// a single winner.
type Dispatcher struct {
	conversation   Conversation
	moderation     Moderation
	notifier       ApplicantNotifier
	gateway        messaging.Gateway
	texts          content.Texts
	moderationChat id.ChatID
	logger         *slog.Logger
	metrics        *metrics.Metrics
	timeout        time.Duration
	lanes          *lanes
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

// WithHandlerTimeout bounds the handling of one event.
func WithHandlerTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func New(
	conversation Conversation,
	mod Moderation,
	notifier ApplicantNotifier,
	gateway messaging.Gateway,
	texts content.Texts,
	moderationChat id.ChatID,
	opts ...Option,
) (*Dispatcher, error) {
	if conversation == nil {
		return nil, errors.New("conversation service is required")
	}
	if mod == nil {
		return nil, errors.New("moderation service is required")
	}
	if notifier == nil {
		return nil, errors.New("applicant notifier is required")
	}
	if gateway == nil {
		return nil, errors.New("messaging gateway is required")
	}
	if moderationChat == 0 {
		return nil, errors.New("moderation chat is required")
	}
	d := &Dispatcher{
		conversation:   conversation,
		moderation:     mod,
		notifier:       notifier,
		gateway:        gateway,
		texts:          texts,
		moderationChat: moderationChat,
		logger:         slog.Default(),
		timeout:        30 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.lanes = newLanes(d.process)
	return d, nil
}

// Handle queues event and returns without waiting for it to be processed.
// Cancelling ctx does not abort queued events; each one is bounded by the
// handler timeout instead, so Wait can drain them during shutdown.
func (d *Dispatcher) Handle(ctx context.Context, event messaging.Event) {
	ctx = context.WithoutCancel(ctx)
	if action, ok := event.(messaging.ActionEvent); ok && action.TokenErr == nil && action.Token.IsDecision() {
		d.lanes.spawn(ctx, event)
		return
	}
	d.lanes.submit(ctx, event.Chat(), event)
}

// Wait blocks until every queued event has been handled.
func (d *Dispatcher) Wait() {
	d.lanes.wait()
}

func (d *Dispatcher) process(ctx context.Context, event messaging.Event) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
	ctx = requestcontext.WithTime(ctx, time.Now())

	defer func() {
		if r := recover(); r != nil {
			d.metrics.IncrementPanics()
			d.logger.ErrorContext(ctx, "event handler panicked",
				"panic", fmt.Sprint(r),
				"chat_id", event.Chat(),
				"request_id", requestcontext.RequestID(ctx),
				"stack", string(debug.Stack()),
			)
		}
	}()

	switch e := event.(type) {
	case messaging.CommandEvent:
		d.metrics.IncrementUpdates(kindCommand)
		d.handleCommand(requestcontext.WithActor(ctx, e.From.UserID), e)
	case messaging.TextEvent:
		d.metrics.IncrementUpdates(kindText)
		d.handleText(requestcontext.WithActor(ctx, e.From.UserID), e)
	case messaging.ActionEvent:
		d.metrics.IncrementUpdates(kindAction)
		d.handleAction(requestcontext.WithActor(ctx, e.From.UserID), e)
	default:
		d.logger.WarnContext(ctx, "unhandled event type", "type", fmt.Sprintf("%T", event))
	}
}

func (d *Dispatcher) handleCommand(ctx context.Context, e messaging.CommandEvent) {
	private := d.isPrivate(e.ChatID, e.From)
	var err error
	switch e.Command {
	case "start", "help":
		if private {
			d.reply(ctx, e.ChatID, d.texts.Greeting+"\n\n"+d.texts.Help)
		}
	case "form":
		if private {
			err = d.conversation.Start(ctx, e.From)
		}
	case "cancel":
		if private {
			err = d.conversation.Cancel(ctx, e.From)
		}
	case "stats":
		d.handleStats(ctx, e)
	default:
		if private {
			d.reply(ctx, e.ChatID, d.texts.Help)
		}
	}
	if err != nil {
		d.logError(ctx, "command failed", err, "command", e.Command)
	}
}

func (d *Dispatcher) handleStats(ctx context.Context, e messaging.CommandEvent) {
	if e.ChatID != d.moderationChat {
		d.reply(ctx, e.ChatID, d.texts.StatsForbidden)
		return
	}
	counts, err := d.moderation.Stats(ctx)
	if err != nil {
		d.logError(ctx, "stats failed", err)
		d.reply(ctx, e.ChatID, d.texts.DecisionRetry)
		return
	}
	d.reply(ctx, e.ChatID, RenderStats(d.texts.Stats, counts))
}

// RenderStats fills the stats template with counts.
func RenderStats(template string, counts submission.Counts) string {
	return strs.Fill(template, map[string]string{
		"total":    strconv.Itoa(counts.Total),
		"accepted": strconv.Itoa(counts.Accepted),
		"rejected": strconv.Itoa(counts.Rejected),
		"pending":  strconv.Itoa(counts.Pending),
	})
}

// handleText feeds private-chat text to the conversation. Group chatter is
// ignored.
func (d *Dispatcher) handleText(ctx context.Context, e messaging.TextEvent) {
	if !d.isPrivate(e.ChatID, e.From) {
		return
	}
	if _, err := d.conversation.Submit(ctx, e.From, e.Text); err != nil && !errors.Is(err, convservice.ErrSessionMissing) {
		d.logError(ctx, "submit failed", err)
	}
}

func (d *Dispatcher) handleAction(ctx context.Context, e messaging.ActionEvent) {
	if e.TokenErr != nil {
		d.logger.WarnContext(ctx, "malformed action token",
			"raw_token", e.RawToken,
			"error", e.TokenErr,
			"request_id", requestcontext.RequestID(ctx),
		)
		d.answer(ctx, e.ActionRef, "", false)
		return
	}
	switch e.Token.Kind {
	case actions.KindAccept, actions.KindReject:
		d.handleDecision(ctx, e)
	case actions.KindSelectCategory:
		d.answer(ctx, e.ActionRef, "", false)
		if _, err := d.conversation.SelectCategory(ctx, e.From, e.Token.Category); err != nil && !errors.Is(err, convservice.ErrSessionMissing) {
			d.logError(ctx, "category selection failed", err)
		}
	}
}

func (d *Dispatcher) handleDecision(ctx context.Context, e messaging.ActionEvent) {
	if e.ChatID != d.moderationChat {
		d.answer(ctx, e.ActionRef, d.texts.ActionForbidden, true)
		return
	}
	action, err := moderation.ActionFromToken(e.Token)
	if err != nil {
		d.answer(ctx, e.ActionRef, "", false)
		return
	}
	admin := submission.Moderator{
		ID:      e.From.UserID,
		Display: e.From.DisplayHandle(e.From.UserID.String()),
	}

	outcome, err := d.moderation.Decide(ctx, e.Token.SubmissionID, action, admin, requestcontext.Now(ctx))
	switch {
	case errors.Is(err, modservice.ErrSubmissionNotFound):
		d.answer(ctx, e.ActionRef, d.texts.NotFound, true)
		return
	case errors.Is(err, modservice.ErrAlreadyDecided):
		d.answer(ctx, e.ActionRef, d.texts.AlreadyDecided, true)
		return
	case err != nil:
		d.logError(ctx, "decision failed", err, "submission_id", e.Token.SubmissionID)
		d.answer(ctx, e.ActionRef, d.texts.DecisionRetry, true)
		return
	}

	verdict := d.texts.DecisionRejected
	if outcome.Accepted() {
		verdict = d.texts.DecisionAccepted
	}
	d.answer(ctx, e.ActionRef, verdict, false)
	if err := d.notifier.NotifyApplicant(ctx, outcome, e.Message); err != nil {
		d.logError(ctx, "decision follow-up incomplete", err, "submission_id", e.Token.SubmissionID)
	}
}

// isPrivate reports whether the chat is the sender's private chat.
func (d *Dispatcher) isPrivate(chat id.ChatID, from messaging.Sender) bool {
	return chat == from.UserID.PrivateChat()
}

func (d *Dispatcher) reply(ctx context.Context, chat id.ChatID, text string) {
	if _, err := d.gateway.SendText(ctx, chat, text); err != nil {
		d.logError(ctx, "failed to send reply", err, "chat_id", chat)
	}
}

func (d *Dispatcher) answer(ctx context.Context, ref, text string, highlighted bool) {
	if err := d.gateway.AnswerAction(ctx, ref, text, highlighted); err != nil {
		d.logError(ctx, "failed to answer action", err)
	}
}

func (d *Dispatcher) logError(ctx context.Context, msg string, err error, args ...any) {
	attrs := append([]any{
		"error", err,
		"code", dErrors.CodeOf(err),
		"actor_id", requestcontext.Actor(ctx),
		"request_id", requestcontext.RequestID(ctx),
	}, args...)
	d.logger.ErrorContext(ctx, msg, attrs...)
}
