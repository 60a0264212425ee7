package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recruit/internal/messaging"
)

// SecretTokenHeader carries the secret configured with setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// maxUpdateBytes bounds a webhook request body.
const maxUpdateBytes = 1 << 20

// Updater is the long-polling subset of *tgbotapi.BotAPI.
type Updater interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller feeds long-polled updates to a handler.
type Poller struct {
	updater Updater
	handler messaging.Handler
	logger  *slog.Logger
	timeout int
}

func NewPoller(updater Updater, handler messaging.Handler, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{updater: updater, handler: handler, logger: logger, timeout: 30}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout
	updates := p.updater.GetUpdatesChan(cfg)
	defer p.updater.StopReceivingUpdates()

	p.logger.InfoContext(ctx, "telegram polling started")
	for {
		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, "telegram polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			p.dispatch(ctx, update)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, update tgbotapi.Update) {
	event, ok := Decode(update)
	if !ok {
		p.logger.DebugContext(ctx, "ignoring update", "update_id", update.UpdateID)
		return
	}
	p.handler.Handle(ctx, event)
}

// WebhookHandler accepts updates pushed by Telegram. Requests without the
// configured secret are rejected.
type WebhookHandler struct {
	secret  string
	handler messaging.Handler
	logger  *slog.Logger
}

func NewWebhookHandler(secret string, handler messaging.Handler, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{secret: secret, handler: handler, logger: logger}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	got := r.Header.Get(SecretTokenHeader)
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		h.logger.WarnContext(ctx, "webhook request with bad secret token")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes)).Decode(&update); err != nil {
		h.logger.WarnContext(ctx, "invalid webhook payload", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if event, ok := Decode(update); ok {
		h.handler.Handle(ctx, event)
	}
	w.WriteHeader(http.StatusOK)
}
