// Package telegram adapts the Telegram Bot API to the messaging port.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recruit/internal/assets"
	"recruit/internal/messaging"
	id "recruit/pkg/domain"
)

// Bot is the subset of *tgbotapi.BotAPI the gateway calls.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Gateway implements messaging.Gateway on top of the Bot API.
type Gateway struct {
	bot    Bot
	assets assets.Source
	logger *slog.Logger
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func NewGateway(bot Bot, source assets.Source, opts ...Option) (*Gateway, error) {
	if bot == nil {
		return nil, errors.New("bot client is required")
	}
	if source == nil {
		return nil, errors.New("asset source is required")
	}
	g := &Gateway{bot: bot, assets: source, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewBotAPI connects to the Bot API with token.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return bot, nil
}

func (g *Gateway) SendText(ctx context.Context, dest id.ChatID, text string) (messaging.MessageRef, error) {
	return g.send(ctx, tgbotapi.NewMessage(int64(dest), text))
}

// SendTextWithOptions renders options as an inline keyboard, one button per row.
func (g *Gateway) SendTextWithOptions(ctx context.Context, dest id.ChatID, text string, options []messaging.Option) (messaging.MessageRef, error) {
	msg := tgbotapi.NewMessage(int64(dest), text)
	if len(options) > 0 {
		msg.ReplyMarkup = Keyboard(options)
	}
	return g.send(ctx, msg)
}

func (g *Gateway) SendAttachment(ctx context.Context, dest id.ChatID, asset messaging.AssetRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rc, err := g.assets.Open(ctx, asset.Key)
	if err != nil {
		return fmt.Errorf("open asset: %w", err)
	}
	defer rc.Close()

	file := tgbotapi.FileReader{Name: assets.FileName(asset.Key), Reader: rc}
	var c tgbotapi.Chattable
	switch asset.Kind {
	case messaging.AttachmentPhoto:
		photo := tgbotapi.NewPhoto(int64(dest), file)
		photo.Caption = asset.Caption
		c = photo
	case messaging.AttachmentDocument:
		doc := tgbotapi.NewDocument(int64(dest), file)
		doc.Caption = asset.Caption
		c = doc
	default:
		return fmt.Errorf("unsupported attachment kind %q", asset.Kind)
	}
	if _, err := g.bot.Send(c); err != nil {
		return fmt.Errorf("send %s %s: %w", asset.Kind, asset.Key, err)
	}
	return nil
}

// EditMessage replaces the text of msg. The inline keyboard is dropped, so
// decision buttons disappear once the moderator message is amended.
func (g *Gateway) EditMessage(ctx context.Context, msg messaging.MessageRef, newText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageText(int64(msg.ChatID), msg.MessageID, newText)
	if _, err := g.bot.Request(edit); err != nil {
		return fmt.Errorf("edit message %d: %w", msg.MessageID, err)
	}
	return nil
}

// AnswerAction acknowledges a button press. A highlighted answer is shown as
// an alert instead of a toast.
func (g *Gateway) AnswerAction(ctx context.Context, actionRef string, text string, highlighted bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	answer := tgbotapi.NewCallback(actionRef, text)
	answer.ShowAlert = highlighted
	if _, err := g.bot.Request(answer); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func (g *Gateway) send(ctx context.Context, c tgbotapi.Chattable) (messaging.MessageRef, error) {
	if err := ctx.Err(); err != nil {
		return messaging.MessageRef{}, err
	}
	sent, err := g.bot.Send(c)
	if err != nil {
		return messaging.MessageRef{}, fmt.Errorf("send message: %w", err)
	}
	ref := messaging.MessageRef{MessageID: sent.MessageID}
	if sent.Chat != nil {
		ref.ChatID = id.ChatID(sent.Chat.ID)
	}
	return ref, nil
}

// Keyboard renders options as an inline keyboard with one button per row.
func Keyboard(options []messaging.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.Token.Encode()),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
