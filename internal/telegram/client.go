// Package telegram wraps the Telegram Bot API client used for outbound calls:
// sending text and photo messages and resolving file references to
// downloadable URLs. All user-visible messages are sent with the MarkdownV2
// parse mode, so callers must escape untrusted content first.
package telegram

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/qrgram/qrbot-go/internal/errors"
	"github.com/qrgram/qrbot-go/internal/logger"
	"github.com/qrgram/qrbot-go/internal/metrics"
)

// Service labels for outbound metrics.
const (
	serviceSend    = "telegram_send"
	serviceGetFile = "telegram_getfile"
)

// Client is the Telegram Bot API client.
type Client struct {
	api     *tgbotapi.BotAPI
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// ClientConfig holds configuration for creating a new Client.
type ClientConfig struct {
	Token       string
	APIEndpoint string        // Override for tests; empty = api.telegram.org
	Timeout     time.Duration // Per-call timeout, applied via the HTTP client
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// NewClient creates a Telegram client and verifies the credential with a
// getMe call. A bad or missing token therefore fails at startup, not per
// message.
func NewClient(cfg ClientConfig) (*Client, error) {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, httpClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		api:     api,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}, nil
}

// BotUsername returns the authenticated bot's username.
func (c *Client) BotUsername() string {
	return c.api.Self.UserName
}

// Ready verifies the Telegram API is reachable with the configured credential.
func (c *Client) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.api.GetMe()
	return err
}

// SendText sends a text message with MarkdownV2 parse mode.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return c.send(ctx, "text", chatID, msg)
}

// SendPhotoURL sends a photo by URL with an optional MarkdownV2 caption.
// Telegram fetches the image itself; the URL is not verified here.
func (c *Client) SendPhotoURL(ctx context.Context, chatID int64, photoURL, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	return c.send(ctx, "photo", chatID, photo)
}

// SendPhotoData uploads photo bytes with an optional MarkdownV2 caption.
func (c *Client) SendPhotoData(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	return c.send(ctx, "photo", chatID, photo)
}

func (c *Client) send(ctx context.Context, kind string, chatID int64, msg tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return errors.NewSendError(kind, chatID, err)
	}

	start := time.Now()
	_, err := c.api.Send(msg)
	c.record(serviceSend, start, err)

	if err != nil {
		return errors.NewSendError(kind, chatID, err)
	}
	return nil
}

// FileURL resolves a Telegram file reference to a direct download URL.
// Fails if the reference is unknown or expired.
func (c *Client) FileURL(ctx context.Context, fileID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	url, err := c.api.GetFileDirectURL(fileID)
	c.record(serviceGetFile, start, err)

	if err != nil {
		return "", err
	}
	return url, nil
}

func (c *Client) record(service string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOutbound(service, status, time.Since(start).Seconds())
}
