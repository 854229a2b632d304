// Package webhook handles Telegram webhook updates: parsing the update body,
// classifying the message, and relaying the built response synchronously
// within the request.
package webhook

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/qrgram/qrbot-go/internal/bot"
	"github.com/qrgram/qrbot-go/internal/config"
	"github.com/qrgram/qrbot-go/internal/ctxutil"
	apperrors "github.com/qrgram/qrbot-go/internal/errors"
	"github.com/qrgram/qrbot-go/internal/logger"
	"github.com/qrgram/qrbot-go/internal/metrics"
	"github.com/qrgram/qrbot-go/internal/sentry"
)

// update mirrors the subset of the Telegram Update object the bot reads.
// Text is a pointer: an absent text field and a present-but-empty one
// classify differently.
type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

type message struct {
	Chat  *chat       `json:"chat"`
	Text  *string     `json:"text"`
	Photo []photoSize `json:"photo"`
}

type chat struct {
	ID int64 `json:"id"`
}

type photoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Handler handles Telegram webhook updates
type Handler struct {
	builder *bot.Builder
	relay   *bot.Relay
	policy  string
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	Builder        *bot.Builder
	Relay          *bot.Relay
	DeliveryPolicy string
	Metrics        *metrics.Metrics
	Logger         *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		builder: cfg.Builder,
		relay:   cfg.Relay,
		policy:  cfg.DeliveryPolicy,
		metrics: cfg.Metrics,
		logger:  cfg.Logger.WithModule("webhook"),
	}
}

// Handle is the Gin handler for the webhook endpoint. Processing is fully
// synchronous: Telegram retries on non-2xx, so the status code is the only
// delivery feedback channel.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()

	var upd update
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.logger.WithError(err).Warn("Malformed webhook body")
		h.metrics.RecordWebhook("none", "rejected", time.Since(start).Seconds())
		_ = c.Error(apperrors.ErrMalformedUpdate)
		c.Status(http.StatusBadRequest)
		return
	}

	reqID := requestID(upd)
	log := h.logger.WithRequestID(reqID)

	// Updates without a message (edits, channel posts, etc.) are acknowledged
	// and dropped; Telegram must not retry them.
	if upd.Message == nil {
		h.metrics.RecordWebhook("none", "noop", time.Since(start).Seconds())
		c.String(http.StatusOK, "OK")
		return
	}

	if upd.Message.Chat == nil || upd.Message.Chat.ID == 0 {
		log.Warn("Update message has no chat ID")
		h.metrics.RecordWebhook("none", "rejected", time.Since(start).Seconds())
		_ = c.Error(apperrors.ErrMissingChatID)
		c.Status(http.StatusBadRequest)
		return
	}

	ev := toEvent(upd.Message)
	intent := bot.Classify(ev)

	if intent == bot.IntentNone {
		h.metrics.RecordWebhook(intent.String(), "noop", time.Since(start).Seconds())
		c.String(http.StatusOK, "OK")
		return
	}

	log = log.WithField("intent", intent.String()).WithField("chat_id", ev.ChatID)

	ctx := ctxutil.WithRequestID(c.Request.Context(), reqID)
	ctx = ctxutil.WithChatID(ctx, ev.ChatID)

	items := h.builder.Build(ctx, intent, ev)

	status := "success"
	if err := h.relay.Deliver(ctx, ev.ChatID, items); err != nil {
		status = "error"
		log.WithError(err).Error("Failed to deliver response")
		sentry.CaptureException(err)

		if h.policy == config.DeliveryStrict {
			h.metrics.RecordWebhook(intent.String(), status, time.Since(start).Seconds())
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	h.metrics.RecordWebhook(intent.String(), status, time.Since(start).Seconds())
	log.WithField("duration_ms", time.Since(start).Milliseconds()).Info("Update processed")
	c.String(http.StatusOK, "OK")
}

// toEvent maps a parsed Telegram message onto the pipeline's event type.
func toEvent(msg *message) bot.Event {
	ev := bot.Event{ChatID: msg.Chat.ID}

	if msg.Text != nil {
		ev.Text = *msg.Text
		ev.HasText = true
	}

	for _, p := range msg.Photo {
		ev.Photos = append(ev.Photos, bot.PhotoRef{
			FileID: p.FileID,
			Width:  p.Width,
			Height: p.Height,
		})
	}

	return ev
}

// requestID derives a correlation ID for logs. Telegram's update_id is stable
// across retries of the same update, which makes redeliveries greppable.
func requestID(upd update) string {
	if upd.UpdateID != 0 {
		return strconv.FormatInt(upd.UpdateID, 10)
	}
	return uuid.NewString()
}
