package bot

import (
	"context"
	"errors"

	"github.com/qrgram/qrbot-go/internal/config"
	"github.com/qrgram/qrbot-go/internal/ctxutil"
	"github.com/qrgram/qrbot-go/internal/logger"
	"github.com/qrgram/qrbot-go/internal/metrics"
)

// Sender is the outbound side of the chat platform.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhotoURL(ctx context.Context, chatID int64, photoURL, caption string) error
	SendPhotoData(ctx context.Context, chatID int64, filename string, data []byte, caption string) error
}

// Relay delivers response items to a chat, strictly in list order, one send
// call per item. There are no retries; each call is bounded by the sender's
// timeout.
type Relay struct {
	sender  Sender
	policy  string
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewRelay creates a delivery relay. policy is one of the config.Delivery*
// values.
func NewRelay(sender Sender, policy string, m *metrics.Metrics, log *logger.Logger) *Relay {
	return &Relay{
		sender:  sender,
		policy:  policy,
		metrics: m,
		logger:  log.WithModule("relay"),
	}
}

// Deliver sends each item in order. Under the strict policy the first failed
// send aborts the rest and is returned. Under best-effort every item is
// attempted and the failures are joined; items are logically independent, so
// a failed header must not block its payload message.
func (r *Relay) Deliver(ctx context.Context, chatID int64, items []ResponseItem) error {
	var errs []error

	for i, item := range items {
		err := r.send(ctx, chatID, item)
		r.record(item.Kind, err)

		if err == nil {
			continue
		}

		log := r.logger
		if id, ok := ctxutil.GetRequestID(ctx); ok {
			log = log.WithRequestID(id)
		}
		log.WithError(err).
			WithField("chat_id", chatID).
			WithField("item", i).
			WithField("kind", item.Kind.String()).
			Error("Failed to deliver response item")

		if r.policy == config.DeliveryStrict {
			return err
		}
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (r *Relay) send(ctx context.Context, chatID int64, item ResponseItem) error {
	if item.Kind == KindPhoto {
		if len(item.ImageData) > 0 {
			return r.sender.SendPhotoData(ctx, chatID, item.Filename, item.ImageData, item.Caption)
		}
		return r.sender.SendPhotoURL(ctx, chatID, item.Content, item.Caption)
	}
	return r.sender.SendText(ctx, chatID, item.Content)
}

func (r *Relay) record(kind ItemKind, err error) {
	if r.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.metrics.RecordDeliveryItem(kind.String(), status)
}
