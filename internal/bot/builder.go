package bot

import (
	"context"

	"github.com/qrgram/qrbot-go/internal/ctxutil"
	"github.com/qrgram/qrbot-go/internal/logger"
	"github.com/qrgram/qrbot-go/internal/qrservice"
)

// Generator produces a QR image for the given text, either as a URL for
// Telegram to fetch or as PNG bytes to upload.
type Generator interface {
	Generate(ctx context.Context, text string) (qrservice.Image, error)
}

// Decoder reads a QR code from an image URL and returns its payload.
type Decoder interface {
	Decode(ctx context.Context, imageURL string) (string, error)
}

// FileResolver turns a chat platform file reference into a fetchable URL.
type FileResolver interface {
	FileURL(ctx context.Context, fileID string) (string, error)
}

// Builder turns a classified event into an ordered list of response items.
// Every failure on an external call becomes a user-facing error item; nothing
// from this layer propagates as a system error.
type Builder struct {
	generator Generator
	decoder   Decoder
	files     FileResolver
	logger    *logger.Logger
}

// NewBuilder creates a response builder.
func NewBuilder(generator Generator, decoder Decoder, files FileResolver, log *logger.Logger) *Builder {
	return &Builder{
		generator: generator,
		decoder:   decoder,
		files:     files,
		logger:    log.WithModule("builder"),
	}
}

// Build produces the response items for an intent. Start and the validation
// intents are pure; ScanPhoto and GenerateQR may block on external calls,
// each bounded by the client timeouts.
func (b *Builder) Build(ctx context.Context, intent Intent, ev Event) []ResponseItem {
	switch intent {
	case IntentStart:
		return []ResponseItem{textItem(msgWelcome)}
	case IntentEmptyText:
		return []ResponseItem{textItem(msgEmptyText)}
	case IntentTooLongText:
		return []ResponseItem{textItem(msgTooLongText)}
	case IntentInvalidURL:
		return []ResponseItem{textItem(msgInvalidURL)}
	case IntentGenerateQR:
		return b.buildGenerate(ctx, ev)
	case IntentScanPhoto:
		return b.buildScan(ctx, ev)
	default:
		return nil
	}
}

// log returns the builder logger enriched with the request ID when the
// context carries one.
func (b *Builder) log(ctx context.Context) *logger.Logger {
	if id, ok := ctxutil.GetRequestID(ctx); ok {
		return b.logger.WithRequestID(id)
	}
	return b.logger
}

func (b *Builder) buildGenerate(ctx context.Context, ev Event) []ResponseItem {
	img, err := b.generator.Generate(ctx, ev.Text)
	if err != nil {
		b.log(ctx).WithError(err).WithField("chat_id", ev.ChatID).Warn("QR generation failed")
		return []ResponseItem{textItem(msgGenerateFailed)}
	}

	return []ResponseItem{{
		Kind:      KindPhoto,
		Content:   img.URL,
		Caption:   msgQRCreated,
		ImageData: img.Data,
		Filename:  img.Filename,
	}}
}

func (b *Builder) buildScan(ctx context.Context, ev Event) []ResponseItem {
	scanError := []ResponseItem{textItem(msgScanFailed)}

	ref, ok := ev.BestPhoto()
	if !ok {
		return scanError
	}

	imageURL, err := b.files.FileURL(ctx, ref.FileID)
	if err != nil {
		b.log(ctx).WithError(err).WithField("chat_id", ev.ChatID).Warn("File resolution failed")
		return scanError
	}

	payload, err := b.decoder.Decode(ctx, imageURL)
	if err != nil {
		b.log(ctx).WithError(err).WithField("chat_id", ev.ChatID).Info("QR decode failed")
		return scanError
	}

	// Header first, then the payload as an inline code span. The payload is
	// untrusted and must be escaped before hitting MarkdownV2.
	return []ResponseItem{
		textItem(msgScanHeader),
		textItem("`" + EscapeMarkdown(payload) + "`"),
	}
}
