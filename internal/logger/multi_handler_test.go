package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_FanOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)
	log := slog.New(h)

	log.Info("hello", "n", 1)

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("%s handler did not receive the record: %s", name, buf.String())
		}
	}
}

func TestMultiHandler_RespectsPerHandlerLevel(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h)

	log.Debug("detail")

	if !strings.Contains(debugBuf.String(), "detail") {
		t.Error("debug handler should receive debug records")
	}
	if errorBuf.Len() != 0 {
		t.Errorf("error handler should filter debug records, got: %s", errorBuf.String())
	}
}

func TestMultiHandler_SkipsNilHandlers(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(nil, slog.NewJSONHandler(&buf, nil), nil)

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("handler should be enabled for info")
	}
	slog.New(h).Info("ok")
	if buf.Len() == 0 {
		t.Error("non-nil handler should receive records")
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(h.WithAttrs([]slog.Attr{slog.String("service", "qrbot")}))

	log.Info("tagged")

	if !strings.Contains(buf.String(), `"service":"qrbot"`) {
		t.Errorf("attrs not propagated: %s", buf.String())
	}
}
