package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/qrgram/qrbot-go/internal/logger"
	"github.com/qrgram/qrbot-go/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTelegram is a minimal Bot API stub. It records the methods called in
// order and answers every method with a canned ok response.
type fakeTelegram struct {
	mu      sync.Mutex
	methods []string
	fail    map[string]bool
}

func (f *fakeTelegram) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		f.mu.Lock()
		f.methods = append(f.methods, method)
		shouldFail := f.fail[method]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if shouldFail {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: test failure"}`)
			return
		}

		switch method {
		case "getMe":
			fmt.Fprint(w, `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"qrbot","username":"qrgram_bot"}}`)
		case "getFile":
			fmt.Fprint(w, `{"ok":true,"result":{"file_id":"abc","file_path":"photos/file_1.jpg"}}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"chat":{"id":100},"date":0}}`)
		}
	}
}

func (f *fakeTelegram) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.methods))
	copy(out, f.methods)
	return out
}

func newTestClient(t *testing.T, fake *fakeTelegram, m *metrics.Metrics) *Client {
	t.Helper()
	ts := httptest.NewServer(fake.handler())
	t.Cleanup(ts.Close)

	client, err := NewClient(ClientConfig{
		Token:       "123:test",
		APIEndpoint: ts.URL + "/bot%s/%s",
		Timeout:     5 * time.Second,
		Metrics:     m,
		Logger:      logger.New("error"),
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_VerifiesCredential(t *testing.T) {
	fake := &fakeTelegram{}
	client := newTestClient(t, fake, nil)

	assert.Equal(t, "qrgram_bot", client.BotUsername())
	assert.Contains(t, fake.called(), "getMe")
}

func TestNewClient_BadToken(t *testing.T) {
	fake := &fakeTelegram{fail: map[string]bool{"getMe": true}}
	ts := httptest.NewServer(fake.handler())
	defer ts.Close()

	_, err := NewClient(ClientConfig{
		Token:       "bad:token",
		APIEndpoint: ts.URL + "/bot%s/%s",
		Timeout:     5 * time.Second,
	})
	assert.Error(t, err)
}

func TestSendText(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	fake := &fakeTelegram{}
	client := newTestClient(t, fake, m)

	err := client.SendText(context.Background(), 100, "hello")
	require.NoError(t, err)
	assert.Contains(t, fake.called(), "sendMessage")

	got := testutil.ToFloat64(m.OutboundRequestsTotal.WithLabelValues("telegram_send", "success"))
	assert.Equal(t, 1.0, got)
}

func TestSendText_APIError(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	fake := &fakeTelegram{fail: map[string]bool{"sendMessage": true}}
	client := newTestClient(t, fake, m)

	err := client.SendText(context.Background(), 100, "hello")
	assert.Error(t, err)

	got := testutil.ToFloat64(m.OutboundRequestsTotal.WithLabelValues("telegram_send", "error"))
	assert.Equal(t, 1.0, got)
}

func TestSendPhotoURL(t *testing.T) {
	fake := &fakeTelegram{}
	client := newTestClient(t, fake, nil)

	err := client.SendPhotoURL(context.Background(), 100, "https://example.com/qr.png", "caption")
	require.NoError(t, err)
	assert.Contains(t, fake.called(), "sendPhoto")
}

func TestSendPhotoData(t *testing.T) {
	fake := &fakeTelegram{}
	client := newTestClient(t, fake, nil)

	err := client.SendPhotoData(context.Background(), 100, "qr.png", []byte{0x89, 0x50}, "caption")
	require.NoError(t, err)
	assert.Contains(t, fake.called(), "sendPhoto")
}

func TestFileURL(t *testing.T) {
	fake := &fakeTelegram{}
	client := newTestClient(t, fake, nil)

	url, err := client.FileURL(context.Background(), "abc")
	require.NoError(t, err)
	assert.Contains(t, url, "photos/file_1.jpg")
}

func TestFileURL_Unknown(t *testing.T) {
	fake := &fakeTelegram{fail: map[string]bool{"getFile": true}}
	client := newTestClient(t, fake, nil)

	_, err := client.FileURL(context.Background(), "expired")
	assert.Error(t, err)
}

func TestSend_CanceledContext(t *testing.T) {
	fake := &fakeTelegram{}
	client := newTestClient(t, fake, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SendText(ctx, 100, "hello")
	assert.Error(t, err)
	// getMe from construction only; the canceled send never reached the API.
	assert.NotContains(t, fake.called(), "sendMessage")
}
