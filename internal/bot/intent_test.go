package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func textEvent(text string) Event {
	return Event{ChatID: 1, Text: text, HasText: true}
}

func TestClassify(t *testing.T) {
	photo := []PhotoRef{{FileID: "f1", Width: 90, Height: 90}}

	tests := []struct {
		name  string
		event Event
		want  Intent
	}{
		{"start command", textEvent("/start"), IntentStart},
		{"start wins over photo", Event{ChatID: 1, Text: "/start", HasText: true, Photos: photo}, IntentStart},
		{"photo only", Event{ChatID: 1, Photos: photo}, IntentScanPhoto},
		{"photo wins over text", Event{ChatID: 1, Text: "hello", HasText: true, Photos: photo}, IntentScanPhoto},
		{"empty text", textEvent(""), IntentEmptyText},
		{"whitespace only", textEvent("  \t\n "), IntentEmptyText},
		{"plain text", textEvent("hello world"), IntentGenerateQR},
		{"valid url", textEvent("https://example.com/path?q=1"), IntentGenerateQR},
		{"http prefix without host", textEvent("http://"), IntentInvalidURL},
		{"http prefix garbage", textEvent("https://exa mple.com"), IntentInvalidURL},
		{"http as plain word", textEvent("httpx is a tool"), IntentGenerateQR},
		{"text at limit", textEvent(strings.Repeat("a", 4000)), IntentGenerateQR},
		{"text over limit", textEvent(strings.Repeat("a", 4001)), IntentTooLongText},
		{"multibyte runes counted as characters", textEvent(strings.Repeat("م", 4000)), IntentGenerateQR},
		{"no text no photo", Event{ChatID: 1}, IntentNone},
		{"start with leading space is text", textEvent(" /start"), IntentGenerateQR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.event))
		})
	}
}

func TestIntentString(t *testing.T) {
	tests := []struct {
		intent Intent
		want   string
	}{
		{IntentNone, "none"},
		{IntentStart, "start"},
		{IntentScanPhoto, "scan_photo"},
		{IntentEmptyText, "empty_text"},
		{IntentTooLongText, "too_long_text"},
		{IntentInvalidURL, "invalid_url"},
		{IntentGenerateQR, "generate_qr"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.intent.String())
	}
}

func TestBestPhoto(t *testing.T) {
	t.Run("no photos", func(t *testing.T) {
		_, ok := Event{}.BestPhoto()
		assert.False(t, ok)
	})

	t.Run("picks last variant", func(t *testing.T) {
		ev := Event{Photos: []PhotoRef{
			{FileID: "small", Width: 90, Height: 90},
			{FileID: "medium", Width: 320, Height: 320},
			{FileID: "large", Width: 800, Height: 800},
		}}
		ref, ok := ev.BestPhoto()
		assert.True(t, ok)
		assert.Equal(t, "large", ref.FileID)
	})
}
