package bot

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Intent is the classified purpose of an inbound event.
type Intent int

const (
	// IntentNone means the event needs no response at all (silent no-op).
	IntentNone Intent = iota
	IntentStart
	IntentScanPhoto
	IntentEmptyText
	IntentTooLongText
	IntentInvalidURL
	IntentGenerateQR
)

// maxTextRunes is the longest message text accepted for QR generation,
// counted in characters, not bytes.
const maxTextRunes = 4000

// startCommand triggers the welcome message.
const startCommand = "/start"

// String returns the label used in logs and metrics.
func (i Intent) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentScanPhoto:
		return "scan_photo"
	case IntentEmptyText:
		return "empty_text"
	case IntentTooLongText:
		return "too_long_text"
	case IntentInvalidURL:
		return "invalid_url"
	case IntentGenerateQR:
		return "generate_qr"
	default:
		return "none"
	}
}

// Classify derives the intent for an event. Pure and total; first match wins.
//
// The ordering is a contract: /start wins even when a photo is attached, and
// a photo wins over any other text.
func Classify(ev Event) Intent {
	if ev.HasText && ev.Text == startCommand {
		return IntentStart
	}
	if len(ev.Photos) > 0 {
		return IntentScanPhoto
	}
	if ev.HasText {
		if strings.TrimSpace(ev.Text) == "" {
			return IntentEmptyText
		}
		if utf8.RuneCountInString(ev.Text) > maxTextRunes {
			return IntentTooLongText
		}
		if strings.HasPrefix(ev.Text, "http") && !isValidURL(ev.Text) {
			return IntentInvalidURL
		}
		return IntentGenerateQR
	}
	return IntentNone
}

// isValidURL reports whether s parses as an absolute URL with both a scheme
// and a host. Used only as a guard for text starting with "http".
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
