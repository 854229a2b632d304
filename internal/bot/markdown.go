package bot

import "strings"

// markdownSpecials are the characters MarkdownV2 reserves. Every occurrence
// must be backslash-escaped or Telegram rejects the message.
const markdownSpecials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown prefixes every MarkdownV2-reserved character in s with a
// backslash. All other characters pass through unchanged. Required for any
// untrusted content (decoded QR payloads) sent with the MarkdownV2 parse
// mode; static templates are pre-escaped at authoring time.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 && strings.ContainsRune(markdownSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
