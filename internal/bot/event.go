// Package bot implements the message pipeline: classifying inbound chat
// events, building response items, and relaying them back to the chat.
package bot

// PhotoRef is one size variant of an inbound photo. Telegram orders the
// variants by resolution, smallest first.
type PhotoRef struct {
	FileID string
	Width  int
	Height int
}

// Event is one inbound chat event, already parsed from the webhook body.
// Nothing outlives the request that carried it.
type Event struct {
	ChatID int64

	// Text is the message text. HasText distinguishes an absent text field
	// from a present-but-empty one; the two classify differently.
	Text    string
	HasText bool

	// Photos holds the size variants of an attached photo, in Telegram's
	// order. The last entry is the highest-resolution variant.
	Photos []PhotoRef
}

// BestPhoto returns the highest-resolution photo variant, or false when the
// event carries no photo.
func (e Event) BestPhoto() (PhotoRef, bool) {
	if len(e.Photos) == 0 {
		return PhotoRef{}, false
	}
	return e.Photos[len(e.Photos)-1], true
}
