package bot

// ItemKind distinguishes the two outbound payload types.
type ItemKind int

const (
	KindText ItemKind = iota
	KindPhoto
)

// String returns the label used in logs and metrics.
func (k ItemKind) String() string {
	if k == KindPhoto {
		return "photo"
	}
	return "text"
}

// ResponseItem is one outbound unit, created by the Builder and consumed by
// the Relay. List order is delivery order.
type ResponseItem struct {
	Kind    ItemKind
	Content string // message body, or photo URL when ImageData is empty
	Caption string // photo only

	// ImageData carries locally rendered PNG bytes. When set, the photo is
	// uploaded instead of referenced by URL.
	ImageData []byte
	Filename  string
}

// textItem builds a text response item.
func textItem(body string) ResponseItem {
	return ResponseItem{Kind: KindText, Content: body}
}
