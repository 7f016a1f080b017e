// Package history defines the records produced by clipboard capture.
//
// A Representation is one typed payload. An Entry is everything one raw
// pasteboard item carried at the moment it was read. An Item is the accepted,
// filtered output handed to observers.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Canonical type tags. The macOS UTI spellings are used on every platform so
// that configuration files are portable between backends.
const (
	TypeText    = "public.utf8-plain-text"
	TypeHTML    = "public.html"
	TypeRTF     = "public.rtf"
	TypePNG     = "public.png"
	TypeTIFF    = "public.tiff"
	TypeFileURL = "public.file-url"
)

// plainTextTypes are the tags treated as unformatted text.
var plainTextTypes = map[string]struct{}{
	TypeText:             {},
	"NSStringPboardType": {},
	"text/plain":         {},
}

// IsPlainText reports whether tag names a plain-text representation.
func IsPlainText(tag string) bool {
	_, ok := plainTextTypes[tag]
	return ok
}

// Representation is a single typed payload. Data may be empty.
type Representation struct {
	Type string `json:"type"`
	Data []byte `json:"data,omitempty"`
}

// Entry is one raw pasteboard item as read during a tick.
type Entry struct {
	// Representations are in pasteboard enumeration order, one per type tag.
	Representations []Representation
	// BoardTypes is the clipboard-level type set observed in the same tick.
	// The OS may report types here that no single item exposes.
	BoardTypes []string
}

// PlainText returns the first plain-text representation, if any.
func (e Entry) PlainText() (Representation, bool) {
	return firstPlainText(e.Representations)
}

// Item is an accepted history record. Treat it as immutable.
type Item struct {
	ID              string           `json:"id"`
	CapturedAt      time.Time        `json:"captured_at"`
	ChangeCount     int64            `json:"change_count"`
	Representations []Representation `json:"representations"`
}

// NewItem builds an Item from retained representations. The slice is copied.
func NewItem(reps []Representation, changeCount int64) Item {
	return Item{
		ID:              uuid.NewString(),
		CapturedAt:      time.Now(),
		ChangeCount:     changeCount,
		Representations: append([]Representation(nil), reps...),
	}
}

// Types returns the item's type tags in order.
func (it Item) Types() []string {
	out := make([]string, len(it.Representations))
	for i, r := range it.Representations {
		out[i] = r.Type
	}
	return out
}

// Text returns the payload of the first plain-text representation, or "".
func (it Item) Text() string {
	if r, ok := firstPlainText(it.Representations); ok {
		return string(r.Data)
	}
	return ""
}

// PlainOnly returns the subset of the item's representations that are plain
// text, in order.
func (it Item) PlainOnly() []Representation {
	var out []Representation
	for _, r := range it.Representations {
		if IsPlainText(r.Type) {
			out = append(out, r)
		}
	}
	return out
}

func firstPlainText(reps []Representation) (Representation, bool) {
	for _, r := range reps {
		if IsPlainText(r.Type) {
			return r, true
		}
	}
	return Representation{}, false
}
