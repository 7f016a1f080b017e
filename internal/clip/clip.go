// Package clip provides a unified interface to the system pasteboard across
// platforms. Build constraints select the appropriate implementation:
//
//	clip_darwin.go    macOS NSPasteboard via cgo: native changeCount, every
//	                  pasteboard item, arbitrary type tags
//	clip_portable.go  everything else: golang.design/x/clipboard, falling
//	                  back to atotto/clipboard (text only), then Memory
//	memory.go         in-process pasteboard for headless hosts and tests
package clip

import (
	"crypto/sha256"
	"sync"
)

// Item is one raw pasteboard item.
type Item interface {
	// Types returns the item's type tags in the order the OS reports them.
	Types() []string
	// Data returns the payload for typ. A type the item cannot produce yields
	// nil rather than an error.
	Data(typ string) []byte
}

// Pasteboard is the shared clipboard resource.
//
// Reads are treated as infallible: an unreadable representation is empty.
// Writes are best-effort and report nothing.
type Pasteboard interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// ChangeCount returns the pasteboard revision counter. It increases
	// whenever the contents change and is only meaningful for equality.
	ChangeCount() int64

	// Types returns the clipboard-level type set, which may include types
	// that no single item exposes.
	Types() []string

	// Items returns every item currently on the pasteboard.
	Items() []Item

	// Clear removes the current contents.
	Clear()

	// SetData writes data under typ into the pasteboard's current item.
	SetData(typ string, data []byte)

	// Close releases any resources held by the backend.
	Close()
}

// revision derives a change counter for backends whose OS API has none, by
// hashing the content on each sample.
type revision struct {
	mu    sync.Mutex
	last  [sha256.Size]byte
	count int64
}

// observe hashes parts and bumps the counter if they differ from the previous
// sample.
func (r *revision) observe(parts ...[]byte) int64 {
	h := sha256.New()
	for _, p := range parts {
		// Length-prefix each part so {"ab",""} and {"a","b"} differ.
		n := len(p)
		h.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
		h.Write(p)
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))

	r.mu.Lock()
	defer r.mu.Unlock()
	if sum != r.last {
		r.last = sum
		r.count++
	}
	return r.count
}
