// Package writer restores history items to the pasteboard.
package writer

import (
	"log/slog"

	"go.klb.dev/clipkeep/internal/clip"
	"go.klb.dev/clipkeep/internal/history"
)

// Options are supplied by the caller on every Copy, built from fresh settings.
type Options struct {
	// RemoveFormatting narrows the write to plain-text representations when
	// the item has any.
	RemoveFormatting bool
	// PlaySound plays the confirmation sound after writing.
	PlaySound bool
}

// Sounder plays a short confirmation sound.
type Sounder interface {
	Play()
}

// Writer is the paste-back writer.
//
// It does not suppress capture of its own write: the next monitor tick sees a
// new revision and records the item again.
type Writer struct {
	pb    clip.Pasteboard
	sound Sounder
}

// New returns a Writer. sound may be nil to disable sounds entirely.
func New(pb clip.Pasteboard, sound Sounder) *Writer {
	return &Writer{pb: pb, sound: sound}
}

// Copy clears the pasteboard and writes the item's representations under their
// original type tags.
func (w *Writer) Copy(it history.Item, opts Options) {
	reps := it.Representations
	if opts.RemoveFormatting {
		if plain := it.PlainOnly(); len(plain) > 0 {
			reps = plain
		}
	}

	w.pb.Clear()
	for _, r := range reps {
		w.pb.SetData(r.Type, r.Data)
	}

	slog.Debug("item written to clipboard",
		"id", it.ID,
		"representations", len(reps),
		"remove_formatting", opts.RemoveFormatting,
	)

	if opts.PlaySound && w.sound != nil {
		w.sound.Play()
	}
}
