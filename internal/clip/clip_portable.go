//go:build !darwin

package clip

import (
	"log/slog"

	atotto "github.com/atotto/clipboard"
	"golang.design/x/clipboard"

	"go.klb.dev/clipkeep/internal/history"
)

// New returns the best available clipboard backend: golang.design/x/clipboard
// (text and PNG), then atotto/clipboard (text via xclip/xsel/wl-clipboard or
// the Windows API), then an in-memory pasteboard when no display is present.
// clipboard.Init is called here rather than in init() so that CLI
// sub-commands that never construct a backend don't log spurious warnings on
// headless systems.
func New() Pasteboard {
	err := clipboard.Init()
	if err == nil {
		return &designBackend{}
	}
	slog.Warn("clipboard init failed", "err", err)

	if !atotto.Unsupported {
		slog.Info("falling back to text-only clipboard")
		return &atottoBackend{}
	}

	slog.Warn("clipboard unavailable, running headless")
	return NewMemory()
}

// designBackend has no native revision counter, so one is derived from the
// content on every sample. Its own writes are observed like any other change.
type designBackend struct {
	rev revision
}

func (b *designBackend) Name() string { return "golang.design clipboard (poll)" }

func (b *designBackend) read() (text, img []byte) {
	return clipboard.Read(clipboard.FmtText), clipboard.Read(clipboard.FmtImage)
}

func (b *designBackend) ChangeCount() int64 {
	text, img := b.read()
	return b.rev.observe(text, img)
}

func (b *designBackend) Types() []string {
	it := b.item()
	if it == nil {
		return nil
	}
	return it.Types()
}

func (b *designBackend) Items() []Item {
	it := b.item()
	if it == nil {
		return nil
	}
	return []Item{it}
}

func (b *designBackend) item() *memItem {
	text, img := b.read()
	if text == nil && img == nil {
		return nil
	}
	it := &memItem{}
	if text != nil {
		it.set(history.TypeText, text)
	}
	if img != nil {
		it.set(history.TypePNG, img)
	}
	return it
}

// Clear is a no-op: the library has no clear call, and the next SetData
// replaces the formats it can write.
func (b *designBackend) Clear() {}

func (b *designBackend) SetData(typ string, data []byte) {
	switch {
	case history.IsPlainText(typ):
		clipboard.Write(clipboard.FmtText, data)
	case typ == history.TypePNG:
		clipboard.Write(clipboard.FmtImage, data)
	default:
		slog.Debug("clipboard type not writable on this backend, skipping", "type", typ)
	}
}

func (b *designBackend) Close() {}

// atottoBackend handles plain text only.
type atottoBackend struct {
	rev revision
}

func (b *atottoBackend) Name() string { return "atotto clipboard (text, poll)" }

func (b *atottoBackend) read() (string, bool) {
	s, err := atotto.ReadAll()
	if err != nil {
		slog.Debug("clipboard read failed", "err", err)
		return "", false
	}
	return s, true
}

func (b *atottoBackend) ChangeCount() int64 {
	s, _ := b.read()
	return b.rev.observe([]byte(s))
}

func (b *atottoBackend) Types() []string {
	if _, ok := b.read(); !ok {
		return nil
	}
	return []string{history.TypeText}
}

func (b *atottoBackend) Items() []Item {
	s, ok := b.read()
	if !ok {
		return nil
	}
	it := &memItem{}
	it.set(history.TypeText, []byte(s))
	return []Item{it}
}

func (b *atottoBackend) Clear() {}

func (b *atottoBackend) SetData(typ string, data []byte) {
	if !history.IsPlainText(typ) {
		slog.Debug("clipboard type not writable on this backend, skipping", "type", typ)
		return
	}
	if err := atotto.WriteAll(string(data)); err != nil {
		slog.Error("clipboard write failed", "err", err)
	}
}

func (b *atottoBackend) Close() {}
