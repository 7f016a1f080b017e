package history

import (
	"context"
	"log/slog"
)

const previewLen = 120

// LogItem logs a history event at INFO (id, types) and DEBUG (text preview up
// to 120 chars, or byte size for binary representations).
func LogItem(event string, it Item) {
	slog.Info(event, "id", it.ID, "change_count", it.ChangeCount, "types", it.Types())

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, r := range it.Representations {
		if IsPlainText(r.Type) {
			slog.Debug("history representation", "type", r.Type, "preview", Preview(string(r.Data)))
		} else {
			slog.Debug("history representation", "type", r.Type, "size_bytes", len(r.Data))
		}
	}
}

// Preview truncates s to a log-friendly length.
func Preview(s string) string {
	r := []rune(s)
	if len(r) > previewLen {
		return string(r[:previewLen]) + "…"
	}
	return s
}
