// Package filter decides whether a clipboard entry is recorded and which of
// its representations are kept.
package filter

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/history"
)

// Reason explains a Decision.
type Reason string

const (
	Accepted       Reason = "accepted"
	IgnoredMarker  Reason = "ignored type marker"
	NoEnabledTypes Reason = "no enabled types"
	EmptyEntry     Reason = "empty entry"
	BlankText      Reason = "blank text"
	IgnoredPattern Reason = "ignored pattern"
)

// Decision is the outcome of Decide.
type Decision struct {
	Reason Reason
	// Retained holds the kept representations when Reason is Accepted.
	// It may be empty: an accepted entry whose every representation was
	// disabled still produces a record.
	Retained []history.Representation
}

// Accepted reports whether the entry should become a history item.
func (d Decision) Accepted() bool { return d.Reason == Accepted }

// Decide applies s to e.
//
// Whole-entry rejects are evaluated against the clipboard-level type set, with
// ignore markers checked before enabled types. Per-type disabling only drops
// individual representations.
func Decide(e history.Entry, s config.Settings) Decision {
	board := e.BoardTypes
	if len(board) == 0 {
		board = entryTypes(e)
	}

	ignored := s.IgnoredSet()
	enabled := s.EnabledSet()
	if anyIn(board, ignored) {
		return Decision{Reason: IgnoredMarker}
	}
	if !anyIn(board, enabled) {
		return Decision{Reason: NoEnabledTypes}
	}

	// Some applications push an auxiliary item with no types next to the real
	// one. It carries nothing to record.
	if len(e.Representations) == 0 {
		return Decision{Reason: EmptyEntry}
	}

	if text, ok := e.PlainText(); ok {
		if strings.TrimSpace(string(text.Data)) == "" {
			return Decision{Reason: BlankText}
		}
		if matchesAny(string(text.Data), s.IgnorePatterns) {
			return Decision{Reason: IgnoredPattern}
		}
	}

	var kept []history.Representation
	for _, r := range e.Representations {
		if _, ok := enabled[r.Type]; ok {
			kept = append(kept, r)
		}
	}
	return Decision{Reason: Accepted, Retained: kept}
}

func entryTypes(e history.Entry) []string {
	out := make([]string, len(e.Representations))
	for i, r := range e.Representations {
		out[i] = r.Type
	}
	return out
}

func anyIn(types []string, set map[string]struct{}) bool {
	for _, t := range types {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// patterns caches compiled ignore patterns. Invalid patterns are cached as nil
// so they are reported once.
var patterns sync.Map // string → *regexp.Regexp

func matchesAny(text string, exprs []string) bool {
	for _, expr := range exprs {
		re := compile(expr)
		if re != nil && re.MatchString(text) {
			return true
		}
	}
	return false
}

func compile(expr string) *regexp.Regexp {
	if v, ok := patterns.Load(expr); ok {
		return v.(*regexp.Regexp)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		slog.Warn("invalid ignore pattern, skipping", "pattern", expr, "err", err)
		re = nil
	}
	patterns.Store(expr, re)
	return re
}
