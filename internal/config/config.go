// Package config holds the capture and paste-back settings consumed by the
// clipboard core. The core never stores settings: callers fetch a fresh
// Settings snapshot from a Source before every decision.
package config

import (
	"slices"

	"go.klb.dev/clipkeep/internal/history"
)

// SupportedTypes is the default set of representation types the core knows
// how to capture.
var SupportedTypes = []string{
	history.TypeFileURL,
	history.TypeHTML,
	history.TypePNG,
	history.TypeRTF,
	history.TypeText,
	history.TypeTIFF,
}

// BuiltinIgnoredTypes are markers that password managers and clipboard tools
// put on entries that must never be recorded. Users can extend the set but not
// shrink it.
var BuiltinIgnoredTypes = []string{
	"org.nspasteboard.TransientType",
	"org.nspasteboard.ConcealedType",
	"org.nspasteboard.AutoGeneratedType",
	"de.petermaurer.TransientPasteboardType",
	"com.typeit4me.clipping",
	"Pasteboard generator type",
	"com.agilebits.onepassword",
	"net.antelle.keeweb",
}

// Settings is a point-in-time copy of the user configuration.
type Settings struct {
	// Supported lists every type the core can capture.
	Supported []string
	// Enabled is the subset of Supported the user wants recorded.
	Enabled []string
	// IgnoredTypes are user-defined ignore markers, added to BuiltinIgnoredTypes.
	IgnoredTypes []string
	// IgnorePatterns are regular expressions; plain text matching any of them
	// is not recorded.
	IgnorePatterns []string
	// IgnoreAll suspends capture. Changes seen while set are dropped.
	IgnoreAll bool
	// PlaySound plays a confirmation sound after paste-back.
	PlaySound bool
}

// Default returns settings with every supported type enabled.
func Default() Settings {
	return Settings{
		Supported: slices.Clone(SupportedTypes),
		Enabled:   slices.Clone(SupportedTypes),
	}
}

// EnabledSet returns Enabled as a set.
func (s Settings) EnabledSet() map[string]struct{} {
	return toSet(s.Enabled)
}

// IgnoredSet returns the union of BuiltinIgnoredTypes and IgnoredTypes.
func (s Settings) IgnoredSet() map[string]struct{} {
	set := toSet(BuiltinIgnoredTypes)
	for _, t := range s.IgnoredTypes {
		set[t] = struct{}{}
	}
	return set
}

// Source supplies the current settings. Implementations must be safe to call
// from any goroutine.
type Source interface {
	Settings() Settings
}

// SourceFunc adapts a function to Source.
type SourceFunc func() Settings

func (f SourceFunc) Settings() Settings { return f() }

// Static returns a Source that always yields s.
func Static(s Settings) Source {
	return SourceFunc(func() Settings { return s })
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, t := range list {
		set[t] = struct{}{}
	}
	return set
}
