package config

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config keys shared by the daemon command and Live.
const (
	KeyPollInterval   = "poll_interval"
	KeySupportedTypes = "supported_types"
	KeyEnabledTypes   = "enabled_types"
	KeyIgnoredTypes   = "ignored_types"
	KeyIgnorePatterns = "ignore_patterns"
	KeyIgnoreAll      = "ignore_all"
	KeyPlaySound      = "play_sound"
	KeyRecentSize     = "recent_size"
)

// DefaultPollInterval is how often the clipboard revision counter is sampled.
const DefaultPollInterval = time.Second

// DefaultRecentSize bounds the daemon's in-memory list of recent captures.
const DefaultRecentSize = 50

// SetDefaults registers the capture defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPollInterval, DefaultPollInterval)
	v.SetDefault(KeySupportedTypes, SupportedTypes)
	v.SetDefault(KeyEnabledTypes, SupportedTypes)
	v.SetDefault(KeyIgnoredTypes, []string{})
	v.SetDefault(KeyIgnorePatterns, []string{})
	v.SetDefault(KeyIgnoreAll, false)
	v.SetDefault(KeyPlaySound, false)
	v.SetDefault(KeyRecentSize, DefaultRecentSize)
}

// Live is a Source backed by viper. It snapshots the configuration on
// construction and again whenever the config file changes on disk, so
// Settings never touches viper and is safe to call from any goroutine.
type Live struct {
	v *viper.Viper

	mu     sync.RWMutex
	cur    Settings
	paused bool
}

// NewLive snapshots v and, if a config file was loaded, watches it.
func NewLive(v *viper.Viper) *Live {
	l := &Live{v: v}
	l.reload()
	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			slog.Info("config file changed", "path", e.Name, "op", e.Op.String())
			l.reload()
		})
		v.WatchConfig()
	}
	return l
}

// Settings implements Source.
func (l *Live) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := l.cur
	s.Supported = slices.Clone(s.Supported)
	s.Enabled = slices.Clone(s.Enabled)
	s.IgnoredTypes = slices.Clone(s.IgnoredTypes)
	s.IgnorePatterns = slices.Clone(s.IgnorePatterns)
	if l.paused {
		s.IgnoreAll = true
	}
	return s
}

// SetPaused overrides ignore_all at runtime without touching the file.
func (l *Live) SetPaused(paused bool) {
	l.mu.Lock()
	l.paused = paused
	l.mu.Unlock()
	slog.Info("capture override changed", "paused", paused)
}

// Paused reports the runtime override.
func (l *Live) Paused() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.paused
}

func (l *Live) reload() {
	s := fromViper(l.v)
	l.mu.Lock()
	l.cur = s
	l.mu.Unlock()
	slog.Debug("settings loaded",
		"enabled", s.Enabled,
		"ignored", s.IgnoredTypes,
		"patterns", len(s.IgnorePatterns),
		"ignore_all", s.IgnoreAll,
		"play_sound", s.PlaySound,
	)
}

func fromViper(v *viper.Viper) Settings {
	supported := v.GetStringSlice(KeySupportedTypes)
	if len(supported) == 0 {
		supported = slices.Clone(SupportedTypes)
	}
	supportedSet := toSet(supported)

	var enabled []string
	for _, t := range v.GetStringSlice(KeyEnabledTypes) {
		if _, ok := supportedSet[t]; !ok {
			slog.Warn("enabled type is not supported, ignoring", "type", t)
			continue
		}
		enabled = append(enabled, t)
	}

	return Settings{
		Supported:      supported,
		Enabled:        enabled,
		IgnoredTypes:   v.GetStringSlice(KeyIgnoredTypes),
		IgnorePatterns: v.GetStringSlice(KeyIgnorePatterns),
		IgnoreAll:      v.GetBool(KeyIgnoreAll),
		PlaySound:      v.GetBool(KeyPlaySound),
	}
}
