package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipkeep/internal/history"
)

func TestDefaultEnablesEverySupportedType(t *testing.T) {
	s := Default()
	assert.ElementsMatch(t, SupportedTypes, s.Enabled)
	assert.False(t, s.IgnoreAll)
	assert.False(t, s.PlaySound)

	// Default must not alias the package-level slice.
	s.Enabled[0] = "mutated"
	assert.NotEqual(t, "mutated", SupportedTypes[0])
}

func TestIgnoredSetIsUnionWithBuiltins(t *testing.T) {
	s := Settings{IgnoredTypes: []string{"com.example.secret"}}
	set := s.IgnoredSet()
	assert.Contains(t, set, "com.example.secret")
	for _, b := range BuiltinIgnoredTypes {
		assert.Contains(t, set, b)
	}
}

func TestStaticSource(t *testing.T) {
	src := Static(Settings{PlaySound: true})
	assert.True(t, src.Settings().PlaySound)
}

func TestLiveFromDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	l := NewLive(v)

	s := l.Settings()
	assert.ElementsMatch(t, SupportedTypes, s.Enabled)
	assert.Empty(t, s.IgnoredTypes)
	assert.False(t, s.IgnoreAll)
}

func TestLiveDropsUnsupportedEnabledTypes(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyEnabledTypes, []string{history.TypeText, "com.example.unknown"})
	l := NewLive(v)

	assert.Equal(t, []string{history.TypeText}, l.Settings().Enabled)
}

func TestLiveReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipkeep.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
enabled_types = ["public.utf8-plain-text", "public.png"]
ignored_types = ["com.example.secret"]
ignore_patterns = ["^\\d{6}$"]
play_sound = true
`), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	l := NewLive(v)

	s := l.Settings()
	assert.Equal(t, []string{history.TypeText, history.TypePNG}, s.Enabled)
	assert.Equal(t, []string{"com.example.secret"}, s.IgnoredTypes)
	assert.Equal(t, []string{`^\d{6}$`}, s.IgnorePatterns)
	assert.True(t, s.PlaySound)
}

func TestLivePauseOverride(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	l := NewLive(v)

	l.SetPaused(true)
	assert.True(t, l.Paused())
	assert.True(t, l.Settings().IgnoreAll)

	l.SetPaused(false)
	assert.False(t, l.Settings().IgnoreAll)
}

func TestLiveSettingsAreCopies(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	l := NewLive(v)

	s := l.Settings()
	s.Enabled[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Settings().Enabled[0])
}
