package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/history"
)

func rep(typ, data string) history.Representation {
	return history.Representation{Type: typ, Data: []byte(data)}
}

func entry(reps ...history.Representation) history.Entry {
	e := history.Entry{Representations: reps}
	for _, r := range reps {
		e.BoardTypes = append(e.BoardTypes, r.Type)
	}
	return e
}

func TestRejectsWhenNoBoardTypeIsEnabled(t *testing.T) {
	s := config.Default()
	s.Enabled = []string{history.TypeText}

	d := Decide(entry(rep(history.TypePNG, "png"), rep(history.TypeTIFF, "tiff")), s)
	assert.False(t, d.Accepted())
	assert.Equal(t, NoEnabledTypes, d.Reason)
	assert.Nil(t, d.Retained)
}

func TestIgnoreMarkerTakesPrecedence(t *testing.T) {
	s := config.Default()
	e := entry(rep(history.TypeText, "hunter2"))
	e.BoardTypes = append(e.BoardTypes, "org.nspasteboard.ConcealedType")

	// Text is enabled and non-blank: without the marker this entry is kept.
	d := Decide(e, s)
	assert.Equal(t, IgnoredMarker, d.Reason)
}

func TestUserIgnoredTypes(t *testing.T) {
	s := config.Default()
	s.IgnoredTypes = []string{"com.example.secret"}

	e := entry(rep(history.TypeText, "x"))
	e.BoardTypes = append(e.BoardTypes, "com.example.secret")
	assert.Equal(t, IgnoredMarker, Decide(e, s).Reason)
}

func TestBoardLevelTypesBeyondItem(t *testing.T) {
	// The board reports a marker that the item itself does not expose.
	s := config.Default()
	e := history.Entry{
		Representations: []history.Representation{rep(history.TypeText, "secret")},
		BoardTypes:      []string{history.TypeText, "com.agilebits.onepassword"},
	}
	assert.Equal(t, IgnoredMarker, Decide(e, s).Reason)
}

func TestBlankTextRejected(t *testing.T) {
	s := config.Default()

	d := Decide(entry(rep(history.TypeText, " \n\t ")), s)
	assert.Equal(t, BlankText, d.Reason)

	d = Decide(entry(rep(history.TypeText, "  hello  ")), s)
	require.True(t, d.Accepted())
	assert.Equal(t, []history.Representation{rep(history.TypeText, "  hello  ")}, d.Retained)
}

func TestBlankTextCheckSkippedWithoutPlainText(t *testing.T) {
	s := config.Default()
	d := Decide(entry(rep(history.TypePNG, "")), s)
	require.True(t, d.Accepted())
	assert.Equal(t, []history.Representation{rep(history.TypePNG, "")}, d.Retained)
}

func TestDisabledTypesDroppedIndividually(t *testing.T) {
	s := config.Default()
	s.Enabled = []string{history.TypeText}

	d := Decide(entry(rep(history.TypeText, "a"), rep(history.TypeHTML, "<p>a</p>")), s)
	require.True(t, d.Accepted())
	assert.Equal(t, []history.Representation{rep(history.TypeText, "a")}, d.Retained)
}

func TestAllRepresentationsDisabledStillAccepted(t *testing.T) {
	s := config.Default()
	s.Enabled = []string{history.TypeText}

	// The board has text (from another item), this item only has HTML.
	e := history.Entry{
		Representations: []history.Representation{rep(history.TypeHTML, "<p>a</p>")},
		BoardTypes:      []string{history.TypeText, history.TypeHTML},
	}
	d := Decide(e, s)
	require.True(t, d.Accepted())
	assert.Empty(t, d.Retained)
}

func TestRetentionPreservesOrder(t *testing.T) {
	s := config.Default()
	reps := []history.Representation{
		rep(history.TypeRTF, "{\\rtf1}"),
		rep(history.TypeText, "a"),
		rep(history.TypeHTML, "<b>a</b>"),
	}
	d := Decide(entry(reps...), s)
	require.True(t, d.Accepted())
	assert.Equal(t, reps, d.Retained)
}

func TestEmptyAuxiliaryEntryRejected(t *testing.T) {
	s := config.Default()
	e := history.Entry{BoardTypes: []string{history.TypeText}}
	assert.Equal(t, EmptyEntry, Decide(e, s).Reason)
}

func TestIgnorePatterns(t *testing.T) {
	s := config.Default()
	s.IgnorePatterns = []string{`^\d{6}$`, `(`}

	assert.Equal(t, IgnoredPattern, Decide(entry(rep(history.TypeText, "123456")), s).Reason)
	assert.True(t, Decide(entry(rep(history.TypeText, "1234567")), s).Accepted())
}

func TestEntryTypesUsedWhenBoardTypesMissing(t *testing.T) {
	s := config.Default()
	e := history.Entry{Representations: []history.Representation{
		rep(history.TypeText, "x"),
		rep("org.nspasteboard.TransientType", ""),
	}}
	assert.Equal(t, IgnoredMarker, Decide(e, s).Reason)
}
