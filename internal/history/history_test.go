package history

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemCopiesRepresentations(t *testing.T) {
	reps := []Representation{
		{Type: TypeText, Data: []byte("hi")},
		{Type: TypePNG, Data: []byte{1, 2}},
	}
	it := NewItem(reps, 7)
	reps[0] = Representation{Type: TypeHTML}

	require.Len(t, it.Representations, 2)
	assert.Equal(t, TypeText, it.Representations[0].Type)
	assert.Equal(t, int64(7), it.ChangeCount)
	assert.NotEmpty(t, it.ID)
	assert.False(t, it.CapturedAt.IsZero())
}

func TestNewItemUniqueIDs(t *testing.T) {
	a := NewItem(nil, 1)
	b := NewItem(nil, 1)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestItemTextAndTypes(t *testing.T) {
	it := Item{Representations: []Representation{
		{Type: TypeHTML, Data: []byte("<b>x</b>")},
		{Type: "text/plain", Data: []byte("x")},
	}}
	assert.Equal(t, "x", it.Text())
	assert.Equal(t, []string{TypeHTML, "text/plain"}, it.Types())
	assert.Equal(t, []Representation{{Type: "text/plain", Data: []byte("x")}}, it.PlainOnly())

	img := Item{Representations: []Representation{{Type: TypePNG}}}
	assert.Equal(t, "", img.Text())
	assert.Empty(t, img.PlainOnly())
}

func TestEntryPlainText(t *testing.T) {
	e := Entry{Representations: []Representation{
		{Type: TypeRTF},
		{Type: "NSStringPboardType", Data: []byte("legacy")},
	}}
	r, ok := e.PlainText()
	require.True(t, ok)
	assert.Equal(t, "legacy", string(r.Data))

	_, ok = Entry{}.PlainText()
	assert.False(t, ok)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))
	long := strings.Repeat("é", 200)
	p := Preview(long)
	assert.True(t, strings.HasSuffix(p, "…"))
	assert.Len(t, []rune(p), previewLen+1)
}
