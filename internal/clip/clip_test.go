package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipkeep/internal/history"
)

func TestRevisionCountsOnlyChanges(t *testing.T) {
	var r revision
	c1 := r.observe([]byte("a"))
	c2 := r.observe([]byte("a"))
	c3 := r.observe([]byte("b"))
	c4 := r.observe([]byte("a"))

	assert.Equal(t, c1, c2)
	assert.Greater(t, c3, c2)
	assert.Greater(t, c4, c3)
}

func TestRevisionPartBoundaries(t *testing.T) {
	var r revision
	c1 := r.observe([]byte("ab"), nil)
	c2 := r.observe([]byte("a"), []byte("b"))
	assert.NotEqual(t, c1, c2)
}

func TestMemoryPublish(t *testing.T) {
	m := NewMemory()
	before := m.ChangeCount()

	m.Publish([]string{"com.example.marker"},
		[]history.Representation{
			{Type: history.TypeText, Data: []byte("hello")},
			{Type: history.TypeHTML, Data: []byte("<b>hello</b>")},
		},
		nil,
	)

	assert.Greater(t, m.ChangeCount(), before)
	assert.Equal(t, []string{history.TypeText, history.TypeHTML, "com.example.marker"}, m.Types())

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, []string{history.TypeText, history.TypeHTML}, items[0].Types())
	assert.Equal(t, "hello", string(items[0].Data(history.TypeText)))
	assert.Nil(t, items[0].Data(history.TypePNG))
	assert.Empty(t, items[1].Types())
}

func TestMemoryClearAndSetData(t *testing.T) {
	m := NewMemory()
	m.Publish(nil, []history.Representation{{Type: history.TypePNG, Data: []byte{1}}})
	c := m.ChangeCount()

	m.Clear()
	assert.Greater(t, m.ChangeCount(), c)
	assert.Empty(t, m.Items())

	c = m.ChangeCount()
	m.SetData(history.TypeText, []byte("x"))
	m.SetData(history.TypeRTF, []byte("{\\rtf1 x}"))
	assert.Equal(t, c, m.ChangeCount(), "writes within a generation keep the count")

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, []string{history.TypeText, history.TypeRTF}, items[0].Types())
}

func TestMemoryItemsAreSnapshots(t *testing.T) {
	m := NewMemory()
	m.SetData(history.TypeText, []byte("one"))
	snap := m.Items()

	m.SetData(history.TypeText, []byte("two"))
	assert.Equal(t, "one", string(snap[0].Data(history.TypeText)))
}
