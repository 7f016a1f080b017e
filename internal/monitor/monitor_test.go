package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipkeep/internal/clip"
	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/history"
)

func text(s string) []history.Representation {
	return []history.Representation{{Type: history.TypeText, Data: []byte(s)}}
}

// countingPasteboard records how often contents are read.
type countingPasteboard struct {
	*clip.Memory
	itemReads int
}

func (c *countingPasteboard) Items() []clip.Item {
	c.itemReads++
	return c.Memory.Items()
}

// missingItem lists a type it cannot produce.
type missingItem struct{}

func (missingItem) Types() []string { return []string{history.TypeText, history.TypePNG} }
func (missingItem) Data(typ string) []byte {
	if typ == history.TypeText {
		return []byte("x")
	}
	return nil
}

type missingPasteboard struct{ *clip.Memory }

func (p missingPasteboard) Items() []clip.Item { return []clip.Item{missingItem{}} }

func collect(m *Monitor) *[]history.Item {
	var got []history.Item
	m.OnCapture(func(it history.Item) { got = append(got, it) })
	return &got
}

func TestExistingContentNotCaptured(t *testing.T) {
	pb := clip.NewMemory()
	pb.Publish(nil, text("before start"))

	m := New(pb, config.Static(config.Default()))
	got := collect(m)
	m.Tick()
	assert.Empty(t, *got)
}

func TestCapturesChange(t *testing.T) {
	pb := clip.NewMemory()
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish(nil, text("hello"))
	m.Tick()

	require.Len(t, *got, 1)
	it := (*got)[0]
	assert.Equal(t, "hello", it.Text())
	assert.Equal(t, pb.ChangeCount(), it.ChangeCount)
	assert.Equal(t, pb.ChangeCount(), m.ChangeCount())
}

func TestNoChangeNoCallbacks(t *testing.T) {
	pb := &countingPasteboard{Memory: clip.NewMemory()}
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish(nil, text("once"))
	m.Tick()
	require.Len(t, *got, 1)
	reads := pb.itemReads

	m.Tick()
	assert.Len(t, *got, 1)
	assert.Equal(t, reads, pb.itemReads, "an unchanged revision must not read contents")
}

func TestObserversInRegistrationOrder(t *testing.T) {
	pb := clip.NewMemory()
	m := New(pb, config.Static(config.Default()))

	var order []string
	m.OnCapture(func(history.Item) { order = append(order, "first") })
	unsub := m.OnCapture(func(history.Item) { order = append(order, "second") })
	m.OnCapture(func(history.Item) { order = append(order, "third") })

	pb.Publish(nil, text("a"))
	m.Tick()
	assert.Equal(t, []string{"first", "second", "third"}, order)

	unsub()
	unsub()
	order = nil
	pb.Publish(nil, text("b"))
	m.Tick()
	assert.Equal(t, []string{"first", "third"}, order)
	assert.Equal(t, 2, m.Observers())
}

func TestIgnoreAllAdvancesCursor(t *testing.T) {
	pb := clip.NewMemory()
	s := config.Default()
	m := New(pb, config.SourceFunc(func() config.Settings { return s }))
	got := collect(m)

	s.IgnoreAll = true
	pb.Publish(nil, text("secret"))
	m.Tick()
	assert.Empty(t, *got)
	assert.Equal(t, pb.ChangeCount(), m.ChangeCount())

	// Turning capture back on does not replay the suppressed change.
	s.IgnoreAll = false
	m.Tick()
	assert.Empty(t, *got)

	pb.Publish(nil, text("public"))
	m.Tick()
	require.Len(t, *got, 1)
	assert.Equal(t, "public", (*got)[0].Text())
}

func TestSettingsReadEveryTick(t *testing.T) {
	pb := clip.NewMemory()
	s := config.Default()
	m := New(pb, config.SourceFunc(func() config.Settings { return s }))
	got := collect(m)

	s.Enabled = []string{history.TypePNG}
	pb.Publish(nil, text("dropped"))
	m.Tick()
	assert.Empty(t, *got)

	s.Enabled = []string{history.TypeText}
	pb.Publish(nil, text("kept"))
	m.Tick()
	require.Len(t, *got, 1)
}

func TestAuxiliaryEmptyItemYieldsOneRecord(t *testing.T) {
	pb := clip.NewMemory()
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish(nil, text("meaningful"), nil)
	m.Tick()
	require.Len(t, *got, 1)
	assert.Equal(t, "meaningful", (*got)[0].Text())
}

func TestAuxiliaryBlankTextItemYieldsOneRecord(t *testing.T) {
	pb := clip.NewMemory()
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish(nil, text("meaningful"), text(""))
	m.Tick()
	require.Len(t, *got, 1)
	assert.Equal(t, "meaningful", (*got)[0].Text())
}

func TestMultipleItemsEachRecorded(t *testing.T) {
	pb := clip.NewMemory()
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish(nil, text("one"), text("two"))
	m.Tick()
	require.Len(t, *got, 2)
	assert.Equal(t, "one", (*got)[0].Text())
	assert.Equal(t, "two", (*got)[1].Text())
}

func TestMarkerOnBoardRejectsAllItems(t *testing.T) {
	pb := clip.NewMemory()
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish([]string{"org.nspasteboard.ConcealedType"}, text("password"))
	m.Tick()
	assert.Empty(t, *got)
	assert.Equal(t, pb.ChangeCount(), m.ChangeCount())
}

func TestMissingRepresentationIsEmpty(t *testing.T) {
	pb := missingPasteboard{Memory: clip.NewMemory()}
	m := New(pb, config.Static(config.Default()))
	got := collect(m)

	pb.Publish(nil, text("x"))
	m.Tick()
	require.Len(t, *got, 1)
	reps := (*got)[0].Representations
	require.Len(t, reps, 2)
	assert.Equal(t, history.TypePNG, reps[1].Type)
	assert.Empty(t, reps[1].Data)
}
