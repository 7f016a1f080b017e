package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipkeep/internal/clip"
	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/history"
	"go.klb.dev/clipkeep/internal/monitor"
)

type fakeSound struct{ plays int }

func (f *fakeSound) Play() { f.plays++ }

func written(t *testing.T, pb *clip.Memory) []history.Representation {
	t.Helper()
	items := pb.Items()
	require.Len(t, items, 1)
	var out []history.Representation
	for _, typ := range items[0].Types() {
		out = append(out, history.Representation{Type: typ, Data: items[0].Data(typ)})
	}
	return out
}

var (
	textRep  = history.Representation{Type: history.TypeText, Data: []byte("hello")}
	htmlRep  = history.Representation{Type: history.TypeHTML, Data: []byte("<b>hello</b>")}
	imageRep = history.Representation{Type: history.TypePNG, Data: []byte{0x89, 'P', 'N', 'G'}}
)

func TestCopyWritesAllRepresentations(t *testing.T) {
	pb := clip.NewMemory()
	pb.Publish(nil, []history.Representation{{Type: history.TypeRTF, Data: []byte("old")}})
	w := New(pb, nil)

	w.Copy(history.Item{Representations: []history.Representation{textRep, htmlRep}}, Options{})
	assert.Equal(t, []history.Representation{textRep, htmlRep}, written(t, pb))
}

func TestCopyRemoveFormattingKeepsText(t *testing.T) {
	pb := clip.NewMemory()
	w := New(pb, nil)

	w.Copy(history.Item{Representations: []history.Representation{textRep, imageRep}}, Options{RemoveFormatting: true})
	assert.Equal(t, []history.Representation{textRep}, written(t, pb))
}

func TestCopyRemoveFormattingFallsBackWithoutText(t *testing.T) {
	pb := clip.NewMemory()
	w := New(pb, nil)

	w.Copy(history.Item{Representations: []history.Representation{imageRep}}, Options{RemoveFormatting: true})
	assert.Equal(t, []history.Representation{imageRep}, written(t, pb))
}

func TestCopyBumpsChangeCount(t *testing.T) {
	pb := clip.NewMemory()
	w := New(pb, nil)
	before := pb.ChangeCount()
	w.Copy(history.Item{Representations: []history.Representation{textRep}}, Options{})
	assert.Greater(t, pb.ChangeCount(), before)
}

func TestCopySound(t *testing.T) {
	pb := clip.NewMemory()
	s := &fakeSound{}
	w := New(pb, s)
	it := history.Item{Representations: []history.Representation{textRep}}

	w.Copy(it, Options{})
	assert.Zero(t, s.plays)

	w.Copy(it, Options{PlaySound: true})
	assert.Equal(t, 1, s.plays)

	// A nil Sounder never plays.
	New(pb, nil).Copy(it, Options{PlaySound: true})
}

// The writer does not suppress its own write: the next tick records the
// restored item as a fresh capture.
func TestCopyIsRecapturedByMonitor(t *testing.T) {
	pb := clip.NewMemory()
	m := monitor.New(pb, config.Static(config.Default()))
	var got []history.Item
	m.OnCapture(func(it history.Item) { got = append(got, it) })

	orig := history.NewItem([]history.Representation{textRep, htmlRep}, 0)
	New(pb, nil).Copy(orig, Options{})
	m.Tick()

	require.Len(t, got, 1)
	assert.NotEqual(t, orig.ID, got[0].ID)
	assert.Equal(t, orig.Representations, got[0].Representations)
}
