// Package monitor implements clipboard change detection.
//
// A Monitor samples the pasteboard revision counter on every Tick. When the
// counter moved, it reads every pasteboard item, runs each through the content
// filter and hands accepted items to its observers, synchronously and in
// registration order. Tick is meant to be driven by a runloop.Loop so that no
// two ticks ever overlap.
package monitor

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"go.klb.dev/clipkeep/internal/clip"
	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/filter"
	"go.klb.dev/clipkeep/internal/history"
)

// Observer receives each accepted item. It runs inside the tick and must not
// block.
type Observer func(history.Item)

type subscription struct {
	fn Observer
}

// Monitor is the change detector.
type Monitor struct {
	pb       clip.Pasteboard
	settings config.Source

	// changeCount is only written by Tick, after processing completes.
	changeCount atomic.Int64

	mu        sync.RWMutex
	observers []*subscription
}

// New returns a Monitor positioned at the pasteboard's current revision, so
// contents already present are not captured.
func New(pb clip.Pasteboard, settings config.Source) *Monitor {
	m := &Monitor{pb: pb, settings: settings}
	m.changeCount.Store(pb.ChangeCount())
	return m
}

// OnCapture registers fn and returns a function that removes it.
func (m *Monitor) OnCapture(fn Observer) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	m.mu.Lock()
	m.observers = append(m.observers, sub)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.observers = slices.DeleteFunc(m.observers, func(s *subscription) bool { return s == sub })
		})
	}
}

// ChangeCount returns the last fully processed revision.
func (m *Monitor) ChangeCount() int64 { return m.changeCount.Load() }

// Observers returns the number of registered observers.
func (m *Monitor) Observers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observers)
}

// Tick runs one polling cycle.
func (m *Monitor) Tick() {
	current := m.pb.ChangeCount()
	if current == m.changeCount.Load() {
		return
	}

	s := m.settings.Settings()
	if s.IgnoreAll {
		// The change is dropped for good: the cursor still advances.
		slog.Debug("clipboard change ignored", "change_count", current)
	} else {
		m.capture(current, s)
	}

	m.changeCount.Store(current)
}

func (m *Monitor) capture(changeCount int64, s config.Settings) {
	board := m.pb.Types()
	for _, raw := range m.pb.Items() {
		e := entryFrom(raw, board)
		d := filter.Decide(e, s)
		if !d.Accepted() {
			slog.Debug("clipboard entry skipped",
				"reason", d.Reason,
				"change_count", changeCount,
				"types", raw.Types(),
			)
			continue
		}
		it := history.NewItem(d.Retained, changeCount)
		history.LogItem("clipboard captured", it)
		m.emit(it)
	}
}

func (m *Monitor) emit(it history.Item) {
	m.mu.RLock()
	subs := slices.Clone(m.observers)
	m.mu.RUnlock()
	for _, s := range subs {
		s.fn(it)
	}
}

// entryFrom reads every representation of raw. A type the item lists but
// cannot produce becomes an empty representation.
func entryFrom(raw clip.Item, board []string) history.Entry {
	types := raw.Types()
	e := history.Entry{
		Representations: make([]history.Representation, 0, len(types)),
		BoardTypes:      board,
	}
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		e.Representations = append(e.Representations, history.Representation{
			Type: t,
			Data: raw.Data(t),
		})
	}
	return e
}
