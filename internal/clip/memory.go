package clip

import (
	"slices"
	"sync"

	"go.klb.dev/clipkeep/internal/history"
)

// Memory is an in-process Pasteboard. It follows NSPasteboard semantics:
// Clear starts a new generation and bumps the change count, SetData writes
// into the single item of that generation.
type Memory struct {
	mu    sync.Mutex
	count int64
	items []*memItem
	extra []string
}

// NewMemory returns an empty in-memory pasteboard.
func NewMemory() *Memory { return &Memory{} }

// Publish replaces the contents the way another application would: one new
// generation holding items, plus board-level types no item exposes.
func (m *Memory) Publish(extra []string, items ...[]history.Representation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	m.extra = slices.Clone(extra)
	m.items = m.items[:0]
	for _, reps := range items {
		it := &memItem{}
		for _, r := range reps {
			it.set(r.Type, r.Data)
		}
		m.items = append(m.items, it)
	}
}

func (m *Memory) Name() string { return "in-memory" }

func (m *Memory) ChangeCount() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func (m *Memory) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	seen := make(map[string]struct{})
	add := func(t string) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, it := range m.items {
		for _, t := range it.types {
			add(t)
		}
	}
	for _, t := range m.extra {
		add(t)
	}
	return out
}

func (m *Memory) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, len(m.items))
	for i, it := range m.items {
		out[i] = it.clone()
	}
	return out
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	m.items = nil
	m.extra = nil
}

func (m *Memory) SetData(typ string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		m.items = append(m.items, &memItem{})
	}
	m.items[0].set(typ, data)
}

func (m *Memory) Close() {}

// memItem is a Memory pasteboard item. Snapshots handed out by Items are
// clones, so later writes never mutate them.
type memItem struct {
	types []string
	data  map[string][]byte
}

func (it *memItem) set(typ string, data []byte) {
	if it.data == nil {
		it.data = make(map[string][]byte)
	}
	if _, ok := it.data[typ]; !ok {
		it.types = append(it.types, typ)
	}
	it.data[typ] = slices.Clone(data)
}

func (it *memItem) clone() *memItem {
	c := &memItem{types: slices.Clone(it.types), data: make(map[string][]byte, len(it.data))}
	for k, v := range it.data {
		c.data[k] = v
	}
	return c
}

func (it *memItem) Types() []string        { return slices.Clone(it.types) }
func (it *memItem) Data(typ string) []byte { return it.data[typ] }
