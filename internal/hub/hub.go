// Package hub fans captured history items out to watchers and keeps a bounded
// list of recent captures.
// It is transport-agnostic: peers register, receive items via Send, and the
// capture side publishes.
package hub

import (
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/clipkeep/internal/history"
)

// Peer is anything that can receive captured items from the hub.
type Peer interface {
	ID() string
	Info() PeerInfo
	// Send delivers an item to the peer. Must be non-blocking.
	Send(history.Item)
}

// PeerInfo describes a registered peer for status output.
// AcceptedTypes limits the representations delivered; empty means all.
type PeerInfo struct {
	ID            string    `json:"id"`
	Addr          string    `json:"addr"`
	AcceptedTypes []string  `json:"accepted_types,omitempty"`
	ConnectedAt   time.Time `json:"connected_at"`
	LastSeen      time.Time `json:"last_seen,omitzero"`
}

// Hub routes captured items to all registered peers.
type Hub struct {
	mu     sync.RWMutex
	peers  map[string]Peer
	recent []history.Item // newest first
	size   int
}

// New returns an empty Hub keeping at most size recent items.
func New(size int) *Hub {
	if size < 1 {
		size = 1
	}
	return &Hub{
		peers: make(map[string]Peer),
		size:  size,
	}
}

// Register adds a peer and immediately delivers the latest item, filtered to
// the peer's accepted types.
func (h *Hub) Register(p Peer) {
	h.mu.Lock()
	h.peers[p.ID()] = p
	var latest *history.Item
	if len(h.recent) > 0 {
		latest = &h.recent[0]
	}
	total := len(h.peers)
	h.mu.Unlock()

	info := p.Info()
	slog.Info("peer registered",
		"peer", p.ID(),
		"addr", info.Addr,
		"accept", info.AcceptedTypes,
		"total", total,
	)

	if latest != nil {
		if it, ok := FilterItem(*latest, info.AcceptedTypes); ok {
			p.Send(it)
		}
	}
}

// Unregister removes a peer from the hub.
func (h *Hub) Unregister(p Peer) {
	h.mu.Lock()
	delete(h.peers, p.ID())
	total := len(h.peers)
	h.mu.Unlock()

	slog.Info("peer unregistered", "peer", p.ID(), "total", total)
}

// Publish records it as the most recent item and fans it out to every peer
// that accepts at least one of its representations.
func (h *Hub) Publish(it history.Item) {
	h.mu.Lock()
	h.recent = append([]history.Item{it}, h.recent...)
	if len(h.recent) > h.size {
		h.recent = h.recent[:h.size]
	}

	type target struct {
		peer     Peer
		accepted []string
	}
	targets := make([]target, 0, len(h.peers))
	for _, p := range h.peers {
		targets = append(targets, target{p, p.Info().AcceptedTypes})
	}
	h.mu.Unlock()

	for _, t := range targets {
		filtered, ok := FilterItem(it, t.accepted)
		if !ok {
			continue
		}
		t.peer.Send(filtered)
	}
}

// Recent returns up to limit items, newest first. limit <= 0 returns all.
func (h *Hub) Recent(limit int) []history.Item {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := len(h.recent)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]history.Item(nil), h.recent[:n]...)
}

// At returns the i-th most recent item; 0 is the newest.
func (h *Hub) At(i int) (history.Item, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= len(h.recent) {
		return history.Item{}, false
	}
	return h.recent[i], true
}

// Len reports how many recent items are held.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.recent)
}

// Peers returns a snapshot of all current peer metadata.
func (h *Hub) Peers() []PeerInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]PeerInfo, 0, len(h.peers))
	for _, p := range h.peers {
		out = append(out, p.Info())
	}
	return out
}

// FilterItem narrows it to the accepted type tags. If accepted is empty the
// item is returned unchanged. ok is false when nothing is left.
func FilterItem(it history.Item, accepted []string) (history.Item, bool) {
	if len(accepted) == 0 {
		return it, true
	}
	set := make(map[string]struct{}, len(accepted))
	for _, a := range accepted {
		set[a] = struct{}{}
	}
	var reps []history.Representation
	for _, r := range it.Representations {
		if _, ok := set[r.Type]; ok {
			reps = append(reps, r)
		}
	}
	if len(reps) == 0 {
		return history.Item{}, false
	}
	it.Representations = reps
	return it, true
}
