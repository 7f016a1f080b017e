// Package service implements the ClipboardControl gRPC service over the
// clipboard core.
//
// Every operation that touches the core is marshalled onto the run loop with
// Loop.Do, so request goroutines never run concurrently with a capture tick.
package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/gate"
	"go.klb.dev/clipkeep/internal/history"
	"go.klb.dev/clipkeep/internal/hub"
	"go.klb.dev/clipkeep/internal/monitor"
	"go.klb.dev/clipkeep/internal/writer"
)

// Loop runs fn on the core's goroutine and waits for it. *runloop.Loop
// satisfies it.
type Loop interface {
	Do(ctx context.Context, fn func()) error
}

// Paster is the input-synthesis gate.
type Paster interface {
	Paste(suspendFocusReturn func()) gate.State
	State() gate.State
}

// Capture toggles the runtime ignore-all override. *config.Live satisfies it.
type Capture interface {
	SetPaused(paused bool)
	Paused() bool
}

// Core bundles the components the service drives.
type Core struct {
	Loop     Loop
	Monitor  *monitor.Monitor
	Writer   *writer.Writer
	Gate     Paster
	Settings config.Source
	Capture  Capture
	Hub      *hub.Hub
	Backend  string
	Version  string
}

// Service implements ControlServer.
type Service struct {
	c           Core
	started     time.Time
	unsubscribe func()
}

// New returns a Service and subscribes its hub to the monitor's captures.
func New(c Core) *Service {
	return &Service{
		c:           c,
		started:     time.Now(),
		unsubscribe: c.Monitor.OnCapture(c.Hub.Publish),
	}
}

// Close detaches the service from the monitor.
func (s *Service) Close() { s.unsubscribe() }

// Copy implements ClipboardControl.Copy.
func (s *Service) Copy(ctx context.Context, req *CopyRequest) (*emptypb.Empty, error) {
	it, err := s.resolve(req.Index, req.Representations)
	if err != nil {
		return nil, err
	}
	if err := s.c.Loop.Do(ctx, func() { s.write(it, req.RemoveFormatting) }); err != nil {
		return nil, fromContext(err)
	}
	history.LogItem("clipboard restored", it)
	return &emptypb.Empty{}, nil
}

// Paste implements ClipboardControl.Paste.
func (s *Service) Paste(ctx context.Context, req *PasteRequest) (*PasteResponse, error) {
	var it *history.Item
	if req.Index != nil {
		found, err := s.resolve(req.Index, nil)
		if err != nil {
			return nil, err
		}
		it = &found
	}

	var st gate.State
	err := s.c.Loop.Do(ctx, func() {
		if it != nil {
			s.write(*it, req.RemoveFormatting)
		}
		// No menu to hold focus for, so there is nothing to suspend.
		st = s.c.Gate.Paste(nil)
	})
	if err != nil {
		return nil, fromContext(err)
	}
	slog.Info("paste requested", "permission", st.String(), "copied", it != nil)
	return &PasteResponse{Permission: st.String(), Item: it}, nil
}

// Watch implements ClipboardControl.Watch.
func (s *Service) Watch(req *WatchRequest, stream WatchStream) error {
	ctx := stream.Context()
	w := &watcher{
		id:          "watch/" + uuid.NewString(),
		addr:        addrFromCtx(ctx),
		accept:      req.Accepts,
		ch:          make(chan history.Item, 16),
		connectedAt: time.Now(),
	}

	s.c.Hub.Register(w)
	defer s.c.Hub.Unregister(w)

	slog.Info("watch started", "peer", w.id, "accept", req.Accepts, "metadata_only", req.MetadataOnly)

	for {
		select {
		case <-ctx.Done():
			return nil
		case it := <-w.ch:
			if req.MetadataOnly {
				it = withoutPayloads(it)
			}
			if err := stream.Send(&it); err != nil {
				return err
			}
		}
	}
}

// Recent implements ClipboardControl.Recent.
func (s *Service) Recent(_ context.Context, req *RecentRequest) (*RecentResponse, error) {
	if req.Limit < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "limit must not be negative, got %d", req.Limit)
	}
	return &RecentResponse{Items: s.c.Hub.Recent(req.Limit)}, nil
}

// Status implements ClipboardControl.Status.
func (s *Service) Status(_ context.Context, _ *emptypb.Empty) (*StatusResponse, error) {
	return &StatusResponse{
		Version:     s.c.Version,
		Backend:     s.c.Backend,
		StartedAt:   s.started,
		ChangeCount: s.c.Monitor.ChangeCount(),
		Capturing:   !s.c.Settings.Settings().IgnoreAll,
		Paused:      s.c.Capture.Paused(),
		Permission:  s.c.Gate.State().String(),
		Observers:   s.c.Monitor.Observers(),
		Recent:      s.c.Hub.Len(),
		Peers:       s.c.Hub.Peers(),
	}, nil
}

// SetCapture implements ClipboardControl.SetCapture. false pauses capture.
func (s *Service) SetCapture(_ context.Context, req *wrapperspb.BoolValue) (*emptypb.Empty, error) {
	s.c.Capture.SetPaused(!req.GetValue())
	return &emptypb.Empty{}, nil
}

// write runs on the loop; settings are read fresh for every copy.
func (s *Service) write(it history.Item, removeFormatting bool) {
	st := s.c.Settings.Settings()
	s.c.Writer.Copy(it, writer.Options{
		RemoveFormatting: removeFormatting,
		PlaySound:        st.PlaySound,
	})
}

func (s *Service) resolve(index *int, reps []history.Representation) (history.Item, error) {
	if index != nil {
		it, ok := s.c.Hub.At(*index)
		if !ok {
			return history.Item{}, status.Errorf(codes.NotFound, "no recent item at index %d", *index)
		}
		return it, nil
	}
	if len(reps) == 0 {
		return history.Item{}, status.Error(codes.InvalidArgument, "either index or representations is required")
	}
	for i, r := range reps {
		if r.Type == "" {
			return history.Item{}, status.Errorf(codes.InvalidArgument, "representation %d has no type", i)
		}
	}
	return history.NewItem(reps, s.c.Monitor.ChangeCount()), nil
}

func withoutPayloads(it history.Item) history.Item {
	reps := make([]history.Representation, len(it.Representations))
	for i, r := range it.Representations {
		reps[i] = history.Representation{Type: r.Type}
	}
	it.Representations = reps
	return it
}

func fromContext(err error) error {
	return status.FromContextError(err).Err()
}

func addrFromCtx(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return "unknown"
}

// ── watcher ────────────────────────────────────────────────────────────────

// watcher is a transient hub.Peer backed by a Watch stream.
type watcher struct {
	id          string
	addr        string
	accept      []string
	ch          chan history.Item
	connectedAt time.Time
	lastSeen    atomic.Int64
}

func (w *watcher) ID() string { return w.id }

func (w *watcher) Info() hub.PeerInfo {
	info := hub.PeerInfo{
		ID:            w.id,
		Addr:          w.addr,
		AcceptedTypes: w.accept,
		ConnectedAt:   w.connectedAt,
	}
	if ls := w.lastSeen.Load(); ls > 0 {
		info.LastSeen = time.Unix(0, ls)
	}
	return info
}

func (w *watcher) Send(it history.Item) {
	w.lastSeen.Store(time.Now().UnixNano())
	select {
	case w.ch <- it:
	default:
		slog.Warn("watch peer channel full, dropping", "peer", w.id)
	}
}
