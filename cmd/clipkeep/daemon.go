package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/soheilhy/cmux"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"go.klb.dev/clipkeep/internal/clip"
	"go.klb.dev/clipkeep/internal/config"
	"go.klb.dev/clipkeep/internal/gate"
	"go.klb.dev/clipkeep/internal/gate/native"
	"go.klb.dev/clipkeep/internal/hub"
	"go.klb.dev/clipkeep/internal/ipc"
	"go.klb.dev/clipkeep/internal/monitor"
	"go.klb.dev/clipkeep/internal/runloop"
	"go.klb.dev/clipkeep/internal/service"
	"go.klb.dev/clipkeep/internal/writer"
)

func newDaemonCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Watch the clipboard and serve the control socket",
		Long: `Starts the capture loop. The clipboard revision counter is sampled every
poll interval; each change is filtered and, if accepted, recorded as a history
item and streamed to "clipkeep watch" clients.

Capture settings (config file keys, CLIPKEEP_<KEY> env vars):
  poll_interval     sampling interval (default 1s)
  enabled_types     type tags to record (default: all supported)
  ignored_types     extra marker types that suppress capture
  ignore_patterns   regular expressions; matching plain text is not recorded
  ignore_all        suspend capture
  play_sound        beep after restoring an item
  recent_size       recent items kept in memory for the CLI (default 50)

The config file is watched; edits apply on the next tick.

Precedence (lowest → highest): defaults → config file → CLIPKEEP_* env vars → flags`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			config.SetDefaults(v)
			if err := bindViper(cmd, v); err != nil {
				return err
			}
			return bindKeys(cmd, v, map[string]string{
				"poll-interval": config.KeyPollInterval,
				"ignore-all":    config.KeyIgnoreAll,
				"play-sound":    config.KeyPlaySound,
				"recent-size":   config.KeyRecentSize,
			})
		},
		RunE: func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	f := cmd.Flags()
	f.Duration("poll-interval", config.DefaultPollInterval, "clipboard sampling interval")
	f.Bool("ignore-all", false, "start with capture suspended")
	f.Bool("play-sound", false, "beep after restoring an item")
	f.Int("recent-size", config.DefaultRecentSize, "recent items kept in memory")
	f.Bool("no-http", false, "serve gRPC only on the control socket")
	addSocketFlag(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	interval := v.GetDuration(config.KeyPollInterval)
	if interval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", config.KeyPollInterval, interval)
	}
	socket := v.GetString("socket")

	pb := clip.New()
	defer pb.Close()

	slog.Info("clipkeep daemon starting",
		"version", Version,
		"backend", pb.Name(),
		"poll_interval", interval,
		"config", v.ConfigFileUsed(),
	)

	live := config.NewLive(v)
	loop := runloop.New()
	mon := monitor.New(pb, live)
	h := hub.New(v.GetInt(config.KeyRecentSize))

	svc := service.New(service.Core{
		Loop:     loop,
		Monitor:  mon,
		Writer:   writer.New(pb, writer.Beep{}),
		Gate:     gate.New(loop, native.Platform()),
		Settings: live,
		Capture:  live,
		Hub:      h,
		Backend:  pb.Name(),
		Version:  Version,
	})
	defer svc.Close()

	loop.Every(interval, mon.Tick)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := ipc.Listen(socket)
	if err != nil {
		return err
	}
	defer os.Remove(socket)
	slog.Info("control socket listening", "path", socket)

	gs := grpc.NewServer()
	service.Register(gs, svc)

	m := cmux.New(ln)
	grpcL := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldPrefixSendSettings("content-type", "application/grpc"))

	errc := make(chan error, 3)
	go func() { errc <- gs.Serve(grpcL) }()

	var hs *http.Server
	if !v.GetBool("no-http") {
		mux := gwruntime.NewServeMux()
		if err := service.RegisterGateway(mux, svc); err != nil {
			return fmt.Errorf("gateway: %w", err)
		}
		hs = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		httpL := m.Match(cmux.Any())
		go func() { errc <- serveHTTPGateway(httpL, hs) }()
	}
	go func() { errc <- m.Serve() }()

	go loop.Run(ctx)

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err = <-errc:
		slog.Error("control server stopped", "err", err)
	}

	stop()
	if hs != nil {
		_ = hs.Close()
	}
	gs.Stop()
	_ = ln.Close()

	if err != nil && !errors.Is(err, cmux.ErrListenerClosed) && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve %s: %w", socket, err)
	}
	return nil
}
