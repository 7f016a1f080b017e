package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"go.klb.dev/clipkeep/internal/history"
	"go.klb.dev/clipkeep/internal/ipc"
	"go.klb.dev/clipkeep/internal/service"
)

const rpcTimeout = 10 * time.Second

// dialDaemon connects to the daemon's control socket.
// No auth needed: the socket is local and owner-restricted.
func dialDaemon(v *viper.Viper) (*grpc.ClientConn, *service.Client, error) {
	path := v.GetString("socket")
	if !ipc.IsRunning(path) {
		return nil, nil, fmt.Errorf("no clipkeep daemon on %s (start one with \"clipkeep daemon\")", path)
	}
	conn, err := grpc.NewClient(ipc.Target(path), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return conn, service.NewClient(conn), nil
}

func rpcContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), rpcTimeout)
}

// summary is a one-line description of an item for tables and watch output.
func summary(it history.Item) string {
	if txt := it.Text(); txt != "" {
		return fmt.Sprintf("%q", history.Preview(txt))
	}
	size := 0
	for _, r := range it.Representations {
		size += len(r.Data)
	}
	return fmt.Sprintf("(%d bytes)", size)
}

func fmtAge(t time.Time) string {
	age := time.Since(t).Round(time.Second)
	if age < time.Minute {
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	}
	if age < time.Hour {
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	}
	return t.Format("15:04:05")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
