package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.klb.dev/clipkeep/internal/service"
)

func newWatchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream captures as they happen",
		Long: `Prints one line per captured item until interrupted. The most recent
capture, if any, is printed first.

--json prints each item as a JSON object per line, payloads base64-encoded.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runWatch(v) },
	}

	f := cmd.Flags()
	f.StringSlice("accept", nil, "type tags to receive (empty = all); e.g. public.utf8-plain-text,public.png")
	f.Bool("metadata-only", false, "omit payloads")
	f.Bool("json", false, "output JSON lines")
	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runWatch(v *viper.Viper) error {
	conn, client, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stream, err := client.Watch(ctx, &service.WatchRequest{
		Accepts:      v.GetStringSlice("accept"),
		MetadataOnly: v.GetBool("metadata-only"),
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	jsonOut := v.GetBool("json")
	enc := json.NewEncoder(os.Stdout)
	for {
		it, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
		if jsonOut {
			if err := enc.Encode(it); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("%s  %s  [%s]  %s\n",
			it.CapturedAt.Local().Format(time.TimeOnly),
			shortID(it.ID),
			strings.Join(it.Types(), ","),
			summary(*it),
		)
	}
}
