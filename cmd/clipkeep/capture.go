package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPauseCmd() *cobra.Command {
	return newCaptureCmd("pause", "Stop recording clipboard changes", false)
}

func newResumeCmd() *cobra.Command {
	return newCaptureCmd("resume", "Resume recording clipboard changes", true)
}

// newCaptureCmd toggles the daemon's runtime ignore-all override. Changes made
// while paused are skipped, not recorded later.
func newCaptureCmd(use, short string, enabled bool) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, _ []string) error {
			conn, client, err := dialDaemon(v)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := rpcContext()
			defer cancel()
			if err := client.SetCapture(ctx, enabled); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			return nil
		},
	}
	addSocketFlag(cmd)
	addConfigFlag(cmd)
	return cmd
}
