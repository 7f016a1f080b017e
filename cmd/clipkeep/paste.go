package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipkeep/internal/gate"
	"go.klb.dev/clipkeep/internal/service"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Paste into the focused application",
		Long: `Sends the paste keystroke (Command-V on macOS, Ctrl-V elsewhere) to the
focused application, optionally restoring a recent capture first.

On macOS this needs the Accessibility permission. Without it the daemon shows
a prompt offering to open System Settings and nothing is pasted.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runPaste(cmd, v) },
	}

	f := cmd.Flags()
	f.Int("index", 0, "restore the N-th most recent capture before pasting")
	f.Bool("plain", false, "restore only plain-text representations")
	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runPaste(cmd *cobra.Command, v *viper.Viper) error {
	req := &service.PasteRequest{RemoveFormatting: v.GetBool("plain")}
	if cmd.Flags().Changed("index") {
		i := v.GetInt("index")
		req.Index = &i
	}

	conn, client, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	resp, err := client.Paste(ctx, req)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	if resp.Permission == gate.Denied.String() {
		return errors.New("accessibility permission denied; grant it in System Settings and retry")
	}
	return nil
}
