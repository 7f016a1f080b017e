package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipkeep/internal/history"
	"go.klb.dev/clipkeep/internal/service"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Put stdin or a recent item on the clipboard (like pbcopy)",
		Long: `Reads stdin and writes it to the system clipboard through the daemon.

With --index, restores the N-th most recent capture instead (0 is the newest)
with all of its representations. --plain keeps only the plain-text ones.

  clipkeep copy < notes.txt
  clipkeep copy --type public.png < shot.png
  clipkeep copy --index 2 --plain`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runCopy(cmd, v) },
	}

	f := cmd.Flags()
	f.String("type", history.TypeText, "type tag of the data read from stdin")
	f.Int("index", 0, "restore the N-th most recent capture instead of reading stdin")
	f.Bool("plain", false, "write only plain-text representations")
	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runCopy(cmd *cobra.Command, v *viper.Viper) error {
	req := &service.CopyRequest{RemoveFormatting: v.GetBool("plain")}
	if cmd.Flags().Changed("index") {
		i := v.GetInt("index")
		req.Index = &i
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if len(data) == 0 {
			return nil
		}
		req.Representations = []history.Representation{{Type: v.GetString("type"), Data: data}}
	}

	conn, client, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	if _, err := client.Copy(ctx, req); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}
