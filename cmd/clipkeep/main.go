// clipkeep: clipboard history capture daemon and control CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipkeep",
		Short: "Clipboard history capture",
		Long: `clipkeep watches the system clipboard, records every meaningful change as a
history item, and can restore any recent item and paste it into the focused
application.

Run "clipkeep daemon" once per login session. The other commands talk to the
daemon over its local control socket.

Config file search order (first found wins):
  path supplied via --config
  $HOME/.config/clipkeep/clipkeep.toml
  /etc/clipkeep/clipkeep.toml

All flags can be set via CLIPKEEP_<FLAG> env vars or config-file keys.
See "clipkeep daemon --help" for the capture settings.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newDaemonCmd(),
		newCopyCmd(),
		newPasteCmd(),
		newWatchCmd(),
		newRecentCmd(),
		newStatusCmd(),
		newPauseCmd(),
		newResumeCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("clipkeep %s\n", Version)
		},
	}
}
