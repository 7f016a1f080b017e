package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipkeep/internal/service"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon state and connected watchers",
		Args:  cobra.NoArgs,
		Long: `Displays the daemon's clipboard backend, capture state, accessibility
permission and every connected "clipkeep watch" stream.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runStatus(v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addSocketFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runStatus(v *viper.Viper) error {
	conn, client, err := dialDaemon(v)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := rpcContext()
	defer cancel()
	resp, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	if v.GetBool("json") {
		enc, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(enc))
		return nil
	}

	printStatus(resp, v.GetString("socket"))
	return nil
}

func printStatus(resp *service.StatusResponse, socket string) {
	w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	capture := "on"
	switch {
	case resp.Paused:
		capture = "paused"
	case !resp.Capturing:
		capture = "off (ignore_all)"
	}
	fmt.Fprintf(w, "Version:\t%s\n", resp.Version)
	fmt.Fprintf(w, "Socket:\t%s\n", socket)
	fmt.Fprintf(w, "Backend:\t%s\n", resp.Backend)
	fmt.Fprintf(w, "Started:\t%s (%s)\n", resp.StartedAt.Local().Format(time.RFC3339), fmtAge(resp.StartedAt))
	fmt.Fprintf(w, "Capture:\t%s\n", capture)
	fmt.Fprintf(w, "Change count:\t%d\n", resp.ChangeCount)
	fmt.Fprintf(w, "Accessibility:\t%s\n", resp.Permission)
	fmt.Fprintf(w, "Recent items:\t%d\n", resp.Recent)
	fmt.Fprintln(w)
	_ = w.Flush()

	if len(resp.Peers) == 0 {
		fmt.Println("No watchers connected.")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID\tADDR\tCONNECTED\tLAST SEEN\tACCEPTS\n")
	_, _ = fmt.Fprintf(tw, "--\t----\t---------\t---------\t-------\n")
	for _, p := range resp.Peers {
		accepts := "*"
		if len(p.AcceptedTypes) > 0 {
			accepts = strings.Join(p.AcceptedTypes, ",")
		}
		lastSeen := "-"
		if !p.LastSeen.IsZero() {
			lastSeen = fmtAge(p.LastSeen)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Addr, fmtAge(p.ConnectedAt), lastSeen, accepts,
		)
	}
	_ = tw.Flush()
}
