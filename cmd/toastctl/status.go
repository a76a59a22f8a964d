package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/toastd/toastd/internal/dbus"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Long:  `Query the running daemon for its active toast count and uptime.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	st, err := client.Status()
	if err != nil {
		return fmt.Errorf("is toastd running? %w", err)
	}

	fmt.Printf("active toasts:      %d\n", st.Active)
	fmt.Printf("occupied positions: %d\n", st.Containers)
	fmt.Printf("running since:      %s\n", humanize.Time(time.Unix(st.Since, 0)))
	return nil
}
