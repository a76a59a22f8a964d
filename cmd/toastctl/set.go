package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toastd/toastd/internal/dbus"
)

var setOpts struct {
	position string
	duration string
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the daemon's default settings",
	Long: `Update the running daemon's default position and duration.

Only the given fields change; omitted fields keep their current
defaults. Toasts already on screen are unaffected.

Examples:
  toastctl set --position top-center
  toastctl set --duration 5s
  toastctl set --position bottom-left --duration 1500ms`,
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVarP(&setOpts.position, "position", "p", "",
		"Default screen position")
	setCmd.Flags().StringVarP(&setOpts.duration, "duration", "d", "",
		"Default display duration")
}

func runSet(cmd *cobra.Command, args []string) error {
	if setOpts.position == "" && setOpts.duration == "" {
		return fmt.Errorf("nothing to set: give --position and/or --duration")
	}

	position, durationMS, err := parseOverrides(setOpts.position, setOpts.duration)
	if err != nil {
		return err
	}

	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	return client.SetConfig(position, durationMS)
}
