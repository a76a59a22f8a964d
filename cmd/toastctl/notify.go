package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/dbus"
)

var notifyOpts struct {
	position string
	duration string
}

func init() {
	severities := []struct {
		use   string
		short string
	}{
		{"info", "Show an info toast"},
		{"success", "Show a success toast"},
		{"warn", "Show a warning toast"},
		{"error", "Show an error toast"},
	}

	for _, s := range severities {
		severity := s.use
		cmd := &cobra.Command{
			Use:   severity + " <message>",
			Short: s.short,
			Long: fmt.Sprintf(`%s on the running daemon.

Examples:
  toastctl %s "Build finished"
  toastctl %s "Build finished" -p top-right -d 5s`, s.short, severity, severity),
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runNotify(severity, strings.Join(args, " "))
			},
		}
		cmd.Flags().StringVarP(&notifyOpts.position, "position", "p", "",
			"Screen position (e.g. top-left, bottom-right, center)")
		cmd.Flags().StringVarP(&notifyOpts.duration, "duration", "d", "",
			"Display duration (e.g. 3s, 1500ms, or milliseconds)")
		rootCmd.AddCommand(cmd)
	}
}

func runNotify(severity, message string) error {
	position, durationMS, err := parseOverrides(notifyOpts.position, notifyOpts.duration)
	if err != nil {
		return err
	}

	client, err := dbus.NewClient()
	if err != nil {
		return err
	}
	return client.Notify(severity, message, position, durationMS)
}

// parseOverrides validates the flags locally so bad input fails before
// reaching the daemon, which would silently drop it.
func parseOverrides(position, duration string) (string, uint32, error) {
	if position != "" {
		p, err := config.ParsePosition(position)
		if err != nil {
			return "", 0, err
		}
		position = string(p)
	}

	var durationMS uint32
	if duration != "" {
		d, err := config.ParseDuration(duration)
		if err != nil {
			return "", 0, err
		}
		if d <= 0 {
			return "", 0, fmt.Errorf("duration must be positive, got %s", d)
		}
		durationMS = uint32(d.Milliseconds())
	}

	return position, durationMS, nil
}
