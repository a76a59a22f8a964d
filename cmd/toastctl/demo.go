package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	toast "github.com/toastd/toastd"
	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/surface"
	"github.com/toastd/toastd/internal/surface/tui"
)

var demoOpts struct {
	script string
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an interactive terminal playground",
	Long: `Run a self-contained toast playground in the terminal. No daemon
is needed: toasts render as an overlay inside this program.

Keys fire toasts of each severity; the active position cycles with p.
A script file replays a timed sequence of toasts:

  - after: 0s
    severity: info
    message: starting up
  - after: 1500ms
    severity: error
    message: something broke
    position: top-center
    duration: 5s`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoOpts.script, "script", "",
		"YAML script of timed toasts to replay")
}

// scriptStep is one entry of a demo script. Durations are strings so
// both "1500ms" and bare millisecond integers parse.
type scriptStep struct {
	After    string `yaml:"after"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
	Position string `yaml:"position"`
	Duration string `yaml:"duration"`
}

// firer matches the facade severity functions.
type firer func(message string, overrides ...toast.Settings)

var severityFirers = map[string]firer{
	"info":    toast.Info,
	"success": toast.Success,
	"warn":    toast.Warn,
	"error":   toast.Error,
}

func runDemo(cmd *cobra.Command, args []string) error {
	script, err := loadScript(demoOpts.script)
	if err != nil {
		return err
	}

	surf := tui.New(tui.Options{Logger: logger})
	demoSurface = surf
	toast.Attach(surf, surface.NewTimerScheduler(), logger)
	defer toast.Detach()

	m := newDemoModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	surf.SetInvalidate(func() {
		p.Send(invalidateMsg{})
	})

	scheduleScript(script)

	_, err = p.Run()
	return err
}

// loadScript parses and validates a script file up front, so a typo
// fails the command instead of silently dropping a step mid-replay.
func loadScript(path string) ([]scriptStep, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var steps []scriptStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	for i, step := range steps {
		if _, ok := severityFirers[step.Severity]; !ok {
			return nil, fmt.Errorf("script step %d: unknown severity %q", i+1, step.Severity)
		}
		if step.After != "" {
			if _, err := config.ParseDuration(step.After); err != nil {
				return nil, fmt.Errorf("script step %d: %w", i+1, err)
			}
		}
		if step.Duration != "" {
			if _, err := config.ParseDuration(step.Duration); err != nil {
				return nil, fmt.Errorf("script step %d: %w", i+1, err)
			}
		}
		if step.Position != "" {
			if _, err := config.ParsePosition(step.Position); err != nil {
				return nil, fmt.Errorf("script step %d: %w", i+1, err)
			}
		}
	}
	return steps, nil
}

// scheduleScript arms one timer per step. The facade is safe to call
// from timer goroutines.
func scheduleScript(steps []scriptStep) {
	for _, step := range steps {
		step := step
		after := time.Duration(0)
		if step.After != "" {
			after, _ = config.ParseDuration(step.After)
		}
		time.AfterFunc(after, func() {
			var s toast.Settings
			if step.Position != "" {
				s.Position, _ = config.ParsePosition(step.Position)
			}
			if step.Duration != "" {
				s.Duration, _ = config.ParseDuration(step.Duration)
			}
			severityFirers[step.Severity](step.Message, s)
		})
	}
}

// invalidateMsg asks the program to repaint after the overlay changed.
type invalidateMsg struct{}

// demoKeyMap defines the key bindings for the playground.
type demoKeyMap struct {
	Info     key.Binding
	Success  key.Binding
	Warn     key.Binding
	Error    key.Binding
	Position key.Binding
	Quit     key.Binding
}

func (k demoKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Info, k.Success, k.Warn, k.Error, k.Position, k.Quit}
}

func (k demoKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultDemoKeyMap() demoKeyMap {
	return demoKeyMap{
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success"),
		),
		Warn: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warn"),
		),
		Error: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error"),
		),
		Position: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle position"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type demoModel struct {
	keys      demoKeyMap
	help      help.Model
	positions []toast.Position
	posIdx    int
	fired     int
	width     int
	height    int
}

func newDemoModel() demoModel {
	return demoModel{
		keys: defaultDemoKeyMap(),
		help: help.New(),
		positions: []toast.Position{
			toast.BottomRight,
			toast.BottomCenter,
			toast.BottomLeft,
			toast.CenterLeft,
			toast.Center,
			toast.CenterRight,
			toast.TopRight,
			toast.TopCenter,
			toast.TopLeft,
		},
	}
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case invalidateMsg:
		// Overlay content changed; View re-reads the surface.

	case tea.KeyMsg:
		override := toast.Settings{Position: m.positions[m.posIdx]}
		switch {
		case key.Matches(msg, m.keys.Info):
			m.fired++
			toast.Info(fmt.Sprintf("Info toast #%d", m.fired), override)
		case key.Matches(msg, m.keys.Success):
			m.fired++
			toast.Success(fmt.Sprintf("Success toast #%d", m.fired), override)
		case key.Matches(msg, m.keys.Warn):
			m.fired++
			toast.Warn(fmt.Sprintf("Warning toast #%d", m.fired), override)
		case key.Matches(msg, m.keys.Error):
			m.fired++
			toast.Error(fmt.Sprintf("Error toast #%d", m.fired), override)
		case key.Matches(msg, m.keys.Position):
			m.posIdx = (m.posIdx + 1) % len(m.positions)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

var demoStatusStyle = lipgloss.NewStyle().Faint(true)

func (m demoModel) View() string {
	if m.width == 0 || m.height < 3 {
		return ""
	}

	status := demoStatusStyle.Render(fmt.Sprintf(
		"toastd demo · position: %s · fired: %d", m.positions[m.posIdx], m.fired))
	helpView := m.help.View(m.keys)

	overlay := toastSurfaceView(m.width, m.height-2)
	return status + "\n" + overlay + "\n" + helpView
}

// demoSurface is set by runDemo before the program starts.
var demoSurface *tui.Surface

func toastSurfaceView(width, height int) string {
	if demoSurface == nil {
		return ""
	}
	return demoSurface.View(width, height)
}
