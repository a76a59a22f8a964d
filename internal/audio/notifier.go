package audio

import (
	"log/slog"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
)

// Notifier plays the configured sound for each displayed toast. It is
// wired as the display manager's show hook; playback errors are logged
// and never surfaced to the caller.
type Notifier struct {
	player *Player
	cfg    config.AudioConfig
	sounds map[notice.Severity]string
	logger *slog.Logger
}

// NewNotifier creates a notifier from the audio configuration. Sounds
// are preloaded so the first toast plays without decode latency.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	n := &Notifier{
		player: NewPlayer(logger),
		cfg:    cfg.Audio,
		sounds: make(map[notice.Severity]string),
		logger: logger,
	}
	n.player.SetVolume(float64(cfg.Audio.Volume) / 100)

	if !cfg.Audio.Enabled {
		return n
	}
	for sev, name := range notice.SeverityNames {
		path := cfg.SoundFor(name)
		if path == "" {
			continue
		}
		n.sounds[sev] = path
		if err := n.player.Preload(path); err != nil {
			n.logger.Warn("failed to preload sound", "severity", name, "path", path, "error", err)
		}
	}
	return n
}

// PlayFor plays the sound configured for the toast's severity.
func (n *Notifier) PlayFor(t *notice.Notice) {
	if !n.cfg.Enabled {
		return
	}
	path, ok := n.sounds[t.Severity]
	if !ok {
		return
	}
	if err := n.player.Play(path); err != nil {
		n.logger.Warn("failed to play sound", "severity", t.Severity, "error", err)
	}
}

// Close releases the underlying player.
func (n *Notifier) Close() {
	n.player.Close()
}
