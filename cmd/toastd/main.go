// Package main is the entry point for the toastd daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/toastd/toastd/internal/audio"
	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/daemon"
	"github.com/toastd/toastd/internal/dbus"
	"github.com/toastd/toastd/internal/display"
	"github.com/toastd/toastd/internal/surface/layershell"
)

const appID = "org.toastd.Toastd"

// Build-time variable.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to the config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("toastd version", version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting toastd", "version", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := adw.NewApplication(appID, 0)

	// Shared between the GTK main loop and the signal handler.
	var (
		manager       *display.Manager
		server        *dbus.Server
		notifier      *audio.Notifier
		configWatcher *daemon.ConfigWatcher
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		glib.IdleAdd(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		if err := layershell.ApplyTheme(cfg); err != nil {
			logger.Warn("failed to apply theme", "error", err)
		}

		surf := layershell.New(&app.Application, cfg, logger)
		sched := layershell.NewScheduler()

		resolver := config.NewResolver()
		resolver.SetDefaults(cfg.Settings())
		manager = display.NewManager(surf, sched, resolver, logger)

		notifier = audio.NewNotifier(cfg, logger)
		manager.SetShowHook(notifier.PlayFor)

		server = dbus.NewServer(logger)
		server.SetNotifyHandler(func(req dbus.Request) {
			overrides := settingsFromRequest(req, logger)
			// Hop to the GTK main loop; container windows and CSS
			// classes must not be touched from the bus goroutine.
			glib.IdleAdd(func() {
				manager.Notify(req.Severity, req.Message, overrides)
			})
		})
		server.SetConfigHandler(func(position string, durationMS uint32) {
			var s config.Settings
			if position != "" {
				p, err := config.ParsePosition(position)
				if err != nil {
					logger.Warn("ignoring invalid default position", "position", position, "error", err)
				} else {
					s.Position = p
				}
			}
			if durationMS > 0 {
				s.Duration = time.Duration(durationMS) * time.Millisecond
			}
			manager.SetConfig(s)
		})
		server.SetStatusHandler(func() dbus.Status {
			return dbus.Status{
				Active:     uint32(manager.ActiveCount()),
				Containers: uint32(manager.ContainerCount()),
			}
		})

		if err := server.Start(); err != nil {
			logger.Error("failed to start control interface", "error", err)
			app.Quit()
			return
		}

		configWatcher, err = daemon.NewConfigWatcher(*configPath, cfg, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newCfg *config.Config) {
				glib.IdleAdd(func() {
					manager.SetConfig(newCfg.Settings())
					if err := layershell.ApplyTheme(newCfg); err != nil {
						logger.Warn("failed to apply reloaded theme", "error", err)
					}

					old := notifier
					notifier = audio.NewNotifier(newCfg, logger)
					manager.SetShowHook(notifier.PlayFor)
					old.Close()

					cfg = newCfg
				})
			})
			if err := configWatcher.Start(ctx); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		logger.Info("toastd ready", "dbus_interface", dbus.Interface)

		// GTK applications quit when their last window closes; a hidden
		// window keeps the daemon alive between toasts.
		keepAlive := gtk.NewWindow()
		keepAlive.SetApplication(&app.Application)
		keepAlive.SetDefaultSize(1, 1)
		keepAlive.SetDecorated(false)
		keepAlive.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if server != nil {
			_ = server.Stop()
		}
		if manager != nil {
			manager.Close()
		}
		if notifier != nil {
			notifier.Close()
		}
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}
	logger.Info("toastd stopped")
}

// settingsFromRequest converts wire overrides into settings, dropping
// fields that fail to parse.
func settingsFromRequest(req dbus.Request, logger *slog.Logger) config.Settings {
	var s config.Settings
	if req.Position != "" {
		p, err := config.ParsePosition(req.Position)
		if err != nil {
			logger.Warn("ignoring invalid position override", "position", req.Position, "error", err)
		} else {
			s.Position = p
		}
	}
	if req.Duration > 0 {
		s.Duration = time.Duration(req.Duration) * time.Millisecond
	}
	return s
}
