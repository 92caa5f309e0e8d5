package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/drake/syncux/comm"
	"github.com/drake/syncux/config"
	"github.com/drake/syncux/debug"
	"github.com/drake/syncux/event"
	"github.com/drake/syncux/internal/logger"
	"github.com/drake/syncux/lua"
	"github.com/drake/syncux/network"
	"github.com/drake/syncux/record"
	"github.com/drake/syncux/session"
	"github.com/drake/syncux/settings"
	"github.com/drake/syncux/toolkit"
	"github.com/drake/syncux/ui"
	"github.com/drake/syncux/ux"
)

var ErrNoBackend = errors.New("no terminal attached and no script given")

// isTerminal reports whether stdout is a terminal. Tests replace it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the simulated device",
		Long: `Run the sample signing application on a simulated device.

The device listens for a host on --listen. Frames are a four-byte
big-endian length followed by a command APDU; replies are framed the
same way. Screens are drawn in the terminal, or answered by the Lua
script given with --script.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSim(GlobalOptions.Context, GlobalOptions.Config)
		},
	}

	d := config.DefaultConfig()
	flags := cmd.Flags()
	flags.String("listen", d.Listen, "address to accept the host on")
	flags.String("toolkit", d.Toolkit, "screen backend: auto, tui, script")
	flags.String("script", "", "Lua script answering screens (script backend)")
	flags.String("settings-file", d.SettingsFile, "file persisting the home screen switches")
	flags.String("transcript", "", "write a YAML transcript of every screen here on exit")
	flags.Duration("wait-budget", 0, "end any non-home wait after this long (0 waits forever)")
	flags.Duration("banner-duration", d.BannerDuration, "how long status banners stay up")
	return cmd
}

// selectBackend resolves the auto toolkit setting.
func selectBackend(cfg config.Config, terminal bool) (string, error) {
	if cfg.Toolkit != config.ToolkitAuto {
		return cfg.Toolkit, nil
	}
	switch {
	case cfg.Script != "":
		return config.ToolkitScript, nil
	case terminal:
		return config.ToolkitTUI, nil
	}
	return "", ErrNoBackend
}

// backend is a toolkit plus whatever must run alongside it.
type backend struct {
	tk    toolkit.Toolkit
	run   func(ctx context.Context) error
	close func()
}

func newBackend(kind string, cfg config.Config, log *logger.Logger) (*backend, error) {
	switch kind {
	case config.ToolkitTUI:
		tui := ui.NewBubbleTeaUI(ui.WithBannerDuration(cfg.BannerDuration), ui.WithLogger(log))
		return &backend{
			tk: tui,
			run: func(ctx context.Context) error {
				stop := context.AfterFunc(ctx, tui.Quit)
				defer stop()
				return tui.Run()
			},
			close: func() {},
		}, nil

	case config.ToolkitScript:
		engine := lua.NewEngine(log)
		if err := engine.Init(); err != nil {
			return nil, fmt.Errorf("lua init: %w", err)
		}
		if err := engine.DoFile(cfg.Script); err != nil {
			engine.Close()
			return nil, fmt.Errorf("load script: %w", err)
		}
		auto := lua.NewAutomation(engine, lua.WithBannerDuration(cfg.BannerDuration), lua.WithLogger(log))
		return &backend{
			tk:    auto,
			close: auto.Close,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidToolkit, kind)
}

func runSim(parent context.Context, cfg config.Config) error {
	start := time.Now()
	kind, err := selectBackend(cfg, isTerminal())
	if err != nil {
		return err
	}
	if err := initLogger(cfg.Logging, kind == config.ToolkitTUI); err != nil {
		return err
	}
	log := logger.GetDefault()

	store, err := settings.Open(cfg.SettingsFile, log)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	be, err := newBackend(kind, cfg, log)
	if err != nil {
		return err
	}
	defer be.close()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	rec := record.New()
	server := network.NewServer(log)
	c := comm.New(server, comm.WithLogger(log))
	b := ux.New(be.tk,
		ux.WithLogger(log),
		ux.WithObserver(event.Multi(rec.Observe, debug.Trace(log))),
		ux.WithWaitBudget(cfg.WaitBudget),
		ux.WithContext(gctx),
	)
	app := session.New(b, c, session.Config{
		Name:     cfg.App.Name,
		Tagline:  cfg.App.Tagline,
		Version:  cfg.App.Version,
		Author:   cfg.App.Author,
		Address:  cfg.App.Address,
		Settings: store,
	}, session.WithLogger(log))
	monitor := debug.NewMonitor(debug.Sources{
		Bridge:  b.Stats,
		Comm:    c.Stats,
		Network: server.Stats,
	}, log)

	log.Info("simulator starting", "backend", kind, "listen", cfg.Listen)

	inbox := c.Inbox(gctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx, cfg.Listen, inbox)
	})
	g.Go(func() error {
		return monitor.Run(gctx)
	})
	g.Go(func() error {
		// Quitting from the home screen ends the simulator.
		defer cancel()
		return app.Run(gctx)
	})
	if be.run != nil {
		g.Go(func() error {
			defer cancel()
			return be.run(gctx)
		})
	}

	err = g.Wait()
	if cfg.Transcript != "" {
		if saveErr := rec.Save(cfg.Transcript); saveErr != nil {
			err = errors.Join(err, fmt.Errorf("save transcript: %w", saveErr))
		} else {
			log.Info("transcript saved", "path", cfg.Transcript, "events", len(rec.Entries()))
		}
	}
	log.Info("simulator stopped", "uptime", time.Since(start).Round(time.Millisecond))
	return err
}
