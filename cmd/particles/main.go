// cmd/particles/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-particles/pkg/audio"
	"github.com/opd-ai/go-particles/pkg/config"
	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/logging"
	"github.com/opd-ai/go-particles/pkg/render"
	engorender "github.com/opd-ai/go-particles/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "particles.json", "Path to configuration file (.json, .ini, .gcfg or .conf)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	rendererName := flag.String("renderer", "", "Renderer: 'terminal', 'engo' or 'null' (overrides config)")
	ticks := flag.Int("ticks", 600, "Ticks to run with the null renderer")
	logPath := flag.String("log", "", "Log file; the terminal renderer discards logs when empty")
	scale := flag.Float64("scale", 1, "Window pixels per world unit (engo only)")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *rendererName != "" {
		cfg.Runtime.Renderer = *rendererName
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	logFile, err := openLog(*logPath)
	if err != nil {
		logger.Error(ctx, "Failed to open log file", err, "log_path", *logPath)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
		logger = logging.New(logFile)
	} else if cfg.Runtime.Renderer == config.RendererTerminal {
		logger = logging.New(io.Discard)
	}

	sim, err := engine.NewSimulation(cfg, nil, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create simulation", err)
		os.Exit(1)
	}
	ctx = sim.Context()

	if cfg.Runtime.Sound {
		if closeSound := startSound(ctx, sim, logger); closeSound != nil {
			defer closeSound()
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Runtime.Renderer {
	case config.RendererEngo:
		engorender.Run(sim, logger, float32(*scale))
	case config.RendererNull:
		runHeadless(ctx, sim, logger, *ticks)
	default:
		err = runTerminal(ctx, sim)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Viewer failed", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads path, falling back to defaults when it does not exist,
// then applies environment overrides
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// startSound attaches a collision clicker to the simulation. Audio is
// optional: a missing device is logged and the run continues silently.
func startSound(ctx context.Context, sim *engine.Simulation, logger *logging.Logger) func() {
	speaker, err := audio.OpenSpeaker()
	if err != nil {
		logger.Warn(ctx, "Audio unavailable, running without sound", "error", err.Error())
		return nil
	}
	clicker := audio.NewClicker(speaker, logger)
	clicker.Attach(sim.EventBus)

	return func() {
		clicker.Detach()
		speaker.Close()
	}
}

// runTerminal shows the simulation on the terminal until Esc or ctx is done
func runTerminal(ctx context.Context, sim *engine.Simulation) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "cannot open terminal")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "cannot initialise terminal")
	}
	defer screen.Fini()
	screen.HideCursor()

	r := render.NewTerminalRenderer(screen, sim.Bounds())
	commands := make(chan engine.Command)
	done := make(chan struct{})
	defer close(done)
	go render.ListenKeys(screen, commands, done)

	draw := func(engine.Status) {
		render.DrawFrame(r, render.FrameOf(sim), sim.Settings)
	}
	draw(sim.Status())

	return sim.Run(ctx, commands, draw)
}

// runHeadless steps the simulation through the null renderer and prints the
// final status line
func runHeadless(ctx context.Context, sim *engine.Simulation, logger *logging.Logger, ticks int) {
	r := render.NewNullRenderer(logger)
	status := sim.RunTicks(ticks, func(engine.Status) {
		render.DrawFrame(r, render.FrameOf(sim), sim.Settings)
	})

	logger.Info(ctx, "Run finished",
		"ticks", status.Tick,
		"frames", r.Frames,
		"collisions", status.Collisions,
	)
	fmt.Println(status)
}
