// pkg/engine/simulation.go
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/opd-ai/go-particles/pkg/collision"
	"github.com/opd-ai/go-particles/pkg/config"
	"github.com/opd-ai/go-particles/pkg/event"
	"github.com/opd-ai/go-particles/pkg/logging"
	"github.com/opd-ai/go-particles/pkg/particle"
	"github.com/opd-ai/go-particles/pkg/physics"
	"github.com/opd-ai/go-particles/pkg/spatial"
)

// Status is a snapshot of the simulation, taken after a tick
type Status struct {
	Tick           uint64
	Strategy       collision.Strategy
	ShowPartitions bool
	Particles      int
	Collisions     int
	TreeNodes      int
	TreeDepth      int
	Elapsed        time.Duration
}

// String renders the status line shown by viewers
func (s Status) String() string {
	line := fmt.Sprintf("%s | particles: %d | collisions: %d | tick: %d",
		s.Strategy.Label(), s.Particles, s.Collisions, s.Tick)
	if s.TreeNodes > 0 {
		line += fmt.Sprintf(" | nodes: %d depth: %d", s.TreeNodes, s.TreeDepth)
	}
	return line
}

// Simulation owns a particle population and steps it. It is not safe for
// concurrent use: ticks, commands and frames all run on one goroutine.
type Simulation struct {
	Config      *config.Config
	Population  *particle.Population
	EventBus    *event.Bus
	Settings    Settings
	Running     bool
	CurrentTick uint64

	// Results of the last tick. LastTree is nil for the exhaustive strategy
	// and after the population changes.
	LastTree       *spatial.QuadTree
	LastCollisions int
	LastElapsed    time.Duration

	bounds physics.Rect
	logger *logging.Logger
	ctx    context.Context
}

// NewSimulation validates cfg and creates the initial population. A nil src
// is replaced by a PCG seeded from cfg (see Seed); a nil logger discards.
func NewSimulation(cfg *config.Config, src particle.Source, logger *logging.Logger) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "cannot create simulation")
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, logging.WrapError(err, "cannot create simulation")
	}

	if logger == nil {
		logger = logging.Discard()
	}
	if src == nil {
		src = particle.NewSource(Seed(cfg))
	}

	bounds := cfg.Bounds()
	sim := &Simulation{
		Config:     cfg,
		Population: particle.NewPopulation(cfg.Particles.Count, bounds, src, cfg.SpawnConfig()),
		EventBus:   event.NewEventBus(),
		Settings: Settings{
			Strategy:       strategy,
			ShowPartitions: cfg.Runtime.ShowPartitions,
		},
		bounds: bounds,
		logger: logger,
		ctx:    logging.WithRunID(context.Background(), ""),
	}

	logger.Info(sim.ctx, "simulation created",
		"particles", sim.Population.Len(),
		"strategy", strategy.String(),
		"width", bounds.Width,
		"height", bounds.Height,
	)
	return sim, nil
}

// Seed returns the configured seed, or one derived from the clock when the
// configuration leaves it at 0.
func Seed(cfg *config.Config) uint64 {
	if cfg.Runtime.Seed != 0 {
		return cfg.Runtime.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Bounds returns the simulation domain
func (s *Simulation) Bounds() physics.Rect {
	return s.bounds
}

// Particles returns the current collection. The slice is only valid until the
// next command that resizes or resets the population.
func (s *Simulation) Particles() particle.Particles {
	return s.Population.Particles
}

// Context returns the context carrying the run ID used for this simulation's logs
func (s *Simulation) Context() context.Context {
	return s.ctx
}

// TickInterval returns the wall time between ticks at the configured rate
func (s *Simulation) TickInterval() time.Duration {
	return time.Second / time.Duration(s.Config.Runtime.TickRate)
}

// Step runs one tick with the given settings and returns the resulting status
func (s *Simulation) Step(settings Settings) Status {
	start := time.Now()
	collisions, tree := TickWith(s.Population.Particles, s.bounds, settings.Strategy, s.Config.QuadTree)
	s.LastElapsed = time.Since(start)
	s.LastTree = tree
	s.LastCollisions = collisions
	s.CurrentTick++

	status := s.status(settings)
	s.logger.Debug(s.ctx, "tick completed",
		"tick", status.Tick,
		"strategy", settings.Strategy.String(),
		"collisions", collisions,
		"particles", status.Particles,
		"tree_nodes", status.TreeNodes,
		"elapsed", s.LastElapsed,
	)
	s.EventBus.Publish(event.NewTickEvent(s, s.CurrentTick, collisions, status.Particles, settings.Strategy.String()))

	return status
}

// Update runs one tick with the simulation's current settings
func (s *Simulation) Update() Status {
	return s.Step(s.Settings)
}

// Status returns a snapshot using the current settings and the last tick's results
func (s *Simulation) Status() Status {
	return s.status(s.Settings)
}

func (s *Simulation) status(settings Settings) Status {
	status := Status{
		Tick:           s.CurrentTick,
		Strategy:       settings.Strategy,
		ShowPartitions: settings.ShowPartitions,
		Particles:      s.Population.Len(),
		Collisions:     s.LastCollisions,
		Elapsed:        s.LastElapsed,
	}
	if s.LastTree != nil {
		stats := s.LastTree.Stats()
		status.TreeNodes = stats.Nodes
		status.TreeDepth = stats.Depth
	}
	return status
}

// Apply executes a command between ticks and reports whether it changed
// anything. Count changes stop at the configured bounds.
func (s *Simulation) Apply(cmd Command) bool {
	switch cmd {
	case ToggleStrategy:
		from := s.Settings.Strategy
		s.Settings.Strategy = from.Toggle()
		s.LastTree = nil
		s.logger.Info(s.ctx, "strategy changed", "from", from.String(), "to", s.Settings.Strategy.String())
		s.EventBus.Publish(event.NewStrategyEvent(s, from.String(), s.Settings.Strategy.String()))

	case TogglePartitions:
		s.Settings.ShowPartitions = !s.Settings.ShowPartitions
		s.logger.Info(s.ctx, "partitions toggled", "visible", s.Settings.ShowPartitions)
		s.EventBus.Publish(event.NewPartitionsEvent(s, s.Settings.ShowPartitions))

	case IncreaseCount:
		old := s.Population.Len()
		if old >= s.Config.Particles.MaxCount {
			return false
		}
		s.resize(old, min(old+s.Config.Particles.CountStep, s.Config.Particles.MaxCount))

	case DecreaseCount:
		old := s.Population.Len()
		if old <= s.Config.Particles.MinCount {
			return false
		}
		s.resize(old, max(old-s.Config.Particles.CountStep, s.Config.Particles.MinCount))

	case Reset:
		count := s.Population.Len()
		s.Population.Reset(count)
		s.LastTree = nil
		s.logger.Info(s.ctx, "population reset", "particles", count)
		s.EventBus.Publish(event.NewPopulationEvent(event.PopulationReset, s, count, count))

	case Quit:
		s.Running = false
		s.logger.Info(s.ctx, "quit requested", "tick", s.CurrentTick)
		s.EventBus.Publish(&event.BaseEvent{EventType: event.QuitRequested, Source: s})

	default:
		return false
	}
	return true
}

func (s *Simulation) resize(old, count int) {
	s.Population.Resize(count)
	s.LastTree = nil
	s.logger.Info(s.ctx, "population resized", "from", old, "to", count, "next_id", uint64(s.Population.NextID()))
	s.EventBus.Publish(event.NewPopulationEvent(event.PopulationResized, s, old, count))
}

// Run steps the simulation at the configured tick rate until ctx is done or
// a Quit command is applied. Commands are applied between ticks on the
// calling goroutine and frame, if not nil, is called after every tick.
// It returns ctx.Err() when stopped by the context and nil on Quit.
func (s *Simulation) Run(ctx context.Context, commands <-chan Command, frame func(Status)) error {
	ticker := time.NewTicker(s.TickInterval())
	defer ticker.Stop()

	s.Running = true
	s.logger.Info(s.ctx, "simulation started", "tick_rate", s.Config.Runtime.TickRate)
	defer func() {
		s.logger.Info(s.ctx, "simulation stopped", "ticks", s.CurrentTick)
	}()

	for s.Running {
		select {
		case <-ctx.Done():
			s.Running = false
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			s.Apply(cmd)
		case <-ticker.C:
			status := s.Update()
			if frame != nil {
				frame(status)
			}
		}
	}
	return nil
}

// RunTicks runs n ticks back to back without pacing and returns the last status
func (s *Simulation) RunTicks(n int, frame func(Status)) Status {
	status := s.Status()
	for i := 0; i < n; i++ {
		status = s.Update()
		if frame != nil {
			frame(status)
		}
	}
	return status
}
