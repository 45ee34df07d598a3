// pkg/render/engo/system.go
package engo

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/render"
)

// maxTicksPerFrame bounds the catch-up after a slow frame
const maxTicksPerFrame = 4

// SimulationSystem drives a simulation from the engo game loop. Each frame it
// applies pressed commands, runs the ticks that are due at the configured
// tick rate and redraws.
type SimulationSystem struct {
	sim      *engine.Simulation
	renderer render.Renderer
	input    *Input
	exit     func()

	pending time.Duration
}

// NewSimulationSystem creates the system. exit is called once a Quit command
// has been applied.
func NewSimulationSystem(sim *engine.Simulation, renderer render.Renderer, input *Input, exit func()) *SimulationSystem {
	return &SimulationSystem{
		sim:      sim,
		renderer: renderer,
		input:    input,
		exit:     exit,
	}
}

// Update implements ecs.System
func (s *SimulationSystem) Update(dt float32) {
	for _, cmd := range s.input.Commands() {
		s.sim.Apply(cmd)
		if cmd == engine.Quit {
			if s.exit != nil {
				s.exit()
			}
			return
		}
	}

	interval := s.sim.TickInterval()
	s.pending += time.Duration(float64(dt) * float64(time.Second))
	for ticks := 0; s.pending >= interval; ticks++ {
		if ticks == maxTicksPerFrame {
			s.pending = 0
			break
		}
		s.sim.Update()
		s.pending -= interval
	}

	render.DrawFrame(s.renderer, render.FrameOf(s.sim), s.sim.Settings)
}

// Remove implements ecs.System
func (s *SimulationSystem) Remove(ecs.BasicEntity) {}
