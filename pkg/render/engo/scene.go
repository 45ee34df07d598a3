// pkg/render/engo/scene.go
package engo

import (
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-particles/pkg/engine"
	"github.com/opd-ai/go-particles/pkg/logging"
)

// SceneType is the engo scene name
const SceneType = "ParticleScene"

// Background is the window clear color
var Background = color.RGBA{10, 10, 20, 255}

// Scene shows a simulation in an engo window
type Scene struct {
	sim    *engine.Simulation
	logger *logging.Logger
	scale  float32

	renderer *WindowRenderer
}

// NewScene creates a scene for sim. A nil logger discards.
func NewScene(sim *engine.Simulation, logger *logging.Logger, scale float32) *Scene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scene{sim: sim, logger: logger, scale: scale}
}

// Type implements engo.Scene
func (scene *Scene) Type() string {
	return SceneType
}

// Preload implements engo.Scene. Shapes are drawn with built-in drawables, so
// there is nothing to load.
func (scene *Scene) Preload() {}

// Setup implements engo.Scene
func (scene *Scene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Error(scene.sim.Context(), "cannot set up scene", fmt.Errorf("unexpected updater %T", u))
		return
	}

	common.SetBackground(Background)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.renderer = NewWindowRenderer(renderSystem, scene.sim.Bounds(), scene.scale)
	scene.renderer.SetTitle = engo.SetTitle
	world.AddSystem(NewSimulationSystem(scene.sim, scene.renderer, NewInput(nil), engo.Exit))

	scene.logger.Info(scene.sim.Context(), "window scene ready",
		"width", scene.sim.Bounds().Width,
		"height", scene.sim.Bounds().Height,
	)
}

// Exit is called by engo when the window closes
func (scene *Scene) Exit() {
	scene.logger.Info(scene.sim.Context(), "window closed", "tick", scene.sim.CurrentTick)
}

// Run opens a window sized to the simulation and blocks until it closes
func Run(sim *engine.Simulation, logger *logging.Logger, scale float32) {
	if scale <= 0 {
		scale = 1
	}
	bounds := sim.Bounds()
	opts := engo.RunOptions{
		Title:        "Particles",
		Width:        int(float32(bounds.Width) * scale),
		Height:       int(float32(bounds.Height) * scale),
		VSync:        true,
		NotResizable: true,
	}
	engo.Run(opts, NewScene(sim, logger, scale))
}
