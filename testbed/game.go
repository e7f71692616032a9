package testbed

import (
	"fmt"

	"github.com/spaghettifunk/rampart/engine"
	"github.com/spaghettifunk/rampart/engine/config"
	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/renderer"
	"github.com/spaghettifunk/rampart/engine/scene"
)

// CastleGame renders the built-in castle and maps mouse drags onto the orbit
// camera. A left drag rotates, a right drag zooms, holding the '1' key draws
// wireframe and Escape quits.
type CastleGame struct {
	*engine.Game
}

type gameState struct {
	config   *config.Config
	renderer *renderer.Renderer
	watcher  *scene.Watcher

	descriptor *scene.Descriptor

	width  uint32
	height uint32
}

func NewCastleGame(cfg *config.Config) (*CastleGame, error) {
	cg := &CastleGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:   100,
				StartPosY:   100,
				StartWidth:  cfg.Window.Width,
				StartHeight: cfg.Window.Height,
				Name:        cfg.Window.Title,
			},
			State: &gameState{
				config: cfg,
			},
		},
	}

	cg.FnBoot = cg.Boot
	cg.FnInitialize = cg.Initialize
	cg.FnUpdate = cg.Update
	cg.FnFrameState = cg.FrameState
	cg.FnOnResize = cg.OnResize
	cg.FnShutdown = cg.Shutdown

	return cg, nil
}

// Boot generates the eleven castle meshes, packs them into the shared
// buffers, and places the scene's instances.
func (g *CastleGame) Boot() (*renderer.GeometryBatch, []*renderer.RenderItem, *renderer.OrbitCamera, error) {
	core.LogInfo("booting castle scene...")

	state := g.State.(*gameState)

	batch, err := renderer.BuildGeometryBatch(scene.Meshes())
	if err != nil {
		return nil, nil, nil, err
	}

	desc := scene.Castle()
	if state.config.ScenePath != "" {
		desc, err = scene.Load(state.config.ScenePath)
		if err != nil {
			return nil, nil, nil, err
		}
		core.LogInfo("Loaded scene '%s' from '%s' with %d items.", desc.Name, state.config.ScenePath, len(desc.Items))
	}
	state.descriptor = desc

	items, err := desc.BuildItems(batch)
	if err != nil {
		return nil, nil, nil, err
	}

	return batch, items, renderer.NewOrbitCamera(), nil
}

func (g *CastleGame) Initialize(r *renderer.Renderer) error {
	core.LogDebug("CastleGame Initialize fn....")

	if r == nil {
		return fmt.Errorf("the engine handed over a nil renderer")
	}

	state := g.State.(*gameState)
	state.renderer = r

	if state.config.WatchScene && state.config.ScenePath != "" {
		w, err := scene.NewWatcher(state.config.ScenePath)
		if err != nil {
			return err
		}
		state.watcher = w
		core.LogInfo("Watching scene file '%s' for edits.", state.config.ScenePath)
	}

	return nil
}

func (g *CastleGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// Mouse drags drive the orbit camera.
	x, y := core.InputGetMousePosition()
	prevX, prevY := core.InputGetPreviousMousePosition()
	dx := x - prevX
	dy := y - prevY

	if dx != 0 || dy != 0 {
		if core.InputIsButtonDown(core.BUTTON_LEFT) {
			state.renderer.Camera().Rotate(dx, dy)
		}
		if core.InputIsButtonDown(core.BUTTON_RIGHT) {
			state.renderer.Camera().Zoom(dx, dy)
		}
	}

	// A reloaded scene descriptor is applied between frames only.
	if state.watcher != nil {
		if desc := state.watcher.TakePending(); desc != nil {
			if err := desc.Apply(state.renderer.Items()); err != nil {
				core.LogError("scene reload rejected: %s", err.Error())
			} else {
				state.descriptor = desc
				core.LogInfo("Scene '%s' reloaded.", desc.Name)
			}
		}
	}

	return nil
}

// FrameState is sampled once per frame; wireframe is on for exactly as long
// as the '1' key is held down.
func (g *CastleGame) FrameState() renderer.FrameState {
	return renderer.FrameState{
		Wireframe: core.InputIsKeyDown(core.KEY_1),
	}
}

func (g *CastleGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *CastleGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.watcher != nil {
		return state.watcher.Close()
	}
	return nil
}
