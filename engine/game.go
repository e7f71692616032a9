package engine

import (
	"github.com/spaghettifunk/rampart/engine/renderer"
)

// Game is the application plugged into the engine's run loop. The engine
// owns the window, the device and the renderer; the game provides the scene
// and per-frame behavior through these hooks.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	// FnBoot builds the scene: the geometry batch, the ordered render-item
	// list and the camera. Runs once, before the device exists.
	FnBoot Boot
	// FnInitialize runs after the renderer is up, receiving it for input
	// mapping and live-reload wiring.
	FnInitialize Initialize
	// FnUpdate runs once per tick before the frame is drawn.
	FnUpdate Update
	// FnFrameState snapshots the flags for the next frame. Called every
	// tick; the result is never cached.
	FnFrameState FrameStateFn
	FnOnResize   OnResize
	FnShutdown   Shutdown
}

type Boot func() (*renderer.GeometryBatch, []*renderer.RenderItem, *renderer.OrbitCamera, error)
type Initialize func(r *renderer.Renderer) error
type Update func(deltaTime float64) error
type FrameStateFn func() renderer.FrameState
type OnResize func(width uint32, height uint32) error
type Shutdown func() error
