package engine

import (
	"fmt"

	"github.com/spaghettifunk/rampart/engine/core"
	"github.com/spaghettifunk/rampart/engine/platform"
	"github.com/spaghettifunk/rampart/engine/renderer"
	"github.com/spaghettifunk/rampart/engine/renderer/vulkan"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	renderer     *renderer.Renderer
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
	totalTime    float64
}

func New(g *Game) (*Engine, error) {
	p, err := platform.New()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		clock:        core.NewClock(),
		platform:     p,
		isRunning:    true,
		isSuspended:  false,
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// initialize input
	if err := core.InputInitialize(); err != nil {
		return err
	}

	// initialize events
	if !core.EventInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(e.gameInstance.ApplicationConfig.Name,
		e.gameInstance.ApplicationConfig.StartPosX,
		e.gameInstance.ApplicationConfig.StartPosY,
		e.gameInstance.ApplicationConfig.StartWidth,
		e.gameInstance.ApplicationConfig.StartHeight); err != nil {
		return err
	}

	// The game builds the scene before the device comes up so the geometry
	// can be uploaded in one shot.
	batch, items, camera, err := e.gameInstance.FnBoot()
	if err != nil {
		return err
	}

	device := vulkan.New(e.platform)
	r, err := renderer.NewRenderer(device, e.gameInstance.ApplicationConfig.Name, e.width, e.height, batch, items, camera)
	if err != nil {
		return err
	}
	e.renderer = r

	if err := e.gameInstance.FnInitialize(e.renderer); err != nil {
		return err
	}

	if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.ElapsedSeconds()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		if !e.isSuspended {
			// Update clock and get delta time.
			e.clock.Update()

			currentTime := e.clock.ElapsedSeconds()
			delta := currentTime - e.lastTime
			frameStartTime := platform.GetAbsoluteTime()

			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogFatal("Game update failed, shutting down.")
				e.isRunning = false
				break
			}

			e.totalTime += delta

			// The frame flags are re-read from the game every tick.
			state := e.gameInstance.FnFrameState()
			state.TotalTime = float32(e.totalTime)
			state.DeltaTime = float32(delta)

			if err := e.renderer.DrawFrame(state); err != nil {
				core.LogFatal("Frame draw failed, shutting down: %s", err)
				e.isRunning = false
				break
			}

			frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
			core.MetricsUpdate(frameElapsedTime)

			// NOTE: Input update/state copying should always be handled
			// after any input should be recorded; I.E. before this line.
			// As a safety, input is the last thing to be updated before
			// this frame ends.
			core.InputUpdate(delta)

			// Update last time
			e.lastTime = currentTime
		}
	}

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError(err.Error())
		}
	}
	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			return err
		}
	}
	if err := core.EventShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if err := e.platform.Shutdown(); err != nil {
		return err
	}
	return nil
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	keyCode := core.KeyCode(context.Data.U16[0])

	if code == core.EVENT_CODE_KEY_PRESSED {
		if keyCode == core.KEY_ESCAPE {
			// NOTE: Technically firing an event to itself, but there may be other listeners.
			core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
			// Block anything else from processing this.
			return true
		}
		core.LogDebug("'%c' key pressed in window.", keyCode)
	} else if code == core.EVENT_CODE_KEY_RELEASED {
		core.LogDebug("'%c' key released in window.", keyCode)
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	if code != core.EVENT_CODE_RESIZED {
		return false
	}

	width := uint32(context.Data.U16[0])
	height := uint32(context.Data.U16[1])

	// Check if different. If so, trigger a resize event.
	if width != e.width || height != e.height {
		e.width = width
		e.height = height

		core.LogDebug("Window resize: %d, %d", width, height)

		// Handle minimization
		if width == 0 || height == 0 {
			core.LogInfo("Window minimized, suspending application.")
			e.isSuspended = true
			return false
		}
		if e.isSuspended {
			core.LogInfo("Window restored, resuming application.")
			e.isSuspended = false
		}
		e.gameInstance.FnOnResize(width, height)
		if err := e.renderer.OnResize(uint16(width), uint16(height)); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
