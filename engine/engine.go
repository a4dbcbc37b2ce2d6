package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/orrery-go/engine/input"
	"github.com/Carmen-Shannon/orrery-go/engine/profiler"
	"github.com/Carmen-Shannon/orrery-go/engine/scene"
	"github.com/Carmen-Shannon/orrery-go/engine/window"
)

// engine implements the Engine interface.
// Runs the whole frame on the window's message loop thread: poll events, take
// an input snapshot, advance the simulation, then render. There is no render
// goroutine — GLFW and wgpu surface calls stay on the one locked OS thread.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	closeOnce   sync.Once // Ensures the window is only destroyed once

	window  window.Window
	tracker input.Tracker
	sc      scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback func(frame input.Frame, deltaTime float64)

	lastTick time.Time
}

// Engine is the main entry point for the application. It owns the window, the
// input tracker, and the active scene, and drives the single-threaded tick
// loop from the window's message loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Tracker returns the input tracker fed by the window's event callbacks.
	// Its Snapshot is taken exactly once per tick, at tick start.
	//
	// Returns:
	//   - input.Tracker: the input tracker
	Tracker() input.Tracker

	// Scene returns the active scene, or nil if none is attached.
	//
	// Returns:
	//   - scene.Scene: the active scene
	Scene() scene.Scene

	// SetScene attaches the scene driven by the tick loop.
	//
	// Parameters:
	//   - s: the Scene to attach
	SetScene(s scene.Scene)

	// EnableProfiler enables periodic frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// SetTickCallback registers an optional function called at the start of
	// every tick, before the scene updates. Use it for app-level logic that
	// needs the raw input frame.
	//
	// Parameters:
	//   - callback: function receiving the input snapshot and the delta time in seconds
	SetTickCallback(callback func(frame input.Frame, deltaTime float64))

	// Run starts the main loop and blocks until the window closes or Quit is
	// called. On return, the scene's GPU resources, the renderer, and the
	// window have been released in that order.
	Run()

	// Quit signals the main loop to stop and shut down.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options. When a
// window is supplied, its input callbacks are wired to the engine's tracker
// and its resize events fan out to the active scene's renderer and camera.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		tracker:     input.NewTracker(),
		profiler:    profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetKeyDownCallback(e.tracker.KeyDown)
		e.window.SetKeyUpCallback(e.tracker.KeyUp)
		e.window.SetPointerMoveCallback(e.tracker.PointerMove)
		e.window.SetScrollCallback(e.tracker.Scroll)
		e.window.SetResizeCallback(func(width, height int) {
			if width <= 0 || height <= 0 {
				return // minimized
			}
			if e.sc == nil {
				return
			}
			if r := e.sc.Renderer(); r != nil {
				r.Resize(width, height)
			}
			if c := e.sc.Camera(); c != nil {
				c.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Tracker() input.Tracker {
	return e.tracker
}

func (e *engine) Scene() scene.Scene {
	return e.sc
}

func (e *engine) SetScene(s scene.Scene) {
	e.sc = s
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine requires a window")
	}

	e.lastTick = time.Now()
	e.window.SetUpdateCallback(e.tick)
	e.window.ProcessMessages()

	e.teardown()
}

// Quit signals the main loop to stop and shut down.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// tick runs one frame: input snapshot, simulation update, render. Called by
// the window once per message loop iteration.
func (e *engine) tick() {
	select {
	case <-e.quitChannel:
		e.closeWindow()
		return
	default:
	}

	now := time.Now()
	deltaTime := now.Sub(e.lastTick).Seconds()
	e.lastTick = now

	frame := e.tracker.Snapshot()

	if e.tickCallback != nil {
		e.tickCallback(frame, deltaTime)
	}

	if e.sc == nil || !e.sc.Active() {
		return
	}

	e.sc.Update(frame, deltaTime)

	r := e.sc.Renderer()
	if r == nil {
		return
	}
	if err := r.BeginFrame(); err != nil {
		// Transient during resize; the next frame reacquires the surface.
		log.Printf("engine: frame skipped: %v", err)
		return
	}
	if err := e.sc.DrawCalls(); err != nil {
		log.Printf("engine: draw calls failed: %v", err)
	}
	r.EndFrame()
	r.Present()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// teardown releases the scene's GPU objects, the renderer, and the window, in
// that order. Runs on every exit path out of Run.
func (e *engine) teardown() {
	if e.sc != nil {
		r := e.sc.Renderer()
		e.sc.Release()
		if r != nil {
			r.Release()
		}
	}
	e.closeWindow()
}

// closeWindow destroys the window exactly once. Close tears down the platform
// layer, so repeat calls from the quit path and teardown must be collapsed.
func (e *engine) closeWindow() {
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("engine: window close failed: %v", err)
		}
	})
}

// EnableProfiler enables periodic frame statistics output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables frame statistics output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickCallback registers the function called at the start of every tick.
func (e *engine) SetTickCallback(callback func(frame input.Frame, deltaTime float64)) {
	e.tickCallback = callback
}
