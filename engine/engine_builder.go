package engine

import (
	"github.com/Carmen-Shannon/orrery-go/engine/scene"
	"github.com/Carmen-Shannon/orrery-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine during
// construction.
type EngineBuilderOption func(*engine)

// WithWindow attaches the window the engine drives its tick loop from.
//
// Parameters:
//   - w: the Window to attach
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene attaches the scene the engine updates and renders every tick.
//
// Parameters:
//   - s: the Scene to attach
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.sc = s
	}
}

// WithProfiling enables periodic frame statistics output from the start.
//
// Returns:
//   - EngineBuilderOption: the option to apply
func WithProfiling() EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = true
	}
}
