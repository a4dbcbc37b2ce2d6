// Command orrery renders a real-time solar system: the sun, the eight
// planets, the moon, and an asteroid belt, orbiting and spinning under a
// Phong-lit camera you can fly around.
//
// Controls:
//
//	Q / E    follow the previous / next planet
//	W A S D  break into free-fly mode and move
//	Mouse    orbit the followed planet, or look around in free-fly
//	Scroll   orbit distance (follow) / field of view (free-fly)
//	Esc      quit
package main

import (
	"log"
	"math"
	"runtime"

	"github.com/Carmen-Shannon/orrery-go/engine"
	"github.com/Carmen-Shannon/orrery-go/engine/camera"
	"github.com/Carmen-Shannon/orrery-go/engine/renderer"
	"github.com/Carmen-Shannon/orrery-go/engine/scene"
	"github.com/Carmen-Shannon/orrery-go/engine/window"
	"github.com/Carmen-Shannon/orrery-go/sim"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

func init() {
	// GLFW and the wgpu surface must stay on the thread that created them.
	runtime.LockOSThread()
}

func main() {
	win := window.NewWindow(
		window.WithTitle("Solar System — Q/E follow planets, WASD free-fly, Esc quit"),
		window.WithWidth(windowWidth),
		window.WithHeight(windowHeight),
		window.WithCursorCaptured(true),
	)

	rend, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win.SurfaceDescriptor(), win.Width(), win.Height(),
		renderer.WithMSAA(renderer.MSAA4x),
	)
	if err != nil {
		log.Fatalf("renderer init failed: %v", err)
	}

	system := sim.DefaultSystem()
	cam := camera.NewCamera(
		camera.WithFov(float32(45*math.Pi/180)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(0.1),
		camera.WithFar(250),
	)
	rig := camera.NewRig(system.Cyclable(), followStart(system))

	sc := scene.NewScene(rend, cam, rig, system)
	if err := sc.Init(); err != nil {
		log.Fatalf("scene init failed: %v", err)
	}

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
	)
	e.Run()
}

// followStart returns the position of Earth within the cyclable body list,
// falling back to the first entry if the table was customized without it.
func followStart(system *sim.System) int {
	earth := system.IndexOf("earth")
	for i, idx := range system.Cyclable() {
		if idx == earth {
			return i
		}
	}
	return 0
}
