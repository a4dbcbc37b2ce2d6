// Package sim models the solar system's kinematic state: a static table of
// celestial bodies and a pure evaluation of their positions and rotations
// from elapsed time. Orbits are kinematic, not dynamic — there is no
// integration and no accumulated state, so evaluating the same timestamp
// twice always yields identical results.
package sim

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Role identifies the kind of celestial body.
type Role int

const (
	// RoleSun is the central star. It does not orbit and is excluded from
	// camera follow cycling.
	RoleSun Role = iota

	// RolePlanet orbits the sun and participates in camera follow cycling.
	RolePlanet

	// RoleMoon orbits a parent planet. Moons are excluded from follow cycling
	// but remain valid follow targets when selected explicitly.
	RoleMoon
)

// Body holds the static orbital parameters of a single celestial body.
// All per-frame quantities (orbit angle, spin angle, position) are derived
// from these parameters and elapsed time; none are stored here.
type Body struct {
	// Name is the body identifier ("sun", "earth", ...). Unique within a System.
	Name string

	// Role tags the body as sun, planet, or moon.
	Role Role

	// Parent is the Name of the body this one orbits. Empty for the sun;
	// "sun" is implied for planets and may be left empty.
	Parent string

	// OrbitRadius is the distance from the parent body (0 for the sun).
	OrbitRadius float32

	// OrbitSpeed is the orbital angular speed in radians per second (0 for the sun).
	OrbitSpeed float32

	// SpinSpeed is the self-rotation angular speed in radians per second.
	SpinSpeed float32

	// Size is the render scale applied to the shared unit sphere.
	Size float32

	// Color is the material base color, used when the body's texture is unavailable.
	Color [3]float32

	// Texture is the path of the body's texture image.
	Texture string
}

// BodyState is the derived per-frame state of a single body.
type BodyState struct {
	// Position is the body's world-space position.
	Position mgl32.Vec3

	// OrbitAngle is the current orbit angle in radians (elapsed * OrbitSpeed).
	OrbitAngle float32

	// SpinAngle is the current self-rotation angle in radians (elapsed * SpinSpeed).
	SpinAngle float32
}

// System is an ordered table of celestial bodies with resolved parent links.
// The table order guarantees every parent appears before its children, which
// lets a single evaluation pass compose the moon's position from its planet's.
type System struct {
	bodies  []Body
	parents []int // index of each body's parent, -1 for the sun
	byName  map[string]int
}

// NewSystem builds a System from a body table. The sun must be first, and
// every body's parent must appear earlier in the table than the body itself
// (the evaluation order depends on it).
//
// Parameters:
//   - bodies: the static body table
//
// Returns:
//   - *System: the resolved system
//   - error: error if a parent reference is missing or out of order
func NewSystem(bodies []Body) (*System, error) {
	s := &System{
		bodies:  bodies,
		parents: make([]int, len(bodies)),
		byName:  make(map[string]int, len(bodies)),
	}
	for i, b := range bodies {
		if _, dup := s.byName[b.Name]; dup {
			return nil, fmt.Errorf("sim: duplicate body name %q", b.Name)
		}
		s.byName[b.Name] = i
	}
	for i, b := range bodies {
		parent := b.Parent
		if parent == "" && b.Role != RoleSun {
			parent = "sun"
		}
		if parent == "" {
			s.parents[i] = -1
			continue
		}
		pi, ok := s.byName[parent]
		if !ok {
			return nil, fmt.Errorf("sim: body %q references unknown parent %q", b.Name, parent)
		}
		if pi >= i {
			return nil, fmt.Errorf("sim: body %q must appear after its parent %q", b.Name, parent)
		}
		s.parents[i] = pi
	}
	return s, nil
}

// Bodies returns the body table in evaluation order.
//
// Returns:
//   - []Body: the static body table
func (s *System) Bodies() []Body {
	return s.bodies
}

// IndexOf returns the table index of the named body, or -1 if unknown.
//
// Parameters:
//   - name: the body name to look up
//
// Returns:
//   - int: the body's index, or -1 if not found
func (s *System) IndexOf(name string) int {
	if i, ok := s.byName[name]; ok {
		return i
	}
	return -1
}

// Cyclable returns the indices of bodies the camera's follow mode cycles
// through: planets only. The sun is not a follow target and the moon is
// reachable only by explicit selection, never by cycling.
//
// Returns:
//   - []int: planet indices in table order
func (s *System) Cyclable() []int {
	out := make([]int, 0, len(s.bodies))
	for i, b := range s.bodies {
		if b.Role == RolePlanet {
			out = append(out, i)
		}
	}
	return out
}

// At evaluates every body's state at the given elapsed time. Positions are a
// pure function of elapsed time: orbitAngle = elapsed * OrbitSpeed, position =
// parentPosition + OrbitRadius * (cos(orbitAngle), 0, sin(orbitAngle)). All
// orbits lie in the y = 0 plane of their parent. Because parents precede
// children in the table, the single pass composes the moon's position from
// Earth's position evaluated in the same call.
//
// The out slice is reused when it has sufficient capacity, so a caller can
// evaluate every frame without allocating.
//
// Parameters:
//   - elapsed: elapsed simulation time in seconds
//   - out: optional slice to reuse for results (may be nil)
//
// Returns:
//   - []BodyState: one state per body, in table order
func (s *System) At(elapsed float64, out []BodyState) []BodyState {
	if cap(out) < len(s.bodies) {
		out = make([]BodyState, len(s.bodies))
	}
	out = out[:len(s.bodies)]

	for i, b := range s.bodies {
		orbitAngle := elapsed * float64(b.OrbitSpeed)
		spinAngle := elapsed * float64(b.SpinSpeed)

		var pos mgl32.Vec3
		if pi := s.parents[i]; pi >= 0 {
			pos = out[pi].Position.Add(mgl32.Vec3{
				float32(math.Cos(orbitAngle)) * b.OrbitRadius,
				0,
				float32(math.Sin(orbitAngle)) * b.OrbitRadius,
			})
		}

		out[i] = BodyState{
			Position:   pos,
			OrbitAngle: float32(orbitAngle),
			SpinAngle:  float32(spinAngle),
		}
	}
	return out
}

// DefaultSystem returns the stock solar system: the sun, the eight planets,
// and the moon parented to Earth. Orbit radii are scaled astronomical units
// (1 AU = 2.5 units); speeds are stylized rather than to-scale so outer
// planets still visibly move.
//
// Returns:
//   - *System: the stock system
func DefaultSystem() *System {
	s, err := NewSystem([]Body{
		{Name: "sun", Role: RoleSun, SpinSpeed: 0.5, Size: 0.625, Color: [3]float32{1.0, 0.9, 0.3}, Texture: "assets/textures/sun.jpg"},
		{Name: "mercury", Role: RolePlanet, OrbitRadius: 0.975, OrbitSpeed: 4.15, SpinSpeed: 1.0, Size: 0.045, Color: [3]float32{0.7, 0.7, 0.7}, Texture: "assets/textures/mercury.jpg"},
		{Name: "venus", Role: RolePlanet, OrbitRadius: 1.8, OrbitSpeed: 1.62, SpinSpeed: 1.2, Size: 0.1125, Color: [3]float32{1.0, 0.8, 0.5}, Texture: "assets/textures/venus.jpg"},
		{Name: "earth", Role: RolePlanet, OrbitRadius: 2.5, OrbitSpeed: 1.0, SpinSpeed: 1.5, Size: 0.125, Color: [3]float32{0.5, 0.7, 1.0}, Texture: "assets/textures/earth.jpg"},
		{Name: "moon", Role: RoleMoon, Parent: "earth", OrbitRadius: 0.2, OrbitSpeed: 12.0, SpinSpeed: 2.0, Size: 0.0325, Color: [3]float32{0.8, 0.8, 0.8}, Texture: "assets/textures/moon.jpg"},
		{Name: "mars", Role: RolePlanet, OrbitRadius: 3.8, OrbitSpeed: 0.53, SpinSpeed: 1.0, Size: 0.0675, Color: [3]float32{1.0, 0.5, 0.3}, Texture: "assets/textures/mars.jpg"},
		{Name: "jupiter", Role: RolePlanet, OrbitRadius: 13.0, OrbitSpeed: 0.08, SpinSpeed: 0.8, Size: 0.25, Color: [3]float32{1.0, 0.8, 0.5}, Texture: "assets/textures/jupiter.jpg"},
		{Name: "saturn", Role: RolePlanet, OrbitRadius: 23.95, OrbitSpeed: 0.03, SpinSpeed: 0.7, Size: 0.2125, Color: [3]float32{1.0, 0.9, 0.6}, Texture: "assets/textures/saturn.jpg"},
		{Name: "uranus", Role: RolePlanet, OrbitRadius: 47.95, OrbitSpeed: 0.011, SpinSpeed: 0.6, Size: 0.15, Color: [3]float32{0.7, 0.9, 1.0}, Texture: "assets/textures/uranus.jpg"},
		{Name: "neptune", Role: RolePlanet, OrbitRadius: 75.175, OrbitSpeed: 0.006, SpinSpeed: 0.5, Size: 0.145, Color: [3]float32{0.5, 0.7, 1.0}, Texture: "assets/textures/neptune.jpg"},
	})
	if err != nil {
		// The stock table is static; a bad entry is a programming error.
		panic(err)
	}
	return s
}
