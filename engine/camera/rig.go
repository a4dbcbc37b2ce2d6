package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/orrery-go/common"
	"github.com/Carmen-Shannon/orrery-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode identifies which control scheme currently drives the camera.
type Mode int

const (
	// ModeFollow orbits the camera around a followed body. Pointer motion
	// adjusts the orbit yaw/pitch, scroll adjusts the orbit distance, and the
	// camera always looks at the body.
	ModeFollow Mode = iota

	// ModeFreeFly flies the camera directly. The movement keys translate
	// along the view axes, pointer motion steers yaw/pitch, and scroll zooms
	// the field of view.
	ModeFreeFly
)

// Pose is a camera placement: a world-space eye position and look-at point.
type Pose struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
}

// TargetLookup resolves a body table index to its world-space position and
// render scale. The rig calls it after applying cycle transitions, so a cycle
// press poses against the newly followed body within the same tick.
type TargetLookup func(index int) (pos mgl32.Vec3, size float32)

// rigImpl is the implementation of the Rig interface.
type rigImpl struct {
	mu *sync.Mutex

	mode     Mode
	cyclable []int
	cursor   int // position within cyclable of the followed body

	// follow mode state, angles in degrees
	orbitYaw      float32
	orbitPitch    float32
	orbitDistance float32

	// free-fly mode state, angles in degrees
	freePos   mgl32.Vec3
	freeYaw   float32
	freePitch float32

	fovDeg float32

	pose Pose

	// tunables
	orbitSensitivity float32
	freeSensitivity  float32
	moveSpeed        float32
	zoomStep         float32
	minDistance      float32
	maxDistance      float32
}

// Rig is the camera state machine. It consumes one input frame per tick,
// switches between follow and free-fly modes, and produces the camera pose.
//
// Mode transitions are edge triggered: a cycle key press snaps the rig back
// to follow mode on the next body, and the first movement key press while
// following releases the camera into free flight from its current placement.
// Holding a key never re-triggers a transition.
type Rig interface {
	// Mode returns the current control mode.
	//
	// Returns:
	//   - Mode: the active mode
	Mode() Mode

	// Target returns the body table index of the followed body. The value
	// remains meaningful in free-fly mode: it is the body follow mode resumes
	// on when a cycle key re-enters it.
	//
	// Returns:
	//   - int: the followed body's table index
	Target() int

	// Fov returns the current field of view in radians. The value is fixed in
	// follow mode and scroll-adjustable between 1 and 45 degrees in free-fly
	// mode.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Pose returns the camera placement computed by the last Update.
	//
	// Returns:
	//   - Pose: the current eye and look-at point
	Pose() Pose

	// Update advances the state machine by one tick: applies mode
	// transitions, steers the active mode from the input frame, and
	// recomputes the pose. The lookup is consulted after cycle transitions
	// resolve, so the pose always tracks the body followed at the end of the
	// tick; it is also used during the follow-to-free transition to seed the
	// free camera from its last orbit placement.
	//
	// Parameters:
	//   - frame: the input accumulated since the previous tick
	//   - dt: seconds since the previous tick
	//   - lookup: resolves the followed body's position and render scale
	Update(frame input.Frame, dt float64, lookup TargetLookup)
}

var _ Rig = &rigImpl{}

// NewRig creates a camera rig in follow mode.
//
// Parameters:
//   - cyclable: body table indices the cycle keys walk through, in order
//   - start: position within cyclable of the initially followed body
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(cyclable []int, start int, options ...RigBuilderOption) Rig {
	if len(cyclable) == 0 {
		panic("camera: rig requires at least one cyclable body")
	}
	if start < 0 || start >= len(cyclable) {
		start = 0
	}
	r := &rigImpl{
		mu:               &sync.Mutex{},
		mode:             ModeFollow,
		cyclable:         cyclable,
		cursor:           start,
		orbitYaw:         0,
		orbitPitch:       20,
		orbitDistance:    3,
		freePos:          mgl32.Vec3{0, 5, 20},
		freeYaw:          -90,
		freePitch:        0,
		fovDeg:           45,
		orbitSensitivity: 0.15,
		freeSensitivity:  0.1,
		moveSpeed:        2.5,
		zoomStep:         0.2,
		minDistance:      0.5,
		maxDistance:      30,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *rigImpl) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *rigImpl) Target() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cyclable[r.cursor]
}

func (r *rigImpl) Fov() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fovDeg * math.Pi / 180
}

func (r *rigImpl) Pose() Pose {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pose
}

func (r *rigImpl) Update(frame input.Frame, dt float64, lookup TargetLookup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Cycle presses always land back in follow mode, wrapping at either end.
	if frame.WasPressed(common.KeyQ) {
		r.cursor = (r.cursor - 1 + len(r.cyclable)) % len(r.cyclable)
		r.mode = ModeFollow
	}
	if frame.WasPressed(common.KeyE) {
		r.cursor = (r.cursor + 1) % len(r.cyclable)
		r.mode = ModeFollow
	}

	targetPos, targetSize := lookup(r.cyclable[r.cursor])

	// First movement key press while following releases into free flight
	// from the current orbit placement, looking at the body it was orbiting.
	if r.mode == ModeFollow && movementPressed(frame) {
		eye := r.followEye(targetPos, targetSize)
		r.freePos = eye
		r.freeYaw, r.freePitch = anglesToward(targetPos.Sub(eye))
		r.mode = ModeFreeFly
	}

	switch r.mode {
	case ModeFollow:
		r.orbitYaw += frame.PointerDX * r.orbitSensitivity
		r.orbitPitch = clamp(r.orbitPitch-frame.PointerDY*r.orbitSensitivity, -89, 89)
		r.orbitDistance = clamp(r.orbitDistance-frame.Scroll*r.zoomStep, r.minDistance, r.maxDistance)

		eye := r.followEye(targetPos, targetSize)
		r.pose = Pose{Eye: eye, Center: targetPos}

	case ModeFreeFly:
		r.freeYaw += frame.PointerDX * r.freeSensitivity
		r.freePitch = clamp(r.freePitch-frame.PointerDY*r.freeSensitivity, -89, 89)
		r.fovDeg = clamp(r.fovDeg-frame.Scroll, 1, 45)

		front := frontVector(r.freeYaw, r.freePitch)
		right := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
		step := r.moveSpeed * float32(dt)
		if frame.IsHeld(common.KeyW) {
			r.freePos = r.freePos.Add(front.Mul(step))
		}
		if frame.IsHeld(common.KeyS) {
			r.freePos = r.freePos.Sub(front.Mul(step))
		}
		if frame.IsHeld(common.KeyA) {
			r.freePos = r.freePos.Sub(right.Mul(step))
		}
		if frame.IsHeld(common.KeyD) {
			r.freePos = r.freePos.Add(right.Mul(step))
		}

		r.pose = Pose{Eye: r.freePos, Center: r.freePos.Add(front)}
	}
}

// followEye computes the orbit camera position around the followed body.
// The effective radius pads the configured distance by four times the body's
// render scale so small and large bodies frame comparably.
// Caller must hold the mutex.
func (r *rigImpl) followEye(targetPos mgl32.Vec3, targetSize float32) mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(r.orbitYaw))
	pitch := float64(mgl32.DegToRad(clamp(r.orbitPitch, -89, 89)))
	radius := float64(r.orbitDistance + targetSize*4)
	return targetPos.Add(mgl32.Vec3{
		float32(radius * math.Cos(pitch) * math.Sin(yaw)),
		float32(radius * math.Sin(pitch)),
		float32(radius * math.Cos(pitch) * math.Cos(yaw)),
	})
}

// frontVector derives the unit view direction from yaw/pitch in degrees.
// Yaw -90 faces -Z.
func frontVector(yawDeg, pitchDeg float32) mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(yawDeg))
	pitch := float64(mgl32.DegToRad(pitchDeg))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

// anglesToward inverts frontVector: it derives the yaw/pitch in degrees that
// face along the given direction. Used to hand the free camera a seamless
// heading when leaving follow mode.
func anglesToward(dir mgl32.Vec3) (yawDeg, pitchDeg float32) {
	d := dir.Normalize()
	pitch := math.Asin(float64(d.Y()))
	yaw := math.Atan2(float64(d.Z()), float64(d.X()))
	return mgl32.RadToDeg(float32(yaw)), mgl32.RadToDeg(float32(pitch))
}

// movementPressed reports whether any movement key saw a press edge this frame.
func movementPressed(frame input.Frame) bool {
	return frame.WasPressed(common.KeyW) ||
		frame.WasPressed(common.KeyA) ||
		frame.WasPressed(common.KeyS) ||
		frame.WasPressed(common.KeyD)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
