package camera

import "github.com/go-gl/mathgl/mgl32"

type RigBuilderOption func(*rigImpl)

// WithOrbit sets the initial follow-mode orbit placement.
//
// Parameters:
//   - yawDeg: horizontal angle around the body in degrees
//   - pitchDeg: vertical angle in degrees, clamped to [-89, 89] on use
//   - distance: orbit distance before the body-size padding
//
// Returns:
//   - RigBuilderOption: a function that sets the orbit placement
func WithOrbit(yawDeg, pitchDeg, distance float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.orbitYaw = yawDeg
		r.orbitPitch = pitchDeg
		r.orbitDistance = distance
	}
}

// WithFreePosition sets the position the free camera starts from the first
// time free-fly mode is entered by means other than a follow-mode release.
//
// Parameters:
//   - pos: world-space starting position
//
// Returns:
//   - RigBuilderOption: a function that sets the free camera position
func WithFreePosition(pos mgl32.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.freePos = pos
	}
}

// WithOrbitSensitivity sets the follow-mode pointer sensitivity in degrees
// per pixel.
//
// Parameters:
//   - sensitivity: degrees of orbit rotation per pixel of pointer motion
//
// Returns:
//   - RigBuilderOption: a function that sets the orbit sensitivity
func WithOrbitSensitivity(sensitivity float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.orbitSensitivity = sensitivity
	}
}

// WithFreeSensitivity sets the free-fly pointer sensitivity in degrees per
// pixel.
//
// Parameters:
//   - sensitivity: degrees of heading change per pixel of pointer motion
//
// Returns:
//   - RigBuilderOption: a function that sets the free-fly sensitivity
func WithFreeSensitivity(sensitivity float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.freeSensitivity = sensitivity
	}
}

// WithMoveSpeed sets the free-fly translation speed in world units per second.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - RigBuilderOption: a function that sets the movement speed
func WithMoveSpeed(speed float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.moveSpeed = speed
	}
}

// WithDistanceLimits sets the follow-mode orbit distance clamp and the scroll
// step applied per wheel notch.
//
// Parameters:
//   - minDistance: closest allowed orbit distance
//   - maxDistance: farthest allowed orbit distance
//   - zoomStep: distance change per scroll notch
//
// Returns:
//   - RigBuilderOption: a function that sets the distance limits
func WithDistanceLimits(minDistance, maxDistance, zoomStep float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.minDistance = minDistance
		r.maxDistance = maxDistance
		r.zoomStep = zoomStep
	}
}
