package sim

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultBeltCount is the number of asteroids in the stock belt.
const DefaultBeltCount = 200

// Asteroid is one static belt instance. The belt is generated once at
// startup and never mutated; every asteroid keeps a fixed world position.
type Asteroid struct {
	// Position is the asteroid's fixed world-space position.
	Position mgl32.Vec3

	// Scale is the render scale applied to the shared unit sphere.
	Scale float32

	// SpinAngle is a fixed random orientation around the y axis, so the
	// shared sphere texture does not visibly repeat around the ring.
	SpinAngle float32
}

// Belt scatters count asteroids on an annulus around the sun between radii
// 5.5 and 8.0, with a small vertical jitter of +-0.125 around the orbital
// plane. Each asteroid's ring angle is evenly spaced (i/count around the full
// circle) while radius, height, scale, and orientation are drawn from the
// seeded source, so the same seed always reproduces the same belt.
//
// Parameters:
//   - count: number of asteroids to generate
//   - seed: seed for the pseudo-random source
//
// Returns:
//   - []Asteroid: the generated belt, empty when count <= 0
func Belt(count int, seed int64) []Asteroid {
	if count <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]Asteroid, count)
	for i := range out {
		angle := float64(i) / float64(count) * 2 * math.Pi
		radius := 5.5 + rng.Float64()*2.5
		height := (rng.Float64() - 0.5) * 0.25
		scale := 0.02 + rng.Float64()*0.0175
		out[i] = Asteroid{
			Position: mgl32.Vec3{
				float32(math.Cos(angle) * radius),
				float32(height),
				float32(math.Sin(angle) * radius),
			},
			Scale:     float32(scale),
			SpinAngle: float32(rng.Float64() * 2 * math.Pi),
		}
	}
	return out
}
