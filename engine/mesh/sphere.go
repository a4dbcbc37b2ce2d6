// Package mesh provides procedural geometry for the renderer. The only mesh
// this program ever needs is a UV sphere: every celestial body and asteroid
// instance reuses the same unit sphere at a different scale.
package mesh

import (
	"fmt"
	"math"
)

// Sphere generates a latitude/longitude-subdivided UV sphere.
//
// Vertices are emitted stack by stack from the north pole (+90°) down to the
// south pole (−90°), with sectorCount+1 samples per stack ring. The first and
// last sector sample of each ring share an angle but carry distinct texture
// coordinates, which is what lets the texture wrap without a visible seam.
// Normals are unit length (position / radius). Texture coordinates are
// s = 1 − j/sectorCount, t = 1 − i/stackCount.
//
// Index generation walks adjacent stack rings pairwise emitting two triangles
// per quad, except at the poles where the degenerate quad edge collapses each
// quad to a single triangle.
//
// The function is pure and deterministic; it is intended to be called once at
// startup. Non-positive radius or subdivision counts below 3 are programming
// errors, not runtime conditions, and panic.
//
// Parameters:
//   - radius: sphere radius (must be > 0)
//   - sectorCount: longitude subdivisions (must be >= 3)
//   - stackCount: latitude subdivisions (must be >= 3)
//
// Returns:
//   - []GPUVertex: (sectorCount+1)*(stackCount+1) vertices
//   - []uint32: triangle indices, 3 per triangle
func Sphere(radius float32, sectorCount, stackCount uint32) ([]GPUVertex, []uint32) {
	if radius <= 0 {
		panic(fmt.Sprintf("mesh: sphere radius must be positive, got %v", radius))
	}
	if sectorCount < 3 || stackCount < 3 {
		panic(fmt.Sprintf("mesh: sphere subdivision counts must be >= 3, got sectors=%d stacks=%d", sectorCount, stackCount))
	}

	vertices := make([]GPUVertex, 0, (sectorCount+1)*(stackCount+1))

	sectorStep := 2 * math.Pi / float64(sectorCount)
	stackStep := math.Pi / float64(stackCount)
	lengthInv := 1.0 / radius

	for i := uint32(0); i <= stackCount; i++ {
		stackAngle := math.Pi/2 - float64(i)*stackStep
		xz := radius * float32(math.Cos(stackAngle))
		y := radius * float32(math.Sin(stackAngle))

		for j := uint32(0); j <= sectorCount; j++ {
			sectorAngle := float64(j) * sectorStep
			x := xz * float32(math.Cos(sectorAngle))
			z := xz * float32(math.Sin(sectorAngle))

			vertices = append(vertices, GPUVertex{
				Position: [3]float32{x, y, z},
				Normal:   [3]float32{x * lengthInv, y * lengthInv, z * lengthInv},
				TexCoord: [2]float32{
					1.0 - float32(j)/float32(sectorCount),
					1.0 - float32(i)/float32(stackCount),
				},
			})
		}
	}

	indices := make([]uint32, 0, 6*sectorCount*(stackCount-1))
	for i := uint32(0); i < stackCount; i++ {
		k1 := i * (sectorCount + 1)
		k2 := k1 + sectorCount + 1

		for j := uint32(0); j < sectorCount; j, k1, k2 = j+1, k1+1, k2+1 {
			// Top pole ring has no upper triangle, bottom pole ring no lower one.
			if i != 0 {
				indices = append(indices, k1, k2, k1+1)
			}
			if i != stackCount-1 {
				indices = append(indices, k1+1, k2, k2+1)
			}
		}
	}

	return vertices, indices
}
