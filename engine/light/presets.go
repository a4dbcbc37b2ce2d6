package light

import "math"

// SceneAmbient is the global ambient term applied to every lit fragment.
var SceneAmbient = [3]float32{0.3, 0.3, 0.3}

// SunLight builds the point light at the sun's core. Its attenuation is tuned
// to stay bright across the full planet range, falling off only near
// Neptune's orbit. The specular term is zero: planet surfaces are matte, and
// a glossy highlight from the sun reads as a rendering artifact.
//
// Returns:
//   - Light: the sun point light
func SunLight() Light {
	return NewLight(LightTypePoint,
		WithPosition(0, 0, 0),
		WithAttenuation(1.0, 0.007, 0.0002),
		WithColors(
			[3]float32{0.3, 0.3, 0.3},
			[3]float32{0.7, 0.7, 0.7},
			[3]float32{},
		),
	)
}

// RingLights builds six dim fill lights arranged on a sphere of radius 0.75
// around the sun, alternating between an upper and lower latitude band. They
// soften the terminator on the innermost planets, which would otherwise be
// lit by a single point at the origin. Like the sun light, they carry no
// specular term.
//
// Returns:
//   - []Light: the six fill lights
func RingLights() []Light {
	const count = 6
	const radius = 0.75
	out := make([]Light, count)
	for i := range out {
		longitude := float64(i) / count * 2 * math.Pi
		latitude := 0.33 * math.Pi
		if i%2 == 1 {
			latitude = 0.66 * math.Pi
		}
		x := radius * math.Sin(latitude) * math.Cos(longitude)
		y := radius * math.Cos(latitude)
		z := radius * math.Sin(latitude) * math.Sin(longitude)
		out[i] = NewLight(LightTypePoint,
			WithPosition(float32(x), float32(y), float32(z)),
			WithAttenuation(1.0, 0.07, 0.017),
			WithColors(
				[3]float32{0.15, 0.15, 0.15},
				[3]float32{0.35, 0.35, 0.35},
				[3]float32{},
			),
		)
	}
	return out
}

// HeadLight builds the camera-attached spot light. It ships disabled with
// zeroed colors; the frame loop repositions it at the camera each frame and
// it can be enabled for close inspection of unlit planet hemispheres.
//
// Returns:
//   - Light: the camera spot light
func HeadLight() Light {
	return NewLight(LightTypeSpot,
		WithSpotCone(12.5, 15.0),
		WithAttenuation(1.0, 0.09, 0.032),
		WithColors([3]float32{}, [3]float32{}, [3]float32{}),
		WithEnabled(false),
	)
}
