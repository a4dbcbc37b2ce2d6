package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a
	// position. Used for the sun's core glow and the ring fill lights around it.
	// Attenuates with distance via constant/linear/quadratic coefficients.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position
	// along a direction. Used for the camera headlight. Attenuates with both
	// distance and angle from the cone axis.
	LightTypeSpot
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  [3]float32
	direction [3]float32
	ambient   [3]float32
	diffuse   [3]float32
	specular  [3]float32
	constant  float32
	linear    float32
	quadratic float32
	innerCone float32 // stored as cos(angle in radians)
	outerCone float32 // stored as cos(angle in radians)
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// Lights contribute to the final pixel color during the lit forward rendering
// pass using a Phong split: separate ambient, diffuse, and specular colors per
// light. All light types share this interface; type-specific properties (cone
// angles for spot lights, attenuation for point and spot lights) return zero
// values when not applicable.
//
// Lights are marshaled into a fixed-size GPU uniform block each frame via the
// gpu_types helpers.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light.
	// For directional lights this is the light direction. For spot lights this
	// is the cone axis. Meaningless for point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Ambient returns the ambient RGB contribution of the light.
	//
	// Returns:
	//   - [3]float32: ambient color as (r, g, b)
	Ambient() [3]float32

	// Diffuse returns the diffuse RGB contribution of the light.
	//
	// Returns:
	//   - [3]float32: diffuse color as (r, g, b)
	Diffuse() [3]float32

	// Specular returns the specular RGB contribution of the light.
	//
	// Returns:
	//   - [3]float32: specular color as (r, g, b)
	Specular() [3]float32

	// Attenuation returns the constant, linear, and quadratic distance
	// attenuation coefficients for point and spot lights. The attenuation
	// factor at distance d is 1 / (constant + linear*d + quadratic*d*d).
	// Meaningless for directional lights.
	//
	// Returns:
	//   - float32: constant coefficient
	//   - float32: linear coefficient
	//   - float32: quadratic coefficient
	Attenuation() (float32, float32, float32)

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	// Fragments within this angle receive full intensity.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	// Fragments outside this angle receive zero spot intensity.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped during GPU block marshaling.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColors sets the ambient, diffuse, and specular RGB contributions.
	//
	// Parameters:
	//   - ambient: ambient color as (r, g, b)
	//   - diffuse: diffuse color as (r, g, b)
	//   - specular: specular color as (r, g, b)
	SetColors(ambient, diffuse, specular [3]float32)

	// SetAttenuation sets the constant, linear, and quadratic distance
	// attenuation coefficients.
	//
	// Parameters:
	//   - constant: constant coefficient
	//   - linear: linear coefficient
	//   - quadratic: quadratic coefficient
	SetAttenuation(constant, linear, quadratic float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  [3]float32{0, 0, 0},
		direction: [3]float32{0, -1, 0},
		ambient:   [3]float32{0.1, 0.1, 0.1},
		diffuse:   [3]float32{0.8, 0.8, 0.8},
		specular:  [3]float32{1, 1, 1},
		constant:  1.0,
		linear:    0.09,
		quadratic: 0.032,
		innerCone: cosDeg(12.5),
		outerCone: cosDeg(15.0),
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Ambient() [3]float32 {
	return l.ambient
}

func (l *lightImpl) Diffuse() [3]float32 {
	return l.diffuse
}

func (l *lightImpl) Specular() [3]float32 {
	return l.specular
}

func (l *lightImpl) Attenuation() (float32, float32, float32) {
	return l.constant, l.linear, l.quadratic
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColors(ambient, diffuse, specular [3]float32) {
	l.ambient = ambient
	l.diffuse = diffuse
	l.specular = specular
}

func (l *lightImpl) SetAttenuation(constant, linear, quadratic float32) {
	l.constant = constant
	l.linear = linear
	l.quadratic = quadratic
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
