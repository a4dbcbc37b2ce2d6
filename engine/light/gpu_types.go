package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxPointLights is the number of point light slots in the GPU uniform block.
// The block is a fixed-size uniform buffer, so unused slots are zeroed rather
// than omitted; the shader iterates only over the active count.
const MaxPointLights = 8

// GPUDirLight is the GPU-aligned representation of the directional light.
// Matches the WGSL DirLight struct layout exactly.
// Size: 64 bytes (four vec3s, each padded to 16-byte alignment).
type GPUDirLight struct {
	Direction [3]float32 // offset  0: normalized light direction
	_pad0     float32    // offset 12
	Ambient   [3]float32 // offset 16: ambient RGB
	_pad1     float32    // offset 28
	Diffuse   [3]float32 // offset 32: diffuse RGB
	_pad2     float32    // offset 44
	Specular  [3]float32 // offset 48: specular RGB
	_pad3     float32    // offset 60
}

// GPUPointLight is the GPU-aligned representation of a single point light.
// Matches the WGSL PointLight struct layout exactly. The attenuation
// coefficients ride in the padding lanes of the color vec3s.
// Size: 64 bytes.
type GPUPointLight struct {
	Position  [3]float32 // offset  0: world-space position
	Constant  float32    // offset 12: constant attenuation coefficient
	Ambient   [3]float32 // offset 16: ambient RGB
	Linear    float32    // offset 28: linear attenuation coefficient
	Diffuse   [3]float32 // offset 32: diffuse RGB
	Quadratic float32    // offset 44: quadratic attenuation coefficient
	Specular  [3]float32 // offset 48: specular RGB
	_pad      float32    // offset 60
}

// GPUSpotLight is the GPU-aligned representation of the spot light.
// Matches the WGSL SpotLight struct layout exactly.
// Size: 80 bytes.
type GPUSpotLight struct {
	Position  [3]float32 // offset  0: world-space position
	InnerCone float32    // offset 12: cos(inner half-angle)
	Direction [3]float32 // offset 16: normalized cone axis
	OuterCone float32    // offset 28: cos(outer half-angle)
	Ambient   [3]float32 // offset 32: ambient RGB
	Constant  float32    // offset 44: constant attenuation coefficient
	Diffuse   [3]float32 // offset 48: diffuse RGB
	Linear    float32    // offset 60: linear attenuation coefficient
	Specular  [3]float32 // offset 64: specular RGB
	Quadratic float32    // offset 76: quadratic attenuation coefficient
}

// GPULightBlock is the complete per-frame lighting uniform uploaded to the
// lit pipeline. Matches the WGSL LightBlock struct layout exactly.
// Size: 672 bytes (16-byte header + 64 + 80 + 8 x 64).
type GPULightBlock struct {
	SceneAmbient [3]float32 // offset   0: global ambient RGB applied to every fragment
	PointCount   uint32     // offset  12: number of active entries in Points
	Dir          GPUDirLight
	Spot         GPUSpotLight
	Points       [MaxPointLights]GPUPointLight
}

// Size returns the size of the GPULightBlock struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (672)
func (b *GPULightBlock) Size() int {
	return int(unsafe.Sizeof(*b))
}

// Marshal serializes the GPULightBlock into a byte buffer suitable for GPU
// uniform upload.
//
// Returns:
//   - []byte: 672-byte buffer ready for GPU upload
func (b *GPULightBlock) Marshal() []byte {
	buf := make([]byte, b.Size())
	off := 0

	putVec3 := func(v [3]float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(v[2]))
		off += 12
	}
	putF32 := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
		off += 4
	}

	putVec3(b.SceneAmbient)
	binary.LittleEndian.PutUint32(buf[off:off+4], b.PointCount)
	off += 4

	putVec3(b.Dir.Direction)
	putF32(0)
	putVec3(b.Dir.Ambient)
	putF32(0)
	putVec3(b.Dir.Diffuse)
	putF32(0)
	putVec3(b.Dir.Specular)
	putF32(0)

	putVec3(b.Spot.Position)
	putF32(b.Spot.InnerCone)
	putVec3(b.Spot.Direction)
	putF32(b.Spot.OuterCone)
	putVec3(b.Spot.Ambient)
	putF32(b.Spot.Constant)
	putVec3(b.Spot.Diffuse)
	putF32(b.Spot.Linear)
	putVec3(b.Spot.Specular)
	putF32(b.Spot.Quadratic)

	for i := range b.Points {
		p := &b.Points[i]
		putVec3(p.Position)
		putF32(p.Constant)
		putVec3(p.Ambient)
		putF32(p.Linear)
		putVec3(p.Diffuse)
		putF32(p.Quadratic)
		putVec3(p.Specular)
		putF32(0)
	}

	return buf
}

// ToGPUDirLight converts a directional Light into its GPU representation.
// A nil or disabled light yields a zeroed struct, which contributes nothing
// in the shader.
//
// Parameters:
//   - l: the directional Light to convert (may be nil)
//
// Returns:
//   - GPUDirLight: the GPU-aligned representation
func ToGPUDirLight(l Light) GPUDirLight {
	if l == nil || !l.Enabled() {
		return GPUDirLight{}
	}
	return GPUDirLight{
		Direction: l.Direction(),
		Ambient:   l.Ambient(),
		Diffuse:   l.Diffuse(),
		Specular:  l.Specular(),
	}
}

// ToGPUPointLight converts a point Light into its GPU representation.
//
// Parameters:
//   - l: the point Light to convert
//
// Returns:
//   - GPUPointLight: the GPU-aligned representation
func ToGPUPointLight(l Light) GPUPointLight {
	constant, linear, quadratic := l.Attenuation()
	return GPUPointLight{
		Position:  l.Position(),
		Constant:  constant,
		Ambient:   l.Ambient(),
		Linear:    linear,
		Diffuse:   l.Diffuse(),
		Quadratic: quadratic,
		Specular:  l.Specular(),
	}
}

// ToGPUSpotLight converts a spot Light into its GPU representation.
// A nil or disabled light yields a zeroed struct.
//
// Parameters:
//   - l: the spot Light to convert (may be nil)
//
// Returns:
//   - GPUSpotLight: the GPU-aligned representation
func ToGPUSpotLight(l Light) GPUSpotLight {
	if l == nil || !l.Enabled() {
		return GPUSpotLight{}
	}
	constant, linear, quadratic := l.Attenuation()
	return GPUSpotLight{
		Position:  l.Position(),
		InnerCone: l.InnerCone(),
		Direction: l.Direction(),
		OuterCone: l.OuterCone(),
		Ambient:   l.Ambient(),
		Constant:  constant,
		Diffuse:   l.Diffuse(),
		Linear:    linear,
		Specular:  l.Specular(),
		Quadratic: quadratic,
	}
}

// BuildLightBlock assembles the per-frame lighting uniform from the scene's
// lights. Disabled point lights are skipped; at most MaxPointLights enabled
// point lights are included and the rest are dropped.
//
// Parameters:
//   - ambient: global scene ambient RGB
//   - dir: the directional light (may be nil)
//   - spot: the spot light (may be nil)
//   - points: the point lights (only enabled lights are included)
//
// Returns:
//   - GPULightBlock: the assembled uniform block
func BuildLightBlock(ambient [3]float32, dir, spot Light, points []Light) GPULightBlock {
	block := GPULightBlock{
		SceneAmbient: ambient,
		Dir:          ToGPUDirLight(dir),
		Spot:         ToGPUSpotLight(spot),
	}
	for _, p := range points {
		if p == nil || !p.Enabled() {
			continue
		}
		if block.PointCount >= MaxPointLights {
			break
		}
		block.Points[block.PointCount] = ToGPUPointLight(p)
		block.PointCount++
	}
	return block
}
