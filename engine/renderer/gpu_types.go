package renderer

import (
	"unsafe"
)

// GPUObjectUniform is the GPU-aligned per-object uniform block shared by the
// lit, lit instanced, and unlit pipelines. Matches the WGSL ObjectUniform
// struct layout exactly (see assets/lit.wgsl), including the trailing
// padding, so it uploads directly via common.StructToBytes.
// Size: 96 bytes (uniform buffer 16-byte aligned).
type GPUObjectUniform struct {
	Model      [16]float32 // offset  0: column-major model matrix (64 bytes)
	Color      [3]float32  // offset 64: flat base color when untextured (12 bytes)
	UseTexture float32     // offset 76: >0.5 samples the bound texture instead of Color (4 bytes)
	Shininess  float32     // offset 80: specular exponent for the Phong term (4 bytes)
	_pad       [3]float32  // offset 84: pad to 96 bytes
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - uint64: the size of the struct in bytes.
func (g *GPUObjectUniform) Size() uint64 {
	return uint64(unsafe.Sizeof(*g))
}
