package renderer

import (
	_ "embed"
)

// Embedded WGSL sources for the fixed pipeline set. The bind group layouts
// declared in wgpu_renderer_backend.go must stay in sync with the @group and
// @binding declarations in these files.

//go:embed assets/lit.wgsl
var litShaderSource string

//go:embed assets/lit_instanced.wgsl
var litInstancedShaderSource string

//go:embed assets/unlit.wgsl
var unlitShaderSource string
