package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/orrery-go/common"
	"github.com/Carmen-Shannon/orrery-go/engine/camera"
	"github.com/Carmen-Shannon/orrery-go/engine/light"
	"github.com/Carmen-Shannon/orrery-go/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the high-level rendering interface. It owns the GPU device and
// surface, the fixed pipeline set, and the shared per-frame bind groups
// (camera at group 0, lights at group 1). Uniform updates made via the Set*
// methods are staged and flushed to the GPU queue at the next BeginFrame, so
// simulation code can update state without touching GPU APIs mid-frame.
type Renderer interface {
	// UploadMesh creates vertex and index buffers for the given mesh data.
	//
	// Parameters:
	//   - label: a debug label applied to the created GPU buffers
	//   - vertices: the mesh vertices
	//   - indices: the triangle list indices
	//
	// Returns:
	//   - Mesh: the uploaded mesh handle
	//   - error: an error if the buffers could not be created, otherwise nil
	UploadMesh(label string, vertices []mesh.GPUVertex, indices []uint32) (Mesh, error)

	// CreateTexture uploads decoded RGBA pixel data and creates its sampler.
	//
	// Parameters:
	//   - label: a debug label applied to the created GPU resources
	//   - stagingData: the decoded pixels and dimensions
	//   - samplerData: sampler configuration; zero values fall back to linear filtering and repeat addressing
	//
	// Returns:
	//   - Texture: the created texture handle
	//   - error: an error if the texture could not be created, otherwise nil
	CreateTexture(label string, stagingData common.TextureStagingData, samplerData common.SamplerStagingData) (Texture, error)

	// FallbackTexture returns the built-in 1×1 white texture. Objects bound to
	// it render with their flat uniform color, so it stands in for any texture
	// that failed to load or was never assigned.
	//
	// Returns:
	//   - Texture: the fallback texture handle
	FallbackTexture() Texture

	// CreateObject creates a drawable with its own uniform buffer and bind group.
	//
	// Parameters:
	//   - label: a debug label applied to the created GPU resources
	//   - tex: the texture to bind; nil binds the fallback texture
	//
	// Returns:
	//   - Object: the created object handle
	//   - error: an error if the GPU resources could not be created, otherwise nil
	CreateObject(label string, tex Texture) (Object, error)

	// CreateInstancedObject creates a drawable whose per-instance model matrices
	// live in a static storage buffer. One draw call renders len(models) instances.
	//
	// Parameters:
	//   - label: a debug label applied to the created GPU resources
	//   - tex: the texture to bind; nil binds the fallback texture
	//   - models: the per-instance column-major model matrices, uploaded once
	//
	// Returns:
	//   - Object: the created object handle
	//   - error: an error if the GPU resources could not be created, otherwise nil
	CreateInstancedObject(label string, tex Texture, models [][16]float32) (Object, error)

	// SetCamera stages the camera uniform for upload at the next BeginFrame.
	//
	// Parameters:
	//   - uniform: the view-projection matrix and camera world position
	SetCamera(uniform camera.GPUCameraUniform)

	// SetLighting stages the light block for upload at the next BeginFrame.
	//
	// Parameters:
	//   - block: the packed scene lighting state
	SetLighting(block light.GPULightBlock)

	// SetObjectUniform stages an object's uniform for upload at the next BeginFrame.
	//
	// Parameters:
	//   - obj: the object whose uniform buffer is written
	//   - uniform: the model matrix, base color, and material parameters
	SetObjectUniform(obj Object, uniform GPUObjectUniform)

	// BeginFrame flushes all staged uniform writes, acquires the next swapchain
	// texture, and begins the render pass. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// Draw encodes a single draw of the mesh with the object's bind group using
	// the selected pipeline. Valid only between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - kind: the pipeline to draw with
	//   - m: the mesh to draw
	//   - o: the object supplying the group 2 bind group and instance count
	Draw(kind PipelineKind, m Mesh, o Object)

	// EndFrame ends the render pass and submits the frame's commands to the GPU.
	EndFrame()

	// Present displays the rendered frame. Must be called once per frame after EndFrame.
	Present()

	// Resize reconfigures the surface, depth texture, and MSAA target for a new
	// drawable size.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface so it
	// takes effect immediately.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees all GPU resources held by the renderer, including the
	// fallback texture and the shared frame and light bind groups.
	Release()
}

type renderer struct {
	mu      *sync.Mutex
	backend RendererBackend

	width  int
	height int

	cameraBuffer   *wgpu.Buffer
	lightBuffer    *wgpu.Buffer
	frameBindGroup *wgpu.BindGroup
	lightBindGroup *wgpu.BindGroup

	fallbackTexture Texture

	stagedWrites []BufferWrite

	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	forceFallbackAdapter bool
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer of the requested backend type targeting the
// given surface, configures the surface at the given size, compiles the fixed
// pipeline set, and allocates the shared camera and light uniforms plus the
// fallback texture. Panics if the GPU device cannot be acquired, mirroring
// the window platform init.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surfaceDescriptor: the native surface descriptor obtained from the window
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: optional configuration (present mode, MSAA, software fallback)
//
// Returns:
//   - Renderer: the ready-to-use renderer
//   - error: an error if pipeline or resource creation failed
func NewRenderer(backendType RendererBackendType, surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
	}
	for _, opt := range options {
		opt(r)
	}

	sampleCount := MSAA4x
	if r.pendingMSAA != nil {
		sampleCount = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, sampleCount)
	}
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)

	if err := r.backend.InitPipelines(); err != nil {
		return nil, err
	}

	var cameraUniform camera.GPUCameraUniform
	cameraBuffer, err := r.backend.InitUniformBuffer("Camera", uint64(cameraUniform.Size()))
	if err != nil {
		return nil, err
	}
	r.cameraBuffer = cameraBuffer

	var lightBlock light.GPULightBlock
	lightBuffer, err := r.backend.InitUniformBuffer("Lights", uint64(lightBlock.Size()))
	if err != nil {
		return nil, err
	}
	r.lightBuffer = lightBuffer

	if r.frameBindGroup, err = r.backend.InitFrameBindGroup(cameraBuffer); err != nil {
		return nil, err
	}
	if r.lightBindGroup, err = r.backend.InitLightBindGroup(lightBuffer); err != nil {
		return nil, err
	}

	// 1×1 opaque white so untextured objects sample a neutral value and render
	// with their flat uniform color.
	fallback, err := r.backend.InitTexture("Fallback", common.TextureStagingData{
		Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF},
		Width:  1,
		Height: 1,
	}, common.SamplerStagingData{})
	if err != nil {
		return nil, err
	}
	r.fallbackTexture = fallback

	return r, nil
}

func (r *renderer) UploadMesh(label string, vertices []mesh.GPUVertex, indices []uint32) (Mesh, error) {
	return r.backend.InitMeshBuffers(label, common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices))
}

func (r *renderer) CreateTexture(label string, stagingData common.TextureStagingData, samplerData common.SamplerStagingData) (Texture, error) {
	return r.backend.InitTexture(label, stagingData, samplerData)
}

func (r *renderer) FallbackTexture() Texture {
	return r.fallbackTexture
}

func (r *renderer) CreateObject(label string, tex Texture) (Object, error) {
	if tex == nil {
		tex = r.fallbackTexture
	}

	var uniform GPUObjectUniform
	uniformBuffer, err := r.backend.InitUniformBuffer(label, uniform.Size())
	if err != nil {
		return nil, err
	}

	bindGroup, err := r.backend.InitObjectBindGroup(uniformBuffer, tex)
	if err != nil {
		uniformBuffer.Release()
		return nil, err
	}

	return &objectImpl{
		uniformBuffer: uniformBuffer,
		bindGroup:     bindGroup,
		instanceCount: 1,
	}, nil
}

func (r *renderer) CreateInstancedObject(label string, tex Texture, models [][16]float32) (Object, error) {
	if tex == nil {
		tex = r.fallbackTexture
	}

	var uniform GPUObjectUniform
	uniformBuffer, err := r.backend.InitUniformBuffer(label, uniform.Size())
	if err != nil {
		return nil, err
	}

	instanceBuffer, err := r.backend.InitStorageBuffer(label+" Instances", common.SliceToBytes(models))
	if err != nil {
		uniformBuffer.Release()
		return nil, err
	}

	bindGroup, err := r.backend.InitInstancedBindGroup(uniformBuffer, instanceBuffer, tex)
	if err != nil {
		instanceBuffer.Release()
		uniformBuffer.Release()
		return nil, err
	}

	return &objectImpl{
		uniformBuffer:  uniformBuffer,
		instanceBuffer: instanceBuffer,
		bindGroup:      bindGroup,
		instanceCount:  uint32(len(models)),
	}, nil
}

func (r *renderer) SetCamera(uniform camera.GPUCameraUniform) {
	r.stageWrite(r.cameraBuffer, uniform.Marshal())
}

func (r *renderer) SetLighting(block light.GPULightBlock) {
	r.stageWrite(r.lightBuffer, block.Marshal())
}

func (r *renderer) SetObjectUniform(obj Object, uniform GPUObjectUniform) {
	// The struct's explicit padding matches the WGSL layout, so its memory
	// image uploads directly.
	r.stageWrite(obj.UniformBuffer(), common.StructToBytes(&uniform))
}

func (r *renderer) stageWrite(buffer *wgpu.Buffer, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stagedWrites = append(r.stagedWrites, BufferWrite{Buffer: buffer, Data: data})
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	writes := r.stagedWrites
	r.stagedWrites = nil
	r.mu.Unlock()

	r.backend.WriteBuffers(writes)
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(kind PipelineKind, m Mesh, o Object) {
	r.backend.DrawCall(kind, m, o, r.frameBindGroup, r.lightBindGroup)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width = width
	r.height = height
	r.mu.Unlock()

	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)

	r.mu.Lock()
	width, height := r.width, r.height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fallbackTexture != nil {
		r.fallbackTexture.Release()
		r.fallbackTexture = nil
	}
	if r.frameBindGroup != nil {
		r.frameBindGroup.Release()
		r.frameBindGroup = nil
	}
	if r.lightBindGroup != nil {
		r.lightBindGroup.Release()
		r.lightBindGroup = nil
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
		r.cameraBuffer = nil
	}
	if r.lightBuffer != nil {
		r.lightBuffer.Release()
		r.lightBuffer = nil
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
