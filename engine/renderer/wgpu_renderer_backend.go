package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/orrery-go/common"
	"github.com/Carmen-Shannon/orrery-go/engine/camera"
	"github.com/Carmen-Shannon/orrery-go/engine/light"
	"github.com/Carmen-Shannon/orrery-go/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Fixed bind group layouts shared by every pipeline. Group 0 is the
	// per-frame camera uniform, group 1 the light block, group 2 the
	// per-object resources (with an extra storage binding for instanced draws).
	frameLayout           *wgpu.BindGroupLayout
	lightLayout           *wgpu.BindGroupLayout
	objectLayout          *wgpu.BindGroupLayout
	objectInstancedLayout *wgpu.BindGroupLayout

	pipelines map[PipelineKind]*wgpu.RenderPipeline

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Instance() *wgpu.Instance
	Adapter() *wgpu.Adapter
	Surface() *wgpu.Surface

	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect at the next ConfigureSurface call.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitPipelines compiles the embedded WGSL shaders and creates the fixed set of render
	// pipelines (lit, lit instanced, unlit) together with their shared bind group layouts.
	// Must be called after the first ConfigureSurface so the surface format is known.
	//
	// Returns:
	//   - error: an error if a shader module or pipeline could not be created, otherwise nil
	InitPipelines() error

	// InitMeshBuffers creates and fills the vertex and index buffers for a mesh.
	//
	// Parameters:
	//   - label: a debug label applied to the created GPU buffers
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU (uint32 indices)
	//   - indexCount: the number of indices represented in indexData, used for draw calls
	//
	// Returns:
	//   - Mesh: the mesh handle holding the created buffers
	//   - error: an error if the buffers could not be created, otherwise nil
	InitMeshBuffers(label string, vertexData, indexData []byte, indexCount int) (Mesh, error)

	// InitTexture creates a GPU texture, uploads the staged pixel data, and creates the
	// texture view and sampler that objects bind at group 2.
	//
	// Parameters:
	//   - label: a debug label applied to the created GPU resources
	//   - stagingData: the TextureStagingData containing the raw RGBA pixels and dimensions
	//   - samplerData: the SamplerStagingData configuring the sampler (zero values fall back to linear/repeat)
	//
	// Returns:
	//   - Texture: the texture handle holding the view and sampler
	//   - error: an error if the texture could not be created, otherwise nil
	InitTexture(label string, stagingData common.TextureStagingData, samplerData common.SamplerStagingData) (Texture, error)

	// InitUniformBuffer creates an empty uniform buffer of the given size, writable via WriteBuffers.
	//
	// Parameters:
	//   - label: a debug label applied to the created buffer
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if the buffer could not be created, otherwise nil
	InitUniformBuffer(label string, size uint64) (*wgpu.Buffer, error)

	// InitStorageBuffer creates a read-only storage buffer pre-filled with the given data.
	// Used for the static per-instance model matrices of instanced draws.
	//
	// Parameters:
	//   - label: a debug label applied to the created buffer
	//   - data: the raw bytes to upload
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if the buffer could not be created, otherwise nil
	InitStorageBuffer(label string, data []byte) (*wgpu.Buffer, error)

	// InitFrameBindGroup creates the group 0 bind group wrapping the camera uniform buffer.
	//
	// Parameters:
	//   - cameraBuffer: the camera uniform buffer (GPUCameraUniform layout)
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if the bind group could not be created, otherwise nil
	InitFrameBindGroup(cameraBuffer *wgpu.Buffer) (*wgpu.BindGroup, error)

	// InitLightBindGroup creates the group 1 bind group wrapping the light block uniform buffer.
	//
	// Parameters:
	//   - lightBuffer: the light block uniform buffer (GPULightBlock layout)
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if the bind group could not be created, otherwise nil
	InitLightBindGroup(lightBuffer *wgpu.Buffer) (*wgpu.BindGroup, error)

	// InitObjectBindGroup creates a group 2 bind group for a non-instanced object.
	//
	// Parameters:
	//   - uniformBuffer: the per-object uniform buffer (GPUObjectUniform layout)
	//   - tex: the texture whose view and sampler are bound at bindings 1 and 2
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if the bind group could not be created, otherwise nil
	InitObjectBindGroup(uniformBuffer *wgpu.Buffer, tex Texture) (*wgpu.BindGroup, error)

	// InitInstancedBindGroup creates a group 2 bind group for an instanced object,
	// additionally binding the static instance model storage buffer at binding 3.
	//
	// Parameters:
	//   - uniformBuffer: the per-object uniform buffer (GPUObjectUniform layout)
	//   - instanceBuffer: the storage buffer of per-instance model matrices
	//   - tex: the texture whose view and sampler are bound at bindings 1 and 2
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if the bind group could not be created, otherwise nil
	InitInstancedBindGroup(uniformBuffer, instanceBuffer *wgpu.Buffer, tex Texture) (*wgpu.BindGroup, error)

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []BufferWrite)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame after all DrawCall invocations.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes a single indexed draw within the current render pass started by
	// BeginFrame. Multiple DrawCall invocations can be made between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - kind: the pipeline to draw with
	//   - m: the mesh holding vertex and index buffers
	//   - o: the object whose bind group is set at group 2 and whose instance count is drawn
	//   - frameGroup: the group 0 bind group (camera uniform)
	//   - lightGroup: the group 1 bind group (light block)
	DrawCall(kind PipelineKind, m Mesh, o Object, frameGroup, lightGroup *wgpu.BindGroup)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface — call Present() after EndFrame to display the frame.
	// Must be called after BeginFrame and all DrawCall invocations.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees the pipelines, layouts, and device objects held by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		pipelines:   make(map[PipelineKind]*wgpu.RenderPipeline),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// Create the MSAA texture that the render pass draws into; the resolved
		// result is written to the swapchain view as the ResolveTarget.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		// No MSAA — the render pass draws directly to the swapchain view.
		b.msaaTextureView = nil
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// Build the cached render pass descriptor for the main render target.
	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is
	// set per-frame to the swapchain view. When disabled, View is set
	// per-frame to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard // Don't store MSAA data, just resolve
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue: wgpu.Color{
					R: 0.02, G: 0.02, B: 0.08, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView, // Persistent until resize
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard, // Depth not needed after resolving
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) InitPipelines() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return fmt.Errorf("surface not configured — call ConfigureSurface before InitPipelines")
	}

	if err := b.initBindGroupLayouts(); err != nil {
		return err
	}

	specs := []struct {
		kind    PipelineKind
		label   string
		source  string
		layouts []*wgpu.BindGroupLayout
	}{
		{PipelineLit, "Lit", litShaderSource, []*wgpu.BindGroupLayout{b.frameLayout, b.lightLayout, b.objectLayout}},
		{PipelineLitInstanced, "Lit Instanced", litInstancedShaderSource, []*wgpu.BindGroupLayout{b.frameLayout, b.lightLayout, b.objectInstancedLayout}},
		{PipelineUnlit, "Unlit", unlitShaderSource, []*wgpu.BindGroupLayout{b.frameLayout, b.lightLayout, b.objectLayout}},
	}

	for _, spec := range specs {
		created, err := b.createRenderPipeline(spec.label, spec.source, spec.layouts)
		if err != nil {
			return fmt.Errorf("failed to create %s pipeline: %w", spec.label, err)
		}
		b.pipelines[spec.kind] = created
	}

	return nil
}

func (b *wgpuRendererBackendImpl) initBindGroupLayouts() error {
	var cameraUniform camera.GPUCameraUniform
	var lightBlock light.GPULightBlock
	var objectUniform GPUObjectUniform

	frameLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(cameraUniform.Size()),
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.frameLayout = frameLayout

	lightLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Light Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(lightBlock.Size()),
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.lightLayout = lightLayout

	objectEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: objectUniform.Size(),
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    2,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	}

	objectLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Object Bind Group Layout",
		Entries: objectEntries,
	})
	if err != nil {
		return err
	}
	b.objectLayout = objectLayout

	instancedEntries := append(append([]wgpu.BindGroupLayoutEntry{}, objectEntries...), wgpu.BindGroupLayoutEntry{
		Binding:    3,
		Visibility: wgpu.ShaderStageVertex,
		Buffer: wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeReadOnlyStorage,
		},
	})

	objectInstancedLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Object Instanced Bind Group Layout",
		Entries: instancedEntries,
	})
	if err != nil {
		return err
	}
	b.objectInstancedLayout = objectInstancedLayout

	return nil
}

func (b *wgpuRendererBackendImpl) createRenderPipeline(label, source string, layouts []*wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label + " Pipeline Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, err
	}

	var vertex mesh.GPUVertex
	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(vertex.Size()),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(label string, vertexData, indexData []byte, indexCount int) (Mesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := &meshImpl{indexCount: uint32(indexCount)}

	vertexBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vertexBuffer, 0, vertexData)
	m.vertexBuffer = vertexBuffer

	indexBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		m.Release()
		return nil, err
	}
	b.queue.WriteBuffer(indexBuffer, 0, indexData)
	m.indexBuffer = indexBuffer

	return m, nil
}

func (b *wgpuRendererBackendImpl) InitTexture(label string, stagingData common.TextureStagingData, samplerData common.SamplerStagingData) (Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  common.Coalesce(samplerData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(samplerData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(samplerData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(samplerData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(samplerData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(samplerData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerData.MaxAnisotropy, 1),
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	return &textureImpl{view: view, sampler: samp, texture: tex}, nil
}

func (b *wgpuRendererBackendImpl) InitUniformBuffer(label string, size uint64) (*wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

func (b *wgpuRendererBackendImpl) InitStorageBuffer(label string, data []byte) (*wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Storage Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (b *wgpuRendererBackendImpl) InitFrameBindGroup(cameraBuffer *wgpu.Buffer) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: cameraBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
}

func (b *wgpuRendererBackendImpl) InitLightBindGroup(lightBuffer *wgpu.Buffer) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Light Bind Group",
		Layout: b.lightLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: lightBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
}

func (b *wgpuRendererBackendImpl) InitObjectBindGroup(uniformBuffer *wgpu.Buffer, tex Texture) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Object Bind Group",
		Layout: b.objectLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: tex.View()},
			{Binding: 2, Sampler: tex.Sampler()},
		},
	})
}

func (b *wgpuRendererBackendImpl) InitInstancedBindGroup(uniformBuffer, instanceBuffer *wgpu.Buffer, tex Texture) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Object Instanced Bind Group",
		Layout: b.objectInstancedLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: tex.View()},
			{Binding: 2, Sampler: tex.Sampler()},
			{Binding: 3, Buffer: instanceBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if w.Buffer == nil {
			continue
		}
		b.queue.WriteBuffer(w.Buffer, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Defensive: if a previous frame's surface texture is still held, avoid
	// attempting to acquire another one. This prevents wgpu-native validation
	// errors like "Surface image is already acquired" when frames overlap.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	// When MSAA is enabled, the MSAA texture is the color attachment View and
	// the swapchain view is the ResolveTarget. When MSAA is off, the swapchain
	// view is the color attachment View directly and ResolveTarget is nil.
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(kind PipelineKind, m Mesh, o Object, frameGroup, lightGroup *wgpu.BindGroup) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	renderPipeline, ok := b.pipelines[kind]
	if !ok {
		return
	}
	b.framePass.SetPipeline(renderPipeline)

	b.framePass.SetBindGroup(0, frameGroup, nil)
	b.framePass.SetBindGroup(1, lightGroup, nil)
	b.framePass.SetBindGroup(2, o.BindGroup(), nil)

	b.framePass.SetVertexBuffer(0, m.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(m.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(m.IndexCount(), o.InstanceCount(), 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// If no frame surface is held, nothing to present.
	if b.frameSurface == nil {
		return
	}

	// Present the acquired surface image and release local references.
	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = make(map[PipelineKind]*wgpu.RenderPipeline)

	for _, layout := range []*wgpu.BindGroupLayout{b.frameLayout, b.lightLayout, b.objectLayout, b.objectInstancedLayout} {
		if layout != nil {
			layout.Release()
		}
	}
	b.frameLayout = nil
	b.lightLayout = nil
	b.objectLayout = nil
	b.objectInstancedLayout = nil

	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Instance() *wgpu.Instance {
	return b.instance
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}
