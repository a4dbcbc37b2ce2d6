package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Mesh is a handle to uploaded vertex and index buffers. Meshes are created
// once via Renderer.UploadMesh and shared across any number of objects.
type Mesh interface {
	// VertexBuffer returns the GPU vertex buffer for this mesh.
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer for this mesh (uint32 indices).
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices to draw.
	IndexCount() uint32

	// Release frees the GPU buffers held by this mesh.
	Release()
}

type meshImpl struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

var _ Mesh = &meshImpl{}

func (m *meshImpl) VertexBuffer() *wgpu.Buffer {
	return m.vertexBuffer
}

func (m *meshImpl) IndexBuffer() *wgpu.Buffer {
	return m.indexBuffer
}

func (m *meshImpl) IndexCount() uint32 {
	return m.indexCount
}

func (m *meshImpl) Release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

// Texture is a handle to an uploaded GPU texture view and its sampler.
type Texture interface {
	// View returns the GPU texture view.
	View() *wgpu.TextureView

	// Sampler returns the sampler bound alongside the texture view.
	Sampler() *wgpu.Sampler

	// Release frees the GPU resources held by this texture.
	Release()
}

type textureImpl struct {
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
	texture *wgpu.Texture
}

var _ Texture = &textureImpl{}

func (t *textureImpl) View() *wgpu.TextureView {
	return t.view
}

func (t *textureImpl) Sampler() *wgpu.Sampler {
	return t.sampler
}

func (t *textureImpl) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// Object is a handle to a drawable: a per-object uniform buffer and the bind
// group tying it to a texture, sampler, and (for instanced objects) the static
// instance model buffer.
type Object interface {
	// UniformBuffer returns the per-object uniform buffer (GPUObjectUniform).
	UniformBuffer() *wgpu.Buffer

	// BindGroup returns the object bind group set at group 2 during draws.
	BindGroup() *wgpu.BindGroup

	// InstanceCount returns the number of instances drawn for this object.
	// Always 1 for non-instanced objects.
	InstanceCount() uint32

	// Release frees the GPU resources held by this object. Textures are shared
	// and are not released here.
	Release()
}

type objectImpl struct {
	uniformBuffer  *wgpu.Buffer
	instanceBuffer *wgpu.Buffer
	bindGroup      *wgpu.BindGroup
	instanceCount  uint32
}

var _ Object = &objectImpl{}

func (o *objectImpl) UniformBuffer() *wgpu.Buffer {
	return o.uniformBuffer
}

func (o *objectImpl) BindGroup() *wgpu.BindGroup {
	return o.bindGroup
}

func (o *objectImpl) InstanceCount() uint32 {
	return o.instanceCount
}

func (o *objectImpl) Release() {
	if o.bindGroup != nil {
		o.bindGroup.Release()
		o.bindGroup = nil
	}
	if o.uniformBuffer != nil {
		o.uniformBuffer.Release()
		o.uniformBuffer = nil
	}
	if o.instanceBuffer != nil {
		o.instanceBuffer.Release()
		o.instanceBuffer = nil
	}
}

// BufferWrite describes a single staged buffer write flushed to the GPU queue
// at the start of the next frame.
type BufferWrite struct {
	// Buffer is the destination GPU buffer.
	Buffer *wgpu.Buffer

	// Offset is the byte offset within the destination buffer.
	Offset uint64

	// Data is the raw bytes to write.
	Data []byte
}
