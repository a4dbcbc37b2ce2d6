package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/orrery-go/common"
	"github.com/Carmen-Shannon/orrery-go/engine/camera"
	"github.com/Carmen-Shannon/orrery-go/engine/light"
	"github.com/Carmen-Shannon/orrery-go/engine/mesh"
	"github.com/Carmen-Shannon/orrery-go/engine/renderer"
	"github.com/Carmen-Shannon/orrery-go/sim"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshStub, textureStub, and objectStub satisfy the renderer handle
// interfaces without touching a GPU.
type meshStub struct{}

func (*meshStub) VertexBuffer() *wgpu.Buffer { return nil }
func (*meshStub) IndexBuffer() *wgpu.Buffer  { return nil }
func (*meshStub) IndexCount() uint32         { return 0 }
func (*meshStub) Release()                   {}

type textureStub struct{ name string }

func (*textureStub) View() *wgpu.TextureView { return nil }
func (*textureStub) Sampler() *wgpu.Sampler  { return nil }
func (*textureStub) Release()                {}

type objectStub struct{ label string }

func (*objectStub) UniformBuffer() *wgpu.Buffer { return nil }
func (*objectStub) BindGroup() *wgpu.BindGroup  { return nil }
func (*objectStub) InstanceCount() uint32       { return 1 }
func (*objectStub) Release()                    {}

// recordingRenderer implements renderer.Renderer in memory. It records which
// textures were created, which texture each object was bound to, and the
// uniforms staged per object.
type recordingRenderer struct {
	fallback renderer.Texture

	createdTextures []string
	objectTextures  map[string]renderer.Texture
	uniforms        map[renderer.Object]renderer.GPUObjectUniform
}

var _ renderer.Renderer = &recordingRenderer{}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		fallback:       &textureStub{name: "fallback"},
		objectTextures: map[string]renderer.Texture{},
		uniforms:       map[renderer.Object]renderer.GPUObjectUniform{},
	}
}

func (r *recordingRenderer) UploadMesh(label string, vertices []mesh.GPUVertex, indices []uint32) (renderer.Mesh, error) {
	return &meshStub{}, nil
}

func (r *recordingRenderer) CreateTexture(label string, stagingData common.TextureStagingData, samplerData common.SamplerStagingData) (renderer.Texture, error) {
	r.createdTextures = append(r.createdTextures, label)
	return &textureStub{name: label}, nil
}

func (r *recordingRenderer) FallbackTexture() renderer.Texture {
	return r.fallback
}

func (r *recordingRenderer) CreateObject(label string, tex renderer.Texture) (renderer.Object, error) {
	r.objectTextures[label] = tex
	return &objectStub{label: label}, nil
}

func (r *recordingRenderer) CreateInstancedObject(label string, tex renderer.Texture, models [][16]float32) (renderer.Object, error) {
	r.objectTextures[label] = tex
	return &objectStub{label: label}, nil
}

func (r *recordingRenderer) SetCamera(uniform camera.GPUCameraUniform) {}

func (r *recordingRenderer) SetLighting(block light.GPULightBlock) {}

func (r *recordingRenderer) SetObjectUniform(obj renderer.Object, uniform renderer.GPUObjectUniform) {
	r.uniforms[obj] = uniform
}

func (r *recordingRenderer) BeginFrame() error { return nil }

func (r *recordingRenderer) Draw(kind renderer.PipelineKind, m renderer.Mesh, o renderer.Object) {}

func (r *recordingRenderer) EndFrame() {}

func (r *recordingRenderer) Present() {}

func (r *recordingRenderer) Resize(width, height int) {}

func (r *recordingRenderer) SetPresentMode(mode renderer.PresentMode) {}

func (r *recordingRenderer) Release() {}

// writeTestImage writes a small solid-color PNG to path. PNG bytes behind a
// .jpg name still decode; the image registry sniffs content, not extensions.
func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 120, B: 120, A: 255})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating image dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating image file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding image: %v", err)
	}
}

func testSystem(t *testing.T, bodies []sim.Body) *sim.System {
	t.Helper()
	system, err := sim.NewSystem(bodies)
	if err != nil {
		t.Fatalf("building system: %v", err)
	}
	return system
}

func TestDecodeFailureFallsBackPerBody(t *testing.T) {
	goodPath := filepath.Join(t.TempDir(), "venus.png")
	writeTestImage(t, goodPath)

	system := testSystem(t, []sim.Body{
		{Name: "sun", Role: sim.RoleSun, Size: 0.5, Texture: filepath.Join(t.TempDir(), "missing.jpg")},
		{Name: "venus", Role: sim.RolePlanet, OrbitRadius: 2, Size: 0.1, Texture: goodPath},
		{Name: "mars", Role: sim.RolePlanet, OrbitRadius: 3, Size: 0.1},
	})

	rend := newRecordingRenderer()
	s := NewScene(rend, nil, nil, system).(*scene)

	textures := s.decodeAndUploadTextures(system.Bodies())
	if textures[0] != nil {
		t.Errorf("missing texture file should leave a nil entry, got %v", textures[0])
	}
	if textures[1] == nil {
		t.Errorf("a failing sibling must not affect a body whose texture decodes")
	}
	if textures[2] != nil {
		t.Errorf("a body with no texture path should have a nil entry")
	}
	if len(rend.createdTextures) != 1 || rend.createdTextures[0] != "venus" {
		t.Errorf("created textures = %v, want [venus]", rend.createdTextures)
	}
}

func TestInitBindsFallbackForFailedTextures(t *testing.T) {
	system := testSystem(t, []sim.Body{
		{Name: "sun", Role: sim.RoleSun, Size: 0.5, Texture: filepath.Join(t.TempDir(), "missing.jpg")},
		{Name: "earth", Role: sim.RolePlanet, OrbitRadius: 2, Size: 0.1},
	})

	rend := newRecordingRenderer()
	rig := camera.NewRig(system.Cyclable(), 0)
	s := NewScene(rend, camera.NewCamera(), rig, system, WithBelt(4, 1))

	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// A failed decode passes nil through to object creation; the renderer
	// substitutes its fallback there.
	for _, name := range []string{"sun", "earth"} {
		if tex := rend.objectTextures[name]; tex != nil {
			t.Errorf("object %q bound texture %v, want nil (fallback)", name, tex)
		}
	}
}

func TestInitTexturesBeltWhenAssetPresent(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, beltTexturePath))
	t.Chdir(dir)

	system := testSystem(t, []sim.Body{
		{Name: "sun", Role: sim.RoleSun, Size: 0.5},
		{Name: "earth", Role: sim.RolePlanet, OrbitRadius: 2, Size: 0.1},
	})

	rend := newRecordingRenderer()
	rig := camera.NewRig(system.Cyclable(), 0)
	s := NewScene(rend, camera.NewCamera(), rig, system, WithBelt(4, 1))

	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	beltTex := rend.objectTextures["asteroid belt"]
	if beltTex == nil {
		t.Fatalf("belt object should bind the decoded asteroid texture")
	}
	beltObj := s.(*scene).beltObject
	if got := rend.uniforms[beltObj].UseTexture; got != 1 {
		t.Errorf("belt uniform UseTexture = %v, want 1", got)
	}
	if got := rend.uniforms[beltObj].Shininess; got != beltShininess {
		t.Errorf("belt uniform Shininess = %v, want %v", got, float32(beltShininess))
	}
}

func TestInitBeltFallsBackWithoutAsset(t *testing.T) {
	t.Chdir(t.TempDir())

	system := testSystem(t, []sim.Body{
		{Name: "sun", Role: sim.RoleSun, Size: 0.5},
		{Name: "earth", Role: sim.RolePlanet, OrbitRadius: 2, Size: 0.1},
	})

	rend := newRecordingRenderer()
	rig := camera.NewRig(system.Cyclable(), 0)
	s := NewScene(rend, camera.NewCamera(), rig, system, WithBelt(4, 1))

	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if tex := rend.objectTextures["asteroid belt"]; tex != nil {
		t.Errorf("belt bound texture %v without the asset, want nil (fallback)", tex)
	}
	beltObj := s.(*scene).beltObject
	if got := rend.uniforms[beltObj].UseTexture; got != 0 {
		t.Errorf("belt uniform UseTexture = %v, want 0", got)
	}
}
