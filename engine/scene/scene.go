// Package scene assembles the solar-system frame: it owns the shared sphere
// mesh, the per-body drawables, the asteroid belt, the light set, and the
// camera rig, and it translates simulation state into staged GPU writes and
// draw calls each tick.
package scene

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/orrery-go/common"
	"github.com/Carmen-Shannon/orrery-go/engine/camera"
	"github.com/Carmen-Shannon/orrery-go/engine/input"
	"github.com/Carmen-Shannon/orrery-go/engine/light"
	"github.com/Carmen-Shannon/orrery-go/engine/mesh"
	"github.com/Carmen-Shannon/orrery-go/engine/renderer"
	"github.com/Carmen-Shannon/orrery-go/sim"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereSectors = 64
	sphereStacks  = 64

	// The glow sphere is drawn unlit over the sun so its surface stays bright
	// even where the ring lights leave it in partial shade.
	glowScale = 0.075

	bodyShininess = 32
	beltShininess = 8

	beltTexturePath = "assets/textures/asteroid.jpg"
)

var beltColor = [3]float32{0.55, 0.5, 0.45}

// Scene manages the celestial bodies, asteroid belt, lights, and camera rig,
// and drives their per-frame GPU state. Init must be called once before the
// first Update; Update and DrawCalls are called once per tick by the engine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Rig returns the scene's camera rig.
	Rig() camera.Rig

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// System returns the simulated body table.
	System() *sim.System

	// Init uploads the shared sphere mesh, decodes all body textures in
	// parallel, and creates the GPU drawables for every body, the sun glow
	// overlay, and the asteroid belt. A texture that fails to decode is
	// logged and replaced by the renderer's fallback texture; only GPU
	// resource creation is fatal.
	//
	// Returns:
	//   - error: an error if a GPU resource could not be created
	Init() error

	// Update advances the simulation clock, feeds the input frame to the
	// camera rig, and stages the camera, lighting, and per-object uniforms
	// for the next rendered frame.
	//
	// Parameters:
	//   - frame: the input snapshot for this tick
	//   - deltaTime: elapsed wall time since the previous tick in seconds
	Update(frame input.Frame, deltaTime float64)

	// DrawCalls issues the draw commands for every drawable. Must be called
	// between BeginFrame and EndFrame on the renderer.
	//
	// Returns:
	//   - error: an error if the scene has not been initialized
	DrawCalls() error

	// Release frees all GPU resources created by Init.
	Release()
}

type scene struct {
	mu     *sync.Mutex
	name   string
	active bool

	rend   renderer.Renderer
	cam    camera.Camera
	rig    camera.Rig
	system *sim.System

	elapsed float64
	states  []sim.BodyState

	ambientColor [3]float32
	sunLight     light.Light
	ringLights   []light.Light
	headLight    light.Light
	pointLights  []light.Light

	sphere      renderer.Mesh
	textures    []renderer.Texture // parallel to the body table; nil when fallen back
	beltTexture renderer.Texture   // nil when fallen back
	bodyObjects []renderer.Object  // parallel to the body table
	glowObject  renderer.Object
	beltObject  renderer.Object

	beltCount     int
	beltSeed      int64
	decodeWorkers int
}

var _ Scene = &scene{}

// NewScene creates a Scene over the given renderer, camera, rig, and body
// table. The light set is the fixed solar arrangement: the sun point light at
// the origin, the six-light ring that illuminates the sun's own surface, and
// the camera-following head spot. Call Init before use.
//
// Parameters:
//   - rend: the renderer that owns all GPU resources
//   - cam: the camera written each tick from the rig's pose
//   - rig: the dual-mode camera rig
//   - system: the simulated body table
//   - options: optional configuration applied via the option-builder pattern
//
// Returns:
//   - Scene: the newly created scene
func NewScene(rend renderer.Renderer, cam camera.Camera, rig camera.Rig, system *sim.System, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:            &sync.Mutex{},
		name:          "solar system",
		active:        true,
		rend:          rend,
		cam:           cam,
		rig:           rig,
		system:        system,
		ambientColor:  light.SceneAmbient,
		sunLight:      light.SunLight(),
		ringLights:    light.RingLights(),
		headLight:     light.HeadLight(),
		beltCount:     sim.DefaultBeltCount,
		beltSeed:      1,
		decodeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// The head spot stays enabled with zero colors so its geometry is
	// uploaded every frame without contributing light.
	s.headLight.SetEnabled(true)

	s.pointLights = append([]light.Light{s.sunLight}, s.ringLights...)

	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Rig() camera.Rig {
	return s.rig
}

func (s *scene) Renderer() renderer.Renderer {
	return s.rend
}

func (s *scene) System() *sim.System {
	return s.system
}

func (s *scene) Init() error {
	vertices, indices := mesh.Sphere(1, sphereSectors, sphereStacks)
	sphere, err := s.rend.UploadMesh("Sphere", vertices, indices)
	if err != nil {
		return fmt.Errorf("failed to upload sphere mesh: %w", err)
	}
	s.sphere = sphere

	bodies := s.system.Bodies()
	s.textures = s.decodeAndUploadTextures(bodies)

	s.bodyObjects = make([]renderer.Object, len(bodies))
	for i, b := range bodies {
		obj, objErr := s.rend.CreateObject(b.Name, s.textures[i])
		if objErr != nil {
			return fmt.Errorf("failed to create drawable for %s: %w", b.Name, objErr)
		}
		s.bodyObjects[i] = obj
	}

	glow, err := s.rend.CreateObject("sun glow", nil)
	if err != nil {
		return fmt.Errorf("failed to create sun glow drawable: %w", err)
	}
	s.glowObject = glow

	asteroids := sim.Belt(s.beltCount, s.beltSeed)
	models := make([][16]float32, len(asteroids))
	for i, a := range asteroids {
		common.BuildModelMatrix(models[i][:],
			a.Position.X(), a.Position.Y(), a.Position.Z(),
			0, a.SpinAngle, 0,
			a.Scale, a.Scale, a.Scale)
	}
	s.beltTexture = s.loadBeltTexture()
	belt, err := s.rend.CreateInstancedObject("asteroid belt", s.beltTexture, models)
	if err != nil {
		return fmt.Errorf("failed to create asteroid belt drawable: %w", err)
	}
	s.beltObject = belt

	// The belt transform never changes; stage its uniform once.
	var beltUniform renderer.GPUObjectUniform
	common.Identity(beltUniform.Model[:])
	beltUniform.Color = beltColor
	beltUniform.Shininess = beltShininess
	if s.beltTexture != nil {
		beltUniform.UseTexture = 1
	}
	s.rend.SetObjectUniform(s.beltObject, beltUniform)

	return nil
}

// loadBeltTexture decodes and uploads the asteroid texture shared by every
// belt instance. Failures follow the same fallback path as body textures: log
// and return nil so the belt renders with its flat color.
func (s *scene) loadBeltTexture() renderer.Texture {
	file := &common.TextureFile{Name: "asteroids", Path: beltTexturePath}
	staging, err := file.Decode()
	if err != nil {
		log.Printf("scene: texture for asteroid belt unavailable, using flat color: %v", err)
		return nil
	}
	tex, err := s.rend.CreateTexture(file.Name, staging, common.SamplerStagingData{})
	if err != nil {
		log.Printf("scene: texture upload for asteroid belt failed, using flat color: %v", err)
		return nil
	}
	return tex
}

// decodeAndUploadTextures decodes every body texture in parallel through the
// worker pool, joins all results, then uploads sequentially. Decode failures
// are logged and leave a nil entry so the drawable binds the fallback texture.
func (s *scene) decodeAndUploadTextures(bodies []sim.Body) []renderer.Texture {
	type decoded struct {
		staging common.TextureStagingData
		err     error
	}
	results := make([]decoded, len(bodies))

	pool := worker.NewDynamicWorkerPool(s.decodeWorkers, len(bodies)+1, 1*time.Second)

	var wg sync.WaitGroup
	for i, b := range bodies {
		if b.Texture == "" {
			continue
		}
		wg.Add(1)
		idx := i
		file := &common.TextureFile{Name: b.Name, Path: b.Texture}
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				staging, decodeErr := file.Decode()
				results[idx] = decoded{staging: staging, err: decodeErr}
				return nil, decodeErr
			},
		})
	}
	wg.Wait()

	textures := make([]renderer.Texture, len(bodies))
	for i, b := range bodies {
		if b.Texture == "" {
			continue
		}
		if results[i].err != nil {
			log.Printf("scene: texture for %s unavailable, using flat color: %v", b.Name, results[i].err)
			continue
		}
		tex, err := s.rend.CreateTexture(b.Name, results[i].staging, common.SamplerStagingData{})
		if err != nil {
			log.Printf("scene: texture upload for %s failed, using flat color: %v", b.Name, err)
			continue
		}
		textures[i] = tex
	}
	return textures
}

func (s *scene) Update(frame input.Frame, deltaTime float64) {
	s.mu.Lock()
	s.elapsed += deltaTime
	elapsed := s.elapsed
	s.mu.Unlock()

	s.states = s.system.At(elapsed, s.states)
	bodies := s.system.Bodies()

	s.rig.Update(frame, deltaTime, func(index int) (mgl32.Vec3, float32) {
		return s.states[index].Position, bodies[index].Size
	})

	pose := s.rig.Pose()
	s.cam.SetPose(
		pose.Eye.X(), pose.Eye.Y(), pose.Eye.Z(),
		pose.Center.X(), pose.Center.Y(), pose.Center.Z(),
	)
	s.cam.SetFov(s.rig.Fov())

	s.rend.SetCamera(camera.GPUCameraUniform{
		ViewProj:       s.cam.ViewProjectionMatrix(),
		CameraPosition: [3]float32{pose.Eye.X(), pose.Eye.Y(), pose.Eye.Z()},
	})

	// The head spot rides the camera, pointing along the view direction.
	front := pose.Center.Sub(pose.Eye)
	s.headLight.SetPosition(pose.Eye.X(), pose.Eye.Y(), pose.Eye.Z())
	s.headLight.SetDirection(front.X(), front.Y(), front.Z())

	s.rend.SetLighting(light.BuildLightBlock(s.ambientColor, nil, s.headLight, s.pointLights))

	for i, b := range bodies {
		state := s.states[i]
		var uniform renderer.GPUObjectUniform
		common.BuildModelMatrix(uniform.Model[:],
			state.Position.X(), state.Position.Y(), state.Position.Z(),
			0, state.SpinAngle, 0,
			b.Size, b.Size, b.Size)
		uniform.Color = b.Color
		uniform.Shininess = bodyShininess
		if s.textures[i] != nil {
			uniform.UseTexture = 1
		}
		s.rend.SetObjectUniform(s.bodyObjects[i], uniform)
	}

	sunState := s.states[0]
	var glowUniform renderer.GPUObjectUniform
	common.BuildModelMatrix(glowUniform.Model[:],
		sunState.Position.X(), sunState.Position.Y(), sunState.Position.Z(),
		0, sunState.SpinAngle, 0,
		glowScale, glowScale, glowScale)
	glowUniform.Color = bodies[0].Color
	s.rend.SetObjectUniform(s.glowObject, glowUniform)
}

func (s *scene) DrawCalls() error {
	if s.sphere == nil {
		return fmt.Errorf("scene %q has not been initialized", s.Name())
	}

	for _, obj := range s.bodyObjects {
		s.rend.Draw(renderer.PipelineLit, s.sphere, obj)
	}
	s.rend.Draw(renderer.PipelineLitInstanced, s.sphere, s.beltObject)
	s.rend.Draw(renderer.PipelineUnlit, s.sphere, s.glowObject)

	return nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.bodyObjects {
		if obj != nil {
			obj.Release()
		}
	}
	s.bodyObjects = nil
	if s.glowObject != nil {
		s.glowObject.Release()
		s.glowObject = nil
	}
	if s.beltObject != nil {
		s.beltObject.Release()
		s.beltObject = nil
	}
	for _, tex := range s.textures {
		if tex != nil {
			tex.Release()
		}
	}
	s.textures = nil
	if s.beltTexture != nil {
		s.beltTexture.Release()
		s.beltTexture = nil
	}
	if s.sphere != nil {
		s.sphere.Release()
		s.sphere = nil
	}
}
