package scene

// SceneBuilderOption is a functional option applied to a scene during construction via NewScene.
type SceneBuilderOption func(*scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene identifier
//
// Returns:
//   - SceneBuilderOption: a function that applies the name option to a scene
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene starts active.
//
// Parameters:
//   - active: true to render the scene (default), false to start inactive
//
// Returns:
//   - SceneBuilderOption: a function that applies the active option to a scene
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithAmbientColor sets the scene's ambient light color.
//
// Parameters:
//   - color: the ambient RGB color
//
// Returns:
//   - SceneBuilderOption: a function that applies the ambient color option to a scene
func WithAmbientColor(color [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.ambientColor = color
	}
}

// WithBelt configures the asteroid belt generated during Init.
//
// Parameters:
//   - count: the number of asteroid instances
//   - seed: the seed for the deterministic jitter
//
// Returns:
//   - SceneBuilderOption: a function that applies the belt option to a scene
func WithBelt(count int, seed int64) SceneBuilderOption {
	return func(s *scene) {
		s.beltCount = count
		s.beltSeed = seed
	}
}

// WithDecodeWorkers sets the number of workers used for parallel texture
// decoding during Init. Defaults to NumCPU-1 with a floor of 1.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - SceneBuilderOption: a function that applies the decode workers option to a scene
func WithDecodeWorkers(workers int) SceneBuilderOption {
	return func(s *scene) {
		if workers > 0 {
			s.decodeWorkers = workers
		}
	}
}
