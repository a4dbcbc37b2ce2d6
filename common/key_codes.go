package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW = 87 // W key (ASCII) — fly forward
	KeyA = 65 // A key (ASCII) — fly left
	KeyS = 83 // S key (ASCII) — fly backward
	KeyD = 68 // D key (ASCII) — fly right
	KeyQ = 81 // Q key (ASCII) — follow previous planet
	KeyE = 69 // E key (ASCII) — follow next planet

	KeyEsc = 256 // Escape key (GLFW) — quit
)
