package camera

import (
	"math"
	"testing"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if got := c.Fov(); math.Abs(float64(got)-45*math.Pi/180) > 1e-6 {
		t.Errorf("default fov = %v", got)
	}
	if c.Near() != 0.1 || c.Far() != 100 {
		t.Errorf("default planes = (%v, %v)", c.Near(), c.Far())
	}
}

func TestSetPoseUpdatesViewMatrix(t *testing.T) {
	c := NewCamera(WithPose(0, 0, 10, 0, 0, 0))
	before := c.ViewMatrix()

	c.SetPose(10, 0, 0, 0, 0, 0)
	after := c.ViewMatrix()
	if before == after {
		t.Errorf("view matrix unchanged after pose change")
	}

	// A camera on +X looking at the origin maps the origin to view space
	// straight ahead: (0, 0, -10).
	x := after[0]*0 + after[4]*0 + after[8]*0 + after[12]
	y := after[1]*0 + after[5]*0 + after[9]*0 + after[13]
	z := after[2]*0 + after[6]*0 + after[10]*0 + after[14]
	if math.Abs(float64(x)) > 1e-5 || math.Abs(float64(y)) > 1e-5 || math.Abs(float64(z)+10) > 1e-4 {
		t.Errorf("origin in view space = (%v, %v, %v), want (0, 0, -10)", x, y, z)
	}
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewCamera(WithAspect(1))
	square := c.ProjectionMatrix()

	c.SetAspect(2)
	wide := c.ProjectionMatrix()
	if math.Abs(float64(wide[0]*2-square[0])) > 1e-5 {
		t.Errorf("doubling aspect did not halve the x scale: %v vs %v", wide[0], square[0])
	}
	if wide[5] != square[5] {
		t.Errorf("aspect change altered the y scale")
	}
}

func TestGPUCameraUniformSize(t *testing.T) {
	u := &GPUCameraUniform{}
	if u.Size() != 80 {
		t.Errorf("uniform size = %d, want 80", u.Size())
	}
	if got := len(u.Marshal()); got != 80 {
		t.Errorf("marshaled length = %d, want 80", got)
	}
}
