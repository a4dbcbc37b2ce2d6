package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/orrery-go/common"
	"github.com/Carmen-Shannon/orrery-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func frameWith(pressed, held []uint32) input.Frame {
	f := input.Frame{Held: map[uint32]bool{}, Pressed: map[uint32]bool{}}
	for _, k := range pressed {
		f.Pressed[k] = true
		f.Held[k] = true
	}
	for _, k := range held {
		f.Held[k] = true
	}
	return f
}

func emptyFrame() input.Frame {
	return input.Frame{Held: map[uint32]bool{}, Pressed: map[uint32]bool{}}
}

// fixedTarget resolves every body index to the same position and size.
func fixedTarget(pos mgl32.Vec3, size float32) TargetLookup {
	return func(int) (mgl32.Vec3, float32) {
		return pos, size
	}
}

func TestRigStartsInFollowMode(t *testing.T) {
	r := NewRig([]int{1, 2, 3}, 1)
	if r.Mode() != ModeFollow {
		t.Errorf("expected follow mode at start")
	}
	if r.Target() != 2 {
		t.Errorf("target = %d, want 2", r.Target())
	}
}

func TestCycleWrapsBothDirections(t *testing.T) {
	r := NewRig([]int{10, 20, 30}, 0)

	r.Update(frameWith([]uint32{common.KeyQ}, nil), 0.016, fixedTarget(mgl32.Vec3{}, 0.1))
	if r.Target() != 30 {
		t.Errorf("cycling back from first body should wrap to last, got %d", r.Target())
	}

	r.Update(frameWith([]uint32{common.KeyE}, nil), 0.016, fixedTarget(mgl32.Vec3{}, 0.1))
	if r.Target() != 10 {
		t.Errorf("cycling forward from last body should wrap to first, got %d", r.Target())
	}
}

func TestCyclePoseTracksNewTargetSameTick(t *testing.T) {
	positions := map[int]mgl32.Vec3{
		7: {0, 0, 0},
		8: {100, 0, 0},
	}
	lookup := func(index int) (mgl32.Vec3, float32) {
		return positions[index], 0.1
	}
	r := NewRig([]int{7, 8}, 0)
	r.Update(emptyFrame(), 0.016, lookup)

	// On the cycle tick itself the pose must orbit the new body, not the one
	// followed when the tick began.
	r.Update(frameWith([]uint32{common.KeyE}, nil), 0.016, lookup)
	if r.Target() != 8 {
		t.Fatalf("target = %d, want 8", r.Target())
	}
	if center := r.Pose().Center; center != positions[8] {
		t.Errorf("cycle tick centered on %v, want %v", center, positions[8])
	}

	r.Update(frameWith([]uint32{common.KeyQ}, nil), 0.016, lookup)
	if center := r.Pose().Center; center != positions[7] {
		t.Errorf("cycle-back tick centered on %v, want %v", center, positions[7])
	}
}

func TestMovementPressReleasesToFreeFlyOnce(t *testing.T) {
	r := NewRig([]int{1}, 0)

	// Held without a press edge must not switch modes.
	r.Update(frameWith(nil, []uint32{common.KeyW}), 0.016, fixedTarget(mgl32.Vec3{}, 0.1))
	if r.Mode() != ModeFollow {
		t.Fatalf("held key without press edge switched modes")
	}

	r.Update(frameWith([]uint32{common.KeyW}, nil), 0.016, fixedTarget(mgl32.Vec3{}, 0.1))
	if r.Mode() != ModeFreeFly {
		t.Fatalf("press edge did not switch to free fly")
	}
}

func TestCycleReturnsToFollowFromFreeFly(t *testing.T) {
	r := NewRig([]int{1, 2}, 0)
	r.Update(frameWith([]uint32{common.KeyA}, nil), 0.016, fixedTarget(mgl32.Vec3{}, 0.1))
	if r.Mode() != ModeFreeFly {
		t.Fatalf("setup: expected free fly")
	}

	r.Update(frameWith([]uint32{common.KeyE}, nil), 0.016, fixedTarget(mgl32.Vec3{}, 0.1))
	if r.Mode() != ModeFollow {
		t.Errorf("cycle key did not return to follow mode")
	}
	if r.Target() != 2 {
		t.Errorf("target = %d, want 2", r.Target())
	}
}

func TestFollowPitchClampSaturates(t *testing.T) {
	r := NewRig([]int{1}, 0)
	target := fixedTarget(mgl32.Vec3{}, 0.1)

	// Drag the pointer far enough to exceed the clamp many times over.
	f := emptyFrame()
	f.PointerDY = -10000
	r.Update(f, 0.016, target)
	topEye := r.Pose().Eye

	f = emptyFrame()
	f.PointerDY = -5000
	r.Update(f, 0.016, target)
	if got := r.Pose().Eye; got != topEye {
		t.Errorf("pitch kept rising past the clamp: %v vs %v", got, topEye)
	}

	// At the +89 degree clamp nearly the whole radius is vertical.
	radius := float64(3 + 0.1*4)
	wantY := radius * math.Sin(89*math.Pi/180)
	if math.Abs(float64(topEye.Y())-wantY) > 1e-3 {
		t.Errorf("clamped eye height = %v, want %v", topEye.Y(), wantY)
	}
}

func TestFollowDistanceClampSaturates(t *testing.T) {
	r := NewRig([]int{1}, 0)
	center := mgl32.Vec3{}
	target := fixedTarget(center, 0)

	// Scroll far past the near limit.
	f := emptyFrame()
	f.Scroll = 10000
	r.Update(f, 0.016, target)
	nearDist := r.Pose().Eye.Sub(center).Len()
	if math.Abs(float64(nearDist-0.5)) > 1e-4 {
		t.Errorf("near clamp distance = %v, want 0.5", nearDist)
	}

	// And far past the far limit.
	f = emptyFrame()
	f.Scroll = -10000
	r.Update(f, 0.016, target)
	farDist := r.Pose().Eye.Sub(center).Len()
	if math.Abs(float64(farDist-30)) > 1e-3 {
		t.Errorf("far clamp distance = %v, want 30", farDist)
	}
}

func TestFollowRadiusPadsByBodySize(t *testing.T) {
	r := NewRig([]int{1}, 0, WithOrbit(0, 0, 3))
	center := mgl32.Vec3{5, 0, 5}

	r.Update(emptyFrame(), 0.016, fixedTarget(center, 0.25))
	dist := r.Pose().Eye.Sub(center).Len()
	want := float32(3 + 0.25*4)
	if math.Abs(float64(dist-want)) > 1e-4 {
		t.Errorf("orbit radius = %v, want %v", dist, want)
	}
	if got := r.Pose().Center; got != center {
		t.Errorf("follow mode must look at the body, center = %v", got)
	}
}

func TestFreeFlyMovesAlongHeading(t *testing.T) {
	r := NewRig([]int{1}, 0, WithMoveSpeed(2))
	r.Update(frameWith([]uint32{common.KeyW}, nil), 0, fixedTarget(mgl32.Vec3{}, 0.1))
	start := r.Pose().Eye

	// Hold forward for a full second.
	r.Update(frameWith(nil, []uint32{common.KeyW}), 1.0, fixedTarget(mgl32.Vec3{}, 0.1))
	moved := r.Pose().Eye.Sub(start).Len()
	if math.Abs(float64(moved-2)) > 1e-3 {
		t.Errorf("moved %v units in 1s at speed 2", moved)
	}
}

func TestFreeFlyReleaseKeepsEyeAndHeading(t *testing.T) {
	r := NewRig([]int{1}, 0)
	center := mgl32.Vec3{4, 0, 0}
	target := fixedTarget(center, 0.1)

	r.Update(emptyFrame(), 0.016, target)
	followPose := r.Pose()

	r.Update(frameWith([]uint32{common.KeyD}, nil), 0, target)
	freePose := r.Pose()

	if freePose.Eye.Sub(followPose.Eye).Len() > 1e-4 {
		t.Errorf("release moved the eye: %v vs %v", freePose.Eye, followPose.Eye)
	}
	// The free heading must still face the body it was orbiting.
	wantDir := center.Sub(followPose.Eye).Normalize()
	gotDir := freePose.Center.Sub(freePose.Eye).Normalize()
	if wantDir.Sub(gotDir).Len() > 1e-3 {
		t.Errorf("release changed the heading: %v vs %v", gotDir, wantDir)
	}
}

func TestFovZoomOnlyInFreeFly(t *testing.T) {
	r := NewRig([]int{1}, 0)
	target := fixedTarget(mgl32.Vec3{}, 0.1)
	baseline := r.Fov()

	// Scroll in follow mode adjusts distance, not fov.
	f := emptyFrame()
	f.Scroll = 5
	r.Update(f, 0.016, target)
	if r.Fov() != baseline {
		t.Fatalf("follow-mode scroll changed fov")
	}

	r.Update(frameWith([]uint32{common.KeyW}, nil), 0.016, target)
	f = emptyFrame()
	f.Scroll = 10
	r.Update(f, 0.016, target)
	want := float64(35 * math.Pi / 180)
	if math.Abs(float64(r.Fov())-want) > 1e-5 {
		t.Errorf("fov after zoom = %v rad, want %v", r.Fov(), want)
	}

	// Saturate both ends of the clamp.
	f = emptyFrame()
	f.Scroll = 1000
	r.Update(f, 0.016, target)
	if got := float64(r.Fov()); math.Abs(got-1*math.Pi/180) > 1e-5 {
		t.Errorf("fov floor = %v rad, want 1 degree", got)
	}
	f = emptyFrame()
	f.Scroll = -1000
	r.Update(f, 0.016, target)
	if got := float64(r.Fov()); math.Abs(got-45*math.Pi/180) > 1e-5 {
		t.Errorf("fov ceiling = %v rad, want 45 degrees", got)
	}
}

func TestNewRigPanicsWithoutCyclableBodies(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for empty cyclable list")
		}
	}()
	NewRig(nil, 0)
}
