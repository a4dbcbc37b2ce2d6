package input

import "testing"

func TestHeldPersistsAcrossSnapshots(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(87)

	if !tr.Snapshot().IsHeld(87) {
		t.Fatalf("expected key held in first snapshot")
	}
	if !tr.Snapshot().IsHeld(87) {
		t.Errorf("expected key still held in second snapshot")
	}

	tr.KeyUp(87)
	if tr.Snapshot().IsHeld(87) {
		t.Errorf("expected key released after KeyUp")
	}
}

func TestPressedEdgeFiresOnce(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(81)

	if !tr.Snapshot().WasPressed(81) {
		t.Fatalf("expected press edge in first snapshot")
	}
	if tr.Snapshot().WasPressed(81) {
		t.Errorf("press edge leaked into second snapshot")
	}

	// Key repeat while held must not re-trigger the edge.
	tr.KeyDown(81)
	if tr.Snapshot().WasPressed(81) {
		t.Errorf("repeat KeyDown while held produced a press edge")
	}

	tr.KeyUp(81)
	tr.KeyDown(81)
	if !tr.Snapshot().WasPressed(81) {
		t.Errorf("expected new press edge after release and re-press")
	}
}

func TestPointerDeltasAccumulateAndDrain(t *testing.T) {
	tr := NewTracker()

	// First sample is a baseline only.
	tr.PointerMove(100, 200)
	frame := tr.Snapshot()
	if frame.PointerDX != 0 || frame.PointerDY != 0 {
		t.Fatalf("first pointer sample produced delta (%v, %v)", frame.PointerDX, frame.PointerDY)
	}

	tr.PointerMove(110, 195)
	tr.PointerMove(115, 190)
	frame = tr.Snapshot()
	if frame.PointerDX != 15 || frame.PointerDY != -10 {
		t.Errorf("accumulated delta = (%v, %v), want (15, -10)", frame.PointerDX, frame.PointerDY)
	}

	frame = tr.Snapshot()
	if frame.PointerDX != 0 || frame.PointerDY != 0 {
		t.Errorf("deltas not drained: (%v, %v)", frame.PointerDX, frame.PointerDY)
	}
}

func TestResetPointerSuppressesJump(t *testing.T) {
	tr := NewTracker()
	tr.PointerMove(0, 0)
	tr.Snapshot()

	tr.ResetPointer()
	tr.PointerMove(5000, 5000)
	frame := tr.Snapshot()
	if frame.PointerDX != 0 || frame.PointerDY != 0 {
		t.Errorf("post-reset sample produced delta (%v, %v)", frame.PointerDX, frame.PointerDY)
	}

	tr.PointerMove(5010, 5000)
	if dx := tr.Snapshot().PointerDX; dx != 10 {
		t.Errorf("delta after rebaseline = %v, want 10", dx)
	}
}

func TestScrollAccumulatesAndDrains(t *testing.T) {
	tr := NewTracker()
	tr.Scroll(1)
	tr.Scroll(-3)
	if got := tr.Snapshot().Scroll; got != -2 {
		t.Errorf("scroll = %v, want -2", got)
	}
	if got := tr.Snapshot().Scroll; got != 0 {
		t.Errorf("scroll not drained: %v", got)
	}
}

func TestFrameIsDetachedFromTracker(t *testing.T) {
	tr := NewTracker()
	tr.KeyDown(65)
	frame := tr.Snapshot()

	tr.KeyUp(65)
	if !frame.IsHeld(65) {
		t.Errorf("snapshot mutated by later tracker events")
	}
}
