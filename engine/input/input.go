// Package input accumulates raw window events (key transitions, pointer
// motion, scroll) between frames and hands the frame loop one immutable
// snapshot per tick. Callbacks fire on the message loop thread and the
// snapshot is taken on the same thread, but the tracker is still guarded by a
// mutex so diagnostic reads from other goroutines stay safe.
package input

import (
	"sync"
)

// Frame is one tick's worth of input: the keys currently held plus the
// pointer and scroll deltas accumulated since the previous snapshot.
// A Frame is a value; callers may retain it without aliasing tracker state.
type Frame struct {
	// Held reports the keys down at snapshot time, keyed by key code.
	Held map[uint32]bool

	// Pressed reports the keys that transitioned from up to down since the
	// previous snapshot, keyed by key code. A key held across multiple frames
	// appears here only in the frame of its press.
	Pressed map[uint32]bool

	// PointerDX and PointerDY are the accumulated pointer motion deltas in
	// screen pixels since the previous snapshot.
	PointerDX float32
	PointerDY float32

	// Scroll is the accumulated vertical scroll delta since the previous
	// snapshot, in wheel notches.
	Scroll float32
}

// IsHeld reports whether the given key was down at snapshot time.
//
// Parameters:
//   - keyCode: the key code to check
//
// Returns:
//   - bool: true if the key was held
func (f Frame) IsHeld(keyCode uint32) bool {
	return f.Held[keyCode]
}

// WasPressed reports whether the given key transitioned from up to down
// during this frame's accumulation window.
//
// Parameters:
//   - keyCode: the key code to check
//
// Returns:
//   - bool: true if the key was freshly pressed
func (f Frame) WasPressed(keyCode uint32) bool {
	return f.Pressed[keyCode]
}

// trackerImpl is the implementation of the Tracker interface.
type trackerImpl struct {
	mu *sync.Mutex

	held    map[uint32]bool
	pressed map[uint32]bool

	pointerDX float32
	pointerDY float32
	scroll    float32

	// lastX/lastY hold the previous absolute pointer sample. The first sample
	// after construction (or after ResetPointer) only establishes the
	// baseline and produces no delta, so a captured cursor does not cause a
	// camera jump on the first frame.
	lastX, lastY     float32
	havePointerStart bool
}

// Tracker accumulates window input events and drains them one frame at a time.
//
// The window layer feeds the tracker through the Key/Pointer/Scroll methods;
// the frame loop calls Snapshot once per tick to consume everything that
// arrived since the last tick.
type Tracker interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - keyCode: the pressed key's code
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the released key's code
	KeyUp(keyCode uint32)

	// PointerMove records an absolute pointer position sample. Deltas are
	// derived from consecutive samples; the first sample after construction
	// or ResetPointer yields no delta.
	//
	// Parameters:
	//   - x: absolute pointer x in screen pixels
	//   - y: absolute pointer y in screen pixels
	PointerMove(x, y float32)

	// Scroll records a vertical scroll wheel delta.
	//
	// Parameters:
	//   - delta: scroll amount in wheel notches (positive away from the user)
	Scroll(delta float32)

	// ResetPointer discards the pointer baseline so the next PointerMove
	// sample produces no delta. Called when the cursor is captured or
	// released, where the absolute position jumps discontinuously.
	ResetPointer()

	// Snapshot returns the input accumulated since the previous Snapshot and
	// clears the per-frame accumulators. Held key state persists across
	// snapshots; press edges and deltas do not.
	//
	// Returns:
	//   - Frame: the drained input frame
	Snapshot() Frame
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a new empty input Tracker.
//
// Returns:
//   - Tracker: a new Tracker instance
func NewTracker() Tracker {
	return &trackerImpl{
		mu:      &sync.Mutex{},
		held:    make(map[uint32]bool),
		pressed: make(map[uint32]bool),
	}
}

func (t *trackerImpl) KeyDown(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.held[keyCode] {
		t.pressed[keyCode] = true
	}
	t.held[keyCode] = true
}

func (t *trackerImpl) KeyUp(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, keyCode)
}

func (t *trackerImpl) PointerMove(x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.havePointerStart {
		t.pointerDX += x - t.lastX
		t.pointerDY += y - t.lastY
	}
	t.lastX = x
	t.lastY = y
	t.havePointerStart = true
}

func (t *trackerImpl) Scroll(delta float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scroll += delta
}

func (t *trackerImpl) ResetPointer() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.havePointerStart = false
}

func (t *trackerImpl) Snapshot() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	frame := Frame{
		Held:      make(map[uint32]bool, len(t.held)),
		Pressed:   t.pressed,
		PointerDX: t.pointerDX,
		PointerDY: t.pointerDY,
		Scroll:    t.scroll,
	}
	for k := range t.held {
		frame.Held[k] = true
	}

	t.pressed = make(map[uint32]bool)
	t.pointerDX = 0
	t.pointerDY = 0
	t.scroll = 0

	return frame
}
