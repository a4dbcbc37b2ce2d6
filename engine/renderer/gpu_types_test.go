package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/orrery-go/common"
)

func f32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(buf) {
		t.Fatalf("offset %d out of range for buffer of %d bytes", offset, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestGPUObjectUniformSize(t *testing.T) {
	var u GPUObjectUniform
	if u.Size() != 96 {
		t.Fatalf("expected 96-byte uniform, got %d", u.Size())
	}
	if got := len(common.StructToBytes(&u)); got != 96 {
		t.Fatalf("expected 96-byte upload image, got %d", got)
	}
}

func TestGPUObjectUniformUploadLayout(t *testing.T) {
	u := GPUObjectUniform{
		Color:      [3]float32{0.25, 0.5, 0.75},
		UseTexture: 1,
		Shininess:  32,
	}
	for i := range u.Model {
		u.Model[i] = float32(i)
	}

	// The uniform uploads as its raw memory image; the field offsets must
	// line up with the WGSL ObjectUniform layout.
	buf := common.StructToBytes(&u)

	// Model occupies offsets 0..64.
	if got := f32At(t, buf, 0); got != 0 {
		t.Errorf("model[0]: expected 0, got %v", got)
	}
	if got := f32At(t, buf, 15*4); got != 15 {
		t.Errorf("model[15]: expected 15, got %v", got)
	}

	// Color at 64, flags at 76 and 80.
	if got := f32At(t, buf, 64); got != 0.25 {
		t.Errorf("color r: expected 0.25, got %v", got)
	}
	if got := f32At(t, buf, 76); got != 1 {
		t.Errorf("use texture: expected 1, got %v", got)
	}
	if got := f32At(t, buf, 80); got != 32 {
		t.Errorf("shininess: expected 32, got %v", got)
	}

	// Trailing pad stays zeroed.
	for off := 84; off < 96; off += 4 {
		if got := f32At(t, buf, off); got != 0 {
			t.Errorf("pad at %d: expected 0, got %v", off, got)
		}
	}
}

func TestInstanceModelsUploadLayout(t *testing.T) {
	models := [][16]float32{{}, {}, {}}
	models[0][0] = 1.5
	models[2][15] = -2.5

	// Matrices are tightly packed, matching the 64-byte stride of the WGSL
	// array<mat4x4<f32>> storage buffer.
	buf := common.SliceToBytes(models)
	if len(buf) != 3*64 {
		t.Fatalf("expected %d bytes, got %d", 3*64, len(buf))
	}
	if got := f32At(t, buf, 0); got != 1.5 {
		t.Errorf("first matrix element: expected 1.5, got %v", got)
	}
	if got := f32At(t, buf, 2*64+15*4); got != -2.5 {
		t.Errorf("last matrix element: expected -2.5, got %v", got)
	}
}
