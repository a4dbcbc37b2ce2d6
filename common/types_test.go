package common

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "texture.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func TestTextureFileDecode(t *testing.T) {
	tf := &TextureFile{Name: "test", Path: writeTestPNG(t, 4, 3)}
	staging, err := tf.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if staging.Width != 4 || staging.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 4x3", staging.Width, staging.Height)
	}
	if want := 4 * 3 * 4; len(staging.Pixels) != want {
		t.Errorf("pixel buffer = %d bytes, want %d", len(staging.Pixels), want)
	}
	if tf.Width != 4 || tf.Height != 3 {
		t.Errorf("file dimensions = %dx%d, want 4x3", tf.Width, tf.Height)
	}
	// RGBA order.
	if staging.Pixels[0] != 200 || staging.Pixels[1] != 100 || staging.Pixels[2] != 50 || staging.Pixels[3] != 255 {
		t.Errorf("first pixel = %v, want [200 100 50 255]", staging.Pixels[:4])
	}
}

func TestTextureFileDecodeErrors(t *testing.T) {
	corrupt := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	tests := []struct {
		name string
		file *TextureFile
	}{
		{"empty path", &TextureFile{Name: "none"}},
		{"missing file", &TextureFile{Name: "gone", Path: filepath.Join(t.TempDir(), "missing.png")}},
		{"corrupt data", &TextureFile{Name: "corrupt", Path: corrupt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.file.Decode(); err == nil {
				t.Errorf("Decode succeeded, want error")
			}
		})
	}
}
