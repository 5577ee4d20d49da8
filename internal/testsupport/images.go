package testsupport

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"shade/internal/asset"
)

// WriteImage encodes a real image of the given dimensions at path. The
// format is taken from the path extension, so fixtures decode exactly like
// user uploads would.
func WriteImage(t testing.TB, path string, width, height int) {
	t.Helper()

	format, err := asset.FormatFromPath(path)
	if err != nil {
		t.Fatalf("format for %s: %v", path, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	switch format {
	case asset.FormatPNG:
		err = png.Encode(f, img)
	case asset.FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteFile fills the target path with arbitrary non-image bytes. Useful for
// exercising unsupported and corrupt source handling.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
