package imaging_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"shade/internal/asset"
	"shade/internal/config"
	"shade/internal/imaging"
	"shade/internal/services"
)

func newGenerator(t *testing.T) *imaging.Generator {
	t.Helper()
	cfg := config.Default()
	return imaging.NewGenerator(&cfg)
}

func writeTestImage(t *testing.T, dir, name string, width, height int, format asset.Format) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	var err error
	switch format {
	case asset.FormatPNG:
		err = png.Encode(&buf, img)
	case asset.FormatJPEG:
		err = jpeg.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestGenerateProducesGrayscale(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, dir, "photo.png", 64, 48, asset.FormatPNG)

	out, err := newGenerator(t).Generate(source, asset.FormatPNG)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Width != 64 || out.Height != 48 || out.Format != asset.FormatPNG {
		t.Fatalf("unexpected output meta: %+v", out)
	}

	decoded, name, err := image.Decode(bytes.NewReader(out.Data))
	if err != nil || name != "png" {
		t.Fatalf("decode output: %v (%s)", err, name)
	}
	bounds := decoded.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 7 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 7 {
			r, g, b, _ := decoded.At(x, y).RGBA()
			if r != g || g != b {
				t.Fatalf("pixel (%d,%d) not gray: r=%d g=%d b=%d", x, y, r, g, b)
			}
		}
	}
}

func TestGenerateKeepsJPEGFormat(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, dir, "photo.jpg", 32, 32, asset.FormatJPEG)

	out, err := newGenerator(t).Generate(source, asset.FormatJPEG)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, name, err := image.Decode(bytes.NewReader(out.Data)); err != nil || name != "jpeg" {
		t.Fatalf("expected jpeg output, got %s (%v)", name, err)
	}
}

func TestGenerateRejectsOversized(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Generator.PixelCeiling = 1000
	gen := imaging.NewGenerator(&cfg)
	source := writeTestImage(t, dir, "big.png", 50, 50, asset.FormatPNG)

	_, err := gen.Generate(source, asset.FormatPNG)
	if !errors.Is(err, services.ErrSizeRejected) {
		t.Fatalf("expected ErrSizeRejected, got %v", err)
	}
}

func TestGenerateMissingSource(t *testing.T) {
	_, err := newGenerator(t).Generate(filepath.Join(t.TempDir(), "missing.png"), asset.FormatPNG)
	if !errors.Is(err, services.ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}

func TestGenerateCorruptSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := newGenerator(t).Generate(path, asset.FormatPNG)
	if !errors.Is(err, services.ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	img := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "anim.gif")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := newGenerator(t).Generate(path, "gif"); !errors.Is(err, services.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for declared gif, got %v", err)
	}
	if _, _, _, err := newGenerator(t).Probe(path); !errors.Is(err, services.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat from probe, got %v", err)
	}
}

func TestGenerateFormatMismatch(t *testing.T) {
	dir := t.TempDir()
	// PNG bytes behind a jpeg declaration.
	source := writeTestImage(t, dir, "mislabeled.jpg", 16, 16, asset.FormatPNG)
	_, err := newGenerator(t).Generate(source, asset.FormatJPEG)
	if !errors.Is(err, services.ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable for mismatch, got %v", err)
	}
}

func TestGenerateResizedFitsWithin(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, dir, "wide.jpg", 300, 100, asset.FormatJPEG)

	out, err := newGenerator(t).GenerateResized(source, asset.FormatJPEG, 150, 150)
	if err != nil {
		t.Fatalf("GenerateResized: %v", err)
	}
	if out.Width != 150 || out.Height != 50 {
		t.Fatalf("unexpected dims: %dx%d", out.Width, out.Height)
	}
}

func TestGenerateResizedNeverUpscales(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, dir, "small.png", 40, 30, asset.FormatPNG)

	out, err := newGenerator(t).GenerateResized(source, asset.FormatPNG, 800, 600)
	if err != nil {
		t.Fatalf("GenerateResized: %v", err)
	}
	if out.Width != 40 || out.Height != 30 {
		t.Fatalf("expected original dims, got %dx%d", out.Width, out.Height)
	}
}

func TestFitDimensions(t *testing.T) {
	cases := []struct {
		w, h, maxW, maxH, wantW, wantH int
	}{
		{3000, 1000, 150, 150, 150, 50},
		{1000, 3000, 150, 150, 50, 150},
		{100, 100, 150, 150, 100, 100},
		{800, 600, 800, 600, 800, 600},
	}
	for _, tc := range cases {
		gotW, gotH := imaging.FitDimensions(tc.w, tc.h, tc.maxW, tc.maxH)
		if gotW != tc.wantW || gotH != tc.wantH {
			t.Fatalf("FitDimensions(%d,%d,%d,%d) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.maxW, tc.maxH, gotW, gotH, tc.wantW, tc.wantH)
		}
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, dir, "probe.png", 123, 45, asset.FormatPNG)

	w, h, format, err := newGenerator(t).Probe(source)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if w != 123 || h != 45 || format != asset.FormatPNG {
		t.Fatalf("unexpected probe result: %dx%d %s", w, h, format)
	}
}
