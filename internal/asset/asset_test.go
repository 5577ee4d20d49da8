package asset_test

import (
	"testing"

	"shade/internal/asset"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want asset.Format
		ok   bool
	}{
		{"png", asset.FormatPNG, true},
		{".png", asset.FormatPNG, true},
		{"PNG", asset.FormatPNG, true},
		{"jpeg", asset.FormatJPEG, true},
		{"jpg", asset.FormatJPEG, true},
		{".JPG", asset.FormatJPEG, true},
		{"gif", "", false},
		{"webp", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := asset.ParseFormat(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseFormat(%q): expected error", tc.in)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	format, err := asset.FormatFromPath("2024/photo.JPG")
	if err != nil || format != asset.FormatJPEG {
		t.Fatalf("FormatFromPath: %q, %v", format, err)
	}
	if _, err := asset.FormatFromPath("noext"); err == nil {
		t.Fatal("expected error for missing extension")
	}
}

func TestDerivativePathConvention(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":              "photo-grayscale.jpg",
		"a/b/photo.png":          "a/b/photo-grayscale.png",
		"a/photo-150x150.jpg":    "a/photo-150x150-grayscale.jpg",
		"dir.with.dots/img.jpeg": "dir.with.dots/img-grayscale.jpeg",
	}
	for in, want := range cases {
		if got := asset.DerivativePath(in); got != want {
			t.Fatalf("DerivativePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVariantPath(t *testing.T) {
	if got := asset.VariantPath("a/photo.jpg", 150, 50); got != "a/photo-150x50.jpg" {
		t.Fatalf("VariantPath = %q", got)
	}
	if got := asset.VariantPath("photo.png", 800, 600); got != "photo-800x600.png" {
		t.Fatalf("VariantPath = %q", got)
	}
}

func TestTitleFromPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/in/Sunset Beach.png", "Sunset Beach"},
		{"/inbound/beach_sunset vacation.png", "Beach Sunset Vacation"},
		{"holiday-photos.2024.summer.jpg", "Holiday Photos 2024 Summer"},
		{"__weird--name__.png", "Weird Name"},
		{"/in/lowercase.jpg", "Lowercase"},
		{"", "Untitled"},
		{"....png", "Untitled"},
	}
	for _, tc := range cases {
		if got := asset.TitleFromPath(tc.in); got != tc.want {
			t.Fatalf("TitleFromPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestVariantPixelArea(t *testing.T) {
	v := asset.Variant{Width: 2000, Height: 2000}
	if v.PixelArea() != 4_000_000 {
		t.Fatalf("PixelArea = %d", v.PixelArea())
	}
}

func TestExtension(t *testing.T) {
	if asset.FormatJPEG.Extension() != "jpg" {
		t.Fatal("jpeg extension should be jpg")
	}
	if asset.FormatPNG.Extension() != "png" {
		t.Fatal("png extension should be png")
	}
}
