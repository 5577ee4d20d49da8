package sizereq_test

import (
	"testing"

	"shade/internal/sizereq"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want sizereq.Request
	}{
		{"thumbnail", sizereq.Request{Kind: sizereq.KindPlain, Label: "thumbnail"}},
		{"full", sizereq.Request{Kind: sizereq.KindPlain, Label: "full"}},
		{"grayscale", sizereq.Request{Kind: sizereq.KindGrayscale}},
		{"Grayscale", sizereq.Request{Kind: sizereq.KindGrayscale}},
		{" grayscale ", sizereq.Request{Kind: sizereq.KindGrayscale}},
		{"grayscale:thumbnail", sizereq.Request{Kind: sizereq.KindGrayscaleOf, Label: "thumbnail"}},
		{"grayscale: medium", sizereq.Request{Kind: sizereq.KindGrayscaleOf, Label: "medium"}},
		{"grayscale:", sizereq.Request{Kind: sizereq.KindGrayscale}},
		{"grayscalethumbnail", sizereq.Request{Kind: sizereq.KindPlain, Label: "grayscalethumbnail"}},
	}
	for _, tc := range cases {
		if got := sizereq.Parse(tc.in); got != tc.want {
			t.Fatalf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestIsGrayscale(t *testing.T) {
	if !sizereq.Parse("grayscale").IsGrayscale() {
		t.Fatal("bare grayscale should be grayscale")
	}
	if !sizereq.Parse("grayscale:thumbnail").IsGrayscale() {
		t.Fatal("prefixed request should be grayscale")
	}
	if sizereq.Parse("thumbnail").IsGrayscale() {
		t.Fatal("plain label should not be grayscale")
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, raw := range []string{"thumbnail", "grayscale", "grayscale:medium"} {
		if got := sizereq.Parse(raw).String(); got != raw {
			t.Fatalf("round trip %q -> %q", raw, got)
		}
	}
}
