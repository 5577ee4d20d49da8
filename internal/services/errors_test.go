package services_test

import (
	"errors"
	"strings"
	"testing"

	"shade/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrSizeRejected, "generator", "decode", "pixel area over ceiling", nil)
	if !errors.Is(err, services.ErrSizeRejected) {
		t.Fatalf("expected ErrSizeRejected marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "generator: decode") {
		t.Fatalf("expected component detail in message, got %q", err.Error())
	}
}

func TestWrapNilMarkerFallsBackToValidation(t *testing.T) {
	err := services.Wrap(nil, "registry", "lookup", "", errors.New("boom"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation fallback, got %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("no such file")
	err := services.Wrap(services.ErrSourceUnreadable, "generator", "open", "missing source", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestSkipsVariant(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrSizeRejected, "generator", "decode", "", nil), true},
		{services.Wrap(services.ErrSourceUnreadable, "generator", "open", "", nil), true},
		{services.Wrap(services.ErrUnsupportedFormat, "generator", "probe", "", nil), false},
		{errors.New("plain"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := services.SkipsVariant(tc.err); got != tc.want {
			t.Fatalf("SkipsVariant(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
