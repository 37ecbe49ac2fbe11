package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "assemble", "mux", "bucket 3", base)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause to survive, got %v", err)
	}
	want := "external tool error: assemble: mux: bucket 3: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation fallback, got %v", err)
	}
	if err.Error() != "validation error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestIsUnusableFrame(t *testing.T) {
	err := Wrap(ErrUnusableFrame, "align", "crop", "face too small", nil)
	if !IsUnusableFrame(err) {
		t.Fatalf("expected unusable-frame classification for %v", err)
	}
	if IsUnusableFrame(Wrap(ErrNotFound, "align", "", "missing analysis", nil)) {
		t.Fatal("not-found error misclassified as unusable frame")
	}
}
