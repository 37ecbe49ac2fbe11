package align

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "adjustments"))
	if err := store.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	img := image.NewGray(image.Rect(0, 0, CanonicalSize, CanonicalSize))
	if err := store.Save(3, 42, img); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "00003_42.jpg")); err != nil {
		t.Fatalf("saved frame missing: %v", err)
	}

	done, err := store.CompletedOrdinals()
	if err != nil {
		t.Fatalf("CompletedOrdinals: %v", err)
	}
	if _, ok := done[3]; !ok || len(done) != 1 {
		t.Fatalf("done = %v, want {3}", done)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	done, err = store.CompletedOrdinals()
	if err != nil {
		t.Fatalf("CompletedOrdinals after clear: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("done after clear = %v, want empty", done)
	}
}

func TestStoreIgnoresForeignFiles(t *testing.T) {
	store := NewStore(t.TempDir())
	for _, name := range []string{"notes.txt", "00001.jpg", ".DS_Store"} {
		if err := os.WriteFile(filepath.Join(store.Dir(), name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	done, err := store.CompletedOrdinals()
	if err != nil {
		t.Fatalf("CompletedOrdinals: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("done = %v, want empty", done)
	}
}

func TestStoreMissingDirReadsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	done, err := store.CompletedOrdinals()
	if err != nil {
		t.Fatalf("CompletedOrdinals: %v", err)
	}
	if len(done) != 0 {
		t.Fatalf("done = %v, want empty", done)
	}
}
