package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"facereel/internal/services"
)

func writeAnalysis(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadRecords(t *testing.T) {
	path := writeAnalysis(t, `00001.jpg none
00002.jpg quinn 10 20 240 220
00003.jpg unknown 5 5 200 200

00004.jpg quinn 0 0 300 300
`)
	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if records[0].Label != NoFaceLabel || records[0].Box != nil {
		t.Fatalf("unexpected none record: %+v", records[0])
	}
	box := records[1].Box
	if box == nil || box.Left != 10 || box.Top != 20 || box.Bottom != 240 || box.Right != 220 {
		t.Fatalf("unexpected box: %+v", box)
	}
	if box.Width() != 210 || box.Height() != 220 {
		t.Fatalf("unexpected dimensions: %dx%d", box.Width(), box.Height())
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "analysis.txt"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadRecordsMalformed(t *testing.T) {
	tests := []string{
		"00001.jpg",
		"00001.jpg quinn 10 20",
		"00001.jpg quinn 10 20 abc 220",
	}
	for _, body := range tests {
		path := writeAnalysis(t, body+"\n")
		if _, err := ReadRecords(path); !errors.Is(err, services.ErrValidation) {
			t.Errorf("body %q: expected validation error, got %v", body, err)
		}
	}
}

func TestBoxesFiltersByPerson(t *testing.T) {
	records := []Record{
		{Frame: "00001.jpg", Label: "none"},
		{Frame: "00002.jpg", Label: "quinn", Box: &BoundingBox{0, 0, 10, 10}},
		{Frame: "00002.jpg", Label: "quinn", Box: &BoundingBox{1, 1, 11, 11}},
		{Frame: "00003.jpg", Label: "other", Box: &BoundingBox{0, 0, 10, 10}},
	}
	boxes := Boxes(records, "quinn")
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}
	if box := boxes["00002.jpg"]; box.Left != 1 {
		t.Fatalf("expected last detection to win, got %+v", box)
	}
}
