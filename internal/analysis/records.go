// Package analysis reads the per-frame identity records produced by the
// external face-detection step.
//
// Each line of analysis.txt names one detection in one raw frame:
//
//	<frameFileName> <personLabel> <left> <top> <bottom> <right>
//
// or, when no face was found:
//
//	<frameFileName> none
//
// The file is externally owned and read-only here.
package analysis

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"strings"

	"facereel/internal/services"
)

// BoundingBox is a face box in raw-frame pixel coordinates.
type BoundingBox struct {
	Left   int
	Top    int
	Bottom int
	Right  int
}

// Width returns the box width in pixels.
func (b BoundingBox) Width() int { return b.Right - b.Left }

// Height returns the box height in pixels.
func (b BoundingBox) Height() int { return b.Bottom - b.Top }

// NoFaceLabel marks a record without a detection.
const NoFaceLabel = "none"

// Record is one parsed analysis line.
type Record struct {
	Frame string
	Label string
	Box   *BoundingBox
}

// ReadRecords parses an analysis file. A missing file is a fatal input error
// for the run's scope.
func ReadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "analysis", "read", path, err)
		}
		return nil, fmt.Errorf("open analysis %q: %w", path, err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		record, err := parseLine(line)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "analysis", "parse",
				fmt.Sprintf("%s line %d", path, lineNo), err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read analysis %q: %w", path, err)
	}
	return records, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Record{}, fmt.Errorf("expected at least 2 fields, got %d", len(fields))
	}
	record := Record{Frame: fields[0], Label: fields[1]}
	if record.Label == NoFaceLabel {
		return record, nil
	}
	if len(fields) < 6 {
		return Record{}, fmt.Errorf("label %q: expected bounding box fields", record.Label)
	}
	coords := make([]int, 4)
	for i, field := range fields[2:6] {
		value, err := strconv.Atoi(field)
		if err != nil {
			return Record{}, fmt.Errorf("bounding box field %q: %w", field, err)
		}
		coords[i] = value
	}
	record.Box = &BoundingBox{Left: coords[0], Top: coords[1], Bottom: coords[2], Right: coords[3]}
	return record, nil
}

// Boxes filters the records down to one bounding box per frame for the named
// person. When a frame carries several detections of the same person, the
// last line wins.
func Boxes(records []Record, person string) map[string]BoundingBox {
	boxes := make(map[string]BoundingBox)
	for _, record := range records {
		if record.Label == person && record.Box != nil {
			boxes[record.Frame] = *record.Box
		}
	}
	return boxes
}
