// Package framename implements the adjusted-frame filename contract.
//
// Aligned frames are persisted as "<ordinal>_<ratio>.jpg" with the ordinal
// zero-padded to five digits and the mouth-open ratio appended unpadded.
// Every downstream stage (the ratio index, the bucketizer, and the matcher)
// parses this name rather than carrying metadata out of band, so Format and
// Parse must round-trip byte for byte.
package framename

import (
	"fmt"
	"strconv"
	"strings"
)

// Extension is the artifact file extension, including the dot.
const Extension = ".jpg"

// Format renders the canonical filename for an aligned frame.
func Format(ordinal, ratio int) string {
	return fmt.Sprintf("%05d_%d%s", ordinal, ratio, Extension)
}

// Parse extracts the ordinal and mouth-open ratio from an adjusted-frame
// filename. The name must be a bare filename, not a path.
func Parse(name string) (ordinal, ratio int, err error) {
	base, ok := strings.CutSuffix(name, Extension)
	if !ok {
		return 0, 0, fmt.Errorf("frame name %q: missing %s suffix", name, Extension)
	}
	ordinalPart, ratioPart, ok := strings.Cut(base, "_")
	if !ok {
		return 0, 0, fmt.Errorf("frame name %q: missing ratio separator", name)
	}
	ordinal, err = strconv.Atoi(ordinalPart)
	if err != nil || ordinal < 1 {
		return 0, 0, fmt.Errorf("frame name %q: invalid ordinal %q", name, ordinalPart)
	}
	ratio, err = strconv.Atoi(ratioPart)
	if err != nil || ratio < 1 || ratio > 100 {
		return 0, 0, fmt.Errorf("frame name %q: invalid ratio %q", name, ratioPart)
	}
	return ordinal, ratio, nil
}

// Ordinal extracts only the ordinal, tolerating any ratio suffix. Used by
// the resume scan, which matches frames by ordinal regardless of ratio.
func Ordinal(name string) (int, error) {
	ordinal, _, err := Parse(name)
	return ordinal, err
}
