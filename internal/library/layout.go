// Package library fixes the on-disk layout of a facereel library.
//
// The library root holds one directory per source video, named by its video
// id. Inside each source:
//
//	frames/         raw extracted frames (external collaborator output)
//	analysis.txt    per-frame identity records (external collaborator output)
//	audio.mp3       the source's full audio track
//	adjustments/    aligned, ratio-tagged frames
//	buckets/<n>/    per-bucket working files, audio snippet and clip
//	buckets/video.mp4   the assembled per-source video
//
// The root-level video.mp4 is the final concatenation across sources.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

const (
	framesDirName      = "frames"
	adjustmentsDirName = "adjustments"
	bucketsDirName     = "buckets"
	analysisFileName   = "analysis.txt"
	audioFileName      = "audio.mp3"
	videoFileName      = "video.mp4"
	manifestFileName   = "video_list.txt"
)

// FramesDir returns the raw frame directory for a source.
func FramesDir(sourceDir string) string {
	return filepath.Join(sourceDir, framesDirName)
}

// AdjustmentsDir returns the aligned-frame store directory for a source.
func AdjustmentsDir(sourceDir string) string {
	return filepath.Join(sourceDir, adjustmentsDirName)
}

// BucketsDir returns the bucket working tree for a source.
func BucketsDir(sourceDir string) string {
	return filepath.Join(sourceDir, bucketsDirName)
}

// BucketDir returns the working directory for one numbered bucket.
func BucketDir(sourceDir string, bucket int) string {
	return filepath.Join(BucketsDir(sourceDir), strconv.Itoa(bucket))
}

// AnalysisFile returns the per-frame identity record file for a source.
func AnalysisFile(sourceDir string) string {
	return filepath.Join(sourceDir, analysisFileName)
}

// AudioFile returns the source's full audio track.
func AudioFile(sourceDir string) string {
	return filepath.Join(sourceDir, audioFileName)
}

// BucketAudioFile returns the trimmed audio snippet for one bucket.
func BucketAudioFile(sourceDir string, bucket int) string {
	return filepath.Join(BucketDir(sourceDir, bucket), audioFileName)
}

// BucketVideoFile returns the rendered clip for one bucket.
func BucketVideoFile(sourceDir string, bucket int) string {
	return filepath.Join(BucketDir(sourceDir, bucket), videoFileName)
}

// SourceVideoFile returns the assembled per-source video.
func SourceVideoFile(sourceDir string) string {
	return filepath.Join(BucketsDir(sourceDir), videoFileName)
}

// SourceManifestFile returns the bucket concatenation manifest for a source.
func SourceManifestFile(sourceDir string) string {
	return filepath.Join(BucketsDir(sourceDir), manifestFileName)
}

// LibraryVideoFile returns the final cross-source video at the library root.
func LibraryVideoFile(root string) string {
	return filepath.Join(root, videoFileName)
}

// LibraryManifestFile returns the cross-source concatenation manifest.
func LibraryManifestFile(root string) string {
	return filepath.Join(root, manifestFileName)
}

// LockFile returns the run lock path guarding a library against concurrent
// adjust/compile runs.
func LockFile(root string) string {
	return filepath.Join(root, ".facereel.lock")
}

// Sources lists the source directories under the library root in
// lexicographic id order. Non-directories are ignored.
func Sources(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read library %q: %w", root, err)
	}
	sources := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			sources = append(sources, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(sources)
	return sources, nil
}

// SourceID returns the source's video id, the base name of its directory.
func SourceID(sourceDir string) string {
	return filepath.Base(filepath.Clean(sourceDir))
}
