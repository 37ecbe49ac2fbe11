package ffmpeg

import "strconv"

// Even-dimension pad filter. libx264 with yuv420p rejects odd dimensions, so
// every mux pads up to the next even width/height.
const padFilter = "pad=ceil(iw/2)*2:ceil(ih/2)*2"

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 6, 64)
}

// trimAudioArgs cuts [startSec, endSec] out of an audio file with a stream
// copy.
func trimAudioArgs(input string, startSec, endSec float64, output string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-i", input,
		"-ss", formatSeconds(startSec),
		"-to", formatSeconds(endSec),
		"-c", "copy",
		output,
	}
}

// muxSequenceArgs renders a numbered image sequence plus an audio track into
// one clip at the given frame rate, truncated to the shorter stream.
func muxSequenceArgs(pattern, audio string, fps int, output string) []string {
	rate := strconv.Itoa(fps)
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-r", rate,
		"-i", pattern,
		"-i", audio,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-vf", padFilter,
		"-pix_fmt", "yuv420p",
		"-crf", "23",
		"-r", rate,
		"-shortest",
		output,
	}
}

// concatArgs losslessly concatenates the clips listed in a manifest file.
func concatArgs(manifest, output string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		output,
	}
}
