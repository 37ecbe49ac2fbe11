package ffmpeg

import (
	"context"
	"errors"
	"slices"
	"testing"

	"facereel/internal/services"
)

type capture struct {
	name string
	args []string
}

func captureClient(err error) (*Client, *capture) {
	captured := &capture{}
	client := New("ffmpeg").WithRunner(func(_ context.Context, name string, args ...string) error {
		captured.name = name
		captured.args = args
		return err
	})
	return client, captured
}

func TestTrimAudioArgs(t *testing.T) {
	client, captured := captureClient(nil)
	err := client.TrimAudio(context.Background(), "/src/audio.mp3", 1.5, 4.25, "/src/buckets/1/audio.mp3")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-i", "/src/audio.mp3",
		"-ss", "1.500000",
		"-to", "4.250000",
		"-c", "copy",
		"/src/buckets/1/audio.mp3",
	}
	if captured.name != "ffmpeg" || !slices.Equal(captured.args, want) {
		t.Fatalf("argv = %v, want %v", captured.args, want)
	}
}

func TestMuxSequenceArgs(t *testing.T) {
	client, captured := captureClient(nil)
	err := client.MuxSequence(context.Background(), "/b/1/%05d.jpg", "/b/1/audio.mp3", 12, "/b/1/video.mp4")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-r", "12",
		"-i", "/b/1/%05d.jpg",
		"-i", "/b/1/audio.mp3",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-pix_fmt", "yuv420p",
		"-crf", "23",
		"-r", "12",
		"-shortest",
		"/b/1/video.mp4",
	}
	if !slices.Equal(captured.args, want) {
		t.Fatalf("argv = %v, want %v", captured.args, want)
	}
}

func TestConcatArgs(t *testing.T) {
	client, captured := captureClient(nil)
	err := client.Concat(context.Background(), "/b/video_list.txt", "/b/video.mp4")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", "/b/video_list.txt",
		"-c", "copy",
		"/b/video.mp4",
	}
	if !slices.Equal(captured.args, want) {
		t.Fatalf("argv = %v, want %v", captured.args, want)
	}
}

func TestExitCodeSurfaced(t *testing.T) {
	client, _ := captureClient(errors.New("exit status 1"))
	err := client.Concat(context.Background(), "list.txt", "out.mp4")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestDefaultBinary(t *testing.T) {
	if New("").Binary() != "ffmpeg" {
		t.Fatal("empty binary should default to ffmpeg")
	}
}
