package transcode

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNeedsTranscode(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"/media/intro.wav", false},
		{"/media/intro.WAV", false},
		{"/media/intro.mp3", true},
		{"intro.ogg", true},
		{"/no/ext/file", true},
	}

	for _, test := range tests {
		if got := NeedsTranscode(test.input); got != test.expected {
			t.Errorf("NeedsTranscode(%s) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestOutputPath(t *testing.T) {
	service := NewService("/cache")

	a := service.OutputPath("/units/media/intro.mp3")
	b := service.OutputPath("/units/media/intro.mp3")
	c := service.OutputPath("/other/intro.mp3")

	if a != b {
		t.Errorf("OutputPath should be stable, got %s and %s", a, b)
	}
	if a == c {
		t.Error("OutputPath should differ for different sources with the same name")
	}
	if filepath.Dir(a) != "/cache" {
		t.Errorf("Expected output in /cache, got %s", a)
	}
	if !strings.HasPrefix(filepath.Base(a), "intro-") || filepath.Ext(a) != OutputExtensionWAV {
		t.Errorf("Unexpected output name %s", a)
	}
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := BuildFFmpegArgs("/input.mp3", "/output.wav.part")

	expectedArgs := []string{
		"-y",
		"-i", "/input.mp3",
		"-vn",
		"-acodec", AudioCodec,
		"-ar", AudioSampleRate,
		"-ac", AudioChannels,
		"-f", OutputFormat,
		"-progress", "pipe:2",
		"-nostats",
		"/output.wav.part",
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}
	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		line     string
		total    float64
		expected float64
		ok       bool
	}{
		{"out_time_us=5000000", 10, 0.5, true},
		{"  out_time_us=20000000", 10, 1.0, true},
		{"out_time_us=abc", 10, 0, false},
		{"frame=12", 10, 0, false},
		{"out_time_us=5000000", 0, 0, false},
	}

	for _, test := range tests {
		got, ok := parseProgress(test.line, test.total)
		if ok != test.ok || got != test.expected {
			t.Errorf("parseProgress(%q, %v) = %v, %v, expected %v, %v", test.line, test.total, got, ok, test.expected, test.ok)
		}
	}
}

func TestPrepare_WavPassThrough(t *testing.T) {
	service := NewService(t.TempDir())

	got, err := service.Prepare(context.Background(), "/does/not/matter.wav")
	if err != nil {
		t.Fatalf("Prepare returned error %v", err)
	}
	if got != "/does/not/matter.wav" {
		t.Errorf("Expected WAV input unchanged, got %s", got)
	}
}

func TestPrepare_NonExistentFile(t *testing.T) {
	service := NewService(t.TempDir())

	_, err := service.Prepare(context.Background(), "/path/to/nonexistent/file.mp3")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestPrepare_Cached(t *testing.T) {
	dir := t.TempDir()
	service := NewService(filepath.Join(dir, "cache"))

	input := filepath.Join(dir, "intro.mp3")
	if err := os.WriteFile(input, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}
	output := service.OutputPath(input)
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(output, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := service.Prepare(context.Background(), input)
	if err != nil {
		t.Fatalf("Prepare returned error %v", err)
	}
	if got != output {
		t.Errorf("Expected cached output %s, got %s", output, got)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	if dir := DefaultCacheDir(); filepath.Base(dir) != "media" {
		t.Errorf("Unexpected cache dir %s", dir)
	}
}
