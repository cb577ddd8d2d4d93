package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestResolveSource_Relative(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tempDir, "media"), 0755); err != nil {
		t.Fatal(err)
	}
	expected := filepath.Join(tempDir, "media", "intro.wav")
	touch(t, expected)

	got, err := ResolveSource(tempDir, "media/intro.wav")
	if err != nil {
		t.Fatalf("ResolveSource failed: %v", err)
	}
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestResolveSource_Absolute(t *testing.T) {
	tempDir := t.TempDir()
	expected := filepath.Join(tempDir, "intro.wav")
	touch(t, expected)

	got, err := ResolveSource("/elsewhere", expected)
	if err != nil {
		t.Fatalf("ResolveSource failed: %v", err)
	}
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestResolveSource_SimilarFileName(t *testing.T) {
	tempDir := t.TempDir()
	actual := filepath.Join(tempDir, "Listening_Task-1.WAV")
	touch(t, actual)
	touch(t, filepath.Join(tempDir, "listening task 1.txt"))

	got, err := ResolveSource(tempDir, "listening task 1.wav")
	if err != nil {
		t.Fatalf("ResolveSource failed: %v", err)
	}
	if got != actual {
		t.Errorf("Expected similar file %s, got %s", actual, got)
	}
}

func TestResolveSource_NotFound(t *testing.T) {
	tempDir := t.TempDir()
	touch(t, filepath.Join(tempDir, "completely_different_recording.wav"))

	if _, err := ResolveSource(tempDir, "intro.wav"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestResolveSource_Invalid(t *testing.T) {
	if _, err := ResolveSource("", ""); err == nil {
		t.Error("Expected error for empty source")
	}
	_, err := ResolveSource("", "https://example.com/a.wav")
	if !errors.Is(err, ErrRemoteSource) {
		t.Errorf("Expected ErrRemoteSource, got %v", err)
	}
}

func TestIsSimilarFileName(t *testing.T) {
	tests := []struct {
		name1, name2 string
		expected     bool
	}{
		{"intro", "intro", true},
		{"Intro", "intro", true},
		{"task_1", "task-1", true},
		{"task 1", "task_1", true},
		{"intro", "intro_take2", true},
		{"intro", "a very different recording", false},
		{"", "intro", false},
	}

	for _, tt := range tests {
		if got := isSimilarFileName(tt.name1, tt.name2); got != tt.expected {
			t.Errorf("isSimilarFileName(%q, %q) = %v, expected %v", tt.name1, tt.name2, got, tt.expected)
		}
	}
}

func TestRevealCommand(t *testing.T) {
	path := filepath.Join("/units", "listening.json")

	cmd, err := revealCommand(OSDarwin, path)
	if err != nil {
		t.Fatalf("revealCommand failed: %v", err)
	}
	if got := strings.Join(cmd.Args, " "); got != "open -R "+path {
		t.Errorf("Unexpected macOS command: %s", got)
	}

	cmd, _ = revealCommand(OSLinux, path)
	if cmd.Args[len(cmd.Args)-1] != filepath.Dir(path) {
		t.Errorf("Linux should open the parent directory, got %v", cmd.Args)
	}

	if _, err := revealCommand("plan9", path); err == nil {
		t.Error("Expected error for unsupported OS")
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.json")

	if err := OpenFileInManager(nonExistentFile); err == nil {
		t.Error("Expected error for non-existent file")
	}
}
