package media

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

func writeFixture(t *testing.T, seconds, rate int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, rate, 16, 1, 1)
	data := make([]int, seconds*rate)
	for i := range data {
		data[i] = int(8000 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	return path
}

func TestProbe(t *testing.T) {
	path := writeFixture(t, 2, 8000)
	got, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if math.Abs(got-2) > 0.01 {
		t.Errorf("Probe() = %v, expected 2", got)
	}
}

func TestProbe_NotWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.wav")
	if err := os.WriteFile(path, []byte("not a riff file at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Probe() error = %v, expected ErrUnsupportedFormat", err)
	}
}

func TestProbe_Missing(t *testing.T) {
	if _, err := Probe(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("Probe() expected error for missing file")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	p := NewSpeakerPlayer(0, Callbacks{})
	if err := p.Load("clip.mp3"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, expected ErrUnsupportedFormat", err)
	}
	if p.interval != DefaultTickInterval {
		t.Errorf("interval = %v, expected %v", p.interval, DefaultTickInterval)
	}
}

type stubPreparer struct {
	out string
	got string
}

func (s *stubPreparer) Prepare(_ context.Context, src string) (string, error) {
	s.got = src
	return s.out, nil
}

func TestLoad_UsesPreparer(t *testing.T) {
	prep := &stubPreparer{out: filepath.Join(t.TempDir(), "missing.wav")}
	p := NewSpeakerPlayer(0, Callbacks{})
	p.SetPreparer(prep)

	// the prepared file does not exist, so Load fails after preparing
	if err := p.Load("clip.mp3"); err == nil {
		t.Error("Load() expected error for missing prepared file")
	}
	if prep.got != "clip.mp3" {
		t.Errorf("Prepare() got %q, expected clip.mp3", prep.got)
	}
}

func TestChain(t *testing.T) {
	first := &stubPreparer{out: "fetched.mp3"}
	second := &stubPreparer{out: "decoded.wav"}

	got, err := Chain{first, second}.Prepare(context.Background(), "https://x/a.mp3")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if got != "decoded.wav" || second.got != "fetched.mp3" {
		t.Errorf("Prepare() = %q, second got %q", got, second.got)
	}
}

func TestGain(t *testing.T) {
	tests := []struct {
		level    float64
		expected float64
	}{
		{1, 0},
		{2, 0},
		{0.5, -1},
		{0.25, -2},
	}
	for _, tt := range tests {
		if got := Gain(tt.level); got != tt.expected {
			t.Errorf("Gain(%v) = %v, expected %v", tt.level, got, tt.expected)
		}
	}
}

func TestIdlePlayerControls(t *testing.T) {
	p := NewSpeakerPlayer(DefaultTickInterval, Callbacks{})
	p.Play()
	p.Pause()
	p.SetVolume(0.3)
	if p.level != 0.3 {
		t.Errorf("level = %v, expected 0.3", p.level)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

// silence is an endless stream standing in for a decoded source
type silence struct {
	closed bool
}

func (s *silence) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (s *silence) Err() error { return nil }

func (s *silence) Len() int { return 0 }

func (s *silence) Position() int { return 0 }

func (s *silence) Seek(int) error { return nil }

func (s *silence) Close() error {
	s.closed = true
	return nil
}

func TestClose_ReleasesStreamer(t *testing.T) {
	p := NewSpeakerPlayer(DefaultTickInterval, Callbacks{})
	stream := &silence{}
	ctrl := &beep.Ctrl{Streamer: stream}
	p.stream = stream
	p.ctrl = ctrl
	p.volume = &effects.Volume{Streamer: ctrl, Base: 2}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !stream.closed {
		t.Error("Source should be closed")
	}
	buf := make([][2]float64, 16)
	if _, ok := ctrl.Stream(buf); ok {
		t.Error("A closed player should end its sequence in the mixer")
	}
}

func TestFinished_IgnoresReplacedSource(t *testing.T) {
	ended := 0
	p := NewSpeakerPlayer(DefaultTickInterval, Callbacks{OnEnded: func() { ended++ }})
	old := &beep.Ctrl{}
	p.ctrl = &beep.Ctrl{}

	p.finished(old)
	if ended != 0 || p.ended {
		t.Errorf("Ended callbacks = %d, expected none for a replaced source", ended)
	}
	p.finished(p.ctrl)
	if ended != 1 || !p.ended {
		t.Errorf("Ended callbacks = %d, expected 1", ended)
	}
}
