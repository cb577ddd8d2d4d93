package media

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	gowav "github.com/go-audio/wav"
)

// Speaker constants
const (
	SpeakerSampleRate = beep.SampleRate(48000)
	SpeakerBuffer     = 100 * time.Millisecond
	ResampleQuality   = 4
)

// DefaultTickInterval is how often progress is reported while playing
const DefaultTickInterval = 250 * time.Millisecond

var ErrUnsupportedFormat = errors.New("unsupported media format")

// Callbacks receive player events. They may run on player goroutines.
type Callbacks struct {
	OnLoaded func(duration float64)
	OnTime   func(current, duration float64)
	OnEnded  func()
}

// Preparer turns a source the speaker cannot decode into a WAV file
type Preparer interface {
	Prepare(ctx context.Context, src string) (string, error)
}

// Chain runs preparers in order, each receiving the previous result
type Chain []Preparer

// Prepare implements Preparer
func (c Chain) Prepare(ctx context.Context, src string) (string, error) {
	for _, p := range c {
		out, err := p.Prepare(ctx, src)
		if err != nil {
			return "", err
		}
		src = out
	}
	return src, nil
}

// Player controls playback of one media source
type Player interface {
	Load(src string) error
	Play()
	Pause()
	SetVolume(v float64)
	Close() error
}

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SpeakerSampleRate, SpeakerSampleRate.N(SpeakerBuffer))
	})
	return speakerErr
}

// Probe returns the duration of a WAV file in seconds
func Probe(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	d, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to read duration: %w", err)
	}
	return d.Seconds(), nil
}

// SpeakerPlayer plays WAV sources on the system speaker
type SpeakerPlayer struct {
	callbacks Callbacks
	interval  time.Duration
	preparer  Preparer

	mu       sync.Mutex
	stream   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	duration float64
	started  bool
	ended    bool
	cancel   context.CancelFunc
}

// NewSpeakerPlayer creates a player reporting progress every interval
func NewSpeakerPlayer(interval time.Duration, cb Callbacks) *SpeakerPlayer {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &SpeakerPlayer{
		callbacks: cb,
		interval:  interval,
		level:     1,
	}
}

// SetPreparer sets the step turning a source into a local WAV file
func (p *SpeakerPlayer) SetPreparer(prep Preparer) {
	p.preparer = prep
}

// Load decodes src and reports its duration
func (p *SpeakerPlayer) Load(src string) error {
	if p.preparer != nil {
		prepared, err := p.preparer.Prepare(context.Background(), src)
		if err != nil {
			return err
		}
		src = prepared
	}
	if ext := strings.ToLower(filepath.Ext(src)); ext != ".wav" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
	}
	duration, err := Probe(src)
	if err != nil {
		return err
	}
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode %s: %w", src, err)
	}

	p.Close()

	var s beep.Streamer = stream
	if format.SampleRate != SpeakerSampleRate {
		s = beep.Resample(ResampleQuality, format.SampleRate, SpeakerSampleRate, stream)
	}
	ctrl := &beep.Ctrl{Streamer: s, Paused: true}
	vol := &effects.Volume{Streamer: ctrl, Base: 2}

	ctx, cancel := context.WithCancel(context.Background())
	p.mu.Lock()
	applyLevel(vol, p.level)
	p.stream = stream
	p.format = format
	p.ctrl = ctrl
	p.volume = vol
	p.duration = duration
	p.started = false
	p.ended = false
	p.cancel = cancel
	p.mu.Unlock()

	go p.tick(ctx)

	log.Printf("media: loaded %s (%.1fs)", src, duration)
	if p.callbacks.OnLoaded != nil {
		p.callbacks.OnLoaded(duration)
	}
	return nil
}

// Play starts or resumes playback; a finished source restarts from the beginning
func (p *SpeakerPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}

	speaker.Lock()
	if p.ended {
		if err := p.stream.Seek(0); err != nil {
			log.Printf("media: rewind failed: %v", err)
		}
	}
	p.ctrl.Paused = false
	speaker.Unlock()

	if !p.started || p.ended {
		p.started = true
		p.ended = false
		// the callback runs under the speaker lock
		ctrl := p.ctrl
		speaker.Play(beep.Seq(p.volume, beep.Callback(func() { go p.finished(ctrl) })))
	}
}

// Pause halts playback at the current position
func (p *SpeakerPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// SetVolume sets a linear volume between 0 and 1
func (p *SpeakerPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = v
	if p.volume == nil {
		return
	}
	speaker.Lock()
	applyLevel(p.volume, v)
	speaker.Unlock()
}

// Close stops playback and releases the source
func (p *SpeakerPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.stream == nil {
		return nil
	}
	// a nil streamer ends the sequence so the mixer drops it
	speaker.Lock()
	p.ctrl.Paused = true
	p.ctrl.Streamer = nil
	speaker.Unlock()
	err := p.stream.Close()
	p.stream, p.ctrl, p.volume = nil, nil, nil
	return err
}

// finished handles the end of the sequence playing ctrl. Sequences of a closed
// or replaced source are ignored.
func (p *SpeakerPlayer) finished(ctrl *beep.Ctrl) {
	p.mu.Lock()
	if p.ctrl != ctrl {
		p.mu.Unlock()
		return
	}
	p.ended = true
	p.mu.Unlock()
	if p.callbacks.OnEnded != nil {
		p.callbacks.OnEnded()
	}
}

func (p *SpeakerPlayer) tick(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current, duration, playing := p.progress()
			if playing && p.callbacks.OnTime != nil {
				p.callbacks.OnTime(current, duration)
			}
		}
	}
}

func (p *SpeakerPlayer) progress() (float64, float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil || !p.started || p.ended {
		return 0, 0, false
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.stream.Position())
	paused := p.ctrl.Paused
	speaker.Unlock()
	return pos.Seconds(), p.duration, !paused
}

// applyLevel maps a linear level onto the exponential volume effect
func applyLevel(vol *effects.Volume, level float64) {
	if level <= 0 {
		vol.Silent = true
		return
	}
	vol.Silent = false
	vol.Volume = Gain(level)
}

// Gain converts a linear level in (0, 1] to a base-2 exponent
func Gain(level float64) float64 {
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
