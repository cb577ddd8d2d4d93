package audio

import (
	"fmt"
	"log"
	"math"

	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/model"
	"github.com/ytget/unit-player/internal/property"
)

// Type is the element type name of audio elements in unit data
const Type = "audio"

// Surface parts of an audio element
const (
	PartMedia    = "audio"
	PartControls = "audio_controls"
	PartPlay     = "audio_btnPlay"
	PartPause    = "audio_btnPause"
	PartMeter    = "audio_visualLocation"
	PartText     = "audio_textLocation"
)

// Completed readout range
const (
	CompletedMax   = 100
	CompletedValue = 100
)

// DefaultVolume is the initial playback volume
const DefaultVolume = 0.2

// Captions holds the texts an audio element writes to its surface
type Captions struct {
	Completed string
}

// DefaultCaptions are used when no localization is supplied
var DefaultCaptions = Captions{
	Completed: "Audio wurde gespielt.",
}

// PlayGuard decides whether a play request may start playback.
// It is the enforcement point for playOnlyOnce.
type PlayGuard func(a *Element) bool

// OnceGuard refuses to play again once the audio completed, if playOnlyOnce is set
func OnceGuard(a *Element) bool {
	return !(a.Flag("playOnlyOnce") && a.Flag("alreadyPlayed"))
}

// Option configures an audio element
type Option func(*Element)

// WithCaptions sets the surface texts
func WithCaptions(c Captions) Option {
	return func(a *Element) {
		a.captions = c
	}
}

// WithPlayGuard installs a guard consulted before every playback start
func WithPlayGuard(g PlayGuard) Option {
	return func(a *Element) {
		a.guard = g
	}
}

// Element is an audio player element
type Element struct {
	*element.Base

	state    model.PlaybackState
	position float64
	duration float64

	captions Captions
	guard    PlayGuard
}

// Manifest returns the property set of an audio element playing src
func Manifest(src string) property.Manifest {
	return property.Compose(
		property.Manifest{
			{Name: "type", Value: property.Text(Type), Caption: "Type", Tooltip: "Was für ein Element dieses Element ist."},
			{Name: "src", Value: property.Text(src), Hidden: true, Caption: "Source"},
			{Name: "autoplay", Value: property.Bool(false), UserAdjustable: true, Caption: "Autoplay", Tooltip: "Soll das Audio automatisch gespielt werden?"},
			{Name: "hasControl", Value: property.Bool(true), UserAdjustable: true, Caption: "Steuerung", Tooltip: "Ob jemand das Audio-Element steuern kann"},
			{Name: "playOnlyOnce", Value: property.Bool(true), UserAdjustable: true, Caption: "Nur einmal gespielt"},
			{Name: "alreadyPlayed", Value: property.Bool(false), Hidden: true, Caption: "alreadyPlayed"},
			{Name: "defaultVolume", Value: property.Number(DefaultVolume), UserAdjustable: true, Caption: "Standardlautstärke", Tooltip: "Die Standardlautstärke des Audios"},
		},
		property.Dimensions(),
	)
}

// New creates an audio element on page pageID
func New(id, pageID, src string, opts ...Option) (*Element, error) {
	base, err := element.NewBase(id, pageID, Type, Manifest(src))
	if err != nil {
		return nil, err
	}
	a := &Element{
		Base:     base,
		state:    model.PlaybackAwaitingLoad,
		captions: DefaultCaptions,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Bind("autoplay", "audioRenderer", func(property.Value) {
		// autoplay is evaluated when the content has loaded
	})
	a.Bind("hasControl", "audioRenderer", a.renderControls)
	a.Bind("playOnlyOnce", "audioRenderer", func(property.Value) {
		// enforced by the PlayGuard, if any
	})
	a.Bind("alreadyPlayed", "audioRenderer", a.renderAlreadyPlayed)
	a.Bind("defaultVolume", "audioRenderer", a.renderVolume)
	return a, nil
}

// FromData returns a constructor building audio elements from unit data
func FromData(opts ...Option) func(id, pageID string, data *model.UnitElementData) (element.Element, error) {
	return func(id, pageID string, data *model.UnitElementData) (element.Element, error) {
		a, err := New(id, pageID, data.Properties.String("src"), opts...)
		if err != nil {
			return nil, err
		}
		// bad values keep their defaults; the element is still built
		if err := a.Properties().Load(data.Properties); err != nil {
			log.Printf("audio: %s: %v", id, err)
		}
		return a, nil
	}
}

// State returns the playback state
func (a *Element) State() model.PlaybackState {
	return a.state
}

// Position returns the last reported playback position in seconds
func (a *Element) Position() float64 {
	return a.position
}

// Duration returns the content duration in seconds, 0 before load
func (a *Element) Duration() float64 {
	return a.duration
}

// Draw creates the audio player on its page
func (a *Element) Draw(target element.RenderTarget) error {
	if !a.Begin(target) {
		return nil
	}

	src, _ := a.Value("src")
	a.Emit(PartMedia, element.Command{Op: element.OpSetSource, Text: src.Text()})
	a.Emit(PartControls, element.Command{Op: element.OpSetVisible, Flag: false})
	a.Emit(PartPlay, element.Command{Op: element.OpSetVisible, Flag: false})
	a.Emit(PartPause, element.Command{Op: element.OpSetVisible, Flag: false})
	a.Emit(PartMeter, element.Command{Op: element.OpSetRange, Number: 0, Max: 100})

	if err := a.RenderInitial(); err != nil {
		return err
	}
	a.Finish()
	return nil
}

// HandleEvent drives the playback state machine
func (a *Element) HandleEvent(ev element.Event) error {
	switch ev.Kind {
	case element.EventContentLoaded:
		return a.onLoaded(ev)
	case element.EventTimeAdvanced:
		a.position = ev.CurrentTime
		if ev.Duration > 0 {
			a.duration = ev.Duration
		}
		a.showLocation()
	case element.EventContentEnded:
		return a.onEnded()
	case element.EventUserPlay:
		a.play()
	case element.EventUserPause:
		a.pause()
	case element.EventVolumeChanged:
		return a.SetValue("defaultVolume", property.Number(ev.Volume))
	default:
		log.Printf("audio: %s: unhandled event %s", a.ID(), ev.Kind)
	}
	return nil
}

func (a *Element) onLoaded(ev element.Event) error {
	if err := a.ContentLoaded(ev.Size); err != nil {
		return err
	}

	a.state = model.PlaybackReady
	a.duration = ev.Duration
	a.position = 0
	a.showPlayButton(true)

	if a.Flag("alreadyPlayed") {
		a.renderCompleted()
	} else {
		a.Emit(PartMeter, element.Command{Op: element.OpSetRange, Number: 0, Max: a.duration})
	}

	if a.Flag("autoplay") && a.start() {
		a.Notify(element.NotifyAudioStarted)
	}

	a.showLocation()
	return nil
}

func (a *Element) onEnded() error {
	if !a.state.IsLoaded() {
		log.Printf("audio: %s: ended before load, ignored", a.ID())
		return nil
	}
	a.state = model.PlaybackEnded
	a.showPlayButton(true)
	a.Notify(element.NotifyAudioEnded)
	return a.SetValue("alreadyPlayed", property.Bool(true))
}

func (a *Element) play() {
	if !a.state.CanPlay() {
		log.Printf("audio: %s: play ignored in state %s", a.ID(), a.state)
		return
	}
	a.start()
}

// start begins playback if the guard allows it
func (a *Element) start() bool {
	if a.guard != nil && !a.guard(a) {
		log.Printf("audio: %s: playback refused by guard", a.ID())
		return false
	}
	a.state = model.PlaybackPlaying
	a.showPlayButton(false)
	a.Emit(PartMedia, element.Command{Op: element.OpPlay})
	return true
}

func (a *Element) pause() {
	if !a.state.CanPause() {
		log.Printf("audio: %s: pause ignored in state %s", a.ID(), a.state)
		return
	}
	a.state = model.PlaybackPaused
	a.showPlayButton(true)
	a.Emit(PartMedia, element.Command{Op: element.OpPause})
}

// showPlayButton swaps the play and pause affordances
func (a *Element) showPlayButton(play bool) {
	a.Emit(PartPlay, element.Command{Op: element.OpSetVisible, Flag: play})
	a.Emit(PartPause, element.Command{Op: element.OpSetVisible, Flag: !play})
}

// showLocation updates the transport readout; it stays locked once the audio was played
func (a *Element) showLocation() {
	if a.Flag("alreadyPlayed") || a.duration <= 0 {
		return
	}
	a.Emit(PartMeter, element.Command{Op: element.OpSetRange, Number: a.position, Max: a.duration})
	a.Emit(PartText, element.Command{Op: element.OpSetText, Text: FormatPosition(a.position, a.duration)})
}

func (a *Element) renderControls(v property.Value) {
	a.Emit(PartControls, element.Command{Op: element.OpSetVisible, Flag: v.Bool()})
}

func (a *Element) renderAlreadyPlayed(v property.Value) {
	if v.Bool() {
		a.renderCompleted()
	}
}

func (a *Element) renderCompleted() {
	a.Emit(PartMeter, element.Command{Op: element.OpSetRange, Number: CompletedValue, Max: CompletedMax})
	a.Emit(PartText, element.Command{Op: element.OpSetText, Text: a.captions.Completed})
}

func (a *Element) renderVolume(v property.Value) {
	a.Emit(PartMedia, element.Command{Op: element.OpSetVolume, Number: ClampVolume(v.Number())})
}

// ClampVolume limits a volume to 1; negative volumes fall back to full volume
func ClampVolume(v float64) float64 {
	if v > 1 || v < 0 || math.IsNaN(v) {
		return 1
	}
	return v
}

// FormatPosition renders "m:ss / m:ss". Seconds are zero-padded, minutes are not.
func FormatPosition(current, duration float64) string {
	return formatClock(current) + " / " + formatClock(duration)
}

func formatClock(t float64) string {
	minutes := int(math.Floor(t / 60))
	seconds := int(math.Floor(math.Mod(t, 60)))
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
