package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/unit-player/internal/audio"
	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/media"
	"github.com/ytget/unit-player/internal/platform"
)

// audioView is the player widget of one audio element
type audioView struct {
	*fyne.Container

	target    *Target
	elementID string

	spacer   *canvas.Rectangle
	controls *fyne.Container
	playBtn  *widget.Button
	pauseBtn *widget.Button
	meter    *widget.ProgressBar
	location *widget.Label

	player media.Player
	src    string
	volume float64
}

func newAudioView(t *Target, elementID string) *audioView {
	v := &audioView{
		target:    t,
		elementID: elementID,
		volume:    audio.DefaultVolume,
	}

	v.playBtn = widget.NewButton(IconPlay, v.onPlay)
	v.pauseBtn = widget.NewButton(IconPause, v.onPause)
	v.playBtn.Importance = widget.HighImportance

	v.meter = widget.NewProgressBar()
	v.meter.TextFormatter = func() string { return "" }

	v.location = widget.NewLabel(DashPlaceholder)
	v.location.Alignment = fyne.TextAlignTrailing

	locationBox := container.NewGridWrap(fyne.NewSize(LocationLabelWidth, v.location.MinSize().Height), v.location)
	v.controls = container.NewBorder(nil, nil, t.mobile.TransportBox(v.playBtn, v.pauseBtn), locationBox, v.meter)

	v.spacer = canvas.NewRectangle(color.Transparent)
	v.spacer.SetMinSize(fyne.NewSize(AudioNaturalWidth, AudioNaturalHeight))
	v.Container = container.NewStack(v.spacer, v.controls)
	return v
}

// Apply implements elementView
func (v *audioView) Apply(cmd element.Command) {
	switch cmd.Part {
	case "":
		if cmd.Op == element.OpSetSize {
			v.resize(cmd.Number, cmd.Max)
		}
	case audio.PartMedia:
		v.applyMedia(cmd)
	case audio.PartControls:
		setVisible(v.controls, cmd.Flag)
	case audio.PartPlay:
		setVisible(v.playBtn, cmd.Flag)
	case audio.PartPause:
		setVisible(v.pauseBtn, cmd.Flag)
	case audio.PartMeter:
		if cmd.Op == element.OpSetRange {
			v.meter.Max = cmd.Max
			v.meter.SetValue(cmd.Number)
		}
	case audio.PartText:
		if cmd.Op == element.OpSetText {
			v.location.SetText(cmd.Text)
		}
	default:
		log.Printf("ui: %s: unknown part %q", v.elementID, cmd.Part)
	}
}

func (v *audioView) applyMedia(cmd element.Command) {
	switch cmd.Op {
	case element.OpSetSource:
		v.load(cmd.Text)
	case element.OpPlay:
		if v.player != nil {
			v.player.Play()
		}
	case element.OpPause:
		if v.player != nil {
			v.player.Pause()
		}
	case element.OpSetVolume:
		v.volume = cmd.Number
		if v.player != nil {
			v.player.SetVolume(cmd.Number)
		}
	}
}

// resize applies an explicit size; unset dimensions keep the natural size
func (v *audioView) resize(width, height float64) {
	size := fyne.NewSize(AudioNaturalWidth, AudioNaturalHeight)
	if width >= 0 {
		size.Width = float32(width)
	}
	if height >= 0 {
		size.Height = float32(height)
	}
	v.spacer.SetMinSize(size)
	v.Container.Refresh()
}

func (v *audioView) load(src string) {
	if v.target.newPlayer == nil || src == "" {
		return
	}
	if v.player != nil {
		v.player.Close()
	}
	v.src = src
	v.player = v.target.newPlayer(media.Callbacks{
		OnLoaded: func(d float64) { v.target.post(func() { v.onLoaded(d) }) },
		OnTime:   func(c, d float64) { v.target.post(func() { v.onTime(c, d) }) },
		OnEnded:  func() { v.target.post(v.onEnded) },
	})
	v.player.SetVolume(v.volume)

	path, err := platform.ResolveSource(v.target.BaseDir, src)
	if err != nil {
		log.Printf("ui: %s: %v", v.elementID, err)
		path = src
	}

	player := v.player
	v.target.spawn(func() {
		if err := player.Load(path); err != nil {
			log.Printf("ui: %s: failed to load %s: %v", v.elementID, path, err)
		}
	})
}

func (v *audioView) onLoaded(duration float64) {
	v.target.dispatch(v.elementID, element.Event{
		Kind:     element.EventContentLoaded,
		Duration: duration,
		Size:     element.Size{Width: float64(AudioNaturalWidth), Height: float64(AudioNaturalHeight)},
	})
}

func (v *audioView) onTime(current, duration float64) {
	v.target.dispatch(v.elementID, element.Event{
		Kind:        element.EventTimeAdvanced,
		CurrentTime: current,
		Duration:    duration,
	})
}

func (v *audioView) onEnded() {
	v.target.dispatch(v.elementID, element.Event{Kind: element.EventContentEnded})
}

func (v *audioView) onPlay() {
	v.target.dispatch(v.elementID, element.Event{Kind: element.EventUserPlay})
}

func (v *audioView) onPause() {
	v.target.dispatch(v.elementID, element.Event{Kind: element.EventUserPause})
}

// Close implements elementView
func (v *audioView) Close() {
	if v.player == nil {
		return
	}
	if err := v.player.Close(); err != nil {
		log.Printf("ui: %s: close player: %v", v.elementID, err)
	}
	v.player = nil
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}
