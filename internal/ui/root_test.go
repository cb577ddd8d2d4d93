package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/unit-player/internal/audio"
	"github.com/ytget/unit-player/internal/unit"
)

func newTestRoot(t *testing.T, pool *playerPool) *RootUI {
	t.Helper()
	app := test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	loader := func(path string, captions audio.Captions) (*unit.Unit, error) {
		if path != "unit.json" {
			return nil, errors.New("not found")
		}
		u, _ := loadTestUnit(t, captions)
		return u, nil
	}
	return NewRootUI(window, app, loader, pool.factory)
}

func TestRootUI_Open(t *testing.T) {
	pool := &playerPool{}
	ui := newTestRoot(t, pool)

	if err := ui.Open("unit.json"); err != nil {
		t.Fatalf("Open returned error %v", err)
	}
	if ui.Unit() == nil {
		t.Fatal("Unit should be set after Open")
	}
	if len(ui.tabs.Items) != 2 {
		t.Errorf("Expected 2 page tabs, got %d", len(ui.tabs.Items))
	}
	if ui.tabs.Items[0].Text != "Seite 1" {
		t.Errorf("Expected tab title %q, got %q", "Seite 1", ui.tabs.Items[0].Text)
	}
	if got := ui.settings.GetLastUnitFile(); got != "unit.json" {
		t.Errorf("Expected last unit file unit.json, got %s", got)
	}
	for _, id := range []string{"audio1", "audio2", "audio3"} {
		el, _ := ui.Unit().Element(id)
		if !el.Drawn() {
			t.Errorf("%s should be drawn", id)
		}
	}
}

func TestRootUI_OpenError(t *testing.T) {
	ui := newTestRoot(t, &playerPool{})

	if err := ui.Open("missing.json"); err == nil {
		t.Error("Open should fail for an unknown unit")
	}
	if ui.Unit() != nil {
		t.Error("Unit should stay empty after a failed Open")
	}
}

func TestRootUI_Volume(t *testing.T) {
	ui := newTestRoot(t, &playerPool{})
	if err := ui.Open("unit.json"); err != nil {
		t.Fatalf("Open returned error %v", err)
	}

	ui.onVolumeChanged(0.5)
	if got := ui.settings.GetDefaultVolume(); got != 0.5 {
		t.Errorf("Expected stored volume 0.5, got %v", got)
	}
	el, _ := ui.Unit().Element("audio2")
	v, err := el.Properties().GetPropertyValue("defaultVolume")
	if err != nil || v.Number() != 0.5 {
		t.Errorf("defaultVolume = %v (%v), expected 0.5", v.Number(), err)
	}
}

func TestRootUI_OpenAppliesSavedVolume(t *testing.T) {
	pool := &playerPool{}
	ui := newTestRoot(t, pool)
	ui.settings.SetDefaultVolume(0.5)

	if err := ui.Open("unit.json"); err != nil {
		t.Fatalf("Open returned error %v", err)
	}
	for _, id := range []string{"audio1", "audio2", "audio3"} {
		el, _ := ui.Unit().Element(id)
		v, _ := el.Properties().GetPropertyValue("defaultVolume")
		if v.Number() != 0.5 {
			t.Errorf("%s defaultVolume = %v, expected 0.5", id, v.Number())
		}
	}
	if len(pool.players) != 3 {
		t.Fatalf("Expected 3 players, got %d", len(pool.players))
	}
	for i, p := range pool.players {
		p.mu.Lock()
		volume := p.volume
		p.mu.Unlock()
		if volume != 0.5 {
			t.Errorf("Player %d volume = %v, expected 0.5", i, volume)
		}
	}
}

func TestRootUI_ReopenClosesPlayers(t *testing.T) {
	pool := &playerPool{}
	ui := newTestRoot(t, pool)
	if err := ui.Open("unit.json"); err != nil {
		t.Fatalf("Open returned error %v", err)
	}
	first := len(pool.players)

	if err := ui.Open("unit.json"); err != nil {
		t.Fatalf("Open returned error %v", err)
	}
	for _, p := range pool.players[:first] {
		p.mu.Lock()
		closed := p.closed
		p.mu.Unlock()
		if !closed {
			t.Error("Players of the previous unit should be closed")
		}
	}
}

func TestRootUI_Captions(t *testing.T) {
	ui := newTestRoot(t, &playerPool{})

	if got := ui.Captions().Completed; got != audio.DefaultCaptions.Completed {
		t.Errorf("Expected German caption %q, got %q", audio.DefaultCaptions.Completed, got)
	}
	ui.localization.SetLanguage("en")
	if got := ui.Captions().Completed; got != "Audio has been played." {
		t.Errorf("Expected English caption, got %q", got)
	}
}
