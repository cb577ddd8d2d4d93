package model

import "testing"

func TestPlaybackState_IsLoaded(t *testing.T) {
	tests := []struct {
		state    PlaybackState
		expected bool
	}{
		{PlaybackAwaitingLoad, false},
		{PlaybackReady, true},
		{PlaybackPlaying, true},
		{PlaybackPaused, true},
		{PlaybackEnded, true},
		{PlaybackState(""), false},
	}

	for _, test := range tests {
		result := test.state.IsLoaded()
		if result != test.expected {
			t.Errorf("PlaybackState(%s).IsLoaded() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestPlaybackState_CanPlay(t *testing.T) {
	tests := []struct {
		state    PlaybackState
		expected bool
	}{
		{PlaybackAwaitingLoad, false},
		{PlaybackReady, true},
		{PlaybackPlaying, false},
		{PlaybackPaused, true},
		{PlaybackEnded, true},
	}

	for _, test := range tests {
		result := test.state.CanPlay()
		if result != test.expected {
			t.Errorf("PlaybackState(%s).CanPlay() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestPlaybackState_CanPause(t *testing.T) {
	tests := []struct {
		state    PlaybackState
		expected bool
	}{
		{PlaybackAwaitingLoad, false},
		{PlaybackReady, false},
		{PlaybackPlaying, true},
		{PlaybackPaused, false},
		{PlaybackEnded, false},
	}

	for _, test := range tests {
		result := test.state.CanPause()
		if result != test.expected {
			t.Errorf("PlaybackState(%s).CanPause() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestPlaybackState_String(t *testing.T) {
	state := PlaybackPlaying
	expected := "Playing"
	result := state.String()

	if result != expected {
		t.Errorf("PlaybackState.String() = %s, expected %s", result, expected)
	}
}
