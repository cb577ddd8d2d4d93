package model

// PlaybackState represents the playback status of a media element
type PlaybackState string

const (
	// PlaybackAwaitingLoad means the media content has not finished loading
	PlaybackAwaitingLoad PlaybackState = "AwaitingLoad"

	// PlaybackReady means the content is loaded and playback has not started
	PlaybackReady PlaybackState = "Ready"

	// PlaybackPlaying means the content is playing
	PlaybackPlaying PlaybackState = "Playing"

	// PlaybackPaused means playback was paused by the user
	PlaybackPaused PlaybackState = "Paused"

	// PlaybackEnded means the content played to its end
	PlaybackEnded PlaybackState = "Ended"
)

// String returns the string representation of PlaybackState
func (ps PlaybackState) String() string {
	return string(ps)
}

// IsLoaded returns true once the content finished loading
func (ps PlaybackState) IsLoaded() bool {
	return ps != PlaybackAwaitingLoad && ps != ""
}

// CanPlay returns true if a play request is accepted in this state
func (ps PlaybackState) CanPlay() bool {
	return ps == PlaybackReady || ps == PlaybackPaused || ps == PlaybackEnded
}

// CanPause returns true if a pause request is accepted in this state
func (ps PlaybackState) CanPause() bool {
	return ps == PlaybackPlaying
}
