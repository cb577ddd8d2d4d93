package audio

// Package audio implements the audio element: its property manifest, its
// renderers and the playback state machine driven by transport events
// (AwaitingLoad, Ready, Playing, Paused, Ended). The durable alreadyPlayed
// flag locks the transport readout to the completed state.
