package media

// Package media plays the content of media elements through the system speaker
// (github.com/faiface/beep) and reports load, progress and end back to the
// surface that owns the player.
