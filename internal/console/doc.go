package console

// Package console is a headless driver for units. It plays the role of the page
// surface and the media player, so units can be exercised from a terminal.
