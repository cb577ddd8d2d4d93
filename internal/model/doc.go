package model

// Package model defines the unit data exchanged with the surrounding test
// environment (units, pages, elements as nested key-value bags) and the
// playback status of media elements.
