package ui

// Package ui contains the Fyne-based desktop surface for units. Pages become
// containers, element commands become widget changes and media playback, and
// button taps and player progress are dispatched back to the unit.
// All UI strings are localized via Localization.
