package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconFolder   = "📁"
	IconSave     = "💾"
	IconVolume   = "🔊"
	IconMusic    = "🎵"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Natural size of an audio player before an explicit size is applied
const (
	AudioNaturalWidth  float32 = 300
	AudioNaturalHeight float32 = 54
)

// Layout sizing
const (
	LocationLabelWidth float32 = 110

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Status bar behavior
const (
	StatusAutoHide = 5 * time.Second
)
