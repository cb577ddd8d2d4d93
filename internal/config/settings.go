package config

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage      = "app_language"
	KeyDefaultVolume = "default_volume"
	KeyTickInterval  = "tick_interval_ms"
	KeyLastUnitFile  = "last_unit_file"
	KeyMaxParallel   = "max_parallel_downloads"
)

// Default values
const (
	DefaultLanguage     = "system"
	DefaultVolume       = 0.2
	DefaultTickInterval = 250
	DefaultMaxParallel  = 2
)

// Tick interval bounds in milliseconds
const (
	MinTickInterval = 50
	MaxTickInterval = 2000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"de":     "Deutsch",
		"en":     "English",
	}
}

// GetDefaultVolume returns the unit-wide volume applied to media elements when a unit opens
func (s *Settings) GetDefaultVolume() float64 {
	return s.app.Preferences().FloatWithFallback(KeyDefaultVolume, DefaultVolume)
}

// SetDefaultVolume stores a volume clamped to 0..1
func (s *Settings) SetDefaultVolume(v float64) {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.app.Preferences().SetFloat(KeyDefaultVolume, v)
}

// GetTickInterval returns how often playback progress is reported
func (s *Settings) GetTickInterval() time.Duration {
	ms := s.app.Preferences().IntWithFallback(KeyTickInterval, DefaultTickInterval)
	return time.Duration(clampInterval(ms)) * time.Millisecond
}

// SetTickInterval sets the progress interval in milliseconds
func (s *Settings) SetTickInterval(ms int) {
	s.app.Preferences().SetInt(KeyTickInterval, clampInterval(ms))
}

// GetLastUnitFile returns the most recently opened unit file
func (s *Settings) GetLastUnitFile() string {
	return s.app.Preferences().String(KeyLastUnitFile)
}

// SetLastUnitFile remembers the unit file for the next start
func (s *Settings) SetLastUnitFile(path string) {
	s.app.Preferences().SetString(KeyLastUnitFile, path)
}

func clampInterval(ms int) int {
	if ms < MinTickInterval {
		return MinTickInterval
	}
	if ms > MaxTickInterval {
		return MaxTickInterval
	}
	return ms
}

// GetMaxParallelDownloads returns how many remote media sources are fetched at once
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}
