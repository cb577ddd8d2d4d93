package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyFile            = "file"
	KeyOpen            = "open"
	KeyExport          = "export"
	KeySettings        = "settings"
	KeyLanguage        = "language"
	KeyVolume          = "volume"
	KeyDefaultVolume   = "default_volume"
	KeyTickInterval    = "tick_interval"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeySettingsSaved   = "settings_saved"
	KeyPage            = "page"
	KeyNoUnit          = "no_unit"
	KeyErrorLoading    = "error_loading"
	KeyErrorExporting  = "error_exporting"
	KeyUnitExported    = "unit_exported"
	KeyAudioPlayed     = "audio_played"
	KeyAudioStarted    = "audio_started"
	KeyAudioEnded      = "audio_ended"
	KeyInterfaceGroup  = "interface_group"
	KeyPlaybackGroup   = "playback_group"
	KeyTickPlaceholder = "tick_placeholder"
	KeyRevealUnit      = "reveal_unit"
	KeyErrorRevealing  = "error_revealing"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "de",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Units are authored in German
		lang = "de"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to German
	if texts, exists := l.texts["de"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"de": "Deutsch",
		"en": "English",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// German texts
	l.texts["de"] = map[string]string{
		KeyAppTitle:        "Unit Player",
		KeyFile:            "Datei",
		KeyOpen:            "Öffnen",
		KeyExport:          "Exportieren",
		KeySettings:        "Einstellungen",
		KeyLanguage:        "Sprache",
		KeyVolume:          "Lautstärke",
		KeyDefaultVolume:   "Standard-Lautstärke",
		KeyTickInterval:    "Aktualisierungsintervall (ms)",
		KeySave:            "Speichern",
		KeyCancel:          "Abbrechen",
		KeySettingsSaved:   "Einstellungen gespeichert!",
		KeyPage:            "Seite",
		KeyNoUnit:          "Keine Unit geladen",
		KeyErrorLoading:    "Fehler beim Laden der Unit",
		KeyErrorExporting:  "Fehler beim Exportieren der Unit",
		KeyUnitExported:    "Unit exportiert",
		KeyAudioPlayed:     "Audio wurde gespielt.",
		KeyAudioStarted:    "Audio gestartet",
		KeyAudioEnded:      "Audio beendet",
		KeyInterfaceGroup:  "Oberfläche",
		KeyPlaybackGroup:   "Wiedergabe",
		KeyTickPlaceholder: "50-2000",
		KeyRevealUnit:      "Im Dateimanager zeigen",
		KeyErrorRevealing:  "Fehler beim Öffnen des Dateimanagers",
	}

	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "Unit Player",
		KeyFile:            "File",
		KeyOpen:            "Open",
		KeyExport:          "Export",
		KeySettings:        "Settings",
		KeyLanguage:        "Language",
		KeyVolume:          "Volume",
		KeyDefaultVolume:   "Default Volume",
		KeyTickInterval:    "Progress Interval (ms)",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyPage:            "Page",
		KeyNoUnit:          "No unit loaded",
		KeyErrorLoading:    "Error loading unit",
		KeyErrorExporting:  "Error exporting unit",
		KeyUnitExported:    "Unit exported",
		KeyAudioPlayed:     "Audio has been played.",
		KeyAudioStarted:    "Audio started",
		KeyAudioEnded:      "Audio ended",
		KeyInterfaceGroup:  "Interface",
		KeyPlaybackGroup:   "Playback",
		KeyTickPlaceholder: "50-2000",
		KeyRevealUnit:      "Show in File Manager",
		KeyErrorRevealing:  "Error opening file manager",
	}
}
