package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/unit-player/internal/audio"
	"github.com/ytget/unit-player/internal/config"
	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/platform"
	"github.com/ytget/unit-player/internal/unit"
)

// UnitLoader assembles a unit from a file, labelling completed audio with captions
type UnitLoader func(path string, captions audio.Captions) (*unit.Unit, error)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	loader       UnitLoader
	newPlayer    PlayerFactory

	unit   *unit.Unit
	target *Target
	path   string

	tabs         *container.AppTabs
	body         *fyne.Container
	volumeSlider *widget.Slider
	statusLabel  *widget.Label

	// status auto-hide
	statusMutex sync.Mutex
	statusSeq   int
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, loader UnitLoader, newPlayer PlayerFactory) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		loader:       loader,
		newPlayer:    newPlayer,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetOnClosed(ui.closeUnit)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	openBtn := widget.NewButton(IconFolder, ui.onShowOpen)
	openBtn.Importance = widget.LowImportance
	exportBtn := widget.NewButton(IconSave, ui.onShowExport)
	exportBtn.Importance = widget.LowImportance
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.volumeSlider = widget.NewSlider(0, 1)
	ui.volumeSlider.Step = 0.05
	ui.volumeSlider.SetValue(ui.settings.GetDefaultVolume())
	ui.volumeSlider.OnChangeEnded = ui.onVolumeChanged

	volumeBox := container.NewBorder(nil, nil, widget.NewLabel(IconVolume), nil, ui.volumeSlider)
	topPanel := container.NewBorder(nil, nil, container.NewHBox(openBtn, exportBtn, settingsBtn), nil, volumeBox)

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Hide()

	ui.body = container.NewStack(widget.NewLabel(IconMusic + " " + ui.localization.GetText(KeyNoUnit)))

	ui.window.SetContent(container.NewBorder(topPanel, ui.statusLabel, nil, nil, ui.body))
}

// createMenu builds the main menu
func (ui *RootUI) createMenu() {
	fileMenu := fyne.NewMenu(ui.localization.GetText(KeyFile),
		fyne.NewMenuItem(ui.localization.GetText(KeyOpen), ui.onShowOpen),
		fyne.NewMenuItem(ui.localization.GetText(KeyExport), ui.onShowExport),
		fyne.NewMenuItem(ui.localization.GetText(KeyRevealUnit), ui.onRevealUnit),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings),
	)

	langItems := []*fyne.MenuItem{}
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItems = append(langItems, fyne.NewMenuItem(name, func() { ui.onLanguageChange(langCode) }))
	}
	langMenu := fyne.NewMenu(IconLanguage+" "+ui.localization.GetText(KeyLanguage), langItems...)

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, langMenu))
}

// onLanguageChange switches language and reloads the unit so captions follow it
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.settings.SetLanguage(langCode)
	ui.localization.SetLanguage(langCode)
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.createMenu()
	if ui.path != "" {
		if err := ui.Open(ui.path); err != nil {
			ui.showError(KeyErrorLoading, err)
		}
	}
}

// Captions returns the audio captions for the current language
func (ui *RootUI) Captions() audio.Captions {
	return audio.Captions{Completed: ui.localization.GetText(KeyAudioPlayed)}
}

// Open loads the unit stored at path and shows it
func (ui *RootUI) Open(path string) error {
	if ui.loader == nil {
		return fmt.Errorf("no unit loader configured")
	}
	u, err := ui.loader(path, ui.Captions())
	if u == nil {
		return err
	}
	if err != nil {
		// partially loaded units are still shown
		log.Printf("ui: unit %s loaded with errors: %v", path, err)
	}
	ui.path = path
	ui.settings.SetLastUnitFile(path)
	ui.Show(u)
	return nil
}

// Show replaces the current unit with u and draws all of its pages
func (ui *RootUI) Show(u *unit.Unit) {
	ui.closeUnit()

	ui.unit = u
	ui.target = NewTarget(u, ui.newPlayer)
	if ui.path != "" {
		ui.target.BaseDir = filepath.Dir(ui.path)
	}
	u.Bus().Subscribe(element.NotifyAudioStarted, ui.onNotification)
	u.Bus().Subscribe(element.NotifyAudioEnded, ui.onNotification)

	ui.tabs = container.NewAppTabs()
	for i, page := range u.Pages() {
		pv := ui.target.AddPage(page.ID)
		title := fmt.Sprintf("%s %d", ui.localization.GetText(KeyPage), i+1)
		ui.tabs.Append(container.NewTabItem(title, container.NewVScroll(pv.Container)))
	}
	u.Attach(ui.target)
	if err := u.Draw(); err != nil {
		log.Printf("ui: draw unit: %v", err)
	}
	ui.onVolumeChanged(ui.settings.GetDefaultVolume())

	ui.body.Objects = []fyne.CanvasObject{ui.tabs}
	ui.body.Refresh()
}

// Unit returns the unit currently shown
func (ui *RootUI) Unit() *unit.Unit {
	return ui.unit
}

func (ui *RootUI) closeUnit() {
	if ui.target != nil {
		ui.target.Close()
		ui.target = nil
	}
	ui.unit = nil
}

// onVolumeChanged applies a unit-wide volume to every element
func (ui *RootUI) onVolumeChanged(v float64) {
	ui.settings.SetDefaultVolume(v)
	if ui.unit == nil {
		return
	}
	if err := ui.unit.Broadcast(element.Event{Kind: element.EventVolumeChanged, Volume: v}); err != nil {
		log.Printf("ui: broadcast volume: %v", err)
	}
}

func (ui *RootUI) onNotification(n element.Notification) {
	key := KeyAudioStarted
	if n.Name == element.NotifyAudioEnded {
		key = KeyAudioEnded
	}
	ui.showStatus(ui.localization.GetText(key) + MiddleDotSeparator + n.ElementID)
}

// showStatus shows a message in the status bar and hides it after a while
func (ui *RootUI) showStatus(message string) {
	ui.statusMutex.Lock()
	ui.statusSeq++
	seq := ui.statusSeq
	ui.statusMutex.Unlock()

	ui.statusLabel.SetText(message)
	ui.statusLabel.Show()

	time.AfterFunc(StatusAutoHide, func() {
		ui.statusMutex.Lock()
		current := ui.statusSeq == seq
		ui.statusMutex.Unlock()
		if current {
			fyne.Do(ui.statusLabel.Hide)
		}
	})
}

func (ui *RootUI) showError(key string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(key), err), ui.window)
}

// onShowOpen lets the user pick a unit file
func (ui *RootUI) onShowOpen() {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		if err := ui.Open(path); err != nil {
			ui.showError(KeyErrorLoading, err)
		}
	}, ui.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	open.Show()
}

// onShowExport writes the current unit state to a file
func (ui *RootUI) onShowExport() {
	if ui.unit == nil {
		return
	}
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		if err := ui.export(w); err != nil {
			ui.showError(KeyErrorExporting, err)
			return
		}
		ui.showStatus(ui.localization.GetText(KeyUnitExported))
	}, ui.window)
}

func (ui *RootUI) export(w fyne.URIWriteCloser) error {
	data, err := ui.unit.Export().Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// onRevealUnit shows the open unit file in the file manager
func (ui *RootUI) onRevealUnit() {
	if ui.path == "" {
		return
	}
	if err := platform.OpenFileInManager(ui.path); err != nil {
		ui.showError(KeyErrorRevealing, err)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.volumeSlider.SetValue(ui.settings.GetDefaultVolume())
	ui.onVolumeChanged(ui.settings.GetDefaultVolume())
	ui.onLanguageChange(ui.settings.GetLanguage())
}
