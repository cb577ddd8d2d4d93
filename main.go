package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/unit-player/internal/audio"
	"github.com/ytget/unit-player/internal/config"
	"github.com/ytget/unit-player/internal/download"
	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/media"
	"github.com/ytget/unit-player/internal/model"
	"github.com/ytget/unit-player/internal/transcode"
	"github.com/ytget/unit-player/internal/ui"
	"github.com/ytget/unit-player/internal/unit"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.unit-player"
	AppName = "Unit Player"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	fmt.Printf("Unit Player v%s starting...\n", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewPlayerTheme())
	if icon, err := ui.LoadLogoResource(); err == nil {
		myApp.SetIcon(icon)
	}

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	cacheDir := transcode.DefaultCacheDir()
	downloader := download.NewService(filepath.Join(cacheDir, "remote"), settings.GetMaxParallelDownloads())
	transcoder := transcode.NewService(cacheDir)
	transcoder.SetProgressCallback(func(input string, progress float64) {
		log.Printf("transcode: %s %d%%", input, int(progress*100))
	})
	prepare := media.Chain{downloader, transcoder}

	newPlayer := func(cb media.Callbacks) media.Player {
		p := media.NewSpeakerPlayer(settings.GetTickInterval(), cb)
		p.SetPreparer(prepare)
		return p
	}

	root := ui.NewRootUI(myWindow, myApp, loadUnit, newPlayer)

	path := settings.GetLastUnitFile()
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path != "" {
		if err := root.Open(path); err != nil {
			log.Printf("failed to open unit %s: %v", path, err)
		}
	}

	myWindow.ShowAndRun()
}

// loadUnit assembles a unit file with the element types this player supports
func loadUnit(path string, captions audio.Captions) (*unit.Unit, error) {
	data, err := model.LoadUnitData(path)
	if err != nil {
		return nil, err
	}
	registry := unit.NewRegistry()
	if err := registry.Register(audio.Type, audio.FromData(audio.WithCaptions(captions))); err != nil {
		return nil, err
	}
	bus := unit.NewBus()
	bus.SubscribeAll(func(n element.Notification) {
		log.Printf("unit: %s %s", n.Name, n.ElementID)
	})
	return unit.New(data, registry, bus)
}
