package ui

import (
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/ytget/unit-player/internal/audio"
	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/media"
)

// Dispatcher receives surface events for elements
type Dispatcher interface {
	Dispatch(elementID string, ev element.Event) error
}

// PlayerFactory creates the media player backing one audio view
type PlayerFactory func(cb media.Callbacks) media.Player

// elementView is the widget side of one drawn element
type elementView interface {
	fyne.CanvasObject
	Apply(cmd element.Command)
	Close()
}

// Target renders units into Fyne containers, one per page
type Target struct {
	dispatcher Dispatcher
	newPlayer  PlayerFactory
	mobile     *MobileUI

	// BaseDir resolves relative media sources, usually the directory of the unit file
	BaseDir string

	// spawn runs blocking work off the UI goroutine; post returns to it
	spawn func(func())
	post  func(func())

	mu    sync.Mutex
	pages map[string]*PageView
	order []string
}

// NewTarget creates a render target dispatching surface events to d
func NewTarget(d Dispatcher, newPlayer PlayerFactory) *Target {
	return &Target{
		dispatcher: d,
		newPlayer:  newPlayer,
		mobile:     NewMobileUI(),
		spawn:      func(f func()) { go f() },
		post:       fyne.Do,
		pages:      make(map[string]*PageView),
	}
}

// AddPage attaches a page surface; elements of the page can be drawn afterwards
func (t *Target) AddPage(pageID string) *PageView {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pv, ok := t.pages[pageID]; ok {
		return pv
	}
	pv := &PageView{
		ID:        pageID,
		Container: container.NewVBox(),
		target:    t,
		views:     make(map[string]elementView),
	}
	t.pages[pageID] = pv
	t.order = append(t.order, pageID)
	return pv
}

// Surface implements element.RenderTarget
func (t *Target) Surface(pageID string) (element.Surface, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pv, ok := t.pages[pageID]
	if !ok {
		return nil, false
	}
	return pv, true
}

// Pages returns the attached pages in attach order
func (t *Target) Pages() []*PageView {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*PageView, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.pages[id])
	}
	return out
}

// Close releases every media player
func (t *Target) Close() {
	for _, pv := range t.Pages() {
		pv.close()
	}
}

func (t *Target) dispatch(elementID string, ev element.Event) {
	if t.dispatcher == nil {
		return
	}
	if err := t.dispatcher.Dispatch(elementID, ev); err != nil {
		log.Printf("ui: dispatch %s to %s: %v", ev.Kind, elementID, err)
	}
}

// PageView is the surface of one page
type PageView struct {
	ID        string
	Container *fyne.Container

	target *Target
	views  map[string]elementView
}

// Apply implements element.Surface
func (p *PageView) Apply(cmd element.Command) {
	if cmd.Op == element.OpCreate {
		p.create(cmd)
		return
	}
	v, ok := p.views[cmd.Element]
	if !ok {
		log.Printf("ui: %s: command %s for unknown element %s", p.ID, cmd.Op, cmd.Element)
		return
	}
	v.Apply(cmd)
}

// View returns the widget of a drawn element
func (p *PageView) View(elementID string) (fyne.CanvasObject, bool) {
	v, ok := p.views[elementID]
	return v, ok
}

func (p *PageView) create(cmd element.Command) {
	if _, exists := p.views[cmd.Element]; exists {
		log.Printf("ui: %s: element %s already created", p.ID, cmd.Element)
		return
	}
	var v elementView
	switch cmd.Text {
	case audio.Type:
		v = newAudioView(p.target, cmd.Element)
	default:
		log.Printf("ui: %s: no view for element type %q", p.ID, cmd.Text)
		return
	}
	p.views[cmd.Element] = v
	p.Container.Add(v)
}

func (p *PageView) close() {
	for _, v := range p.views {
		v.Close()
	}
}
