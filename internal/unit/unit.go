package unit

import (
	"errors"
	"fmt"
	"log"

	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/model"
)

var (
	ErrUnknownElementType = errors.New("unknown element type")
	ErrUnknownElement     = errors.New("unknown element")
	ErrUnknownPage        = errors.New("unknown page")
	ErrNotAdjustable      = errors.New("property is not user adjustable")
)

// Page is an assembled page: its own properties and its elements in stable order
type Page struct {
	ID         string
	Properties model.PropertiesValue
	Elements   []element.Element
}

// Unit is an assembled, playable unit
type Unit struct {
	registry   *Registry
	pages      []*Page
	pageIndex  map[string]*Page
	elements   map[string]element.Element
	properties model.PropertiesValue
	tableCells map[string][][]model.PropertiesValue

	target element.RenderTarget
	bus    *Bus
}

// New assembles a unit from data. Elements whose type is not registered are
// reported in the returned error but do not prevent the rest from loading.
func New(data *model.UnitData, registry *Registry, bus *Bus) (*Unit, error) {
	if bus == nil {
		bus = NewBus()
	}
	u := &Unit{
		registry:   registry,
		pageIndex:  make(map[string]*Page),
		elements:   make(map[string]element.Element),
		properties: data.Properties,
		tableCells: make(map[string][][]model.PropertiesValue),
		bus:        bus,
	}

	var errs []error
	for _, pageID := range data.PageIDs() {
		pd := data.Pages[pageID]
		page := &Page{ID: pageID, Properties: pd.Properties}
		for _, elementID := range pd.ElementIDs() {
			ed := pd.Elements[elementID]
			if _, exists := u.elements[elementID]; exists {
				errs = append(errs, fmt.Errorf("duplicate element id %s on page %s", elementID, pageID))
				continue
			}
			el, err := registry.Build(elementID, pageID, ed)
			if err != nil {
				log.Printf("unit: page %s: %v", pageID, err)
				errs = append(errs, err)
				continue
			}
			if len(ed.TableCells) > 0 {
				u.tableCells[elementID] = ed.TableCells
			}
			page.Elements = append(page.Elements, el)
			u.elements[elementID] = el
		}
		u.pages = append(u.pages, page)
		u.pageIndex[pageID] = page
	}
	return u, errors.Join(errs...)
}

// AddElement builds a new element on an existing page under a generated ID
func (u *Unit) AddElement(pageID string, data *model.UnitElementData) (element.Element, error) {
	page, ok := u.pageIndex[pageID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, pageID)
	}
	if data.Properties == nil {
		data.Properties = make(model.PropertiesValue)
	}
	id := NewElementID(data.Properties.String("type"))
	el, err := u.registry.Build(id, pageID, data)
	if err != nil {
		return nil, err
	}
	page.Elements = append(page.Elements, el)
	u.elements[id] = el
	return el, nil
}

// Bus returns the notification bus of the unit
func (u *Unit) Bus() *Bus {
	return u.bus
}

// Pages returns the pages in stable order
func (u *Unit) Pages() []*Page {
	return u.pages
}

// Page returns a page by ID
func (u *Unit) Page(id string) (*Page, bool) {
	p, ok := u.pageIndex[id]
	return p, ok
}

// Element returns an element by ID
func (u *Unit) Element(id string) (element.Element, bool) {
	el, ok := u.elements[id]
	return el, ok
}

// Attach sets the render target used by Draw, Dispatch and SetProperty
func (u *Unit) Attach(target element.RenderTarget) {
	u.target = target
}

// Draw draws every element of every page. Elements whose page has no surface
// are skipped silently and can be drawn by a later call.
func (u *Unit) Draw() error {
	var errs []error
	for _, page := range u.pages {
		if err := u.DrawPage(page.ID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DrawPage draws the elements of one page that are not drawn yet
func (u *Unit) DrawPage(pageID string) error {
	page, ok := u.pageIndex[pageID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, pageID)
	}
	var errs []error
	for _, el := range page.Elements {
		if el.Drawn() {
			continue
		}
		if err := el.Draw(u.target); err != nil {
			errs = append(errs, fmt.Errorf("draw %s: %w", el.ID(), err))
		}
		u.flush(el)
	}
	return errors.Join(errs...)
}

// Dispatch delivers a surface event to an element and applies the result
func (u *Unit) Dispatch(elementID string, ev element.Event) error {
	el, ok := u.elements[elementID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownElement, elementID)
	}
	err := el.HandleEvent(ev)
	u.flush(el)
	return err
}

// Broadcast delivers an event to every element, as done for unit-wide volume changes
func (u *Unit) Broadcast(ev element.Event) error {
	var errs []error
	for _, page := range u.pages {
		for _, el := range page.Elements {
			if err := el.HandleEvent(ev); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", el.ID(), err))
			}
			u.flush(el)
		}
	}
	if ev.Kind == element.EventVolumeChanged {
		u.bus.Publish(element.Notification{Name: element.NotifyNewVolume})
	}
	return errors.Join(errs...)
}

// SetProperty writes a property from its string form, as a property editor does.
// Only user adjustable properties can be written.
func (u *Unit) SetProperty(elementID, name, raw string) error {
	el, ok := u.elements[elementID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownElement, elementID)
	}
	d, err := el.Properties().Descriptor(name)
	if err != nil {
		return err
	}
	if !d.UserAdjustable {
		return fmt.Errorf("%w: %s", ErrNotAdjustable, name)
	}
	err = el.Properties().SetString(name, raw)
	u.flush(el)
	return err
}

// Export serializes the unit back into its stored form
func (u *Unit) Export() *model.UnitData {
	data := model.NewUnitData()
	for k, v := range u.properties {
		data.Properties[k] = v
	}
	for _, page := range u.pages {
		pd := model.NewUnitPageData()
		for k, v := range page.Properties {
			pd.Properties[k] = v
		}
		for _, el := range page.Elements {
			pd.Elements[el.ID()] = &model.UnitElementData{
				Properties: el.Properties().Export(),
				TableCells: u.tableCells[el.ID()],
			}
		}
		data.Pages[page.ID] = pd
	}
	return data
}

func (u *Unit) flush(el element.Element) {
	for _, n := range element.Flush(el.Outbox(), u.target) {
		u.bus.Publish(n)
	}
}
