package element

import (
	"fmt"
	"log"

	"github.com/ytget/unit-player/internal/property"
)

// Element is what the unit orchestrator needs from every element type
type Element interface {
	ID() string
	PageID() string
	Type() string
	Properties() *property.Properties
	Outbox() *Outbox
	// Draw creates the element on its page surface. A missing surface is not an error.
	Draw(target RenderTarget) error
	// HandleEvent reacts to a transport or user event raised by the surface
	HandleEvent(ev Event) error
	Drawn() bool
}

// Base carries the state shared by all element types
type Base struct {
	id     string
	pageID string
	kind   string
	props  *property.Properties
	outbox Outbox

	drawn         bool
	sizingPending bool
}

// NewBase creates the base of an element of kind from its property manifest
func NewBase(id, pageID, kind string, manifest property.Manifest) (*Base, error) {
	props, err := property.New(manifest)
	if err != nil {
		return nil, fmt.Errorf("element %s: %w", id, err)
	}
	b := &Base{
		id:     id,
		pageID: pageID,
		kind:   kind,
		props:  props,
	}
	if props.Has("width") {
		b.Bind("width", "sizeRenderer", b.renderSize)
	}
	if props.Has("height") {
		b.Bind("height", "sizeRenderer", b.renderSize)
	}
	return b, nil
}

// ID returns the element identifier, unique within its page
func (b *Base) ID() string {
	return b.id
}

// PageID returns the identifier of the page surface hosting the element
func (b *Base) PageID() string {
	return b.pageID
}

// Type returns the element type name
func (b *Base) Type() string {
	return b.kind
}

// Properties returns the element's property set
func (b *Base) Properties() *property.Properties {
	return b.props
}

// Outbox returns the queue of pending commands and notifications
func (b *Base) Outbox() *Outbox {
	return &b.outbox
}

// Drawn reports whether the element has been drawn on a surface
func (b *Base) Drawn() bool {
	return b.drawn
}

// SizingPending reports whether the element waits for its content to load before sizing
func (b *Base) SizingPending() bool {
	return b.sizingPending
}

// Bind attaches a renderer to one of the element's own properties. Element types call it
// only for properties of their manifest, so a failure is a programming error.
func (b *Base) Bind(name, label string, fn property.RenderFunc) {
	if err := b.props.AddPropertyRenderer(name, label, fn); err != nil {
		panic(fmt.Sprintf("element %s: %v", b.id, err))
	}
}

// Value returns a property value of the element
func (b *Base) Value(name string) (property.Value, error) {
	return b.props.GetPropertyValue(name)
}

// SetValue writes a property value and renders it
func (b *Base) SetValue(name string, v property.Value) error {
	return b.props.SetPropertyValue(name, v)
}

// Flag returns a boolean property, false when it does not exist
func (b *Base) Flag(name string) bool {
	v, err := b.props.GetPropertyValue(name)
	if err != nil {
		return false
	}
	return v.Bool()
}

// Number returns a numeric property, property.Unset when it does not exist
func (b *Base) Number(name string) float64 {
	v, err := b.props.GetPropertyValue(name)
	if err != nil {
		return property.Unset
	}
	return v.Number()
}

// Emit queues a command addressed to a part of this element
func (b *Base) Emit(part string, cmd Command) {
	cmd.Page = b.pageID
	cmd.Element = b.id
	cmd.Part = part
	b.outbox.Emit(cmd)
}

// Notify queues a notification tagged with this element's ID
func (b *Base) Notify(name string) {
	b.outbox.Notify(Notification{Name: name, ElementID: b.id})
}

// Begin creates the element on its page. It returns false, without emitting
// anything, when the page has no surface.
func (b *Base) Begin(target RenderTarget) bool {
	if target == nil {
		log.Printf("element: draw %s: no render target", b.id)
		return false
	}
	if _, ok := target.Surface(b.pageID); !ok {
		log.Printf("element: draw %s: page %s has no surface", b.id, b.pageID)
		return false
	}
	b.Emit("", Command{Op: OpCreate, Text: b.kind})
	return true
}

// RenderInitial applies the declared property state. When both width and height are
// unset only the size is rendered and final sizing waits for ContentLoaded.
func (b *Base) RenderInitial() error {
	if b.props.Has("width") && b.props.Has("height") &&
		b.Number("width") == property.Unset && b.Number("height") == property.Unset {
		b.sizingPending = true
		return b.props.RenderProperties("width", "height")
	}
	return b.props.RenderProperties()
}

// Finish marks the element drawn and announces it to the unit
func (b *Base) Finish() {
	b.drawn = true
	b.Notify(NotifyElementDrawn)
}

// ContentLoaded completes deferred sizing from the natural content size. The size is
// applied once; the properties skipped by RenderInitial are rendered afterward.
// A dimension missing from natural stays unset.
func (b *Base) ContentLoaded(natural Size) error {
	if !b.sizingPending {
		return nil
	}
	b.sizingPending = false
	if natural.Width > 0 {
		if err := b.SetValue("width", property.Number(natural.Width)); err != nil {
			return err
		}
	}
	if natural.Height > 0 {
		if err := b.SetValue("height", property.Number(natural.Height)); err != nil {
			return err
		}
	}
	var rest []string
	for _, name := range b.props.Names() {
		if name != "width" && name != "height" {
			rest = append(rest, name)
		}
	}
	if len(rest) == 0 {
		return nil
	}
	return b.props.RenderProperties(rest...)
}

func (b *Base) renderSize(property.Value) {
	b.Emit("", Command{Op: OpSetSize, Number: b.Number("width"), Max: b.Number("height")})
}
