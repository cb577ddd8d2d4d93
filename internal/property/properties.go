package property

import (
	"errors"
	"fmt"
	"sort"
)

// Properties pairs a Store with its Registry. Writes render synchronously.
type Properties struct {
	store    *Store
	registry *Registry

	// extra keeps values from the unit data that no property declares,
	// so they survive an export
	extra map[string]any
}

// New creates a property set from a manifest
func New(m Manifest) (*Properties, error) {
	store, err := NewStore(m)
	if err != nil {
		return nil, err
	}
	return &Properties{
		store:    store,
		registry: NewRegistry(store),
		extra:    make(map[string]any),
	}, nil
}

// Store returns the underlying store
func (p *Properties) Store() *Store {
	return p.store
}

// Registry returns the underlying renderer registry
func (p *Properties) Registry() *Registry {
	return p.registry
}

// AddProperty registers a new property
func (p *Properties) AddProperty(d Descriptor) error {
	return p.store.AddProperty(d)
}

// RemoveProperty deletes a property together with its renderer bindings
func (p *Properties) RemoveProperty(name string) error {
	return p.store.RemoveProperty(name)
}

// Has reports whether the property exists
func (p *Properties) Has(name string) bool {
	return p.store.Has(name)
}

// GetPropertyValue returns the current value of a property
func (p *Properties) GetPropertyValue(name string) (Value, error) {
	return p.store.GetPropertyValue(name)
}

// SetPropertyValue stores v and runs the property's renderers with it
func (p *Properties) SetPropertyValue(name string, v Value) error {
	if err := p.store.SetPropertyValue(name, v); err != nil {
		return err
	}
	return p.registry.RenderProperty(name)
}

// SetString parses raw with the property's kind and stores it
func (p *Properties) SetString(name, raw string) error {
	d, err := p.store.Descriptor(name)
	if err != nil {
		return err
	}
	v, err := Parse(d.Type(), raw)
	if err != nil {
		return fmt.Errorf("property %s: %w", name, err)
	}
	return p.SetPropertyValue(name, v)
}

// AddPropertyRenderer binds a renderer to an existing property
func (p *Properties) AddPropertyRenderer(name, label string, fn RenderFunc) error {
	return p.registry.AddPropertyRenderer(name, label, fn)
}

// RenderProperty runs the renderers of one property
func (p *Properties) RenderProperty(name string) error {
	return p.registry.RenderProperty(name)
}

// RenderProperties runs the renderers of the given properties, or of all of them
func (p *Properties) RenderProperties(names ...string) error {
	return p.registry.RenderProperties(names...)
}

// Names returns property names in store order
func (p *Properties) Names() []string {
	return p.store.Names()
}

// Descriptor returns a copy of a property's descriptor
func (p *Properties) Descriptor(name string) (Descriptor, error) {
	return p.store.Descriptor(name)
}

// Adjustable returns the descriptors an end user may edit, in store order
func (p *Properties) Adjustable() []Descriptor {
	var out []Descriptor
	for _, name := range p.store.Names() {
		d, _ := p.store.Descriptor(name)
		if d.UserAdjustable && !d.Hidden {
			out = append(out, d)
		}
	}
	return out
}

// Load applies external values without rendering. Keys that no property declares
// are retained and exported verbatim.
func (p *Properties) Load(values map[string]any) error {
	var errs []error
	for key, raw := range values {
		d, err := p.store.Descriptor(key)
		if err != nil {
			p.extra[key] = raw
			continue
		}
		v, err := Parse(d.Type(), raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("property %s: %w", key, err))
			continue
		}
		if err := p.store.SetPropertyValue(key, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Export serializes every property to its external string form
func (p *Properties) Export() map[string]any {
	out := make(map[string]any, p.store.Len()+len(p.extra))
	for key, raw := range p.extra {
		out[key] = raw
	}
	for _, name := range p.store.Names() {
		v, _ := p.store.GetPropertyValue(name)
		out[name] = v.String()
	}
	return out
}

// ExtraKeys returns the retained undeclared keys, sorted
func (p *Properties) ExtraKeys() []string {
	keys := make([]string, 0, len(p.extra))
	for k := range p.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
