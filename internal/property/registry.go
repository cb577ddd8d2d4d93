package property

import (
	"errors"
	"log"
)

// RenderFunc reflects a property value onto the element's surface
type RenderFunc func(v Value)

// Binding associates one renderer with a property. Labels are documentary.
type Binding struct {
	Property string
	Label    string
	Render   RenderFunc
}

// Registry holds the renderer bindings of one store
type Registry struct {
	store    *Store
	bindings map[string][]Binding
}

// NewRegistry creates a registry paired with store
func NewRegistry(store *Store) *Registry {
	r := &Registry{
		store:    store,
		bindings: make(map[string][]Binding),
	}
	store.onRemove(r.drop)
	return r
}

// AddPropertyRenderer appends a binding; the property must exist in the paired store
func (r *Registry) AddPropertyRenderer(name, label string, fn RenderFunc) error {
	if !r.store.Has(name) {
		return &UnknownPropertyError{Name: name}
	}
	r.bindings[name] = append(r.bindings[name], Binding{Property: name, Label: label, Render: fn})
	return nil
}

// Bindings returns the bindings of a property in registration order
func (r *Registry) Bindings(name string) []Binding {
	return append([]Binding(nil), r.bindings[name]...)
}

// RenderProperty invokes every binding of name with the current value.
// Hidden properties are rendered too; renderers decide what hidden means.
func (r *Registry) RenderProperty(name string) error {
	v, err := r.store.GetPropertyValue(name)
	if err != nil {
		return err
	}
	var errs []error
	for _, b := range r.bindings[name] {
		if err := invoke(b, v); err != nil {
			log.Printf("property: render %s: %v", name, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RenderProperties renders the given names in order, or every property in store order
// when none are given. A failing property does not stop the remaining ones.
func (r *Registry) RenderProperties(names ...string) error {
	if len(names) == 0 {
		names = r.store.Names()
	}
	var errs []error
	for _, name := range names {
		if err := r.RenderProperty(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) drop(name string) {
	delete(r.bindings, name)
}

func invoke(b Binding, v Value) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &RendererError{Property: b.Property, Label: b.Label, Cause: rec}
		}
	}()
	if b.Render != nil {
		b.Render(v)
	}
	return nil
}
