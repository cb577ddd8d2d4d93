package property

// Store maps property names to descriptors and keeps declaration order
type Store struct {
	order []string
	items map[string]*Descriptor

	// removed is called with the name of every deleted property
	removed []func(name string)
}

// NewStore creates a store holding the given manifest
func NewStore(m Manifest) (*Store, error) {
	s := &Store{items: make(map[string]*Descriptor, len(m))}
	for _, d := range m {
		if err := s.AddProperty(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddProperty registers a new property
func (s *Store) AddProperty(d Descriptor) error {
	if s.items == nil {
		s.items = make(map[string]*Descriptor)
	}
	if _, exists := s.items[d.Name]; exists {
		return &DuplicatePropertyError{Name: d.Name}
	}
	desc := d
	desc.Options = append([]string(nil), d.Options...)
	s.items[d.Name] = &desc
	s.order = append(s.order, d.Name)
	return nil
}

// RemoveProperty deletes a property. Renderer bindings of a paired registry go with it.
func (s *Store) RemoveProperty(name string) error {
	if _, exists := s.items[name]; !exists {
		return &UnknownPropertyError{Name: name}
	}
	delete(s.items, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for _, fn := range s.removed {
		fn(name)
	}
	return nil
}

func (s *Store) onRemove(fn func(name string)) {
	s.removed = append(s.removed, fn)
}

// Has reports whether the property exists
func (s *Store) Has(name string) bool {
	_, exists := s.items[name]
	return exists
}

// GetPropertyValue returns the current value of a property
func (s *Store) GetPropertyValue(name string) (Value, error) {
	d, exists := s.items[name]
	if !exists {
		return Value{}, &UnknownPropertyError{Name: name}
	}
	return d.Value, nil
}

// SetPropertyValue replaces the value of a property. The value must have the property's kind.
func (s *Store) SetPropertyValue(name string, v Value) error {
	d, exists := s.items[name]
	if !exists {
		return &UnknownPropertyError{Name: name}
	}
	if v.Kind() != d.Type() {
		return &TypeMismatchError{Name: name, Want: d.Type(), Got: v.Kind()}
	}
	if !d.Accepts(v) {
		return &InvalidValueError{Kind: d.Type(), Raw: v.Text()}
	}
	d.Value = v
	return nil
}

// Descriptor returns a copy of the property's descriptor
func (s *Store) Descriptor(name string) (Descriptor, error) {
	d, exists := s.items[name]
	if !exists {
		return Descriptor{}, &UnknownPropertyError{Name: name}
	}
	out := *d
	out.Options = append([]string(nil), d.Options...)
	return out, nil
}

// Names returns the property names in store order
func (s *Store) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of properties
func (s *Store) Len() int {
	return len(s.order)
}
