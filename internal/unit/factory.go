package unit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/model"
)

// Factory builds an element of one type from its stored data
type Factory func(id, pageID string, data *model.UnitElementData) (element.Element, error)

// Registry maps element type names to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty factory registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register links an element type name to its factory
func (r *Registry) Register(typeName string, f Factory) error {
	if typeName == "" || f == nil {
		return fmt.Errorf("invalid factory for element type %q", typeName)
	}
	if _, exists := r.factories[typeName]; exists {
		return fmt.Errorf("element type already registered: %s", typeName)
	}
	r.factories[typeName] = f
	return nil
}

// Build creates an element from its data using the factory of its "type" property
func (r *Registry) Build(id, pageID string, data *model.UnitElementData) (element.Element, error) {
	typeName := data.Properties.String("type")
	f, ok := r.factories[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q (element %s)", ErrUnknownElementType, typeName, id)
	}
	return f(id, pageID, data)
}

// Types returns the registered type names
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}

// NewElementID generates an identifier for an element added without one
func NewElementID(typeName string) string {
	return typeName + "_" + uuid.NewString()
}
