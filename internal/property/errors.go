package property

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed errors below
var (
	ErrUnknownProperty   = errors.New("unknown property")
	ErrDuplicateProperty = errors.New("duplicate property")
	ErrTypeMismatch      = errors.New("property type mismatch")
	ErrInvalidValue      = errors.New("invalid property value")
	ErrRenderer          = errors.New("renderer failed")
)

// UnknownPropertyError is returned when an operation names a property that is not in the store
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property: %s", e.Name)
}

func (e *UnknownPropertyError) Is(target error) bool {
	return target == ErrUnknownProperty
}

// DuplicatePropertyError is returned when a property name is registered twice
type DuplicatePropertyError struct {
	Name string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("property already exists: %s", e.Name)
}

func (e *DuplicatePropertyError) Is(target error) bool {
	return target == ErrDuplicateProperty
}

// TypeMismatchError is returned when a value of another kind is written to a property
type TypeMismatchError struct {
	Name string
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %s expects %s, got %s", e.Name, e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// InvalidValueError is returned when an external scalar cannot be parsed as the property kind
type InvalidValueError struct {
	Kind Kind
	Raw  any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value: %v", e.Kind, e.Raw)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// RendererError wraps a panic raised by a renderer callback
type RendererError struct {
	Property string
	Label    string
	Cause    any
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("renderer %q for property %s panicked: %v", e.Label, e.Property, e.Cause)
}

func (e *RendererError) Is(target error) bool {
	return target == ErrRenderer
}
