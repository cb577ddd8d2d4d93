package property

// Package property implements the declarative property model of unit elements:
// typed values, descriptors and manifests, the per-element Store and the
// Registry of renderer bindings that reflect property values onto a surface.
