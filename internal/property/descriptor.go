package property

// Descriptor is one entry of an element's property store
type Descriptor struct {
	Name           string
	Value          Value
	UserAdjustable bool
	Hidden         bool
	Caption        string
	Tooltip        string
	// Options lists the accepted values of an enum property
	Options []string
}

// Type returns the property type, which is the kind of its value
func (d Descriptor) Type() Kind {
	return d.Value.Kind()
}

// Accepts reports whether v may be stored in this property
func (d Descriptor) Accepts(v Value) bool {
	if v.Kind() != d.Type() {
		return false
	}
	if d.Type() != KindEnum || len(d.Options) == 0 {
		return true
	}
	for _, opt := range d.Options {
		if opt == v.Text() {
			return true
		}
	}
	return false
}

// Manifest is the ordered, statically declared property set of an element type
type Manifest []Descriptor

// Unset marks a width or height that was not given explicitly
const Unset = -1

// Dimensions returns the size properties shared by visible element types
func Dimensions() Manifest {
	return Manifest{
		{Name: "width", Value: Number(Unset), UserAdjustable: true, Caption: "Breite", Tooltip: "Breite des Elements"},
		{Name: "height", Value: Number(Unset), UserAdjustable: true, Caption: "Höhe", Tooltip: "Höhe des Elements"},
	}
}

// Typography returns the styling properties shared by text-bearing element types
func Typography() Manifest {
	return Manifest{
		{Name: "style", Value: Text(""), UserAdjustable: true, Caption: "CSS-Stil"},
		{Name: "font-family", Value: Text("Arial"), UserAdjustable: true, Caption: "Schriftart"},
		{Name: "font-size", Value: Number(14), UserAdjustable: true, Caption: "Schriftgröße"},
		{Name: "color", Value: Text("black"), UserAdjustable: true, Caption: "Schriftfarbe"},
		{Name: "background-color", Value: Text("transparent"), UserAdjustable: true, Caption: "Hintergrundfarbe"},
	}
}

// Compose concatenates manifests in order
func Compose(parts ...Manifest) Manifest {
	var out Manifest
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Names returns the property names in declaration order
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m))
	for _, d := range m {
		names = append(names, d.Name)
	}
	return names
}
