package property

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_UnknownProperty(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = props.AddPropertyRenderer("missing", "test", func(Value) {})
	if !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("AddPropertyRenderer(missing) error = %v, expected ErrUnknownProperty", err)
	}
	if err := props.RenderProperty("missing"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("RenderProperty(missing) error = %v, expected ErrUnknownProperty", err)
	}
}

func TestRegistry_RegistrationOrder(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var calls []string
	for _, label := range []string{"first", "second", "third"} {
		label := label
		if err := props.AddPropertyRenderer("autoplay", label, func(v Value) {
			calls = append(calls, label+"="+v.String())
		}); err != nil {
			t.Fatalf("AddPropertyRenderer returned error %v", err)
		}
	}

	if err := props.RenderProperty("autoplay"); err != nil {
		t.Fatalf("RenderProperty returned error %v", err)
	}
	if err := props.SetPropertyValue("autoplay", Bool(true)); err != nil {
		t.Fatalf("SetPropertyValue returned error %v", err)
	}

	expected := []string{
		"first=false", "second=false", "third=false",
		"first=true", "second=true", "third=true",
	}
	if !reflect.DeepEqual(calls, expected) {
		t.Errorf("Renderer calls = %v, expected %v", calls, expected)
	}
}

func TestRegistry_HiddenStillRenders(t *testing.T) {
	props, err := New(Manifest{{Name: "alreadyPlayed", Value: Bool(false), Hidden: true}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	count := 0
	props.AddPropertyRenderer("alreadyPlayed", "event", func(Value) { count++ })
	props.RenderProperties()

	if count != 1 {
		t.Errorf("Hidden property rendered %d times, expected 1", count)
	}
}

func TestRegistry_RenderPropertiesOrder(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var order []string
	for _, name := range props.Names() {
		name := name
		props.AddPropertyRenderer(name, "order", func(Value) { order = append(order, name) })
	}

	props.RenderProperties()
	if expected := props.Names(); !reflect.DeepEqual(order, expected) {
		t.Errorf("RenderProperties() order = %v, expected %v", order, expected)
	}

	order = nil
	props.RenderProperties("height", "width")
	if expected := []string{"height", "width"}; !reflect.DeepEqual(order, expected) {
		t.Errorf("RenderProperties(height, width) order = %v, expected %v", order, expected)
	}
}

func TestRegistry_PanicIsContained(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	rendered := map[string]bool{}
	props.AddPropertyRenderer("type", "broken", func(Value) { panic("no surface") })
	props.AddPropertyRenderer("type", "after", func(Value) { rendered["type"] = true })
	props.AddPropertyRenderer("width", "width", func(Value) { rendered["width"] = true })

	err = props.RenderProperties()
	if !errors.Is(err, ErrRenderer) {
		t.Fatalf("RenderProperties error = %v, expected ErrRenderer", err)
	}

	var rerr *RendererError
	if !errors.As(err, &rerr) || rerr.Label != "broken" || rerr.Property != "type" {
		t.Errorf("Expected RendererError for type/broken, got %v", err)
	}
	if !rendered["type"] || !rendered["width"] {
		t.Errorf("Remaining renderers should still run, got %v", rendered)
	}
}

func TestProperties_RemoveDropsBindings(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	props.AddPropertyRenderer("autoplay", "test", func(Value) {})
	if err := props.RemoveProperty("autoplay"); err != nil {
		t.Fatalf("RemoveProperty returned error %v", err)
	}

	if _, err := props.GetPropertyValue("autoplay"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Get after remove error = %v, expected ErrUnknownProperty", err)
	}
	if err := props.SetPropertyValue("autoplay", Bool(true)); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Set after remove error = %v, expected ErrUnknownProperty", err)
	}
	if err := props.RenderProperty("autoplay"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Render after remove error = %v, expected ErrUnknownProperty", err)
	}

	// re-adding starts without the old bindings
	props.AddProperty(Descriptor{Name: "autoplay", Value: Bool(false)})
	if n := len(props.Registry().Bindings("autoplay")); n != 0 {
		t.Errorf("Expected 0 bindings after re-add, got %d", n)
	}
}

func TestStore_RemoveDropsBindings(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	calls := 0
	props.AddPropertyRenderer("autoplay", "test", func(Value) { calls++ })
	if err := props.Store().RemoveProperty("autoplay"); err != nil {
		t.Fatalf("RemoveProperty returned error %v", err)
	}
	props.AddProperty(Descriptor{Name: "autoplay", Value: Bool(false)})

	if n := len(props.Registry().Bindings("autoplay")); n != 0 {
		t.Errorf("Expected 0 bindings after re-add, got %d", n)
	}
	props.SetPropertyValue("autoplay", Bool(true))
	if calls != 0 {
		t.Errorf("Removed renderer ran %d times, expected 0", calls)
	}
}

func TestProperties_SetString(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var got Value
	props.AddPropertyRenderer("width", "test", func(v Value) { got = v })

	if err := props.SetString("width", "480"); err != nil {
		t.Fatalf("SetString returned error %v", err)
	}
	if got.Number() != 480 {
		t.Errorf("Renderer received %v, expected 480", got)
	}
	if err := props.SetString("width", "wide"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("SetString(width, wide) error = %v, expected ErrInvalidValue", err)
	}
	if err := props.SetString("autoplay", "maybe"); err != nil {
		t.Fatalf("SetString(autoplay, maybe) returned error %v", err)
	}
	if v, _ := props.GetPropertyValue("autoplay"); v.Bool() {
		t.Error("autoplay should be false for anything but \"true\"")
	}
}

func TestProperties_LoadExport(t *testing.T) {
	props, err := New(testManifest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = props.Load(map[string]any{
		"autoplay": "true",
		"width":    200.0,
		"left":     "10",
	})
	if err != nil {
		t.Fatalf("Load returned error %v", err)
	}

	v, _ := props.GetPropertyValue("autoplay")
	if !v.Bool() {
		t.Error("autoplay should be true after Load")
	}

	out := props.Export()
	expected := map[string]any{
		"type":     "audio",
		"autoplay": "true",
		"align":    "left",
		"width":    "200",
		"height":   "-1",
		"left":     "10",
	}
	if !reflect.DeepEqual(out, expected) {
		t.Errorf("Export() = %v, expected %v", out, expected)
	}
	if keys := props.ExtraKeys(); !reflect.DeepEqual(keys, []string{"left"}) {
		t.Errorf("ExtraKeys() = %v, expected [left]", keys)
	}

	if err := props.Load(map[string]any{"width": "wide"}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Load with bad number error = %v, expected ErrInvalidValue", err)
	}
	if v, _ := props.GetPropertyValue("width"); v.Number() != 200 {
		t.Errorf("width = %v, expected the previous value 200 to be kept", v)
	}
}

func TestProperties_Adjustable(t *testing.T) {
	props, err := New(Manifest{
		{Name: "src", Value: Text("a.wav"), Hidden: true},
		{Name: "autoplay", Value: Bool(false), UserAdjustable: true},
		{Name: "secret", Value: Bool(false), UserAdjustable: true, Hidden: true},
		{Name: "type", Value: Text("audio")},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	adjustable := props.Adjustable()
	if len(adjustable) != 1 || adjustable[0].Name != "autoplay" {
		t.Errorf("Adjustable() = %v, expected only autoplay", adjustable)
	}
}
