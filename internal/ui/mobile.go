package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct{}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI() *MobileUI {
	return &MobileUI{}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// TransportBox lays out transport buttons, enlarged to touch target size on mobile
func (m *MobileUI) TransportBox(buttons ...*widget.Button) *fyne.Container {
	objects := make([]fyne.CanvasObject, len(buttons))
	for i, b := range buttons {
		objects[i] = b
	}
	if m.IsMobileDevice() {
		return container.NewGridWrap(fyne.NewSize(MinTouchTargetSize, MinTouchTargetSize), objects...)
	}
	return container.NewHBox(objects...)
}
