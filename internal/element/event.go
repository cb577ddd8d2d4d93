package element

// EventKind identifies a transport or user event delivered by the surface
type EventKind int

const (
	EventContentLoaded EventKind = iota
	EventTimeAdvanced
	EventContentEnded
	EventUserPlay
	EventUserPause
	EventVolumeChanged
)

// String returns the event name
func (k EventKind) String() string {
	switch k {
	case EventContentLoaded:
		return "loaded"
	case EventTimeAdvanced:
		return "timeupdate"
	case EventContentEnded:
		return "ended"
	case EventUserPlay:
		return "play"
	case EventUserPause:
		return "pause"
	case EventVolumeChanged:
		return "volume"
	default:
		return "unknown"
	}
}

// Size is a width and height in surface units
type Size struct {
	Width  float64
	Height float64
}

// Event is delivered to an element by its driver. Times are in seconds.
type Event struct {
	Kind        EventKind
	CurrentTime float64
	Duration    float64
	Volume      float64
	// Size is the natural size of the loaded content
	Size Size
}
