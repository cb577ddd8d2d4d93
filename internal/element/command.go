package element

// Op identifies a render command
type Op string

const (
	OpCreate     Op = "create"
	OpSetVisible Op = "set_visible"
	OpSetText    Op = "set_text"
	OpSetRange   Op = "set_range"
	OpSetSize    Op = "set_size"
	OpSetSource  Op = "set_source"
	OpPlay       Op = "play"
	OpPause      Op = "pause"
	OpSetVolume  Op = "set_volume"
)

// Command is one change to an element's on-screen representation.
// Part names a sub-control of the element; empty means the element itself.
type Command struct {
	Page    string
	Element string
	Part    string
	Op      Op

	// Text carries the element kind for OpCreate, the text for OpSetText
	// and the media location for OpSetSource
	Text string
	// Number carries the value for OpSetRange and OpSetVolume, and the width for OpSetSize
	Number float64
	// Max carries the range maximum for OpSetRange and the height for OpSetSize
	Max float64
	// Flag carries the visibility for OpSetVisible
	Flag bool
}

// Notification names published to the unit
const (
	NotifyAudioStarted = "IQB.unit.audioElementStarted"
	NotifyAudioEnded   = "IQB.unit.audioElementEnded"
	NotifyElementDrawn = "IQB.unit.newElementDrawn"
	NotifyNewVolume    = "IQB.unit.newVolume"
)

// Notification is an outbound event tagged with the emitting element
type Notification struct {
	Name      string
	ElementID string
}

// Outbox queues the commands and notifications an element emits
type Outbox struct {
	commands      []Command
	notifications []Notification
}

// Emit queues a render command
func (o *Outbox) Emit(cmd Command) {
	o.commands = append(o.commands, cmd)
}

// Notify queues a notification
func (o *Outbox) Notify(n Notification) {
	o.notifications = append(o.notifications, n)
}

// Pending reports whether anything is queued
func (o *Outbox) Pending() bool {
	return len(o.commands) > 0 || len(o.notifications) > 0
}

// Drain hands over and clears everything queued so far, in emission order
func (o *Outbox) Drain() ([]Command, []Notification) {
	cmds, notes := o.commands, o.notifications
	o.commands, o.notifications = nil, nil
	return cmds, notes
}
