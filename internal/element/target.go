package element

// Surface is the mutable insertion point of one page
type Surface interface {
	Apply(cmd Command)
}

// RenderTarget resolves a page identifier to its surface. ok is false when the page
// is not attached yet.
type RenderTarget interface {
	Surface(pageID string) (s Surface, ok bool)
}

// Flush applies the queued commands of o to target and returns the queued notifications.
// Commands for a page without a surface are dropped.
func Flush(o *Outbox, target RenderTarget) []Notification {
	cmds, notes := o.Drain()
	if target == nil {
		return notes
	}
	surfaces := make(map[string]Surface)
	for _, cmd := range cmds {
		s, seen := surfaces[cmd.Page]
		if !seen {
			s, _ = target.Surface(cmd.Page)
			surfaces[cmd.Page] = s
		}
		if s != nil {
			s.Apply(cmd)
		}
	}
	return notes
}

// Recorder is a Surface and RenderTarget that keeps every applied command.
// It serves headless drivers and tests.
type Recorder struct {
	Pages    map[string]bool
	Commands []Command
}

// NewRecorder creates a recorder exposing the given pages
func NewRecorder(pages ...string) *Recorder {
	r := &Recorder{Pages: make(map[string]bool)}
	for _, p := range pages {
		r.Pages[p] = true
	}
	return r
}

// Surface implements RenderTarget
func (r *Recorder) Surface(pageID string) (Surface, bool) {
	if !r.Pages[pageID] {
		return nil, false
	}
	return r, true
}

// Apply implements Surface
func (r *Recorder) Apply(cmd Command) {
	r.Commands = append(r.Commands, cmd)
}

// Last returns the most recent command for element part with op
func (r *Recorder) Last(elementID, part string, op Op) (Command, bool) {
	for i := len(r.Commands) - 1; i >= 0; i-- {
		c := r.Commands[i]
		if c.Element == elementID && c.Part == part && c.Op == op {
			return c, true
		}
	}
	return Command{}, false
}

// Count returns how many commands match element part and op
func (r *Recorder) Count(elementID, part string, op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Element == elementID && c.Part == part && c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded commands
func (r *Recorder) Reset() {
	r.Commands = nil
}
