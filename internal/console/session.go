package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ytget/unit-player/internal/element"
	"github.com/ytget/unit-player/internal/unit"
)

// ErrQuit is returned by Exec when the session should end
var ErrQuit = errors.New("quit")

// Commands lists the session commands for completion and help
var Commands = []string{
	"help", "pages", "elements", "attach", "draw", "loaded", "tick", "end",
	"play", "pause", "volume", "set", "props", "export", "quit",
}

// Session drives a unit from text commands and prints every render command it causes
type Session struct {
	unit     *unit.Unit
	recorder *element.Recorder
	out      io.Writer
	printed  int
}

// NewSession creates a session over u writing to out. No page is attached until attach is run.
func NewSession(u *unit.Unit, out io.Writer) *Session {
	s := &Session{
		unit:     u,
		recorder: element.NewRecorder(),
		out:      out,
	}
	u.Attach(s.recorder)
	u.Bus().SubscribeAll(func(n element.Notification) {
		fmt.Fprintf(s.out, "  ! %s %s\n", n.Name, n.ElementID)
	})
	return s
}

// Exec runs one command line
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "help":
		fmt.Fprintln(s.out, strings.Join(Commands, " "))
	case "quit", "exit":
		return ErrQuit
	case "pages":
		s.pages()
	case "elements":
		err = s.elements(args)
	case "attach":
		err = s.attach(args)
	case "draw":
		err = s.draw(args)
	case "loaded":
		err = s.loaded(args)
	case "tick":
		err = s.tick(args)
	case "end":
		err = s.dispatch(args, element.Event{Kind: element.EventContentEnded})
	case "play":
		err = s.dispatch(args, element.Event{Kind: element.EventUserPlay})
	case "pause":
		err = s.dispatch(args, element.Event{Kind: element.EventUserPause})
	case "volume":
		err = s.volume(args)
	case "set":
		err = s.set(args)
	case "props":
		err = s.props(args)
	case "export":
		err = s.export(args)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	s.printCommands()
	return err
}

func (s *Session) pages() {
	for _, p := range s.unit.Pages() {
		state := "detached"
		if s.recorder.Pages[p.ID] {
			state = "attached"
		}
		fmt.Fprintf(s.out, "%s (%d elements, %s)\n", p.ID, len(p.Elements), state)
	}
}

func (s *Session) elements(args []string) error {
	for _, p := range s.unit.Pages() {
		if len(args) > 0 && args[0] != p.ID {
			continue
		}
		for _, el := range p.Elements {
			fmt.Fprintf(s.out, "%s/%s %s drawn=%t\n", p.ID, el.ID(), el.Type(), el.Drawn())
		}
	}
	return nil
}

// attach exposes the given pages, or all pages without arguments
func (s *Session) attach(args []string) error {
	if len(args) == 0 {
		for _, p := range s.unit.Pages() {
			s.recorder.Pages[p.ID] = true
		}
		return nil
	}
	for _, id := range args {
		if _, ok := s.unit.Page(id); !ok {
			return fmt.Errorf("%w: %s", unit.ErrUnknownPage, id)
		}
		s.recorder.Pages[id] = true
	}
	return nil
}

func (s *Session) draw(args []string) error {
	if len(args) == 0 {
		return s.unit.Draw()
	}
	return s.unit.DrawPage(args[0])
}

// loaded <element> <duration> [width height]
func (s *Session) loaded(args []string) error {
	if len(args) != 2 && len(args) != 4 {
		return errors.New("usage: loaded <element> <duration> [width height]")
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	ev := element.Event{Kind: element.EventContentLoaded, Duration: nums[0]}
	if len(nums) == 3 {
		ev.Size = element.Size{Width: nums[1], Height: nums[2]}
	}
	return s.unit.Dispatch(args[0], ev)
}

// tick <element> <current> [duration]
func (s *Session) tick(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: tick <element> <current> [duration]")
	}
	nums, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	ev := element.Event{Kind: element.EventTimeAdvanced, CurrentTime: nums[0]}
	if len(nums) > 1 {
		ev.Duration = nums[1]
	}
	return s.unit.Dispatch(args[0], ev)
}

func (s *Session) dispatch(args []string, ev element.Event) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <element>", ev.Kind)
	}
	return s.unit.Dispatch(args[0], ev)
}

func (s *Session) volume(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: volume <0..1>")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid volume %q: %w", args[0], err)
	}
	return s.unit.Broadcast(element.Event{Kind: element.EventVolumeChanged, Volume: v})
}

// set <element> <property> <value...>
func (s *Session) set(args []string) error {
	if len(args) < 3 {
		return errors.New("usage: set <element> <property> <value>")
	}
	return s.unit.SetProperty(args[0], args[1], strings.Join(args[2:], " "))
}

func (s *Session) props(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: props <element>")
	}
	el, ok := s.unit.Element(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", unit.ErrUnknownElement, args[0])
	}
	values := el.Properties().Export()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.out, "%s = %v\n", k, values[k])
	}
	return nil
}

// export [file] writes the unit as JSON to file or the output
func (s *Session) export(args []string) error {
	data, err := s.unit.Export().Marshal()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		_, err = fmt.Fprintln(s.out, string(data))
		return err
	}
	return os.WriteFile(args[0], data, 0o644)
}

// printCommands prints render commands recorded since the last call
func (s *Session) printCommands() {
	for _, c := range s.recorder.Commands[s.printed:] {
		fmt.Fprintf(s.out, "  %s\n", FormatCommand(c))
	}
	s.printed = len(s.recorder.Commands)
}

// FormatCommand renders a command as one line
func FormatCommand(c element.Command) string {
	target := c.Page + "/" + c.Element
	if c.Part != "" {
		target += "." + c.Part
	}
	switch c.Op {
	case element.OpCreate, element.OpSetText, element.OpSetSource:
		return fmt.Sprintf("%s %s %q", target, c.Op, c.Text)
	case element.OpSetVisible:
		return fmt.Sprintf("%s %s %t", target, c.Op, c.Flag)
	case element.OpSetRange, element.OpSetSize:
		return fmt.Sprintf("%s %s %g %g", target, c.Op, c.Number, c.Max)
	case element.OpSetVolume:
		return fmt.Sprintf("%s %s %g", target, c.Op, c.Number)
	default:
		return fmt.Sprintf("%s %s", target, c.Op)
	}
}

func parseNumbers(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", a, err)
		}
		out[i] = n
	}
	return out, nil
}
