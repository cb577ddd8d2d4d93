package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ytget/unit-player/internal/audio"
	"github.com/ytget/unit-player/internal/console"
	"github.com/ytget/unit-player/internal/model"
	"github.com/ytget/unit-player/internal/unit"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: unit-console <unit.json>")
		os.Exit(2)
	}

	data, err := model.LoadUnitData(os.Args[1])
	if err != nil {
		log.Fatalf("failed to load unit: %v", err)
	}
	registry := unit.NewRegistry()
	if err := registry.Register(audio.Type, audio.FromData()); err != nil {
		log.Fatal(err)
	}
	u, err := unit.New(data, registry, nil)
	if err != nil {
		log.Printf("unit loaded with errors: %v", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "unit> ",
		AutoComplete: completer(u),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer rl.Close()

	session := console.NewSession(u, rl.Stdout())
	fmt.Fprintf(rl.Stdout(), "%d pages loaded, type help for commands\n", len(u.Pages()))
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) && line != "" {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, readline.ErrInterrupt) {
				log.Printf("readline: %v", err)
			}
			return
		}
		if err := session.Exec(strings.TrimSpace(line)); err != nil {
			if errors.Is(err, console.ErrQuit) {
				return
			}
			fmt.Fprintf(rl.Stdout(), " [!] %v\n", err)
		}
	}
}

// completer offers commands followed by element or page identifiers
func completer(u *unit.Unit) *readline.PrefixCompleter {
	ids := func(string) []string {
		var out []string
		for _, p := range u.Pages() {
			out = append(out, p.ID)
			for _, el := range p.Elements {
				out = append(out, el.ID())
			}
		}
		return out
	}
	items := make([]readline.PrefixCompleterInterface, 0, len(console.Commands))
	for _, c := range console.Commands {
		items = append(items, readline.PcItem(c, readline.PcItemDynamic(ids)))
	}
	return readline.NewPrefixCompleter(items...)
}
