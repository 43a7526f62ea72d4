// Package repl implements the line-oriented command loop of the editor.
package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/pavanmanishd/polygeo/arena"
	"github.com/pavanmanishd/polygeo/engine"
	"github.com/pavanmanishd/polygeo/render"
	"github.com/pavanmanishd/polygeo/shape"
)

const (
	Version = "v1.0"
	Prompt  = "> Type a command (HELP for list of commands): "
)

var commands = []string{"ADD", "RENDER", "UNDO", "REDO", "STATS", "HELP", "QUIT"}

var kindWords = func() []string {
	var ws []string
	for _, k := range shape.Kinds {
		ws = append(ws, k.String())
	}
	return ws
}()

// Metricser reports arena usage for STATS.
type Metricser interface {
	Metrics() arena.ArenaMetrics
}

// Config configures a Session.
type Config struct {
	Engine *engine.Engine
	Arena  Metricser
	Output string    // SVG file written by RENDER
	Stdout io.Writer // status text
	Logger *slog.Logger
}

// Session runs commands against a single engine.
type Session struct {
	eng    *engine.Engine
	arena  Metricser
	output string
	out    io.Writer
	log    *slog.Logger
	fail   *color.Color
}

// New returns a Session. The Session takes over the engine: Run tears it
// down on exit.
func New(cfg Config) *Session {
	s := &Session{
		eng:    cfg.Engine,
		arena:  cfg.Arena,
		output: cfg.Output,
		out:    cfg.Stdout,
		log:    cfg.Logger,
		fail:   color.New(color.FgRed),
	}
	if s.output == "" {
		s.output = "output.svg"
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s
}

// Welcome prints the start-up banner.
func (s *Session) Welcome() {
	fmt.Fprintf(s.out, "Welcome to the PolyGeoEngine! %s\n", Version)
	if s.arena != nil {
		fmt.Fprintf(s.out, "Initialized memory area with %s.\n", formatBytes(s.arena.Metrics().Capacity))
	}
}

// Run reads and executes commands until QUIT or end of input, then tears
// the engine down.
func (s *Session) Run(p Prompter) error {
	defer s.teardown()
	for {
		line, err := p.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			p.AppendHistory(line)
		}
		if !s.Exec(line) {
			return nil
		}
	}
}

// Exec runs a single command line. It returns false for QUIT.
func (s *Session) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "QUIT":
		return false
	case "ADD":
		s.add(args)
	case "RENDER":
		s.render()
	case "UNDO":
		if err := s.eng.Undo(); err != nil {
			s.failf("No shapes to undo. ")
		}
	case "REDO":
		if err := s.eng.Redo(); err != nil {
			s.failf("No shapes to redo. ")
		}
	case "STATS":
		s.stats()
	case "HELP":
		s.help()
	default:
		s.failf("Invalid command. Type HELP for list of commands.")
	}
	return true
}

func (s *Session) add(args []string) {
	if len(args) == 0 {
		s.failf("Unknown shape type")
		return
	}
	kind, ok := shape.ParseKind(args[0])
	params := &tokenParams{tokens: args[1:]}
	if ok {
		if err := params.validate(kind.Arity()); err != nil {
			s.failf("Invalid parameters for %s: %v. Usage: ADD %s %s", kind, err, kind, kind.Usage())
			return
		}
	}

	h, err := s.eng.Create(kind, params)
	switch {
	case err == nil:
		s.log.Debug("repl: added shape", "kind", kind, "handle", h)
	case errors.Is(err, shape.ErrUnknownKind):
		s.log.Debug("repl: unknown shape type", "keyword", args[0])
		s.failf("Unknown shape type")
	case errors.Is(err, arena.ErrExhausted):
		s.failf("ERROR: Arena Memory full!")
	default:
		s.log.Error("repl: add failed", "error", err)
		s.failf("ERROR: %v", err)
	}
}

func (s *Session) render() {
	if err := render.WriteFile(s.output, s.eng.Active()); err != nil {
		s.log.Error("repl: render failed", "error", err)
		s.failf("ERROR: could not generate SVG file '%s'.", s.output)
		return
	}
	fmt.Fprintf(s.out, "SVG file '%s' generated.\n", s.output)
}

func (s *Session) stats() {
	st := s.eng.Stats()
	fmt.Fprintf(s.out, "Shapes: %d active, %d undone, %d live (%d created, %d destroyed)\n",
		st.Active, st.Undone, st.Live, st.Created, st.Destroyed)
	if s.arena != nil {
		m := s.arena.Metrics()
		fmt.Fprintf(s.out, "Arena: %d of %d bytes used (%.2f%%), %d allocations, %d failed\n",
			m.SizeInUse, m.Capacity, m.Utilization*100, m.Allocations, m.Failures)
	}
}

func (s *Session) help() {
	fmt.Fprintf(s.out, "Available commands: \n")
	for _, k := range shape.Kinds {
		fmt.Fprintf(s.out, "ADD %s %s - %s\n", k, k.Usage(), addHelp[k])
	}
	fmt.Fprintf(s.out, "RENDER - Generates an SVG file with the current shapes in active memory.\n")
	fmt.Fprintf(s.out, "UNDO - Removes the last added shape from active memory.\n")
	fmt.Fprintf(s.out, "REDO - Re-adds the last undone shape to the active memory.\n")
	fmt.Fprintf(s.out, "STATS - Shows shape and memory usage.\n")
	fmt.Fprintf(s.out, "HELP - Displays this help message.\n")
	fmt.Fprintf(s.out, "QUIT - Exits the program.\n")
}

var addHelp = map[shape.Kind]string{
	shape.KindCircle:    "Adds a circle at (x, y) with the specified radius.",
	shape.KindRectangle: "Adds a rectangle at (x, y) with the specified width and height.",
	shape.KindTriangle:  "Adds a triangle with the specified vertices.",
}

func (s *Session) teardown() {
	st := s.eng.Stats()
	s.eng.Teardown()
	s.log.Info("repl: session ended", "shapes", st.Active, "created", st.Created, "destroyed", s.eng.Stats().Destroyed)
}

func (s *Session) failf(format string, a ...any) {
	s.fail.Fprintf(s.out, format+"\n", a...)
}

// tokenParams feeds ADD arguments to the shape factory.
type tokenParams struct {
	tokens []string
}

// validate checks that exactly n integer tokens remain.
func (p *tokenParams) validate(n int) error {
	if len(p.tokens) != n {
		return fmt.Errorf("expected %d integers, got %d", n, len(p.tokens))
	}
	for _, t := range p.tokens {
		if _, err := strconv.Atoi(t); err != nil {
			return fmt.Errorf("%q is not an integer", t)
		}
	}
	return nil
}

func (p *tokenParams) Int() (int, error) {
	if len(p.tokens) == 0 {
		return 0, shape.ErrMissingParam
	}
	v, err := strconv.Atoi(p.tokens[0])
	if err != nil {
		return 0, err
	}
	p.tokens = p.tokens[1:]
	return v, nil
}

func (p *tokenParams) Discard() {
	p.tokens = nil
}

func formatBytes(n int) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return strconv.Itoa(n/mb) + " MB"
	}
	return strconv.Itoa(n) + " bytes"
}
