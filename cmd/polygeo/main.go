// Command polygeo is an interactive editor for circles, rectangles and
// triangles that exports the drawing as SVG.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/pflag"

	"github.com/pavanmanishd/polygeo/arena"
	"github.com/pavanmanishd/polygeo/engine"
	"github.com/pavanmanishd/polygeo/internal/repl"
)

var (
	EnvPrefix = "POLYGEO_"
	Capacity  = pflag.IntP("capacity", "c", arena.DefaultCapacity, "arena size in bytes")
	Output    = pflag.StringP("output", "o", "output.svg", "svg file written by RENDER")
	History   = pflag.String("history", "", "command history file for interactive sessions")
	LogLevel  = levelP("log-level", "L", slog.LevelInfo, "log level")
	LogJSON   = pflag.Bool("log-json", false, "use json logs")
	Help      = pflag.BoolP("help", "h", false, "show this help text")
)

func main() {
	if err := parseEnv(pflag.CommandLine, EnvPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	pflag.Parse()

	if *Help || pflag.NArg() != 0 {
		fmt.Printf("usage: %s [options]\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if *Help {
			return
		}
		os.Exit(2)
	}

	if *Capacity <= 0 {
		fmt.Fprintf(os.Stderr, "error: capacity must be positive\n")
		os.Exit(2)
	}

	if *LogJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: LogLevel,
		})))
	} else {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:   LogLevel,
			NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
		})))
	}

	if err := run(); err != nil {
		slog.Error("polygeo failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	a := arena.NewArena(*Capacity)
	e := engine.New(a, engine.WithLogger(slog.Default()))

	s := repl.New(repl.Config{
		Engine: e,
		Arena:  a,
		Output: *Output,
		Stdout: os.Stdout,
		Logger: slog.Default(),
	})
	s.Welcome()

	p, closePrompter := newPrompter(*History)
	defer closePrompter()

	return s.Run(p)
}

// newPrompter returns a line-editing prompter when stdin is a terminal,
// and a plain reader otherwise.
func newPrompter(history string) (repl.Prompter, func()) {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !liner.TerminalSupported() {
		return repl.NewLineReader(os.Stdin, os.Stdout), func() {}
	}

	lr := liner.NewLiner()
	lr.SetCtrlCAborts(true)
	lr.SetCompleter(repl.Complete)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := lr.ReadHistory(f); err != nil {
				slog.Warn("history: failed to read", "path", history, "error", err)
			}
			f.Close()
		}
	}
	return linerPrompter{lr}, func() {
		if history != "" {
			if f, err := os.Create(history); err != nil {
				slog.Warn("history: failed to save", "path", history, "error", err)
			} else {
				lr.WriteHistory(f)
				f.Close()
			}
		}
		lr.Close()
	}
}

type linerPrompter struct {
	*liner.State
}

func (p linerPrompter) Prompt(prompt string) (string, error) {
	line, err := p.State.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

func levelP(name, shorthand string, value slog.Level, usage string) *slog.LevelVar {
	level := new(slog.LevelVar)
	def := new(slog.LevelVar)
	def.Set(value)
	pflag.TextVarP(level, name, shorthand, def, usage)
	return level
}

// parseEnv sets flags from PREFIX_FLAG_NAME environment variables.
func parseEnv(fs *pflag.FlagSet, prefix string) error {
	for _, env := range os.Environ() {
		k, v, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		s, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}
		n := strings.Map(func(r rune) rune {
			if r == '_' {
				return '-'
			}
			return unicode.ToLower(r)
		}, s)
		f := fs.Lookup(n)
		if f == nil {
			fmt.Fprintf(fs.Output(), "env %s: unknown flag --%s\n", k, n)
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("env %s: flag --%s: invalid argument: %w", k, n, err)
		}
	}
	return nil
}
