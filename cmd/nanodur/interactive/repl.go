// Package interactive provides the nanodur calculator REPL.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/nanodur/nanodur-go/pkg/calc"
	"github.com/nanodur/nanodur-go/pkg/duration"
)

// Config holds REPL settings.
type Config struct {
	Prompt      string
	HistoryFile string

	// Grain, when positive, truncates every result to a multiple of it.
	Grain duration.Duration

	// Unit is the default unit for the "in" command.
	Unit string
}

// lineReader is the part of *readline.Instance the loop uses. Close must
// unblock a pending Readline.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// REPL reads expressions from a terminal and evaluates them.
type REPL struct {
	ev    *calc.Evaluator
	rl    *readline.Instance
	in    lineReader
	out   io.Writer
	grain duration.Duration
	unit  string
}

// New creates a REPL bound to the terminal.
func New(ev *calc.Evaluator, cfg Config) (*REPL, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	r := newREPL(ev, cfg, rl.Stdout())
	r.rl = rl
	r.in = rl
	return r, nil
}

func newREPL(ev *calc.Evaluator, cfg Config, out io.Writer) *REPL {
	unit := cfg.Unit
	if unit == "" {
		unit = "s"
	}
	return &REPL{
		ev:    ev,
		out:   out,
		grain: cfg.Grain,
		unit:  unit,
	}
}

// Stdout returns a writer that coordinates with the readline input.
func (r *REPL) Stdout() io.Writer {
	return r.rl.Stdout()
}

// Run starts the interactive loop. It returns when the user quits, input
// ends, or ctx is cancelled; cancellation closes the input so a blocked
// Readline returns immediately.
func (r *REPL) Run(ctx context.Context) {
	var closeOnce sync.Once
	closeInput := func() {
		closeOnce.Do(func() { r.in.Close() })
	}
	defer closeInput()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			closeInput()
		case <-done:
		}
	}()

	fmt.Fprintln(r.out, `Duration calculator. Type "help" for commands.`)

	for {
		line, err := r.in.Readline()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(r.out, "Exiting...")
			return
		}

		if !r.Handle(line) {
			return
		}
	}
}

// Handle processes one input line. It returns false when the user asked
// to quit.
func (r *REPL) Handle(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		r.printHelp()

	case "quit", "exit", "q":
		return false

	case "last":
		r.cmdLast()

	case "units":
		r.cmdUnits()

	case "grain":
		r.cmdGrain(args)

	case "in":
		r.cmdIn(args)

	case "session":
		fmt.Fprintln(r.out, r.ev.SessionID())

	default:
		r.eval(input)
	}
	return true
}

func (r *REPL) eval(expr string) {
	if r.grain > 0 {
		expr = fmt.Sprintf("%s trunc %s", expr, r.grain)
	}
	d, err := r.ev.Eval(expr)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "= %s (%dns)\n", d, d.Nanoseconds())
}

func (r *REPL) cmdLast() {
	d, ok := r.ev.Last()
	if !ok {
		fmt.Fprintln(r.out, "No previous result")
		return
	}
	fmt.Fprintf(r.out, "= %s (%dns)\n", d, d.Nanoseconds())
}

func (r *REPL) cmdUnits() {
	for _, u := range duration.Units() {
		fmt.Fprintf(r.out, "  %-3s %dns\n", u.Suffix, u.Size.Nanoseconds())
	}
}

func (r *REPL) cmdGrain(args []string) {
	if len(args) == 0 {
		if r.grain == 0 {
			fmt.Fprintln(r.out, "Grain: off")
		} else {
			fmt.Fprintf(r.out, "Grain: %s\n", r.grain)
		}
		return
	}
	if strings.EqualFold(args[0], "off") {
		r.grain = 0
		fmt.Fprintln(r.out, "Grain: off")
		return
	}

	g, err := r.ev.Parse(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "Error: %q: %v\n", args[0], err)
		return
	}
	if g <= 0 {
		fmt.Fprintln(r.out, "Error: grain must be positive")
		return
	}
	r.grain = g
	fmt.Fprintf(r.out, "Grain: %s\n", r.grain)
}

func (r *REPL) cmdIn(args []string) {
	unit := r.unit
	if len(args) > 0 {
		unit = args[0]
	}
	d, ok := r.ev.Last()
	if !ok {
		fmt.Fprintln(r.out, "No previous result")
		return
	}
	v, err := calc.Convert(d, unit)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "= %s%s\n", strconv.FormatFloat(v, 'g', -1, 64), unit)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `
Duration Calculator Commands:
  Expressions:
    <expr>             - Evaluate, e.g. 1h30m - 45s trunc 1m
                         Operators: + - trunc; functions: abs neg
                         _ is the previous result

  Results:
    last               - Show the previous result
    in [unit]          - Show the previous result in ns, us, ms, s, m or h
    grain [d|off]      - Truncate every result to a multiple of d

  General:
    units              - List unit suffixes
    session            - Show the journal session ID
    help               - Show this help
    quit               - Exit`)
}
