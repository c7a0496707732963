// Command nanodur parses, formats and computes with nanosecond durations.
//
// Usage:
//
//	nanodur [global flags] <command> [flags] <args>
//
// Commands:
//
//	parse    Parse a duration and show its nanosecond count
//	format   Format a nanosecond count
//	eval     Evaluate a duration expression
//	convert  Express a duration in a unit
//	repl     Start the interactive calculator
//	journal  Inspect a calculation journal (view, stats, export, filter)
//
// Examples:
//
//	# Canonical form
//	nanodur parse 61m61s
//
//	# Arithmetic, evaluated left to right
//	nanodur eval 1h30m - 45s trunc 1m
//
//	# Record every operation to a journal and look at it later
//	nanodur -journal calc.dlog eval abs -5m + 1s
//	nanodur journal view -op eval calc.dlog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nanodur/nanodur-go/cmd/nanodur/commands"
	"github.com/nanodur/nanodur-go/cmd/nanodur/interactive"
	"github.com/nanodur/nanodur-go/pkg/calc"
	"github.com/nanodur/nanodur-go/pkg/config"
	durlog "github.com/nanodur/nanodur-go/pkg/log"
)

const usage = `nanodur - Nanosecond Duration Calculator

Usage:
  nanodur [global flags] <command> [flags] <args>

Commands:
  parse    Parse a duration and show its nanosecond count
  format   Format a nanosecond count
  eval     Evaluate a duration expression
  convert  Express a duration in a unit
  repl     Start the interactive calculator
  journal  Inspect a calculation journal (view, stats, export, filter)

Global flags:
  -config string      YAML config file
  -journal string     Append a CBOR journal of every operation to this file
  -log-level string   Log level: debug, info, warn, error

Use "nanodur <command> -help" for more information about a command.
`

var cfg config.Config

func main() {
	global := flag.NewFlagSet("nanodur", flag.ExitOnError)
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := global.String("config", "", "YAML config file")
	journalPath := global.String("journal", "", "Journal file (CBOR)")
	logLevel := global.String("log-level", "", "Log level: debug, info, warn, error")

	if err := global.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if global.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	cfg, err = config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *journalPath != "" {
		cfg.Journal = *journalPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	cmd := global.Arg(0)
	args := global.Args()[1:]

	switch cmd {
	case "parse":
		runParse(args)
	case "format":
		runFormat(args)
	case "eval":
		runEval(args)
	case "convert":
		runConvert(args)
	case "repl":
		runREPL(args)
	case "journal":
		runJournal(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		log.SetFlags(log.Ltime)
		slogLevel = slog.LevelWarn
	case "error":
		log.SetFlags(log.Ltime)
		slogLevel = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}

// newEvaluator builds an evaluator that reports to the configured journal
// and to slog. The returned function closes the journal.
func newEvaluator() (*calc.Evaluator, func()) {
	console := durlog.NewSlogAdapter(slog.Default())

	if cfg.Journal == "" {
		return calc.NewEvaluator(console), func() {}
	}

	journal, err := durlog.NewFileLogger(cfg.Journal)
	if err != nil {
		log.Fatalf("Failed to open journal: %v", err)
	}
	log.Printf("Journaling to: %s", cfg.Journal)

	ev := calc.NewEvaluator(durlog.NewMultiLogger(journal, console))
	return ev, func() {
		if err := journal.Err(); err != nil {
			log.Printf("Journal write failed: %v", err)
		}
		journal.Close()
	}
}

func subcommandUsage(fs *flag.FlagSet, text string) {
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, text)
		fs.PrintDefaults()
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// runCalc runs fn with a journaled evaluator, closing the journal before
// exiting on error.
func runCalc(fn func(*calc.Evaluator) error) {
	ev, closeJournal := newEvaluator()
	err := fn(ev)
	closeJournal()
	if err != nil {
		fail(err)
	}
}

func runParse(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	subcommandUsage(fs, `nanodur parse - Parse a duration and show its nanosecond count

Usage:
  nanodur parse <duration>

`)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one duration required")
		fs.Usage()
		os.Exit(1)
	}

	runCalc(func(ev *calc.Evaluator) error {
		return commands.RunParse(ev, fs.Arg(0), os.Stdout)
	})
}

func runFormat(args []string) {
	fs := flag.NewFlagSet("format", flag.ExitOnError)
	subcommandUsage(fs, `nanodur format - Format a nanosecond count

Usage:
  nanodur format <nanoseconds>

`)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one nanosecond count required")
		fs.Usage()
		os.Exit(1)
	}

	runCalc(func(ev *calc.Evaluator) error {
		return commands.RunFormat(ev, fs.Arg(0), os.Stdout)
	})
}

func runEval(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	subcommandUsage(fs, `nanodur eval - Evaluate a duration expression

Usage:
  nanodur eval <expr...>

Operators are evaluated left to right: + - trunc.
Prefix functions: abs, neg.

`)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: expression required")
		fs.Usage()
		os.Exit(1)
	}

	expr := strings.Join(fs.Args(), " ")
	runCalc(func(ev *calc.Evaluator) error {
		return commands.RunEval(ev, expr, os.Stdout)
	})
}

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	subcommandUsage(fs, `nanodur convert - Express a duration in a unit

Usage:
  nanodur convert [flags] <duration>

Flags:
`)
	unit := fs.String("unit", cfg.Unit, "Target unit (ns, us, ms, s, m, h)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one duration required")
		fs.Usage()
		os.Exit(1)
	}

	runCalc(func(ev *calc.Evaluator) error {
		return commands.RunConvert(ev, *unit, fs.Arg(0), os.Stdout)
	})
}

func runREPL(args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	subcommandUsage(fs, `nanodur repl - Start the interactive calculator

Usage:
  nanodur repl [flags]

Flags:
`)
	prompt := fs.String("prompt", cfg.Prompt, "Prompt text")
	history := fs.String("history", cfg.History, "History file")
	grain := cfg.Grain
	fs.Var(&grain, "grain", "Truncate every result to a multiple of this duration")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if grain < 0 {
		fail(fmt.Errorf("grain %s must not be negative", grain))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ev, closeJournal := newEvaluator()
	defer closeJournal()

	repl, err := interactive.New(ev, interactive.Config{
		Prompt:      *prompt,
		HistoryFile: *history,
		Grain:       grain,
		Unit:        cfg.Unit,
	})
	if err != nil {
		log.Printf("Failed to start REPL: %v", err)
		return
	}
	log.SetOutput(repl.Stdout())

	repl.Run(ctx)
}

func runJournal(args []string) {
	const journalUsage = `nanodur journal - Inspect a calculation journal

Usage:
  nanodur journal <view|stats|export|filter> [flags] <file.dlog>
`
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, journalUsage)
		os.Exit(1)
	}

	sub := args[0]
	fs := flag.NewFlagSet("journal "+sub, flag.ExitOnError)
	subcommandUsage(fs, journalUsage+"\nFlags:\n")

	var opts commands.FilterOptions
	addFilterFlags := func() {
		fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
		fs.StringVar(&opts.Operation, "op", "", "Filter by operation (parse, format, abs, neg, add, sub, truncate, eval)")
		fs.BoolVar(&opts.ErrorsOnly, "errors", false, "Only failed operations")
		fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
		fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	}

	var format, output *string
	switch sub {
	case "view":
		addFilterFlags()
	case "stats":
	case "export":
		addFilterFlags()
		format = fs.String("format", "jsonl", "Output format (jsonl, csv)")
		output = fs.String("o", "", "Output file (default: stdout)")
	case "filter":
		addFilterFlags()
		output = fs.String("o", "", "Output journal (required)")
	default:
		fmt.Fprintf(os.Stderr, "Unknown journal command: %s\n", sub)
		fmt.Fprint(os.Stderr, journalUsage)
		os.Exit(1)
	}

	if err := fs.Parse(args[1:]); err != nil {
		os.Exit(1)
	}
	path := fs.Arg(0)
	if path == "" {
		path = cfg.Journal
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: journal file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(opts)
	if err != nil {
		fail(err)
	}

	switch sub {
	case "view":
		err = commands.RunView(path, filter, os.Stdout)
	case "stats":
		err = commands.RunStats(path, os.Stdout)
	case "export":
		err = withOutput(*output, func(w io.Writer) error {
			return commands.RunExport(path, *format, filter, w)
		})
	case "filter":
		if *output == "" {
			fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
			fs.Usage()
			os.Exit(1)
		}
		err = commands.RunFilter(path, *output, filter, os.Stdout)
	}
	if err != nil {
		fail(err)
	}
}

// withOutput runs fn against the named file, or stdout when name is empty.
func withOutput(name string, fn func(io.Writer) error) error {
	if name == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
