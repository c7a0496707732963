// Package log provides a structured journal of duration calculations.
//
// Every operation performed by the calculator (parse, format, arithmetic,
// whole-expression evaluation) can be recorded as an Event. The journal is
// separate from operational logging (slog): it is a complete,
// machine-readable trace that can be replayed, filtered and exported.
//
// # Basic Usage
//
// Applications configure journaling by providing a Logger implementation:
//
//	// For development: log to console via slog
//	ev := calc.NewEvaluator(log.NewSlogAdapter(slog.Default()))
//
//	// For a persistent journal: write to a binary file
//	fl, _ := log.NewFileLogger("/var/tmp/nanodur.dlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Journal files are a stream of CBOR-encoded events with integer keys,
// conventionally with a .dlog extension. Durations inside events are
// encoded as integer nanosecond counts. The "nanodur journal" command
// provides viewing, statistics and export.
package log
