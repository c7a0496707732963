package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes journal events to an slog.Logger.
// Useful for development when you want to see calculations in the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a SlogAdapter that writes to logger at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs at level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger. Failed operations are logged
// at Warn level or above.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("op", event.Operation.String()),
	}

	if event.Input != "" {
		attrs = append(attrs, slog.String("input", event.Input))
	}
	if event.Output != "" {
		attrs = append(attrs, slog.String("output", event.Output))
	}
	if len(event.Operands) > 0 {
		operands := make([]string, len(event.Operands))
		for i, d := range event.Operands {
			operands[i] = d.String()
		}
		attrs = append(attrs, slog.Any("operands", operands))
	}
	if event.Result != nil {
		attrs = append(attrs,
			slog.String("result", event.Result.String()),
			slog.Int64("result_ns", event.Result.Nanoseconds()),
		)
	}
	if event.Elapsed != 0 {
		attrs = append(attrs, slog.Duration("elapsed", event.Elapsed.Std()))
	}

	level := a.level
	if event.Failed() {
		attrs = append(attrs, slog.String("error", event.Error))
		level = max(level, slog.LevelWarn)
	}

	a.logger.LogAttrs(context.Background(), level, "calc", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
