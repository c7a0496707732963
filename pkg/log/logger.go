package log

// Logger receives one Event per calculator operation. The evaluator calls
// Log synchronously after each step, so implementations must be safe for
// concurrent use when several evaluators share one journal.
type Logger interface {
	Log(event Event)
}

// LoggerFunc adapts an ordinary function to the Logger interface.
type LoggerFunc func(event Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) {
	f(event)
}

// NoopLogger discards every event. The zero value is ready to use.
type NoopLogger struct{}

// Log does nothing.
func (NoopLogger) Log(Event) {}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
)
