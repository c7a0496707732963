package duration

import "errors"

// Duration errors.
var (
	// ErrFormat is returned (wrapped in a *FormatError) when text does not
	// match the duration grammar.
	ErrFormat = errors.New("bad duration format")

	// ErrDivisionByZero is returned by Truncate for a zero unit.
	ErrDivisionByZero = errors.New("duration: division by zero")
)

// FormatError reports text that is not a valid duration.
// The message is fixed; Input holds the trimmed text that was rejected.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return ErrFormat.Error()
}

// Unwrap lets errors.Is match ErrFormat.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}
