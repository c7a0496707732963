package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/nanodur/nanodur-go/pkg/log"
)

// FilterOptions holds the string form of journal filter flags.
type FilterOptions struct {
	SessionID  string
	Operation  string
	ErrorsOnly bool
	TimeStart  string
	TimeEnd    string
}

// BuildFilter converts flag values into a journal filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		SessionID:  opts.SessionID,
		ErrorsOnly: opts.ErrorsOnly,
	}

	if opts.Operation != "" {
		op, err := log.ParseOperation(opts.Operation)
		if err != nil {
			return filter, err
		}
		filter.Operation = &op
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// RunFilter copies the events of the journal at path that match filter
// into a new journal at output.
func RunFilter(path, output string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output journal: %w", err)
	}
	defer logger.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	if err := logger.Err(); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	fmt.Fprintf(w, "Filtered %d events to %s\n", logger.Written(), output)
	return nil
}
