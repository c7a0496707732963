package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/nanodur/nanodur-go/pkg/duration"
	"github.com/nanodur/nanodur-go/pkg/log"
)

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// RunView prints the matching journal events in human-readable form.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes one event as a header line plus detail lines.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timestampLayout)
	status := "OK"
	if event.Failed() {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s [session:%s] %-8s %s (%s)\n",
		ts, shortenSessionID(event.SessionID), event.Operation, status, event.Elapsed)

	if event.Input != "" {
		fmt.Fprintf(w, "  Input:    %q\n", event.Input)
	}
	if len(event.Operands) > 0 {
		fmt.Fprintf(w, "  Operands: %s\n", joinDurations(event.Operands))
	}
	if event.Result != nil {
		fmt.Fprintf(w, "  Result:   %s (%dns)\n", event.Result, event.Result.Nanoseconds())
	}
	if event.Output != "" {
		fmt.Fprintf(w, "  Output:   %s\n", event.Output)
	}
	if event.Failed() {
		fmt.Fprintf(w, "  Error:    %s\n", event.Error)
	}
	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func joinDurations(ds []duration.Duration) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}
