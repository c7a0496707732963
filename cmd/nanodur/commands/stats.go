package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nanodur/nanodur-go/pkg/duration"
	"github.com/nanodur/nanodur-go/pkg/log"
)

// Stats holds aggregate statistics about a journal.
type Stats struct {
	TotalEvents int
	Errors      int
	ByOperation map[log.Operation]*OperationStats
	Sessions    map[string]*SessionStats
	TimeRange   struct {
		Start time.Time
		End   time.Time
	}
}

// OperationStats holds counters for one operation.
type OperationStats struct {
	Count   int
	Errors  int
	Elapsed duration.Duration
}

// SessionStats holds statistics for a single evaluator session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Evals     int
}

// CollectStats reads the whole journal at path.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		ByOperation: make(map[log.Operation]*OperationStats),
		Sessions:    make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		op, ok := stats.ByOperation[event.Operation]
		if !ok {
			op = &OperationStats{}
			stats.ByOperation[event.Operation] = op
		}
		op.Count++
		op.Elapsed = op.Elapsed.Add(event.Elapsed)
		if event.Failed() {
			op.Errors++
			stats.Errors++
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Operation == log.OpEval {
			sess.Evals++
		}
		if event.Timestamp.Before(sess.FirstSeen) {
			sess.FirstSeen = event.Timestamp
		}
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}
	}

	return stats, nil
}

// RunStats analyzes the journal and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Calculation Journal Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Span:       %s\n", duration.FromStd(stats.TimeRange.End.Sub(stats.TimeRange.Start)))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Operation:")
	for _, op := range log.Operations() {
		s, ok := stats.ByOperation[op]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-10s %d", op.String()+":", s.Count)
		if s.Errors > 0 {
			fmt.Fprintf(w, " (%d failed)", s.Errors)
		}
		fmt.Fprintf(w, ", total %s\n", s.Elapsed)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			span := duration.FromStd(s.stats.LastSeen.Sub(s.stats.FirstSeen))
			fmt.Fprintf(w, "  [%s] %d events, %d expressions, span %s\n",
				shortenSessionID(s.id), s.stats.Events, s.stats.Evals, span)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
