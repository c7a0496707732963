package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nanodur/nanodur-go/pkg/duration"
	"github.com/nanodur/nanodur-go/pkg/log"
)

const (
	sessionA = "3f2c1a9e-7b7d-4a43-9a63-1d0b2f6c8e11"
	sessionB = "c0ffee00-0000-4000-8000-000000000001"
)

func createTestJournal(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

func ptr(d duration.Duration) *duration.Duration {
	return &d
}

// sampleEvents is the journal of "1m - 1s" in session A followed by a
// failed "1m trunc 0s" in session B.
func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	at := func(ms int) time.Time { return ts.Add(time.Duration(ms) * time.Millisecond) }

	return []log.Event{
		{Timestamp: at(0), SessionID: sessionA, Operation: log.OpParse, Input: "1m", Result: ptr(duration.Minute), Elapsed: 400},
		{Timestamp: at(1), SessionID: sessionA, Operation: log.OpParse, Input: "1s", Result: ptr(duration.Second), Elapsed: 300},
		{Timestamp: at(2), SessionID: sessionA, Operation: log.OpSub, Operands: []duration.Duration{duration.Minute, duration.Second}, Result: ptr(59 * duration.Second), Elapsed: 100},
		{Timestamp: at(3), SessionID: sessionA, Operation: log.OpEval, Input: "1m - 1s", Result: ptr(59 * duration.Second), Elapsed: 2000},
		{Timestamp: at(1000), SessionID: sessionB, Operation: log.OpTruncate, Operands: []duration.Duration{duration.Minute, 0}, Error: "duration: division by zero", Elapsed: 50},
		{Timestamp: at(1001), SessionID: sessionB, Operation: log.OpEval, Input: "1m trunc 0s", Error: `token 2 "trunc": duration: division by zero`, Elapsed: 900},
	}
}
