package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nanodur/nanodur-go/pkg/duration"
	"github.com/nanodur/nanodur-go/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	stats, err := CollectStats(createTestJournal(t, sampleEvents()))
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalEvents)
	assert.Equal(t, 2, stats.Errors)
	require.Len(t, stats.Sessions, 2)
	assert.Equal(t, 4, stats.Sessions[sessionA].Events)
	assert.Equal(t, 1, stats.Sessions[sessionA].Evals)

	parse := stats.ByOperation[log.OpParse]
	require.NotNil(t, parse)
	assert.Equal(t, 2, parse.Count)
	assert.Equal(t, duration.Duration(700), parse.Elapsed)

	eval := stats.ByOperation[log.OpEval]
	require.NotNil(t, eval)
	assert.Equal(t, 2, eval.Count)
	assert.Equal(t, 1, eval.Errors)

	assert.Nil(t, stats.ByOperation[log.OpAbs])
	assert.True(t, stats.TimeRange.Start.Before(stats.TimeRange.End))
}

func TestRunStatsOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunStats(createTestJournal(t, sampleEvents()), &buf))
	output := buf.String()

	for _, want := range []string{
		"Total Events: 6",
		"PARSE:     2, total +700ns",
		"EVAL:      2 (1 failed)",
		"Sessions: 2",
		"[3f2c1a9e] 4 events, 1 expressions, span +3ms",
		"Errors: 2",
		"Span:       +1s1ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
	assert.NotContains(t, output, "ABS:")
}

func TestRunStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunStats(createTestJournal(t, nil), &buf))
	assert.Contains(t, buf.String(), "Total Events: 0")
	assert.NotContains(t, buf.String(), "Time Range")
}

func TestCollectStatsOutOfOrder(t *testing.T) {
	events := sampleEvents()
	// A merged journal: session A's last event written before its first.
	events[0], events[3] = events[3], events[0]

	stats, err := CollectStats(createTestJournal(t, events))
	require.NoError(t, err)

	sess := stats.Sessions[sessionA]
	require.NotNil(t, sess)
	first, last := sampleEvents()[0].Timestamp, sampleEvents()[3].Timestamp
	assert.True(t, sess.FirstSeen.Equal(first), "FirstSeen = %v, want %v", sess.FirstSeen, first)
	assert.True(t, sess.LastSeen.Equal(last), "LastSeen = %v, want %v", sess.LastSeen, last)
	assert.True(t, stats.TimeRange.Start.Equal(first), "TimeRange.Start = %v, want %v", stats.TimeRange.Start, first)

	var buf bytes.Buffer
	printStats(&buf, stats)
	assert.Contains(t, buf.String(), "[3f2c1a9e] 4 events, 1 expressions, span +3ms")
}
