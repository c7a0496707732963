package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nanodur/nanodur-go/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportToJSONL(t *testing.T) {
	path := createTestJournal(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "jsonl", log.Filter{}, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)

	var sub map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &sub))
	assert.Equal(t, "SUB", sub["Operation"])
	assert.Equal(t, []any{"+1m", "+1s"}, sub["Operands"])
	assert.Equal(t, "+59s", sub["Result"])

	var back log.Event
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &back))
	assert.Equal(t, log.OpEval, back.Operation)
	assert.Equal(t, "1m - 1s", back.Input)
}

func TestExportToCSV(t *testing.T) {
	path := createTestJournal(t, sampleEvents())

	errorsOnly := log.Filter{ErrorsOnly: true}
	var buf bytes.Buffer
	require.NoError(t, RunExport(path, "csv", errorsOnly, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "operation", records[0][2])
	trunc := records[1]
	assert.Equal(t, "2026-01-28T10:15:33.123456Z", trunc[0])
	assert.Equal(t, sessionB, trunc[1])
	assert.Equal(t, "TRUNCATE", trunc[2])
	assert.Equal(t, "+1m, 0s", trunc[4])
	assert.Empty(t, trunc[5])
	assert.Equal(t, "50", trunc[7])
	assert.Equal(t, "duration: division by zero", trunc[8])
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := RunExport(createTestJournal(t, nil), "xml", log.Filter{}, &buf)
	assert.ErrorContains(t, err, "unknown format")
}
