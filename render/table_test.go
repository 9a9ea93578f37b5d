package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uq-transit/uqlakes-board/board"
)

func TestTable(t *testing.T) {
	rows := []board.Row{
		{
			RouteShortName: "412",
			RouteLongName:  "City Loop",
			ServiceID:      "WD",
			Headsign:       "City",
			ScheduledTime:  "8:5",
			ArrivalTime:    "8:7",
			LivePosition:   "-27.5, 153.015",
		},
		{
			RouteShortName: "66",
			RouteLongName:  "Reggatta - RBWH",
			ServiceID:      "WD",
			Headsign:       "RBWH",
			ScheduledTime:  "8:9",
			ArrivalTime:    "On Time",
			LivePosition:   "n/a",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Table(&buf, rows))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Route Short Name")
	assert.Contains(t, lines[0], "Live Position")
	assert.Contains(t, lines[1], "412")
	assert.Contains(t, lines[1], "8:7")
	assert.Contains(t, lines[2], "On Time")
	assert.Contains(t, lines[2], "n/a")
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 1, "header only")
}
