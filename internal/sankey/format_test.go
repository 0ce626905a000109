package sankey_test

import (
	"strings"
	"testing"

	"cardtrail/internal/sankey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowLine(t *testing.T) {
	f := sankey.Flow{From: "Screening", To: "Rejected", Count: 3}
	assert.Equal(t, "Screening [3] Rejected", f.Line())
}

func TestDiagramStringPlain(t *testing.T) {
	d := &sankey.Diagram{
		Flows: []sankey.Flow{
			{From: "Screening", To: "Rejected", Count: 2},
			{From: "To apply", To: "Screening", Count: 1},
		},
		TotalCards: 2,
	}

	assert.Equal(t, "Screening [2] Rejected\nTo apply [1] Screening", d.String())
}

func TestDiagramStringEmpty(t *testing.T) {
	d := &sankey.Diagram{}
	assert.True(t, d.Empty())
	assert.Equal(t, "", d.String())
}

func TestDiagramStringRanked(t *testing.T) {
	d := &sankey.Diagram{
		Flows: []sankey.Flow{
			{From: "Screening", To: "Waiting", Count: 1},
			{From: "Applications", To: "Screening", Count: 3},
			{From: "Screening", To: "Accepted", Count: 2},
		},
		Ranks: map[string]int{
			"Applications": 0,
			"Screening":    1,
			"Accepted":     2,
			"Waiting":      3,
		},
		Colors: map[string]string{
			"Waiting":  "#cccccc",
			"Accepted": "#4CAF50",
		},
	}

	out := d.String()
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 7)

	// Flows ordered by (from rank, to rank).
	assert.Equal(t, "Applications [3] Screening", lines[0])
	assert.Equal(t, "Screening [2] Accepted", lines[1])
	assert.Equal(t, "Screening [1] Waiting", lines[2])

	// Color directives follow a blank line, ordered by rank.
	assert.Equal(t, "", lines[3])
	assert.Equal(t, "// Colors", lines[4])
	assert.Equal(t, ":Accepted #4CAF50", lines[5])
	assert.Equal(t, ":Waiting #cccccc", lines[6])
}
