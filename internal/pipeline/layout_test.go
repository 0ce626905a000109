package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"cardtrail/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	l := pipeline.Default()

	tests := []struct {
		raw  string
		want string
	}{
		{"To apply", "Applications"},
		{"Applications sent", "Applications"},
		{"Phone Screening", "Screening"},
		{"First contact", "Screening"},
		{"Technical assessment", "Technical assessment"},
		{"Final rounds", "Final rounds"},
		{"Offer negotiation", "Offers"},
		{"Accepted", "Accepted"},
		{"Rejected", "Rejected"},
		{"Rejected by me", "Rejected by me"},
		{"I reject by me", "Rejected by me"},
		{"", "Unknown"},
		{"Unknown", "Unknown"},
		{"Backlog", "Backlog"}, // unmapped names pass through
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Normalize(tt.raw))
		})
	}
}

func TestCleanDropsBackwardMovements(t *testing.T) {
	l := pipeline.Default()

	got := l.Clean([]string{"Applications", "Screening", "Applications", "Technical assessment"})
	assert.Equal(t, []string{"Applications", "Screening", "Technical assessment"}, got)
}

func TestCleanFillsSkippedStages(t *testing.T) {
	l := pipeline.Default()

	got := l.Clean([]string{"Applications", "Final rounds"})
	assert.Equal(t, []string{"Applications", "Screening", "Technical assessment", "Final rounds"}, got)
}

func TestCleanStopsAtFirstFinalState(t *testing.T) {
	l := pipeline.Default()

	got := l.Clean([]string{"Applications", "Rejected", "Screening"})
	assert.Equal(t, []string{"Applications", "Rejected"}, got)
}

func TestCleanSkipsUnknownStages(t *testing.T) {
	l := pipeline.Default()

	got := l.Clean([]string{"Applications", "", "Screening"})
	assert.Equal(t, []string{"Applications", "Screening"}, got)
}

func TestCleanNeverReturnsEmpty(t *testing.T) {
	l := pipeline.Default()

	got := l.Clean([]string{"", "Unknown"})
	assert.Equal(t, []string{"Applications"}, got)
}

func TestCleanDeduplicatesConsecutiveStages(t *testing.T) {
	l := pipeline.Default()

	got := l.Clean([]string{"Applications", "Applications", "Screening"})
	assert.Equal(t, []string{"Applications", "Screening"}, got)
}

func TestLoadDefaultsOnEmptyPath(t *testing.T) {
	l, err := pipeline.Load("")
	require.NoError(t, err)
	assert.Equal(t, "Applications", l.Stages[0])
	assert.Contains(t, l.Finals, "Rejected by me")
}

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	content := `
stages: [Todo, Doing, Done]
final_states: [Archived]
mappings:
  - keywords: [in progress]
    stage: Doing
ranks:
  Todo: 0
  Doing: 1
  Done: 2
colors:
  Done: "#00ff00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l, err := pipeline.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Todo", "Doing", "Done"}, l.Stages)
	assert.Equal(t, "Doing", l.Normalize("In Progress column"))
	assert.Equal(t, "#00ff00", l.Colors["Done"])
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := pipeline.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsEmptyStages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colors: {}"), 0o644))

	_, err := pipeline.Load(path)
	assert.Error(t, err)
}
