// Package pipeline maps raw board list names onto a canonical hiring
// pipeline and cleans card journeys so they read as forward progress.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownStage is the placeholder for list names that cannot be resolved.
const UnknownStage = "Unknown"

// Mapping matches raw list names against keywords and rewrites them to a
// canonical stage.
type Mapping struct {
	Keywords []string `yaml:"keywords"`
	Stage    string   `yaml:"stage"`
}

// Layout describes the board's pipeline: its ordered stages, terminal
// outcome states, name mappings and the presentation hints used when
// rendering ranked SankeyMATIC output.
type Layout struct {
	Stages   []string          `yaml:"stages"`
	Finals   []string          `yaml:"final_states"`
	Mappings []Mapping         `yaml:"mappings"`
	Ranks    map[string]int    `yaml:"ranks"`
	Colors   map[string]string `yaml:"colors"`
}

// Default returns the built-in job application pipeline layout.
func Default() *Layout {
	return &Layout{
		Stages: []string{
			"Applications",
			"Screening",
			"Technical assessment",
			"Final rounds",
			"Offers",
		},
		Finals: []string{"Accepted", "Rejected", "Rejected by me", "Discriminated"},
		Mappings: []Mapping{
			{Keywords: []string{"apply", "application", "sent"}, Stage: "Applications"},
			{Keywords: []string{"screen", "contact"}, Stage: "Screening"},
			{Keywords: []string{"technical", "assessment"}, Stage: "Technical assessment"},
			{Keywords: []string{"final", "rounds"}, Stage: "Final rounds"},
			{Keywords: []string{"offer", "negotiation"}, Stage: "Offers"},
			{Keywords: []string{"accept"}, Stage: "Accepted"},
			{Keywords: []string{"reject"}, Stage: "Rejected"},
		},
		Ranks: map[string]int{
			"Rejected":             0,
			"Rejected by me":       1,
			"Discriminated":        2,
			"Applications":         3,
			"Screening":            4,
			"Technical assessment": 5,
			"Final rounds":         6,
			"Offers":               7,
			"Accepted":             8,
			"Waiting":              9,
		},
		Colors: map[string]string{
			"Rejected":       "#ff4d4d",
			"Rejected by me": "#ff4d4d",
			"Discriminated":  "#ff4d4d",
			"Waiting":        "#cccccc",
			"Accepted":       "#4CAF50",
		},
	}
}

// Load reads a layout file. An empty path returns the built-in default.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(l.Stages) == 0 {
		return nil, fmt.Errorf("layout %s: stages must not be empty", path)
	}
	return &l, nil
}

// Normalize rewrites a raw list name to its canonical stage. Names with no
// mapping pass through unchanged; empty names become Unknown.
func (l *Layout) Normalize(name string) string {
	if name == "" || name == UnknownStage {
		return UnknownStage
	}

	lower := strings.ToLower(name)

	// "Rejected by me" is more specific than the "reject" keyword.
	if strings.Contains(lower, "rejected by me") || strings.Contains(lower, "reject by me") {
		return "Rejected by me"
	}

	for _, m := range l.Mappings {
		for _, kw := range m.Keywords {
			if strings.Contains(lower, kw) {
				return m.Stage
			}
		}
	}
	return name
}

func (l *Layout) stageIndex(stage string) int {
	for i, s := range l.Stages {
		if s == stage {
			return i
		}
	}
	return -1
}

func (l *Layout) isFinal(stage string) bool {
	for _, s := range l.Finals {
		if s == stage {
			return true
		}
	}
	return false
}

// Clean normalizes a journey and rewrites it as monotonic pipeline progress:
// backward movements are dropped, skipped intermediate stages are filled in,
// the journey stops at the first terminal state, and unresolved stages are
// ignored. The result is never empty; a journey that dissolves entirely
// falls back to the first pipeline stage.
func (l *Layout) Clean(journey []string) []string {
	var clean []string
	maxIndex := -1

	for _, raw := range journey {
		stage := l.Normalize(raw)

		if l.isFinal(stage) {
			clean = append(clean, stage)
			break
		}

		if idx := l.stageIndex(stage); idx >= 0 {
			if idx < maxIndex {
				continue
			}
			if maxIndex != -1 && idx > maxIndex+1 {
				for missing := maxIndex + 1; missing < idx; missing++ {
					clean = append(clean, l.Stages[missing])
				}
			}
			maxIndex = idx
			if len(clean) == 0 || clean[len(clean)-1] != stage {
				clean = append(clean, stage)
			}
			continue
		}

		if strings.Contains(stage, UnknownStage) {
			continue
		}
	}

	if len(clean) == 0 && len(l.Stages) > 0 {
		clean = []string{l.Stages[0]}
	}
	return clean
}
