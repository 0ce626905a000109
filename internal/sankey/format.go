package sankey

import (
	"fmt"
	"sort"
	"strings"
)

// unrankedStage sorts stages without an explicit rank after ranked ones.
const unrankedStage = 99

// Diagram is the complete flow data for one board, ready to render in the
// SankeyMATIC text format.
type Diagram struct {
	Flows      []Flow
	TotalCards int

	// Ranks orders nodes top to bottom in ranked rendering; Colors adds the
	// trailing node color directives. Both are optional.
	Ranks  map[string]int
	Colors map[string]string
}

// Empty reports whether the diagram has no flows to render.
func (d *Diagram) Empty() bool {
	return len(d.Flows) == 0
}

// Line renders a single flow as SankeyMATIC input.
func (f Flow) Line() string {
	return fmt.Sprintf("%s [%d] %s", f.From, f.Count, f.To)
}

// String renders the diagram, one flow per line, in the order the flows were
// tallied. When ranks are set, flows are ordered by (source rank, target
// rank) instead and the color directives are appended.
func (d *Diagram) String() string {
	flows := make([]Flow, len(d.Flows))
	copy(flows, d.Flows)

	if len(d.Ranks) > 0 {
		sort.SliceStable(flows, func(i, j int) bool {
			fi, fj := d.rank(flows[i].From), d.rank(flows[j].From)
			if fi != fj {
				return fi < fj
			}
			return d.rank(flows[i].To) < d.rank(flows[j].To)
		})
	}

	lines := make([]string, 0, len(flows)+len(d.Colors)+2)
	for _, f := range flows {
		lines = append(lines, f.Line())
	}

	if len(d.Colors) > 0 {
		lines = append(lines, "", "// Colors")
		for _, stage := range d.sortedColorStages() {
			lines = append(lines, fmt.Sprintf(":%s %s", stage, d.Colors[stage]))
		}
	}

	return strings.Join(lines, "\n")
}

func (d *Diagram) rank(stage string) int {
	if r, ok := d.Ranks[stage]; ok {
		return r
	}
	return unrankedStage
}

func (d *Diagram) sortedColorStages() []string {
	stages := make([]string, 0, len(d.Colors))
	for s := range d.Colors {
		stages = append(stages, s)
	}
	sort.Slice(stages, func(i, j int) bool {
		ri, rj := d.rank(stages[i]), d.rank(stages[j])
		if ri != rj {
			return ri < rj
		}
		return stages[i] < stages[j]
	})
	return stages
}
