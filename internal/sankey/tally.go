// Package sankey turns card journeys into SankeyMATIC flow data.
//
// It provides two levels: Tally, a plain counter of consecutive list-to-list
// transitions, and FlowGraph, a balanced graph that additionally routes cards
// stuck at intermediate stages into a Waiting sink.
package sankey

import (
	"sort"
)

// Flow is one directed transition between two lists with its accumulated count.
type Flow struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

type pair struct {
	from, to string
}

// Tally accumulates ordered (from, to) transition counts across journeys.
// No-op transitions where source equals destination are ignored.
type Tally struct {
	counts map[pair]int
	order  []pair
}

// NewTally returns an empty transition tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[pair]int)}
}

// Add records a single transition. Self-transitions are dropped.
func (t *Tally) Add(from, to string) {
	if from == "" || to == "" || from == to {
		return
	}
	p := pair{from: from, to: to}
	if _, seen := t.counts[p]; !seen {
		t.order = append(t.order, p)
	}
	t.counts[p]++
}

// AddJourney records every consecutive pair of the journey.
func (t *Tally) AddJourney(lists []string) {
	for i := 0; i+1 < len(lists); i++ {
		t.Add(lists[i], lists[i+1])
	}
}

// Total returns the sum of all transition counts.
func (t *Tally) Total() int {
	sum := 0
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// Flows returns the tallied transitions ordered by descending count,
// ties broken by the order in which each pair was first observed.
func (t *Tally) Flows() []Flow {
	flows := make([]Flow, 0, len(t.order))
	for _, p := range t.order {
		flows = append(flows, Flow{From: p.from, To: p.to, Count: t.counts[p]})
	}
	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Count > flows[j].Count
	})
	return flows
}
