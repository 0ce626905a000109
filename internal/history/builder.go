// Package history reconstructs per-card journeys from raw board events.
//
// The input is an unordered set of creation and move events; the output is,
// for each card, the chronological sequence of list names it visited.
package history

import (
	"sort"
	"time"
)

// MoveEvent is a single timestamped record of a card being created in a list
// or moved between lists. FromList is empty for creation events.
type MoveEvent struct {
	CardID   string
	Time     time.Time
	FromList string
	ToList   string
}

// Journey is the ordered sequence of lists one card passed through.
// It always contains at least one entry.
type Journey struct {
	CardID string
	Lists  []string
}

// Transitions returns the number of consecutive-pair steps in the journey.
func (j Journey) Transitions() int {
	if len(j.Lists) == 0 {
		return 0
	}
	return len(j.Lists) - 1
}

// Build groups events by card, orders each group chronologically and derives
// the card's journey from the destination list of every event in turn.
//
// Events with no destination list are skipped (unknown list ids resolve to an
// empty name upstream). If the earliest surviving event for a card is a move
// rather than a creation, its source list seeds the journey so the movement
// itself is not lost. Cards whose events are all skipped produce no journey.
//
// The returned journeys preserve the order in which cards were first seen in
// the input, which keeps downstream tally ordering deterministic.
func Build(events []MoveEvent) []Journey {
	grouped := make(map[string][]MoveEvent)
	var cardOrder []string

	for _, ev := range events {
		if ev.CardID == "" {
			continue
		}
		if _, seen := grouped[ev.CardID]; !seen {
			cardOrder = append(cardOrder, ev.CardID)
		}
		grouped[ev.CardID] = append(grouped[ev.CardID], ev)
	}

	journeys := make([]Journey, 0, len(cardOrder))
	for _, cardID := range cardOrder {
		evs := grouped[cardID]
		sort.SliceStable(evs, func(i, j int) bool {
			return evs[i].Time.Before(evs[j].Time)
		})

		var lists []string
		for _, ev := range evs {
			if ev.ToList == "" {
				continue
			}
			if len(lists) == 0 && ev.FromList != "" {
				lists = append(lists, ev.FromList)
			}
			lists = append(lists, ev.ToList)
		}

		if len(lists) == 0 {
			continue
		}
		journeys = append(journeys, Journey{CardID: cardID, Lists: lists})
	}

	return journeys
}
