package cardtrail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cardtrail/internal/history"
	"cardtrail/internal/logging"
	"cardtrail/internal/pipeline"
	"cardtrail/internal/sankey"
	"cardtrail/internal/trello"
)

// Fetcher supplies the board data the generator works on.
// *trello.Client satisfies it, as does the Redis caching decorator.
type Fetcher interface {
	Snapshot(ctx context.Context, boardID string) (*trello.Snapshot, error)
}

// Generator turns a board's action history into SankeyMATIC flow data.
type Generator struct {
	fetcher   Fetcher
	layout    *pipeline.Layout
	logger    *slog.Logger
	normalize bool
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLayout sets the pipeline layout used for normalized output.
func WithLayout(l *pipeline.Layout) Option {
	return func(g *Generator) { g.layout = l }
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithNormalization enables journey cleaning and flow balancing: stage names
// are mapped onto the canonical pipeline, backward movements are dropped and
// stuck cards flow into the Waiting sink.
func WithNormalization(on bool) Option {
	return func(g *Generator) { g.normalize = on }
}

// New creates a Generator reading board data from the given fetcher.
func New(fetcher Fetcher, opts ...Option) (*Generator, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	g := &Generator{
		fetcher: fetcher,
		layout:  pipeline.Default(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Result is the outcome of one generation run.
type Result struct {
	BoardID     string
	Cards       int
	Transitions int
	Diagram     *sankey.Diagram
}

// Empty reports whether the board produced no flows at all.
func (r *Result) Empty() bool {
	return r.Diagram == nil || r.Diagram.Empty()
}

// Output renders the SankeyMATIC payload.
func (r *Result) Output() string {
	if r.Diagram == nil {
		return ""
	}
	return r.Diagram.String()
}

// SummaryMarkdown renders a short markdown report of the run.
func (r *Result) SummaryMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Board %s\n\n", r.BoardID)
	fmt.Fprintf(&b, "- **Cards analyzed:** %d\n", r.Cards)
	fmt.Fprintf(&b, "- **Transitions counted:** %d\n", r.Transitions)
	fmt.Fprintf(&b, "- **Distinct flows:** %d\n", len(r.Diagram.Flows))

	if len(r.Diagram.Flows) > 0 {
		b.WriteString("\n## Top flows\n\n")
		top := r.Diagram.Flows
		if len(top) > 5 {
			top = top[:5]
		}
		for _, f := range top {
			fmt.Fprintf(&b, "1. %s → %s (%d)\n", f.From, f.To, f.Count)
		}
	}
	return b.String()
}

// Generate fetches the board's history, rebuilds each card's journey and
// tallies the list-to-list transitions. An empty board is not an error; the
// result simply carries no flows.
func (g *Generator) Generate(ctx context.Context, boardID string) (*Result, error) {
	snap, err := g.fetcher.Snapshot(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("fetch board %s: %w", boardID, err)
	}

	events := eventsFromSnapshot(snap)
	journeys := history.Build(events)
	journeys = backfillStationaryCards(snap, journeys)

	g.logger.Debug("History rebuilt",
		"board_id", boardID, "events", len(events), "journeys", len(journeys))

	if g.normalize {
		return g.balancedResult(boardID, journeys), nil
	}
	return g.tallyResult(boardID, journeys), nil
}

func (g *Generator) tallyResult(boardID string, journeys []history.Journey) *Result {
	tally := sankey.NewTally()
	for _, j := range journeys {
		tally.AddJourney(j.Lists)
	}
	return &Result{
		BoardID:     boardID,
		Cards:       len(journeys),
		Transitions: tally.Total(),
		Diagram:     &sankey.Diagram{Flows: tally.Flows(), TotalCards: len(journeys)},
	}
}

func (g *Generator) balancedResult(boardID string, journeys []history.Journey) *Result {
	graph := sankey.NewFlowGraph(g.layout.Stages, g.layout.Finals)
	for _, j := range journeys {
		graph.AddJourney(g.layout.Clean(j.Lists))
	}

	flows := graph.Flows()
	transitions := 0
	for _, f := range flows {
		transitions += f.Count
	}
	return &Result{
		BoardID:     boardID,
		Cards:       graph.TotalCards(),
		Transitions: transitions,
		Diagram: &sankey.Diagram{
			Flows:      flows,
			TotalCards: graph.TotalCards(),
			Ranks:      g.layout.Ranks,
			Colors:     g.layout.Colors,
		},
	}
}

// eventsFromSnapshot flattens board actions into move events, resolving list
// ids through the board's list index with the action payload's embedded name
// as fallback. Unresolvable lists leave an empty name and are skipped by the
// history builder.
func eventsFromSnapshot(snap *trello.Snapshot) []history.MoveEvent {
	names := snap.ListNames()
	resolve := func(e *trello.Entity) string {
		if e == nil {
			return ""
		}
		if name, ok := names[e.ID]; ok {
			return name
		}
		return e.Name
	}

	var events []history.MoveEvent
	for _, a := range snap.Actions {
		if a.Data.Card == nil {
			continue
		}
		switch a.Type {
		case trello.ActionCreateCard:
			if a.Data.List == nil {
				continue
			}
			events = append(events, history.MoveEvent{
				CardID: a.Data.Card.ID,
				Time:   a.Date,
				ToList: resolve(a.Data.List),
			})
		case trello.ActionUpdateCard:
			if a.Data.ListBefore == nil || a.Data.ListAfter == nil {
				continue
			}
			events = append(events, history.MoveEvent{
				CardID:   a.Data.Card.ID,
				Time:     a.Date,
				FromList: resolve(a.Data.ListBefore),
				ToList:   resolve(a.Data.ListAfter),
			})
		}
	}
	return events
}

// backfillStationaryCards gives cards outside the action window a length-one
// journey at their current list, so they still count as present on the board.
func backfillStationaryCards(snap *trello.Snapshot, journeys []history.Journey) []history.Journey {
	seen := make(map[string]bool, len(journeys))
	for _, j := range journeys {
		seen[j.CardID] = true
	}

	names := snap.ListNames()
	for _, card := range snap.Cards {
		if seen[card.ID] {
			continue
		}
		name, ok := names[card.ListID]
		if !ok {
			continue
		}
		journeys = append(journeys, history.Journey{CardID: card.ID, Lists: []string{name}})
	}
	return journeys
}
