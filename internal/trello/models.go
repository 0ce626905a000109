package trello

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Action types relevant to card movement history.
const (
	ActionCreateCard = "createCard"
	ActionUpdateCard = "updateCard"
)

// List is a named workflow column on a board.
type List struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// Card is a unit tracked through lists.
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	ListID string `json:"idList"`
	Closed bool   `json:"closed"`
}

// Entity is a minimal id/name reference embedded in action payloads.
type Entity struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// ActionData is the typed view of an action's loosely-shaped "data" object.
// Which references are present depends on the action type: createCard carries
// Card and List, updateCard with a list change carries ListBefore/ListAfter.
type ActionData struct {
	Card       *Entity `mapstructure:"card"`
	List       *Entity `mapstructure:"list"`
	ListBefore *Entity `mapstructure:"listBefore"`
	ListAfter  *Entity `mapstructure:"listAfter"`
}

// Action is a timestamped board event.
type Action struct {
	ID   string
	Type string
	Date time.Time
	Data ActionData
}

// actionEnvelope is the raw wire shape; the data object is decoded in a
// second pass because its fields vary by action type.
type actionEnvelope struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Date time.Time      `json:"date"`
	Data map[string]any `json:"data"`
}

func (e actionEnvelope) toAction() (Action, error) {
	var data ActionData
	if err := mapstructure.Decode(e.Data, &data); err != nil {
		return Action{}, fmt.Errorf("decode action %s data: %w", e.ID, err)
	}
	return Action{ID: e.ID, Type: e.Type, Date: e.Date, Data: data}, nil
}

// Snapshot bundles everything fetched for one board in a single pass.
type Snapshot struct {
	BoardID string   `json:"board_id"`
	Lists   []List   `json:"lists"`
	Cards   []Card   `json:"cards"`
	Actions []Action `json:"actions"`
}

// ListNames returns the id-to-name index of the snapshot's lists.
func (s *Snapshot) ListNames() map[string]string {
	names := make(map[string]string, len(s.Lists))
	for _, l := range s.Lists {
		names[l.ID] = l.Name
	}
	return names
}
