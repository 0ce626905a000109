// Package trello is a thin read-only client for the Trello REST API,
// covering the board data needed to reconstruct card movement history.
package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"cardtrail/internal/logging"
)

// DefaultBaseURL is the public Trello API root.
const DefaultBaseURL = "https://api.trello.com/1"

// actionFilter limits board actions to card creation and list moves.
const actionFilter = "updateCard:idList,createCard"

// actionLimit is the maximum page size the actions endpoint allows.
const actionLimit = "1000"

// APIError is returned when the Trello API answers with a non-2xx status.
type APIError struct {
	Endpoint string
	Status   int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trello: %s returned status %d", e.Endpoint, e.Status)
}

// Client talks to the Trello API with key/token query authentication.
type Client struct {
	baseURL string
	key     string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API root (used for tests and mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets a structured logger for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// NewClient creates a Trello API client.
func NewClient(key, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		key:     key,
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.key)
	query.Set("token", c.token)

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}

	c.logger.Debug("Trello API request", "endpoint", endpoint)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// Lists fetches all lists of a board.
func (c *Client) Lists(ctx context.Context, boardID string) ([]List, error) {
	var lists []List
	if err := c.get(ctx, "boards/"+boardID+"/lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Cards fetches all cards of a board.
func (c *Client) Cards(ctx context.Context, boardID string) ([]Card, error) {
	var cards []Card
	if err := c.get(ctx, "boards/"+boardID+"/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Actions fetches the board's card creation and list-move actions.
func (c *Client) Actions(ctx context.Context, boardID string) ([]Action, error) {
	query := url.Values{}
	query.Set("filter", actionFilter)
	query.Set("limit", actionLimit)

	var envelopes []actionEnvelope
	if err := c.get(ctx, "boards/"+boardID+"/actions", query, &envelopes); err != nil {
		return nil, err
	}

	actions := make([]Action, 0, len(envelopes))
	for _, env := range envelopes {
		action, err := env.toAction()
		if err != nil {
			// A malformed payload loses one event, not the whole run.
			c.logger.Warn("Skipping undecodable action", "action_id", env.ID, "err", err)
			continue
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// Snapshot fetches lists, cards and actions for a board in one call.
func (c *Client) Snapshot(ctx context.Context, boardID string) (*Snapshot, error) {
	lists, err := c.Lists(ctx, boardID)
	if err != nil {
		return nil, err
	}
	cards, err := c.Cards(ctx, boardID)
	if err != nil {
		return nil, err
	}
	actions, err := c.Actions(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{BoardID: boardID, Lists: lists, Cards: cards, Actions: actions}, nil
}
