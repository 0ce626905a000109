package trello_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardtrail/internal/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *trello.Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := trello.NewClient("test-key", "test-token", trello.WithBaseURL(srv.URL))
	return srv, client
}

func TestClientSendsCredentials(t *testing.T) {
	var gotKey, gotToken string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotToken = r.URL.Query().Get("token")
		w.Write([]byte(`[]`))
	})

	_, err := client.Lists(context.Background(), "board1")
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "test-token", gotToken)
}

func TestClientLists(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/board1/lists", r.URL.Path)
		w.Write([]byte(`[{"id":"l1","name":"To apply"},{"id":"l2","name":"Screening","closed":true}]`))
	})

	lists, err := client.Lists(context.Background(), "board1")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "To apply", lists[0].Name)
	assert.True(t, lists[1].Closed)
}

func TestClientCards(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/board1/cards", r.URL.Path)
		w.Write([]byte(`[{"id":"c1","name":"Acme Corp","idList":"l1"}]`))
	})

	cards, err := client.Cards(context.Background(), "board1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "l1", cards[0].ListID)
}

func TestClientActions(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/boards/board1/actions", r.URL.Path)
		assert.Equal(t, "updateCard:idList,createCard", r.URL.Query().Get("filter"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"id":"a2","type":"updateCard","date":"2025-03-01T12:00:05.000Z",
			 "data":{"card":{"id":"c1","name":"Acme"},"listBefore":{"id":"l1","name":"To apply"},"listAfter":{"id":"l2","name":"Screening"}}},
			{"id":"a1","type":"createCard","date":"2025-03-01T12:00:00.000Z",
			 "data":{"card":{"id":"c1","name":"Acme"},"list":{"id":"l1","name":"To apply"}}}
		]`))
	})

	actions, err := client.Actions(context.Background(), "board1")
	require.NoError(t, err)
	require.Len(t, actions, 2)

	move := actions[0]
	assert.Equal(t, trello.ActionUpdateCard, move.Type)
	require.NotNil(t, move.Data.Card)
	assert.Equal(t, "c1", move.Data.Card.ID)
	require.NotNil(t, move.Data.ListBefore)
	assert.Equal(t, "l1", move.Data.ListBefore.ID)
	require.NotNil(t, move.Data.ListAfter)
	assert.Equal(t, "Screening", move.Data.ListAfter.Name)

	create := actions[1]
	assert.Equal(t, trello.ActionCreateCard, create.Type)
	require.NotNil(t, create.Data.List)
	assert.Equal(t, "l1", create.Data.List.ID)
	assert.Nil(t, create.Data.ListBefore)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Lists(context.Background(), "board1")
	require.Error(t, err)

	var apiErr *trello.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClientSnapshot(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/boards/board1/lists":
			w.Write([]byte(`[{"id":"l1","name":"To apply"}]`))
		case "/boards/board1/cards":
			w.Write([]byte(`[{"id":"c1","name":"Acme","idList":"l1"}]`))
		case "/boards/board1/actions":
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	snap, err := client.Snapshot(context.Background(), "board1")
	require.NoError(t, err)
	assert.Equal(t, "board1", snap.BoardID)
	assert.Len(t, snap.Lists, 1)
	assert.Len(t, snap.Cards, 1)
	assert.Empty(t, snap.Actions)
	assert.Equal(t, map[string]string{"l1": "To apply"}, snap.ListNames())
}
