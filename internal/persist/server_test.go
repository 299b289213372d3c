package persist

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, store Store) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(NewServer(store, nil).Handler())
	t.Cleanup(ts.Close)
	return ts, NewClient(ts.URL)
}

func TestSaveAndLoad(t *testing.T) {
	_, c := newTestServer(t, NewMemoryStore())
	ctx := context.Background()

	msg, err := c.Save(ctx, "ada", []int{5, 3, 8, 1})
	require.NoError(t, err)
	assert.Equal(t, "Array saved!", msg)

	got, err := c.Load(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 8, 1}, got)

	users, err := c.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada"}, users)
}

func TestLoadMissingIsEmpty(t *testing.T) {
	ts, c := newTestServer(t, NewMemoryStore())

	got, err := c.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)

	resp, err := http.Get(ts.URL + "/load_array/nobody")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"array":[]}`, string(body))
}

func TestSaveDefaults(t *testing.T) {
	store := NewMemoryStore()
	ts, _ := newTestServer(t, store)

	resp, err := http.Post(ts.URL+"/save_array", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"success","message":"Array saved!"}`, string(body))

	got, err := store.Get(context.Background(), "guest")
	require.NoError(t, err)
	assert.Equal(t, []int{}, got)
}

func TestSaveBadBody(t *testing.T) {
	ts, _ := newTestServer(t, NewMemoryStore())

	resp, err := http.Post(ts.URL+"/save_array", "application/json", strings.NewReader(`[`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t, NewMemoryStore())

	resp, err := http.Get(ts.URL + "/save_array")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

type failingStore struct{ *MemoryStore }

func (failingStore) Get(context.Context, string) ([]int, error) {
	return nil, errors.New("disk on fire")
}

func TestClientStatusError(t *testing.T) {
	_, c := newTestServer(t, &failingStore{NewMemoryStore()})

	_, err := c.Load(context.Background(), "ada")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "load", se.Op)
}

func TestClientUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewClient(url).Save(context.Background(), "ada", []int{1})
	assert.Error(t, err)
}

func TestLocal(t *testing.T) {
	l := Local{Store: NewMemoryStore()}
	ctx := context.Background()

	msg, err := l.Save(ctx, "", []int{2, 1})
	require.NoError(t, err)
	assert.Equal(t, SavedMessage, msg)

	got, err := l.Load(ctx, "guest")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, got)
}
