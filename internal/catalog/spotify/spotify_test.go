package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/abyss/pkg/retrylimit"
)

type fakeAPI struct {
	tokens   atomic.Int32
	failures atomic.Int32 // 503s to return before succeeding
	server   *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok || id != "id" || secret != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client"}`))
			return
		}
		f.tokens.Add(1)
		writeJSON(w, map[string]any{"access_token": "tok", "token_type": "Bearer", "expires_in": 3600})
	})

	mux.HandleFunc("GET /v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.failures.Load() > 0 {
			f.failures.Add(-1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch q := r.URL.Query(); {
		case q.Get("q") == "nothing":
			writeJSON(w, map[string]any{"tracks": map[string]any{"items": []any{}}})
		case q.Get("type") == "track":
			writeJSON(w, map[string]any{"tracks": map[string]any{"items": []any{map[string]any{
				"id": "t1", "name": "Reckoner", "duration_ms": 290000, "explicit": false,
				"artists": []any{map[string]any{"name": "Radiohead"}},
				"album":   map[string]any{"id": "a1", "name": "In Rainbows", "release_date": "2007-10-10"},
			}}}})
		case q.Get("type") == "album":
			writeJSON(w, map[string]any{"albums": map[string]any{"items": []any{map[string]any{"id": "a1"}}}})
		}
	})

	mux.HandleFunc("GET /v1/tracks/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "t1" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"status":400,"message":"invalid id"}}`))
			return
		}
		writeJSON(w, map[string]any{"id": "t1", "name": "Reckoner", "duration_ms": 290000})
	})

	mux.HandleFunc("GET /v1/albums/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "a1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"status":404,"message":"non existing id"}}`))
			return
		}
		writeJSON(w, map[string]any{
			"id": "a1", "name": "In Rainbows", "release_date": "2007",
			"copyrights": []any{map[string]any{"text": "2007 XL", "type": "P"}},
			"tracks": map[string]any{"items": []any{
				map[string]any{"name": "15 Step", "duration_ms": 237000},
				map[string]any{"name": "Bodysnatchers", "duration_ms": 242000},
			}},
		})
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client(id, secret string) *Client {
	return New(id, secret,
		WithBaseURLs(f.server.URL+"/v1", f.server.URL+"/token"),
		WithRetry(retrylimit.Config{MaxAttempts: 3, Multiplier: 2}),
	)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestSearchTrack(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client("id", "secret")

	track, err := c.SearchTrack(context.Background(), "reckoner")
	require.NoError(t, err)
	assert.Equal(t, "Reckoner", track.Name)
	assert.Equal(t, []string{"Radiohead"}, ArtistNames(track.Artists))
	assert.Equal(t, 290*time.Second, track.Duration())

	_, err = c.SearchTrack(context.Background(), "reckoner")
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.tokens.Load(), "token is cached")
}

func TestSearchTrackNotFound(t *testing.T) {
	api := newFakeAPI(t)
	_, err := api.client("id", "secret").SearchTrack(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchAlbum(t *testing.T) {
	api := newFakeAPI(t)
	album, err := api.client("id", "secret").SearchAlbum(context.Background(), "in rainbows")
	require.NoError(t, err)

	assert.Equal(t, "In Rainbows", album.Name)
	assert.Len(t, album.Tracks.Items, 2)
	assert.Equal(t, 479*time.Second, album.Length())
	assert.Equal(t, "Performance", album.Copyrights[0].Label())

	released, ok := album.Released()
	require.True(t, ok)
	assert.Equal(t, 2007, released.Year())
}

func TestAlbumNotFound(t *testing.T) {
	api := newFakeAPI(t)
	_, err := api.client("id", "secret").Album(context.Background(), "zzz")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "non existing id", se.Message)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrackByID(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client("id", "secret")

	track, err := c.Track(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Reckoner", track.Name)

	_, err = c.Track(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
}

func TestRetriesServerErrors(t *testing.T) {
	api := newFakeAPI(t)
	api.failures.Store(2)

	track, err := api.client("id", "secret").SearchTrack(context.Background(), "reckoner")
	require.NoError(t, err)
	assert.Equal(t, "t1", track.ID)
}

func TestBadCredentialsAreNotRetried(t *testing.T) {
	api := newFakeAPI(t)
	_, err := api.client("id", "wrong").SearchTrack(context.Background(), "reckoner")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Invalid client", se.Message)
	assert.Equal(t, int32(0), api.tokens.Load())
}
