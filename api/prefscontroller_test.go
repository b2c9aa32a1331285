package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"aicompass/prefs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	values map[string]string
}

func (m *memKV) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func newPrefsRouter(store *prefs.Store) *gin.Engine {
	r := gin.New()
	RegisterPrefsRoutes(r, store)
	return r
}

func TestPrefsEndpointsUnavailableWithoutStore(t *testing.T) {
	r := newPrefsRouter(nil)
	for _, path := range []string{"/api/search/history", "/api/favorites"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

func TestSearchHistoryRoundTrip(t *testing.T) {
	r := newPrefsRouter(prefs.New(&memKV{values: map[string]string{}}))

	for _, term := range []string{"chatgpt", "claude", "chatgpt"} {
		w := doJSON(t, r, http.MethodPost, "/api/search/history", map[string]any{"term": term})
		require.Equal(t, http.StatusOK, w.Code)
	}

	var got struct {
		Items []string `json:"items"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/search/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"chatgpt", "claude"}, got.Items)

	w = doJSON(t, r, http.MethodDelete, "/api/search/history?term=claude", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"chatgpt"}, got.Items)

	w = doJSON(t, r, http.MethodDelete, "/api/search/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got.Items)
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	r := newPrefsRouter(prefs.New(&memKV{values: map[string]string{}}))

	var got struct {
		Favorited bool     `json:"favorited"`
		Items     []string `json:"items"`
	}
	w := doJSON(t, r, http.MethodPost, "/api/favorites/toggle", map[string]any{"id": "tool-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Favorited)
	assert.Equal(t, []string{"tool-1"}, got.Items)

	w = doJSON(t, r, http.MethodPost, "/api/favorites/toggle", map[string]any{"id": "tool-1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Favorited)
	assert.Empty(t, got.Items)
}

func TestToggleFavoriteRequiresID(t *testing.T) {
	r := newPrefsRouter(prefs.New(&memKV{values: map[string]string{}}))
	w := doJSON(t, r, http.MethodPost, "/api/favorites/toggle", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
