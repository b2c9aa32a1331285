package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"aicompass/catalog"
	"aicompass/supabase"
	"aicompass/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedNewsDefaultsToBreaking(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"n1","title":"Story","category":"breaking"}]`))
	}))
	defer srv.Close()

	r := gin.New()
	RegisterNewsRoutes(r, catalog.NewNews(supabase.New(srv.URL, "anon-key")))

	var got struct {
		Items []types.NewsItem `json:"items"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/news/saved?source=TechWire", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)

	assert.Equal(t, "eq.breaking", query.Get("category"))
	assert.Equal(t, "eq.TechWire", query.Get("source"))
	assert.Equal(t, "date.desc", query.Get("order"))
}

func TestSavedNewsRejectsUnknownCategory(t *testing.T) {
	r := gin.New()
	RegisterNewsRoutes(r, catalog.NewNews(supabase.New("http://localhost:1", "anon-key")))

	w := doJSON(t, r, http.MethodGet, "/api/news/saved?category=weekly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
