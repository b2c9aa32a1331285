package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"aicompass/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySendsAuthAndRange(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"ChatGPT","slug":"chatgpt"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")
	var rows []types.Tool
	err := c.Query(context.Background(), Tools, Params{Page: 1, PageSize: 12}, &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "chatgpt", rows[0].Slug)

	require.NotNil(t, got)
	assert.Equal(t, "/rest/v1/tools", got.URL.Path)
	assert.Equal(t, "anon-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", got.Header.Get("Authorization"))
	assert.Equal(t, "items", got.Header.Get("Range-Unit"))
	assert.Equal(t, "0-11", got.Header.Get("Range"))
}

func TestQueryWithCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-11/57")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")
	var rows []types.Tool
	count, err := c.QueryWithCount(context.Background(), Tools, Params{Page: 1, PageSize: 12}, &rows)
	require.NoError(t, err)
	assert.Equal(t, 57, count)
}

func TestParseContentRangeTotal(t *testing.T) {
	cases := []struct {
		header  string
		want    int
		wantErr bool
	}{
		{"0-11/57", 57, false},
		{"*/0", 0, false},
		{"0-0/1", 1, false},
		{"*/*", 0, false},
		{"garbage", 0, true},
		{"0-11/x", 0, true},
	}
	for _, c := range cases {
		got, err := parseContentRangeTotal(c.header)
		if c.wantErr {
			assert.Error(t, err, c.header)
			continue
		}
		require.NoError(t, err, c.header)
		assert.Equal(t, c.want, got, c.header)
	}
}

func TestAPIErrorCarriesUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate key value violates unique constraint"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "service-role-key")
	err := c.Insert(context.Background(), "tools", map[string]any{"name": "x"}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "duplicate key value violates unique constraint", apiErr.Message)
}

func TestUpdateSendsPatchWithFilter(t *testing.T) {
	var method, rawQuery, prefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		rawQuery = r.URL.RawQuery
		prefer = r.Header.Get("Prefer")
		w.Write([]byte(`[{"id":"42","name":"Renamed"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "service-role-key")
	var out []types.Tool
	err := c.Update(context.Background(), "tools",
		map[string][]string{"id": {"eq.42"}},
		map[string]any{"name": "Renamed"}, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Renamed", out[0].Name)

	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "id=eq.42", rawQuery)
	assert.Equal(t, "return=representation", prefer)
}

func TestQueryPropagatesBuildError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, "anon-key")
	var rows []types.Tool
	err := c.Query(context.Background(), Tools, Params{Filters: map[string]any{"bogus": 1}}, &rows)
	assert.ErrorIs(t, err, ErrUnknownFilter)
	// Rejected before any remote call.
	assert.Equal(t, 0, calls)
}
