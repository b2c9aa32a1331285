package catalog

import (
	"context"
	"net/http"
	"testing"

	"aicompass/supabase"
	"aicompass/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsCategoryDiscriminant(t *testing.T) {
	var gotCategory, gotOrder, gotRange string
	store := newFakeStore(t, func(r *http.Request) any {
		gotCategory = r.URL.Query().Get("category")
		gotOrder = r.URL.Query().Get("order")
		gotRange = r.Header.Get("Range")
		return []types.NewsItem{{ID: "n1", Title: "GPT-5 ships", Date: "2026-08-30"}}
	})
	news := NewNews(store.client())

	got := news.Breaking(context.Background(), supabase.Params{Page: 1, PageSize: 12})
	require.Len(t, got, 1)
	assert.Equal(t, "eq.breaking", gotCategory)
	assert.Equal(t, "date.desc", gotOrder)
	assert.Equal(t, "0-11", gotRange)

	news.Daily(context.Background(), supabase.Params{Limit: 5})
	assert.Equal(t, "eq.daily", gotCategory)
}

func TestNewsDegradesToEmpty(t *testing.T) {
	store := newFakeStore(t, func(r *http.Request) any { return nil })
	store.fail.Store(true)
	news := NewNews(store.client())

	got := news.Breaking(context.Background(), supabase.Params{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewsCallerFiltersPassThrough(t *testing.T) {
	var gotSource string
	store := newFakeStore(t, func(r *http.Request) any {
		gotSource = r.URL.Query().Get("source")
		return []types.NewsItem{}
	})
	news := NewNews(store.client())

	news.Breaking(context.Background(), supabase.Params{
		Filters: map[string]any{"source": "OpenAI Blog"},
	})
	assert.Equal(t, "eq.OpenAI Blog", gotSource)
}
