package supabase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRange(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		pageSize int
		wantFrom int
		wantTo   int
	}{
		{"first page of 12", 1, 12, 0, 11},
		{"third page of 10", 3, 10, 20, 29},
		{"second page of 1", 2, 1, 1, 1},
		{"large page", 100, 50, 4950, 4999},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rng := PageRange(c.page, c.pageSize)
			assert.Equal(t, c.wantFrom, rng.From)
			// To is inclusive; (page-1)*size + size - 1, not the start of
			// the next window.
			assert.Equal(t, c.wantTo, rng.To)
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	q, rng, err := Tools.Build(Params{})
	require.NoError(t, err)
	assert.Nil(t, rng)
	assert.Equal(t, Tools.DefaultSelect, q.Get("select"))
	assert.Equal(t, "created_at.desc", q.Get("order"))
	assert.Empty(t, q.Get("limit"))

	q, _, err = News.Build(Params{})
	require.NoError(t, err)
	assert.Equal(t, "date.desc", q.Get("order"))
}

func TestBuildPaginationModes(t *testing.T) {
	// Range mode wins when page and pageSize are both set.
	q, rng, err := Tools.Build(Params{Page: 2, PageSize: 12, Limit: 99})
	require.NoError(t, err)
	require.NotNil(t, rng)
	assert.Equal(t, Range{From: 12, To: 23}, *rng)
	assert.Empty(t, q.Get("limit"))

	// Limit mode.
	q, rng, err = Tools.Build(Params{Limit: 20})
	require.NoError(t, err)
	assert.Nil(t, rng)
	assert.Equal(t, "20", q.Get("limit"))

	// Page without pageSize is not range mode.
	_, rng, err = Tools.Build(Params{Page: 3})
	require.NoError(t, err)
	assert.Nil(t, rng)
}

func TestBuildEqualityFilters(t *testing.T) {
	q, _, err := Tools.Build(Params{
		Filters: map[string]any{
			"slug":        "chatgpt",
			"category_id": 7,
			"pricing":     nil, // nil values are skipped
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "eq.chatgpt", q.Get("slug"))
	assert.Equal(t, "eq.7", q.Get("category_id"))
	assert.Empty(t, q.Get("pricing"))
}

func TestBuildRejectsUnknownFilter(t *testing.T) {
	_, _, err := Tools.Build(Params{Filters: map[string]any{"name;drop": "x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFilter)

	// Column valid on one collection is not implicitly valid on another.
	_, _, err = Categories.Build(Params{Filters: map[string]any{"pricing": "free"}})
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestBuildSetFilters(t *testing.T) {
	q, _, err := Tools.Build(Params{
		CategoryIDs: []string{"a", "b", "c"},
		Pricing:     []string{"free", "freemium"},
	})
	require.NoError(t, err)
	assert.Equal(t, "in.(a,b,c)", q.Get("category_id"))
	assert.Equal(t, "in.(free,freemium)", q.Get("pricing"))
}

func TestBuildSearch(t *testing.T) {
	q, _, err := Tools.Build(Params{Search: "chat"})
	require.NoError(t, err)
	assert.Equal(t, "(name.ilike.*chat*,description.ilike.*chat*)", q.Get("or"))

	// News searches its own text columns.
	q, _, err = News.Build(Params{Search: "gpt"})
	require.NoError(t, err)
	assert.Equal(t, "(title.ilike.*gpt*,content.ilike.*gpt*)", q.Get("or"))

	// Predicate metacharacters must not leak into the expression.
	q, _, err = Tools.Build(Params{Search: "a,b(c)%d_e"})
	require.NoError(t, err)
	assert.NotContains(t, q.Get("or"), "(c)")
	assert.Contains(t, q.Get("or"), `\%`)
}

func TestBuildOrder(t *testing.T) {
	q, _, err := Tools.Build(Params{Order: "name.asc"})
	require.NoError(t, err)
	assert.Equal(t, "name.asc", q.Get("order"))

	for _, bad := range []string{"name", "name.up", ".desc"} {
		_, _, err := Tools.Build(Params{Order: bad})
		assert.Error(t, err, "order %q should be rejected", bad)
	}
}
