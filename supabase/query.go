package supabase

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrUnknownFilter is returned when Params.Filters contains a column the
// collection does not recognize. Unrecognized keys are rejected instead
// of being applied blindly as equality predicates.
var ErrUnknownFilter = errors.New("unknown filter column")

// ErrInvalidOrder is returned when Params.Order is not of the form
// "column.asc" or "column.desc".
var ErrInvalidOrder = errors.New("invalid order")

// Collection describes one remote table and the query surface it allows.
type Collection struct {
	Name string

	// SearchColumns are the text columns a free-text search is
	// OR-combined across.
	SearchColumns []string

	// DefaultOrder is applied when Params.Order is empty.
	DefaultOrder string

	// FilterColumns is the allowlist of columns accepted as equality
	// filters.
	FilterColumns []string

	// DefaultSelect is the column list requested when Params.Select is
	// empty.
	DefaultSelect string
}

// The collections this application reads. Write-path tables (authors,
// tags, articles, article_tags) are addressed by name through the client
// and need no query surface here.
var (
	Tools = Collection{
		Name:          "tools",
		SearchColumns: []string{"name", "description"},
		DefaultOrder:  "created_at.desc",
		FilterColumns: []string{"id", "slug", "category_id", "pricing"},
		DefaultSelect: "id,name,slug,description,url,icon,images,tags,pricing,category_id,created_at,updated_at",
	}

	Categories = Collection{
		Name:          "categories",
		SearchColumns: []string{"name", "description"},
		DefaultOrder:  "name.asc",
		FilterColumns: []string{"id", "slug", "parent_id"},
		DefaultSelect: "id,name,slug,icon,description,created_at",
	}

	News = Collection{
		Name:          "news",
		SearchColumns: []string{"title", "content"},
		DefaultOrder:  "date.desc",
		FilterColumns: []string{"id", "category", "source", "date"},
		DefaultSelect: "*",
	}
)

// Params is the generic parameter set a query is derived from. Zero
// values mean "not set".
type Params struct {
	Select string

	// Range mode: both Page (1-based) and PageSize must be set.
	Page     int
	PageSize int

	// Count-limit mode, used when Page/PageSize are not set.
	Limit int

	// Search is a free-text term matched case-insensitively as a
	// substring, OR-combined across the collection's search columns.
	Search string

	// Set-membership filters.
	CategoryIDs []string
	Pricing     []string

	// Filters are column equality predicates. Keys must appear in the
	// collection's FilterColumns; nil values are skipped.
	Filters map[string]any

	// Order is "column.direction" with direction asc or desc.
	Order string
}

// Range is a 0-based row window, inclusive on both ends.
type Range struct {
	From int
	To   int
}

// PageRange computes the row window for a 1-based page. page=1,size=12
// yields [0,11]; To is inclusive, not exclusive.
func PageRange(page, pageSize int) Range {
	from := (page - 1) * pageSize
	return Range{From: from, To: from + pageSize - 1}
}

// Build translates Params into query-string predicates plus an optional
// row range. Predicates are appended in a fixed order: equality filters
// (sorted by column for determinism), set filters, the OR-combined
// search, then ordering; the pagination window is computed last. The
// order of the filters does not change the row set, but pagination must
// come after everything else or the window would be wrong.
func (c Collection) Build(p Params) (url.Values, *Range, error) {
	q := url.Values{}

	sel := p.Select
	if sel == "" {
		sel = c.DefaultSelect
	}
	if sel != "" {
		q.Set("select", sel)
	}

	cols := make([]string, 0, len(p.Filters))
	for col := range p.Filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		v := p.Filters[col]
		if v == nil {
			continue
		}
		if !c.allowsFilter(col) {
			return nil, nil, fmt.Errorf("%w: %q on %s", ErrUnknownFilter, col, c.Name)
		}
		q.Set(col, "eq."+fmt.Sprint(v))
	}

	if len(p.CategoryIDs) > 0 {
		q.Set("category_id", "in.("+strings.Join(p.CategoryIDs, ",")+")")
	}
	if len(p.Pricing) > 0 {
		q.Set("pricing", "in.("+strings.Join(p.Pricing, ",")+")")
	}

	if term := strings.TrimSpace(p.Search); term != "" {
		parts := make([]string, 0, len(c.SearchColumns))
		for _, col := range c.SearchColumns {
			parts = append(parts, col+".ilike.*"+escapeSearchTerm(term)+"*")
		}
		q.Set("or", "("+strings.Join(parts, ",")+")")
	}

	order := p.Order
	if order == "" {
		order = c.DefaultOrder
	}
	if order != "" {
		col, dir, ok := strings.Cut(order, ".")
		if !ok || col == "" || (dir != "asc" && dir != "desc") {
			return nil, nil, fmt.Errorf("%w %q: want column.asc or column.desc", ErrInvalidOrder, p.Order)
		}
		q.Set("order", col+"."+dir)
	}

	// Pagination is applied last.
	if p.Page > 0 && p.PageSize > 0 {
		rng := PageRange(p.Page, p.PageSize)
		return q, &rng, nil
	}
	if p.Limit > 0 {
		q.Set("limit", fmt.Sprint(p.Limit))
	}
	return q, nil, nil
}

func (c Collection) allowsFilter(col string) bool {
	for _, allowed := range c.FilterColumns {
		if col == allowed {
			return true
		}
	}
	return false
}

// escapeSearchTerm neutralizes characters that carry meaning inside a
// PostgREST predicate or an ilike pattern.
func escapeSearchTerm(term string) string {
	r := strings.NewReplacer(
		",", " ",
		"(", " ",
		")", " ",
		"%", `\%`,
		"_", `\_`,
	)
	return strings.TrimSpace(r.Replace(term))
}
