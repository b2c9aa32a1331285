package catalog

import (
	"context"
	"log"
	"sync"

	"aicompass/supabase"
	"aicompass/types"
)

// Categories reads the `categories` collection.
type Categories struct {
	client *supabase.Client

	mu     sync.RWMutex
	loaded []types.Category
}

// NewCategories creates the categories service over an anonymous-key
// client.
func NewCategories(client *supabase.Client) *Categories {
	return &Categories{client: client}
}

// Fetch returns all categories ordered by name. On failure it serves the
// built-in fallback dataset: category navigation renders on every page
// and must never come up blank.
func (s *Categories) Fetch(ctx context.Context) []types.Category {
	var rows []types.Category
	err := s.client.Query(ctx, supabase.Categories, supabase.Params{}, &rows)
	rows, _ = resolve("fetch categories", ReturnFallback, rows, err, FallbackCategories())
	if err == nil {
		s.mu.Lock()
		s.loaded = rows
		s.mu.Unlock()
	}
	return rows
}

// FetchE is Fetch with errors propagated and no fallback.
func (s *Categories) FetchE(ctx context.Context) ([]types.Category, error) {
	var rows []types.Category
	err := s.client.Query(ctx, supabase.Categories, supabase.Params{}, &rows)
	rows, err = resolve("fetch categories", Propagate, rows, err, nil)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.loaded = rows
	s.mu.Unlock()
	return rows, nil
}

// BySlug returns the category with the given slug, or nil when absent.
// A dangling category reference on a tool resolves to nil here rather
// than an error. The in-memory holder is consulted first.
func (s *Categories) BySlug(ctx context.Context, slug string) *types.Category {
	s.mu.RLock()
	for i := range s.loaded {
		if s.loaded[i].Slug == slug {
			cat := s.loaded[i]
			s.mu.RUnlock()
			return &cat
		}
	}
	s.mu.RUnlock()

	var rows []types.Category
	err := s.client.Query(ctx, supabase.Categories, supabase.Params{
		Filters: map[string]any{"slug": slug},
		Limit:   1,
	}, &rows)
	if err != nil {
		log.Printf("catalog: fetch category by slug %q failed: %v", slug, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}
