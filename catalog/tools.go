package catalog

import (
	"context"
	"log"
	"math/rand"
	"sync"

	"aicompass/supabase"
	"aicompass/types"
)

// randomWindowFactor sizes the recent window the random sample draws
// from: 5x the requested count (20 rows for a sample of 4).
const randomWindowFactor = 5

// Tools reads the `tools` collection.
type Tools struct {
	client *supabase.Client

	mu     sync.RWMutex
	loaded []types.Tool
}

// NewTools creates the tools service over an anonymous-key client.
func NewTools(client *supabase.Client) *Tools {
	return &Tools{client: client}
}

// FetchE loads tools for the given parameters and remembers the result
// in the in-memory holder. Errors propagate; use Fetch when a blank list
// is an acceptable degradation.
func (s *Tools) FetchE(ctx context.Context, p supabase.Params) ([]types.Tool, error) {
	var rows []types.Tool
	err := s.client.Query(ctx, supabase.Tools, p, &rows)
	rows, err = resolve("fetch tools", Propagate, rows, err, nil)
	if err != nil {
		return nil, err
	}
	s.remember(rows)
	return rows, nil
}

// Fetch is FetchE with the ReturnEmpty policy: any remote failure is
// logged and yields an empty list, never an error.
func (s *Tools) Fetch(ctx context.Context, p supabase.Params) []types.Tool {
	var rows []types.Tool
	err := s.client.Query(ctx, supabase.Tools, p, &rows)
	rows, _ = resolve("fetch tools", ReturnEmpty, rows, err, nil)
	if err == nil {
		s.remember(rows)
	}
	return rows
}

// FetchPage loads one pagination window plus the exact total row count.
// Errors propagate: paginated listings need to distinguish "empty page"
// from "fetch failed".
func (s *Tools) FetchPage(ctx context.Context, p supabase.Params) ([]types.Tool, int, error) {
	var rows []types.Tool
	count, err := s.client.QueryWithCount(ctx, supabase.Tools, p, &rows)
	rows, err = resolve("fetch tools page", Propagate, rows, err, nil)
	if err != nil {
		return nil, 0, err
	}
	s.remember(rows)
	return rows, count, nil
}

// Search matches term case-insensitively as a substring of name or
// description, newest first, capped at 20 rows. Failures degrade to an
// empty list.
func (s *Tools) Search(ctx context.Context, term string) []types.Tool {
	if term == "" {
		return []types.Tool{}
	}
	var rows []types.Tool
	err := s.client.Query(ctx, supabase.Tools, supabase.Params{
		Search: term,
		Order:  "created_at.desc",
		Limit:  20,
	}, &rows)
	rows, _ = resolve("search tools", ReturnEmpty, rows, err, nil)
	return rows
}

// BySlug returns the tool with the given slug, or nil when it does not
// exist (or the lookup fails; read-path failures stay invisible). The
// in-memory holder is consulted first; only a miss issues a remote call.
func (s *Tools) BySlug(ctx context.Context, slug string) *types.Tool {
	s.mu.RLock()
	for i := range s.loaded {
		if s.loaded[i].Slug == slug {
			tool := s.loaded[i]
			s.mu.RUnlock()
			return &tool
		}
	}
	s.mu.RUnlock()

	var rows []types.Tool
	err := s.client.Query(ctx, supabase.Tools, supabase.Params{
		Filters: map[string]any{"slug": slug},
		Limit:   1,
	}, &rows)
	if err != nil {
		log.Printf("catalog: fetch tool by slug %q failed: %v", slug, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// Random returns up to count tools drawn from the most-recent window
// (randomWindowFactor*count rows), shuffled. This is not a uniform
// sample over the full table: older rows never appear when the table
// outgrows the window. The bias toward fresh entries is intentional for
// the homepage slot this feeds.
func (s *Tools) Random(ctx context.Context, count int) []types.Tool {
	if count <= 0 {
		return []types.Tool{}
	}
	var rows []types.Tool
	err := s.client.Query(ctx, supabase.Tools, supabase.Params{
		Order: "created_at.desc",
		Limit: count * randomWindowFactor,
	}, &rows)
	rows, _ = resolve("fetch random tools", ReturnEmpty, rows, err, nil)

	rand.Shuffle(len(rows), func(i, j int) {
		rows[i], rows[j] = rows[j], rows[i]
	})
	if len(rows) > count {
		rows = rows[:count]
	}
	return rows
}

func (s *Tools) remember(rows []types.Tool) {
	s.mu.Lock()
	s.loaded = rows
	s.mu.Unlock()
}
