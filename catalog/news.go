package catalog

import (
	"context"
	"sync"

	"aicompass/supabase"
	"aicompass/types"
)

// News reads the `news` collection. Breaking items and daily digests
// share the table, distinguished by the category column.
type News struct {
	client *supabase.Client

	mu       sync.RWMutex
	breaking []types.NewsItem
	daily    []types.NewsItem
}

// NewNews creates the news service over an anonymous-key client.
func NewNews(client *supabase.Client) *News {
	return &News{client: client}
}

// Breaking loads breaking-news items, newest date first. Extra
// parameters (pagination, filters) pass through; the category
// discriminant is forced. Failures degrade to an empty list.
func (s *News) Breaking(ctx context.Context, p supabase.Params) []types.NewsItem {
	rows := s.fetch(ctx, types.NewsCategoryBreaking, p)
	s.mu.Lock()
	s.breaking = rows
	s.mu.Unlock()
	return rows
}

// Daily loads daily-digest items, newest date first. Failures degrade
// to an empty list.
func (s *News) Daily(ctx context.Context, p supabase.Params) []types.NewsItem {
	rows := s.fetch(ctx, types.NewsCategoryDaily, p)
	s.mu.Lock()
	s.daily = rows
	s.mu.Unlock()
	return rows
}

func (s *News) fetch(ctx context.Context, category string, p supabase.Params) []types.NewsItem {
	if p.Filters == nil {
		p.Filters = map[string]any{}
	}
	p.Filters["category"] = category

	var rows []types.NewsItem
	err := s.client.Query(ctx, supabase.News, p, &rows)
	rows, _ = resolve("fetch "+category+" news", ReturnEmpty, rows, err, nil)
	return rows
}
