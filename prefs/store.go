// Package prefs persists lightweight user preference lists: free-text
// search history and favorited tool ids. Each list lives whole under one
// fixed key and is rewritten in full on every mutation.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	historyKey   = "aicompass:search-history"
	favoritesKey = "aicompass:favorites"

	// historyCap is the number of most-recent search terms kept.
	historyCap = 20
)

// KV is the minimal key-value surface the store needs. Redis backs it in
// production; tests use a map.
type KV interface {
	// Get returns the stored value, or "" with a nil error when the key
	// is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store reads and rewrites the two preference lists.
type Store struct {
	kv KV
}

// New creates a Store over the given key-value backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// History returns search terms, most recent first.
func (s *Store) History(ctx context.Context) ([]string, error) {
	return s.loadList(ctx, historyKey)
}

// AddHistory records a search term: trimmed, de-duplicated, moved to the
// front, list capped at the most recent 20. Blank terms are ignored.
func (s *Store) AddHistory(ctx context.Context, term string) ([]string, error) {
	t := strings.TrimSpace(term)
	if t == "" {
		return s.History(ctx)
	}

	history, err := s.loadList(ctx, historyKey)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(history)+1)
	next = append(next, t)
	for _, h := range history {
		if h != t {
			next = append(next, h)
		}
	}
	if len(next) > historyCap {
		next = next[:historyCap]
	}

	if err := s.saveList(ctx, historyKey, next); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveHistory drops one term from the history.
func (s *Store) RemoveHistory(ctx context.Context, term string) ([]string, error) {
	history, err := s.loadList(ctx, historyKey)
	if err != nil {
		return nil, err
	}
	next := make([]string, 0, len(history))
	for _, h := range history {
		if h != term {
			next = append(next, h)
		}
	}
	if err := s.saveList(ctx, historyKey, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ClearHistory empties the search history.
func (s *Store) ClearHistory(ctx context.Context) error {
	return s.saveList(ctx, historyKey, []string{})
}

// Favorites returns the favorited tool ids.
func (s *Store) Favorites(ctx context.Context) ([]string, error) {
	return s.loadList(ctx, favoritesKey)
}

// ToggleFavorite flips membership of the tool id and reports whether it
// is now favorited.
func (s *Store) ToggleFavorite(ctx context.Context, toolID string) (bool, []string, error) {
	favorites, err := s.loadList(ctx, favoritesKey)
	if err != nil {
		return false, nil, err
	}

	next := make([]string, 0, len(favorites)+1)
	removed := false
	for _, id := range favorites {
		if id == toolID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, toolID)
	}

	if err := s.saveList(ctx, favoritesKey, next); err != nil {
		return false, nil, err
	}
	return !removed, next, nil
}

func (s *Store) loadList(ctx context.Context, key string) ([]string, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("prefs: load %s: %w", key, err)
	}
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		// A corrupted value is unrecoverable; start the list over instead
		// of wedging every request on it.
		return []string{}, nil
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

func (s *Store) saveList(ctx context.Context, key string, list []string) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("prefs: encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("prefs: save %s: %w", key, err)
	}
	return nil
}
