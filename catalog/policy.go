// Package catalog holds the fetch orchestrators for the directory's
// remote collections. Each service owns a transient in-memory copy of
// the rows it last loaded; that holder is a page-view cache, not durable
// state. No TTL, no invalidation, discarded with the process.
package catalog

import "log"

// ErrorPolicy says what a fetch does when the remote call fails. Each
// call site picks exactly one policy, so degradation is explicit rather
// than scattered across ad-hoc recover blocks.
type ErrorPolicy int

const (
	// ReturnEmpty swallows the error, logs it, and yields an empty slice.
	ReturnEmpty ErrorPolicy = iota
	// ReturnFallback swallows the error, logs it, and yields the built-in
	// fallback dataset.
	ReturnFallback
	// Propagate surfaces the error to the caller.
	Propagate
)

// resolve applies the policy to a fetch outcome. A nil row slice from a
// successful call is normalized to an empty one; callers never see nil
// data.
func resolve[T any](op string, policy ErrorPolicy, rows []T, err error, fallback []T) ([]T, error) {
	if err == nil {
		if rows == nil {
			rows = []T{}
		}
		return rows, nil
	}
	switch policy {
	case Propagate:
		return nil, err
	case ReturnFallback:
		log.Printf("catalog: %s failed, serving fallback dataset: %v", op, err)
		return fallback, nil
	default:
		log.Printf("catalog: %s failed: %v", op, err)
		return []T{}, nil
	}
}
