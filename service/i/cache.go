package i

import "context"

// ResultCache memoizes encoded solver results by key.
type ResultCache interface {
	// Do returns the cached value for key, or calls compute, stores its value and
	// returns it. Concurrent callers for the same key compute it once.
	Do(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, error)
}
