// Package caches provides small byte-payload caches used to memoize photo
// listings between writes.
package caches

import "context"

// ListingCache stores one serialized listing per key. Implementations degrade
// gracefully: a failed lookup is a miss, never an error surfaced to callers.
type ListingCache interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte)
	Invalidate(ctx context.Context, key string)
}
