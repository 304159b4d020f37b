package usecase

import (
	"context"
	"time"
)

// SearchCache is the slice of the cache the job listing needs. A nil
// implementation is allowed and means "no caching".
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
