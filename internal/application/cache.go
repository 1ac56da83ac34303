package application

import (
	"context"
	"time"
)

// Cache is implemented by helpers.RedisCache. GetJSON reports a miss with false.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
