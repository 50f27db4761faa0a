package cache

import (
	"context"
	"time"
)

// Cache ключи с TTL поверх внешнего хранилища
type Cache interface {
	// SetNX записывает значение только если ключа ещё нет, true - ключ записан сейчас
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
