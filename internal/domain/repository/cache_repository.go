package repository

import (
	"context"
	"time"

	"github.com/address-verification/internal/domain"
)

// CacheRepository is the shared read-through cache for resolved option
// lists. A miss is (nil, nil), never an error.
type CacheRepository interface {
	GetOptions(ctx context.Context, key string) ([]domain.AddressOption, error)
	SetOptions(ctx context.Context, key string, options []domain.AddressOption, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
