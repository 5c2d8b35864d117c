package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/address-verification/internal/domain"
	"github.com/address-verification/internal/domain/repository"
)

// Option list cache keys. One key per resolver query, so invalidation can
// target exactly the lists a mutation touched.
const (
	KeyProvinces = "addr:provinces"
)

func KeyDistricts(provinceID string) string {
	return "addr:districts:" + provinceID
}

func KeyNeighborhoods(districtID string) string {
	return "addr:neighborhoods:" + districtID
}

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.client,
		logger: redis.logger,
	}
}

func (r *cacheRepository) GetOptions(ctx context.Context, key string) ([]domain.AddressOption, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var options []domain.AddressOption
	if err := json.Unmarshal(val, &options); err != nil {
		r.logger.Error("Failed to unmarshal cached options", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal options: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return options, nil
}

func (r *cacheRepository) SetOptions(ctx context.Context, key string, options []domain.AddressOption, ttl time.Duration) error {
	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache invalidated", zap.Strings("keys", keys))
	return nil
}
