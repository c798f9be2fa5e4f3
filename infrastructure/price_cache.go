package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"playbook/ledger-service/domain/entities"
	"playbook/ledger-service/domain/interfaces"
)

// CachedPriceSource wraps the asset price repository with a Redis
// read-through cache. Reads check Redis first and fall back to the
// repository; upserts go to the repository and invalidate the cached entry.
// Cache failures are treated as misses, never as errors.
type CachedPriceSource struct {
	primary interfaces.AssetPriceRepository
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedPriceSource creates a cached wrapper around the price repository
func NewCachedPriceSource(primary interfaces.AssetPriceRepository, rdb *redis.Client, ttl time.Duration) *CachedPriceSource {
	return &CachedPriceSource{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// GetPrice returns the latest price for an asset, or nil if unquoted
func (s *CachedPriceSource) GetPrice(ctx context.Context, asset entities.AssetRef) (*entities.AssetPrice, error) {
	// Try cache
	data, err := s.rdb.Get(ctx, priceKey(asset)).Bytes()
	if err == nil {
		var price entities.AssetPrice
		if json.Unmarshal(data, &price) == nil {
			return &price, nil
		}
	}

	// Cache miss: read from the repository
	price, err := s.primary.GetPrice(ctx, asset)
	if err != nil {
		return nil, err
	}
	if price == nil {
		// Unquoted assets are not negatively cached; the feed may quote
		// them at any moment
		return nil, nil
	}

	s.cachePrice(ctx, price)
	return price, nil
}

// ListPrices returns every quoted price, straight from the repository
func (s *CachedPriceSource) ListPrices(ctx context.Context) ([]*entities.AssetPrice, error) {
	return s.primary.ListPrices(ctx)
}

// UpsertPrice writes to the repository and invalidates the cached entry
func (s *CachedPriceSource) UpsertPrice(ctx context.Context, price *entities.AssetPrice) error {
	if err := s.primary.UpsertPrice(ctx, price); err != nil {
		return err
	}

	// Invalidate; the next read re-populates
	s.rdb.Del(ctx, priceKey(price.Asset()))
	return nil
}

func (s *CachedPriceSource) cachePrice(ctx context.Context, price *entities.AssetPrice) {
	if data, err := json.Marshal(price); err == nil {
		s.rdb.Set(ctx, priceKey(price.Asset()), data, s.ttl)
	}
}

func priceKey(asset entities.AssetRef) string {
	return fmt.Sprintf("price:%s:%s", asset.Type, asset.Name)
}
