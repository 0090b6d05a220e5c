package discount

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Catalog reads discounts by code through the cache. Only previews read from
// it; redemption always goes to the database.
type Catalog struct {
	repo  domain.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewCatalog(repo domain.Repository, c cache.Cache, ttl time.Duration) *Catalog {
	return &Catalog{repo: repo, cache: c, ttl: ttl}
}

func (c *Catalog) ByCode(ctx context.Context, code string) (*models.Discount, error) {
	code = domain.NormalizeCode(code)
	if code == "" {
		return nil, httperr.ErrValidation("code", "is required")
	}

	key := cache.DiscountCodeKey(code)

	var cached models.Discount
	found, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discount cache read failed")
	}
	if found {
		return &cached, nil
	}

	d, err := c.repo.GetDiscountByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("discount_not_found")
	}
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, d, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discount cache write failed")
	}
	return d, nil
}

// Invalidate drops cached entries for the given codes.
func (c *Catalog) Invalidate(ctx context.Context, codes ...string) {
	keys := make([]string, 0, len(codes))
	for _, code := range codes {
		if code != "" {
			keys = append(keys, cache.DiscountCodeKey(code))
		}
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("discount cache invalidation failed")
	}
}
