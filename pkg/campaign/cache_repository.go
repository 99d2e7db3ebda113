package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jordanlanch/campaignforge/pkg/cache"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

// CachedRepository wraps a Repository with a Redis read cache for single
// campaign lookups. Writes invalidate, reads populate. List queries always
// hit the database.
type CachedRepository struct {
	Repository

	cache *cache.Client
	ttl   time.Duration
	log   logger.Logger
}

var _ Repository = (*CachedRepository)(nil)

func NewCachedRepository(inner Repository, c *cache.Client, ttl time.Duration, log logger.Logger) *CachedRepository {
	return &CachedRepository{Repository: inner, cache: c, ttl: ttl, log: log}
}

func campaignCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("campaign:%s", id)
}

// cachedCampaign shadows the content map with its storage encoding so the
// cached JSON round-trips through the typed decoder.
type cachedCampaign struct {
	*Campaign
	Content json.RawMessage `json:"content"`
}

func encodeCampaign(c *Campaign) ([]byte, error) {
	contentJSON, err := content.EncodeMap(c.Content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(cachedCampaign{Campaign: c, Content: contentJSON})
}

func decodeCampaign(data []byte) (*Campaign, error) {
	env := cachedCampaign{Campaign: &Campaign{}}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	contents, err := content.DecodeMap(env.Content)
	if err != nil {
		return nil, err
	}
	env.Campaign.Content = contents
	return env.Campaign, nil
}

func (r *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	key := campaignCacheKey(id)

	raw, err := r.cache.Get(ctx, key)
	if err == nil {
		c, decodeErr := decodeCampaign([]byte(raw))
		if decodeErr == nil {
			return c, nil
		}
		r.log.Warn("dropping undecodable cached campaign", "key", key, "error", decodeErr)
		_ = r.cache.Delete(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn("campaign cache read failed", "key", key, "error", err)
	}

	c, err := r.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if encoded, encErr := encodeCampaign(c); encErr == nil {
		if setErr := r.cache.Set(ctx, key, encoded, r.ttl); setErr != nil {
			r.log.Warn("campaign cache write failed", "key", key, "error", setErr)
		}
	}
	return c, nil
}

func (r *CachedRepository) Update(ctx context.Context, c *Campaign) error {
	if err := r.Repository.Update(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.ID)
	return nil
}

func (r *CachedRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, launchedAt *time.Time) error {
	if err := r.Repository.UpdateStatus(ctx, id, status, launchedAt); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedRepository) UpdateMetrics(ctx context.Context, id uuid.UUID, metrics map[string]int64) error {
	if err := r.Repository.UpdateMetrics(ctx, id, metrics); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// InvalidateAll clears every cached campaign, for bulk operations like the
// seeder.
func (r *CachedRepository) InvalidateAll(ctx context.Context) error {
	return r.cache.DeletePattern(ctx, "campaign:*")
}

func (r *CachedRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, campaignCacheKey(id)); err != nil {
		r.log.Warn("campaign cache invalidation failed", "id", id, "error", err)
	}
}
