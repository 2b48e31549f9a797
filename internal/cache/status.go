package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/pkg/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	statusKeyPrefix = "shop:status:"

	// StatusChannel carries every published status change.
	StatusChannel = "shop:status:changes"
)

// NewClient connects to the redis instance at url and pings it.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// StatusCache stores evaluated shop statuses and fans out changes over pub/sub
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusCache creates a cache. A zero ttl disables storage but keeps pub/sub.
func NewStatusCache(client *redis.Client, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, ttl: ttl}
}

func statusKey(shopID uuid.UUID) string {
	return statusKeyPrefix + shopID.String()
}

// Get returns the cached status if it was evaluated in the same wall-clock minute as now
// and now has not passed its ValidUntil.
func (c *StatusCache) Get(ctx context.Context, shopID uuid.UUID, now time.Time) (*models.ShopStatus, bool, error) {
	data, err := c.client.Get(ctx, statusKey(shopID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var status models.ShopStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, false, fmt.Errorf("decode cached status: %w", err)
	}
	if !status.EvaluatedAt.Truncate(time.Minute).Equal(now.Truncate(time.Minute)) {
		return nil, false, nil
	}
	if status.ValidUntil != nil && now.After(*status.ValidUntil) {
		return nil, false, nil
	}
	return &status, true, nil
}

func (c *StatusCache) Set(ctx context.Context, status *models.ShopStatus) error {
	if c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKey(status.ShopID), data, c.ttl).Err()
}

func (c *StatusCache) Invalidate(ctx context.Context, shopID uuid.UUID) error {
	return c.client.Del(ctx, statusKey(shopID)).Err()
}

// Publish stores the status and announces it on StatusChannel.
func (c *StatusCache) Publish(ctx context.Context, status *models.ShopStatus) error {
	if err := c.Set(ctx, status); err != nil {
		return fmt.Errorf("cache status: %w", err)
	}

	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, StatusChannel, data).Err()
}

// Subscribe delivers published statuses to handle until ctx ends. It returns once the
// subscription is confirmed.
func (c *StatusCache) Subscribe(ctx context.Context, handle func(models.ShopStatus)) error {
	pubsub := c.client.Subscribe(ctx, StatusChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", StatusChannel, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var status models.ShopStatus
				if err := json.Unmarshal([]byte(msg.Payload), &status); err != nil {
					log.Warn().Err(err).Msg("Dropping malformed status message")
					continue
				}
				handle(status)
			}
		}
	}()

	return nil
}
