// Package rediscache keeps the demand heatmap snapshot in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const DefaultHeatmapKey = "fulfillment:heatmap"

type HeatmapCache struct {
	client redis.Cmdable
	key    string
}

func NewHeatmapCache(client redis.Cmdable, key string) *HeatmapCache {
	if key == "" {
		key = DefaultHeatmapKey
	}
	return &HeatmapCache{client: client, key: key}
}

// NewClient connects and pings the server.
func NewClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *HeatmapCache) Load(ctx context.Context) ([]ports.HeatPoint, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load heatmap: %w", err)
	}

	var points []ports.HeatPoint
	if err = json.Unmarshal(data, &points); err != nil {
		return nil, false, fmt.Errorf("decode heatmap: %w", err)
	}
	return points, true, nil
}

// Store replaces the snapshot. A zero ttl keeps it until the next Store.
func (c *HeatmapCache) Store(ctx context.Context, points []ports.HeatPoint, ttl time.Duration) error {
	if points == nil {
		points = []ports.HeatPoint{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	if err = c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("store heatmap: %w", err)
	}
	return nil
}
