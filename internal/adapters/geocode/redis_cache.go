package geocode

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/justinbrick/capstone-project-shipping-api/internal/domain"
	"github.com/justinbrick/capstone-project-shipping-api/internal/ports"
)

// RedisCache is a read-through coordinate cache in front of another geocoder.
// Warehouse addresses repeat on every breakdown, so hits dominate after the
// first request. Cache failures degrade to the underlying geocoder; a broken
// Redis never fails a breakdown on its own.
type RedisCache struct {
	next ports.Geocoder
	rdb  *redis.Client
	ttl  time.Duration
}

func NewRedisCache(next ports.Geocoder, rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{next: next, rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	key := cacheKey(address)

	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if coords, err := decodeCoordinates(raw); err == nil {
			return coords, nil
		}
	}

	coords, err := c.next.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}

	_ = c.rdb.Set(ctx, key, encodeCoordinates(coords), c.ttl).Err()
	return coords, nil
}

func cacheKey(address string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(address))
}

func encodeCoordinates(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func decodeCoordinates(raw string) (domain.Coordinates, error) {
	lat, lon, ok := strings.Cut(raw, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed cache entry %q", raw)
	}

	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed latitude %q: %w", lat, err)
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("malformed longitude %q: %w", lon, err)
	}

	return domain.Coordinates{Lat: latF, Lon: lonF}, nil
}
