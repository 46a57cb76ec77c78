package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

var ErrCacheMiss = errors.New("cache miss")

func InitRedis(redisAddress string, redisUsername string, redisPassword string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// Cache keeps resolved schedule records so screens polling every minute do
// not hit postgres or the upstream API.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func scheduleKey(location string, day time.Time) string {
	return fmt.Sprintf("athan:schedule:%s:%s", location, model.DayOf(day).Format("2006-01-02"))
}

func (c *Cache) Get(ctx context.Context, location string, day time.Time) (model.ScheduleRecord, error) {
	raw, err := c.client.Get(ctx, scheduleKey(location, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.ScheduleRecord{}, ErrCacheMiss
	}
	if err != nil {
		return model.ScheduleRecord{}, err
	}

	var rec model.ScheduleRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Warn().Err(err).Str("location", location).Msg("dropping undecodable cache entry")
		_ = c.client.Del(ctx, scheduleKey(location, day)).Err()
		return model.ScheduleRecord{}, ErrCacheMiss
	}
	return rec, nil
}

func (c *Cache) Set(ctx context.Context, rec model.ScheduleRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	if err := c.client.Set(ctx, scheduleKey(rec.Location, rec.Day), data, c.ttl).Err(); err != nil {
		log.Error().Err(err).Str("location", rec.Location).Msg("failed to cache schedule")
		return err
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, location string, day time.Time) error {
	return c.client.Del(ctx, scheduleKey(location, day)).Err()
}
