package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis is the server-side draft store. Keys live under one namespace per
// draft session and expire together after the session TTL.
type Redis struct {
	client *redis.Client
	logger *logrus.Logger
	ttl    time.Duration
}

func NewRedis(client *redis.Client, logger *logrus.Logger, ttl time.Duration) *Redis {
	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) key(sessionID, key string) string {
	return fmt.Sprintf("draft:%s:%s", sessionID, key)
}

func (r *Redis) Put(ctx context.Context, sessionID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", key, err)
	}

	err = r.client.Set(ctx, r.key(sessionID, key), data, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("store draft %s: %w", key, err)
	}

	return nil
}

func (r *Redis) Get(ctx context.Context, sessionID, key string, dest any) bool {
	data, err := r.client.Get(ctx, r.key(sessionID, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.WithError(err).WithField("key", key).Warn("draft store read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Corrupt entries read as absent. Drop the bytes so the next
		// read doesn't decode them again.
		r.logger.WithError(err).WithField("key", key).Warn("discarding corrupt draft entry")
		_ = r.client.Del(ctx, r.key(sessionID, key)).Err()
		return false
	}

	return true
}

func (r *Redis) Remove(ctx context.Context, sessionID, key string) error {
	return r.client.Del(ctx, r.key(sessionID, key)).Err()
}
