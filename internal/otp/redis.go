package otp

import (
	"context"
	"fmt"
	"time"

	"school-admin-db/internal/config"
	"school-admin-db/pkg/errors"

	"github.com/go-redis/redis/v8"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return rdb, nil
}

// RedisStore shares codes across instances. Expiry is delegated to the
// key TTL, so an expired code reports as not found rather than expired.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func otpKey(mobile string) string {
	return "otp:" + mobile
}

func (s *RedisStore) Put(ctx context.Context, mobile string) (string, error) {
	code := generateCode()
	if err := s.client.Set(ctx, otpKey(mobile), code, codeTTL).Err(); err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisStore) Verify(ctx context.Context, mobile, code string) error {
	stored, err := s.client.Get(ctx, otpKey(mobile)).Result()
	if err == redis.Nil {
		return errors.ErrOTPNotFound
	}
	if err != nil {
		return err
	}
	if stored != code {
		return errors.ErrOTPMismatch
	}

	return s.client.Del(ctx, otpKey(mobile)).Err()
}
