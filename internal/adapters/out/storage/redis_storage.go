package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// RedisStorage keeps the per-user local storage entries as plain Redis strings.
type RedisStorage struct {
	client *redis.Client
	prefix string
	logger out.LoggerPort
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Storage.RedisAddr,
		Password: cfg.Storage.RedisPassword,
		DB:       cfg.Storage.RedisDB,
	})
}

func NewRedisStorage(client *redis.Client, prefix string, logger out.LoggerPort) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: prefix,
		logger: logger.WithModule("RedisStorage"),
	}
}

// key is "<prefix>:<role>:<userId>:<item>".
func (s *RedisStorage) key(user domain.UserKey, item string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, user.String(), item)
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) GetItem(ctx context.Context, user domain.UserKey, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(user, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error("storage.redis.get_failed", out.LogFields{
			"user":  user.String(),
			"key":   key,
			"error": err.Error(),
		})
		return "", false, err
	}
	return value, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, user domain.UserKey, key, value string) error {
	if err := s.client.Set(ctx, s.key(user, key), value, 0).Err(); err != nil {
		s.logger.Error("storage.redis.set_failed", out.LogFields{
			"user":  user.String(),
			"key":   key,
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (s *RedisStorage) RemoveItems(ctx context.Context, user domain.UserKey, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	redisKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		redisKeys = append(redisKeys, s.key(user, key))
	}
	if err := s.client.Del(ctx, redisKeys...).Err(); err != nil {
		s.logger.Error("storage.redis.remove_failed", out.LogFields{
			"user":  user.String(),
			"keys":  keys,
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
