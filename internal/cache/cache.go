// cache — необязательный Redis-кэш соответствия refresh-токен -> email.
// Ускоряет операцию refresh (поиск учётки по значению токена), при этом
// источником истины остаётся БД: после попадания в кэш сервис перечитывает
// учётную запись и сверяет сохранённый токен с предъявленным.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache — минимальный контракт кэша refresh-токенов.
type SessionCache interface {
	// Get возвращает email и признак наличия токена в кэше.
	Get(ctx context.Context, token string) (string, bool, error)
	// Set сохраняет соответствие token -> email с TTL (обычно TTL refresh-токена).
	Set(ctx context.Context, token, email string, ttl time.Duration) error
	// Delete удаляет запись о токене (logout/перелогин).
	Delete(ctx context.Context, token string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:rt:".
func NewRedisCache(redisURL, prefix string) (SessionCache, error) {
	if prefix == "" {
		prefix = "auth:rt:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(token string) string { return c.prefix + token }

func (c *redisCache) Get(ctx context.Context, token string) (string, bool, error) {
	email, err := c.rdb.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, err
	}

	return email, true, nil
}

func (c *redisCache) Set(ctx context.Context, token, email string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	return c.rdb.Set(ctx, c.key(token), email, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, c.key(token)).Err()
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}
