package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/armour_safety/internal/config"
)

// readTimeout должен превышать таймаут BRPOP воркера очереди оповещений
const readTimeout = 10 * time.Second

// NewRedisClient создает клиент Redis по настройкам приложения и проверяет соединение
func NewRedisClient(ctx context.Context, appCfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        appCfg.RedisAddr,
		Password:    appCfg.RedisPass,
		DB:          appCfg.RedisDB,
		PoolSize:    10,
		ReadTimeout: readTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", appCfg.RedisAddr, err)
	}

	return rdb, nil
}
