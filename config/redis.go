package config

import (
	"context"
	"time"

	"rentals/services/logger"

	"github.com/redis/go-redis/v9"
)

// Hàm kết nối đến Redis; trả về nil khi cache bị tắt
func ConnectRedis(ctx context.Context, cfg RedisConfig, log logger.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		log.Warn("REDIS_ADDR is not set, caching disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	log.Info("Kết nối Redis thành công: %s", res)
	return rdb, nil
}
