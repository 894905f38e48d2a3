package redis

import (
	"Quill/internal/api/config"
	"context"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis connects the package-level client. Callers that run without
// redis (tests, tooling) simply never call this; every helper in util.go
// then reports ErrNotReady and the caller falls back to the database.
func InitRedis(cfg config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}

	Rdb = rdb
	return nil
}

func GetRdbClient() *redis.Client {
	return Rdb
}
