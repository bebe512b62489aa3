package config

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

// GetRedisLock returns nil until ConnectRedis succeeds.
func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis sets the global redis client and lock client. An empty address
// leaves both nil and the caller runs without a cross-process lock.
func ConnectRedis(ctx context.Context, addr string) error {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 20,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping %s: %w", addr, err)
	}

	rdb = client
	locker = redislock.New(client)
	GetLogger().WithField("addr", addr).Info("connected to redis")
	return nil
}

func CloseRedis() {
	if rdb != nil {
		_ = rdb.Close()
	}
}
