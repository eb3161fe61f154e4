package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis establishes connection to Redis. Redis only backs the
// session revocation list, so a missing or unreachable server is a
// warning, not a startup failure; callers receive nil and fall back to
// in-memory revocation.
func ConnectRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, session revocation list kept in memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unreachable (%v), session revocation list kept in memory", err)
		client.Close()
		return nil
	}

	log.Println("Connected to Redis")
	return client
}
