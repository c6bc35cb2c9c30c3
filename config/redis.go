package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the rate-limiter backend. The API works without
// Redis; rate limiting is simply disabled when it is unreachable.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, rate limiting disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("WARNING: failed to connect to Redis: %v. Rate limiting disabled.", err)
		return
	}
	RedisClient = client
	log.Println("Redis connected")
}
