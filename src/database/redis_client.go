package database

import (
	"context"
	"fmt"
	"log"

	"PollSensei-Backend/src/config"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var RedisCtx = context.Background()
var RedisURI string

// InitRedis เชื่อมต่อ Redis ถ้ามี REDIS_URI; ไม่มีก็ทำงานต่อแบบไม่มี cache
func InitRedis() error {
	RedisURI = config.Load().RedisURI
	if RedisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Cache, OTP and background jobs are disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     RedisURI, // เช่น localhost:6379
		Password: "",
		DB:       0,
	})
	if _, err := client.Ping(RedisCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}

	RedisClient = client
	log.Println("✅ Redis connected:", RedisURI)
	return nil
}

// UseRedis ใช้ client ที่สร้างไว้แล้ว (เช่น miniredis ในเทสต์)
func UseRedis(client *redis.Client) {
	RedisClient = client
	if client != nil {
		RedisURI = client.Options().Addr
	} else {
		RedisURI = ""
	}
}
