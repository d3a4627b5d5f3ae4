package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects to Redis when REDIS_URL is set. The cache is optional:
// without it every read goes straight to MongoDB.
func Init() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("invalid REDIS_URL, caching disabled: %v", err)
		return
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable, caching disabled: %v", err)
		return
	}
	Conn = client
}

func Get(ctx context.Context, key string) (string, bool) {
	if Conn == nil {
		return "", false
	}
	val, err := Conn.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func Set(ctx context.Context, key, val string, ttl time.Duration) {
	if Conn == nil {
		return
	}
	_ = Conn.Set(ctx, key, val, ttl).Err()
}

func Del(ctx context.Context, keys ...string) {
	if Conn == nil {
		return
	}
	_ = Conn.Del(ctx, keys...).Err()
}
