package initializers

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// RDB stays nil when REDIS_ADDR is unset; callers treat a nil client as a
// cache miss.
var RDB *redis.Client

func ConnectToRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, catalog caching disabled.")
		return
	}

	RDB = redis.NewClient(&redis.Options{Addr: addr})
	log.Println("Connected to redis at", addr)
}
