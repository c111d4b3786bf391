// Command inspect-session dumps the stored session snapshots from
// Redis for debugging. Run with: go run scripts/inspect-session.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	ids, err := client.SMembers(ctx, "session:index").Result()
	if err != nil {
		log.Fatal("Failed to read session index:", err)
	}
	if len(ids) == 0 {
		fmt.Println("no stored sessions")
		return
	}

	for _, id := range ids {
		data, err := client.Get(ctx, "session:"+id).Result()
		if err != nil {
			fmt.Printf("%s: MISSING (index is stale): %v\n", id, err)
			continue
		}

		var pretty map[string]any
		if err := json.Unmarshal([]byte(data), &pretty); err != nil {
			fmt.Printf("%s: CORRUPT: %v\n", id, err)
			continue
		}

		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Printf("--- %s ---\n%s\n", id, out)
	}
}
