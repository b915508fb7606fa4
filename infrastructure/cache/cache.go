package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis. Callers tolerate a nil client; Redis is an
// optional collaborator here.
func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
