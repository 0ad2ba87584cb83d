package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// Options holds the connection settings for the cache server. URL is either a
// redis:// or rediss:// URL or a bare host:port. Password and DB, when set,
// override what the URL carries.
type Options struct {
	URL      string
	Password string
	DB       int
}

func (o Options) redisOptions() (*redis.Options, error) {
	if !strings.Contains(o.URL, "://") {
		return &redis.Options{Addr: o.URL, Password: o.Password, DB: o.DB}, nil
	}
	opts, err := redis.ParseURL(o.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if o.Password != "" {
		opts.Password = o.Password
	}
	if o.DB != 0 {
		opts.DB = o.DB
	}
	return opts, nil
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	ro, err := opts.redisOptions()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(ro)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
