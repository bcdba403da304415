package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options selects the Redis instance holding the client state.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Zero keeps the go-redis default.
	DialTimeout time.Duration
}

// Client wraps the go-redis client; Store implementations take the embedded client.
type Client struct {
	*redis.Client
	addr string
}

// Open creates a client and pings it to validate the connection.
func Open(ctx context.Context, opts Options) (*Client, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return &Client{Client: c, addr: opts.Addr}, nil
}

// Addr returns the address the client was opened with.
func (c *Client) Addr() string {
	return c.addr
}
