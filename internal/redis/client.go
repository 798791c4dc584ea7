// Package redis wraps the go-redis client so repositories depend on a small
// interface and tests can run against miniredis.
package redis

import (
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures Redis client behavior
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
	// ReadOnly routes reads to replicas in cluster mode
	ReadOnly bool
}

// Open picks the client type from the address list: a redis:// or rediss://
// URL or a single host:port gives a standalone client, several addresses a
// cluster client.
func Open(addrs []string, opts *Options) (Client, error) {
	switch {
	case len(addrs) == 0:
		return nil, errors.New("redis: at least one address is required")
	case len(addrs) == 1 && isURL(addrs[0]):
		return NewClientFromURL(addrs[0], opts)
	case len(addrs) == 1:
		return NewClient(addrs[0], opts)
	default:
		return NewClusterClient(addrs, opts)
	}
}

// NewClient creates a Redis client for a single instance
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}

	redisOpts := &redis.Options{Addr: endpoint}
	applyOptions(redisOpts, opts)

	return redis.NewClient(redisOpts), nil
}

// NewClientFromURL creates a single instance client from a redis:// URL.
// Options override pool settings only; credentials and TLS come from the URL.
func NewClientFromURL(rawURL string, opts *Options) (Client, error) {
	redisOpts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	tlsConfig := redisOpts.TLSConfig
	applyOptions(redisOpts, opts)
	if tlsConfig != nil {
		redisOpts.TLSConfig = tlsConfig
	}

	return redis.NewClient(redisOpts), nil
}

// NewClusterClient creates a Redis client for cluster mode
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.New("redis: at least one endpoint is required")
	}

	if opts == nil {
		opts = &Options{}
	}

	clusterOpts := &redis.ClusterOptions{
		Addrs:        endpoints,
		MinIdleConns: opts.MinIdleConns,
		PoolSize:     opts.PoolSize,
		MaxRetries:   opts.MaxRetries,
		ReadOnly:     opts.ReadOnly,
	}

	if opts.UseTLS {
		clusterOpts.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}

	return redis.NewClusterClient(clusterOpts), nil
}

func applyOptions(redisOpts *redis.Options, opts *Options) {
	if opts == nil {
		return
	}

	redisOpts.MinIdleConns = opts.MinIdleConns
	redisOpts.PoolSize = opts.PoolSize
	redisOpts.ConnMaxIdleTime = opts.ConnMaxIdleTime
	redisOpts.MaxRetries = opts.MaxRetries

	if opts.UseTLS {
		redisOpts.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 // self-signed certs
		}
	}
}

func isURL(addr string) bool {
	return strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://")
}
