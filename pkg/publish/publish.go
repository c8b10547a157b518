// Package publish pushes rendered inventories to redis
package publish

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/pkg/dmi"
)

const (
	// DefaultMaxElapsedTime is how long a publish is retried before giving up
	DefaultMaxElapsedTime = 2 * time.Minute
)

// Store is where inventories are written to
type Store interface {
	Set(key string, value []byte) error
}

// Publisher writes inventories under a single key
type Publisher struct {
	store Store
	key   string

	newBackOff func() backoff.BackOff
}

// NewPublisher creates a publisher writing to store under key
func NewPublisher(store Store, key string) *Publisher {
	return &Publisher{
		store: store,
		key:   key,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.MaxInterval = 30 * time.Second
			exp.MaxElapsedTime = DefaultMaxElapsedTime
			return exp
		},
	}
}

// Publish serializes the inventory and writes it, retrying with an
// exponential back off until it succeeds, the back off gives up or ctx is
// done.
func (p *Publisher) Publish(ctx context.Context, inventory *dmi.DMI) error {
	data, err := json.Marshal(inventory)
	if err != nil {
		return errors.Wrap(err, "failed to serialize inventory")
	}

	bo := backoff.WithContext(p.newBackOff(), ctx)
	err = backoff.RetryNotify(func() error {
		return p.store.Set(p.key, data)
	}, bo, retryNotify)

	if err != nil {
		return errors.Wrapf(err, "failed to publish inventory to '%s'", p.key)
	}

	log.Info().Str("key", p.key).Int("size", len(data)).Msg("inventory published")
	return nil
}

func retryNotify(err error, d time.Duration) {
	log.Warn().Err(err).Str("sleep", d.String()).Msg("failed to publish inventory")
}

// RedisStore is a Store backed by a redis server
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the redis server at address. Addresses that
// start with unix:// or / are unix sockets.
func NewRedisStore(address string) *RedisStore {
	opts := redis.Options{
		Network: "tcp",
		Addr:    address,
	}

	if strings.HasPrefix(address, "unix://") || strings.HasPrefix(address, "/") {
		opts.Network = "unix"
		opts.Addr = strings.TrimPrefix(address, "unix://")
	}

	return &RedisStore{client: redis.NewClient(&opts)}
}

// Set implements Store
func (r *RedisStore) Set(key string, value []byte) error {
	return r.client.Set(key, value, 0).Err()
}

// Close closes the connection to redis
func (r *RedisStore) Close() error {
	return r.client.Close()
}
