package selections

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	"github.com/cabeard21/ao-bin-dumps/internal/pkg/clock"
	redisclient "github.com/cabeard21/ao-bin-dumps/internal/redis"
)

const (
	// Key pattern: selection:{id}
	selectionKeyPrefix = "selection:"
	// DefaultTTL keeps a selection around for a day of market movement
	DefaultTTL = 24 * time.Hour

	// Error messages
	errSelectionNil = "selection cannot be nil"
	errIDEmpty      = "selection ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for selections
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Selection == nil {
		return nil, errors.InvalidArgument(errSelectionNil)
	}
	if input.Selection.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := r.clock.Now()
	selection := *input.Selection
	selection.CreatedAt = now
	selection.ExpiresAt = now.Add(ttl)

	data, err := json.Marshal(&selection)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal selection")
	}

	if err := r.client.Set(ctx, buildKey(selection.ID), data, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store selection %s", selection.ID)
	}

	return &CreateOutput{Selection: &selection}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := buildKey(input.ID)
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("selection %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get selection %s", input.ID)
	}

	var selection albion.Selection
	if err := json.Unmarshal([]byte(data), &selection); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal selection")
	}

	// expired by clock even when the key outlived its TTL
	if !selection.ExpiresAt.IsZero() && r.clock.Now().After(selection.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("selection %s has expired", input.ID)
	}

	return &GetOutput{Selection: &selection}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	deleted, err := r.client.Del(ctx, buildKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete selection %s", input.ID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("selection %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func buildKey(id string) string {
	return selectionKeyPrefix + id
}

// GetKey returns the Redis key of a selection
// Exposed for testing purposes
func GetKey(id string) string {
	return buildKey(id)
}
