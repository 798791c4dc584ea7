package items

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/cabeard21/ao-bin-dumps/internal/entities/albion"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
	redisclient "github.com/cabeard21/ao-bin-dumps/internal/redis"
)

const (
	// Hash of unique name -> item definition JSON
	itemsKey = "catalog:items"
	// Hash of quality level -> item power bonus
	qualityKey = "catalog:quality"

	errUniqueNameEmpty = "unique name cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis items repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed items repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if len(input.Items) == 0 {
		return nil, errors.InvalidArgument("at least one item is required")
	}

	itemFields := make(map[string]interface{}, len(input.Items))
	for _, item := range input.Items {
		if item == nil || item.UniqueName == "" {
			return nil, errors.InvalidArgument(errUniqueNameEmpty)
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal item %s", item.UniqueName)
		}
		itemFields[item.UniqueName] = data
	}

	qualityFields := make(map[string]interface{}, len(input.QualityBonuses))
	for level, bonus := range input.QualityBonuses {
		qualityFields[strconv.Itoa(level)] = strconv.FormatFloat(bonus, 'f', -1, 64)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, itemsKey, qualityKey)
	pipe.HSet(ctx, itemsKey, itemFields)
	if len(qualityFields) > 0 {
		pipe.HSet(ctx, qualityKey, qualityFields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save catalog snapshot")
	}

	return &SaveOutput{ItemCount: len(itemFields)}, nil
}

func (r *redisRepository) Load(ctx context.Context) (*LoadOutput, error) {
	rawItems, err := r.client.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load catalog items")
	}
	if len(rawItems) == 0 {
		return nil, errors.NotFound("catalog snapshot not found")
	}

	names := make([]string, 0, len(rawItems))
	for name := range rawItems {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]*albion.ItemDefinition, 0, len(names))
	for _, name := range names {
		var item albion.ItemDefinition
		if err := json.Unmarshal([]byte(rawItems[name]), &item); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal item %s", name)
		}
		items = append(items, &item)
	}

	rawQuality, err := r.client.HGetAll(ctx, qualityKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load quality table")
	}

	bonuses := make(map[int]float64, len(rawQuality))
	for field, value := range rawQuality {
		level, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.DataLossf("invalid quality level %q", field)
		}
		bonus, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.DataLossf("invalid bonus %q for quality %d", value, level)
		}
		bonuses[level] = bonus
	}

	return &LoadOutput{
		Items:          items,
		QualityBonuses: bonuses,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.UniqueName == "" {
		return nil, errors.InvalidArgument(errUniqueNameEmpty)
	}

	data, err := r.client.HGet(ctx, itemsKey, input.UniqueName).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.ItemNotFound(input.UniqueName)
		}
		return nil, errors.Wrapf(err, "failed to get item %s", input.UniqueName)
	}

	var item albion.ItemDefinition
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal item %s", input.UniqueName)
	}

	return &GetOutput{Item: &item}, nil
}
