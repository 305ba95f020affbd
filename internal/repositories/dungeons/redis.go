package dungeons

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
)

const (
	// Key pattern: dungeon:{id}
	recordKeyPrefix = "dungeon:"
	defaultTTL      = 6 * time.Hour

	errRecordNil = "record cannot be nil"
	errIDEmpty   = "record ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
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

// NewRedisRepository creates a new Redis repository for dungeon records
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new dungeon record with the specified TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	record := *input.Record
	record.CreatedAt = now
	record.ExpiresAt = now.Add(ttl)

	recordJSON, err := json.Marshal(&record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal dungeon record")
	}

	key := recordKeyPrefix + record.ID
	if err := r.client.Set(ctx, key, recordJSON, ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store dungeon record in Redis")
	}

	return &CreateOutput{
		Record: &record,
	}, nil
}

// Get retrieves a dungeon record by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := recordKeyPrefix + input.ID

	recordJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("dungeon record not found")
		}
		return nil, errors.Wrapf(err, "failed to get dungeon record from Redis")
	}

	var record DungeonRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal dungeon record")
	}

	if r.clock.Now().After(record.ExpiresAt) {
		// Expired but not yet evicted; clean it up
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFound("dungeon record has expired")
	}

	return &GetOutput{
		Record: &record,
	}, nil
}

// Delete removes a dungeon record
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := recordKeyPrefix + input.ID
	result := r.client.Del(ctx, key)
	if result.Err() != nil {
		return nil, errors.Wrapf(result.Err(), "failed to delete dungeon record from Redis")
	}

	return &DeleteOutput{
		Deleted: result.Val() > 0,
	}, nil
}
