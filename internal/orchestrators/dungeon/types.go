package dungeon

import (
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons"
)

// GenerateDungeonInput defines the request for generating a dungeon
type GenerateDungeonInput struct {
	TemplateID string
	ModifierID string
	// Seed drives the whole generation run. Zero means "source one from
	// the clock"; callers that want a resumable run keep the seed from
	// the output.
	Seed int64
	TTL  time.Duration
}

// GenerateDungeonOutput defines the response for generating a dungeon
type GenerateDungeonOutput struct {
	Record   *dungeons.DungeonRecord
	Instance *entities.DungeonInstance
}

// GetDungeonInput defines the request for fetching a stored dungeon
type GetDungeonInput struct {
	DungeonID string
}

// GetDungeonOutput defines the response for fetching a stored dungeon.
// The instance is regenerated from the record's seed, so it is
// structurally identical to the originally returned one.
type GetDungeonOutput struct {
	Record   *dungeons.DungeonRecord
	Instance *entities.DungeonInstance
}

// ResumeDungeonInput defines the request for resuming a stored dungeon
type ResumeDungeonInput struct {
	DungeonID string
}

// ResumeDungeonOutput defines the response for resuming a stored dungeon
type ResumeDungeonOutput struct {
	Record   *dungeons.DungeonRecord
	Instance *entities.DungeonInstance
}

// GetDungeonStatsInput defines the request for reading a stored
// dungeon's stats snapshot
type GetDungeonStatsInput struct {
	DungeonID string
}

// GetDungeonStatsOutput defines the response for reading a stored
// dungeon's stats snapshot
type GetDungeonStatsOutput struct {
	DungeonID  string
	TemplateID string
	ModifierID string
	Stats      entities.DungeonStats
}

// ExpireDungeonInput defines the request for discarding a dungeon
type ExpireDungeonInput struct {
	DungeonID string
}

// ExpireDungeonOutput defines the response for discarding a dungeon
type ExpireDungeonOutput struct {
	Deleted bool
}

// ListTemplatesInput defines the request for listing known templates
type ListTemplatesInput struct{}

// ListTemplatesOutput defines the response for listing known templates
type ListTemplatesOutput struct {
	TemplateIDs []string
}
