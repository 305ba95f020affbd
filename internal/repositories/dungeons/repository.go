// Package dungeons provides repository interface and types for generated
// dungeon records. A record stores only what resuming a run needs — the
// template, modifier, and seed — plus the aggregate stats; the instance
// itself is regenerated deterministically from the seed on demand.
package dungeons

import (
	"context"
	"time"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=dungeonsmock github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons Repository

// DungeonRecord is the persisted footprint of one generated dungeon
type DungeonRecord struct {
	// ID of the dungeon record, assigned by the orchestrator
	ID string

	// Generation inputs: enough to regenerate the identical instance
	TemplateID string
	ModifierID string
	Seed       int64

	// Aggregate stats snapshot for the rewards/completion tracker
	Stats entities.DungeonStats

	// When this record was created
	CreatedAt time.Time

	// When this record expires; an exited dungeon is simply allowed
	// to lapse
	ExpiresAt time.Time
}

// CreateInput contains parameters for storing a dungeon record
type CreateInput struct {
	Record *DungeonRecord
	TTL    time.Duration
}

// CreateOutput contains the result of storing a dungeon record
type CreateOutput struct {
	Record *DungeonRecord
}

// GetInput contains parameters for retrieving a dungeon record
type GetInput struct {
	ID string
}

// GetOutput contains the result of retrieving a dungeon record
type GetOutput struct {
	Record *DungeonRecord
}

// DeleteInput contains parameters for deleting a dungeon record
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a dungeon record
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for dungeon record storage
type Repository interface {
	// Create stores a new dungeon record with the specified TTL
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a dungeon record by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a dungeon record
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
