// Package dungeon implements the dungeon orchestrator: the service
// surface the lifecycle manager calls to generate, resume, and discard
// dungeon instances.
package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=dungeonmock github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
	"github.com/KirkDiggler/dungeon-api/internal/generator"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons"
	"github.com/KirkDiggler/dungeon-api/internal/templates"
)

// EventDungeonGenerated is published on the shared bus after every
// successful generation, with the instance as the event source.
const EventDungeonGenerated = "dungeon.generated"

// Service defines the interface for dungeon operations
type Service interface {
	// GenerateDungeon creates a new dungeon instance and stores its
	// resumable record
	GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error)

	// GetDungeon loads a stored record and regenerates its instance
	// from the persisted seed
	GetDungeon(ctx context.Context, input *GetDungeonInput) (*GetDungeonOutput, error)

	// ResumeDungeon rebuilds a previously generated dungeon for a party
	// re-entering it. Same load-and-regenerate path as GetDungeon; the
	// separate operation keeps the lifecycle manager's intent explicit.
	ResumeDungeon(ctx context.Context, input *ResumeDungeonInput) (*ResumeDungeonOutput, error)

	// GetDungeonStats reads the aggregate stats snapshot off a stored
	// record without regenerating the instance
	GetDungeonStats(ctx context.Context, input *GetDungeonStatsInput) (*GetDungeonStatsOutput, error)

	// ExpireDungeon discards a stored dungeon record
	ExpireDungeon(ctx context.Context, input *ExpireDungeonInput) (*ExpireDungeonOutput, error)

	// ListTemplates returns the registered template IDs
	ListTemplates(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	DungeonRepo dungeons.Repository
	Registry    *templates.Registry
	IDGenerator idgen.Generator
	EventBus    events.EventBus
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DungeonRepo == nil {
		vb.RequiredField("DungeonRepo")
	}
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	dungeonRepo dungeons.Repository
	registry    *templates.Registry
	idGen       idgen.Generator
	eventBus    events.EventBus
	clock       clock.Clock
}

// NewOrchestrator creates a new dungeon orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		dungeonRepo: cfg.DungeonRepo,
		registry:    cfg.Registry,
		idGen:       cfg.IDGenerator,
		eventBus:    cfg.EventBus,
		clock:       cfg.Clock,
	}, nil
}

// GenerateDungeon creates a new dungeon instance and stores its record
func (o *orchestrator) GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*GenerateDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.TemplateID == "" {
		return nil, errors.InvalidArgument("template ID is required")
	}

	tpl, err := o.registry.Template(input.TemplateID)
	if err != nil {
		return nil, err
	}
	mod, err := o.registry.Modifier(input.ModifierID)
	if err != nil {
		return nil, err
	}

	// The generator never sources entropy itself; a missing seed is
	// filled in here, at the caller boundary.
	seed := input.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}

	instance, err := generator.Generate(tpl, mod, seed)
	if err != nil {
		return nil, err
	}

	record := &dungeons.DungeonRecord{
		ID:         o.idGen.Generate(),
		TemplateID: tpl.ID,
		ModifierID: input.ModifierID,
		Seed:       seed,
		Stats:      instance.Stats,
	}

	createOutput, err := o.dungeonRepo.Create(ctx, dungeons.CreateInput{
		Record: record,
		TTL:    input.TTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store dungeon record")
	}

	if err := o.eventBus.Publish(ctx, events.NewGameEvent(EventDungeonGenerated, instance, nil)); err != nil {
		slog.Warn("Failed to publish dungeon generated event",
			"dungeon_id", record.ID,
			"error", err,
		)
	}

	slog.Info("Dungeon generated",
		"dungeon_id", record.ID,
		"template_id", tpl.ID,
		"modifier_id", input.ModifierID,
		"seed", seed,
		"rooms", instance.Stats.RoomCount,
		"enemies", instance.Stats.EnemyCount,
	)

	return &GenerateDungeonOutput{
		Record:   createOutput.Record,
		Instance: instance,
	}, nil
}

// GetDungeon loads a stored record and regenerates its instance
func (o *orchestrator) GetDungeon(ctx context.Context, input *GetDungeonInput) (*GetDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	record, instance, err := o.loadAndRegenerate(ctx, input.DungeonID)
	if err != nil {
		return nil, err
	}

	return &GetDungeonOutput{
		Record:   record,
		Instance: instance,
	}, nil
}

// ResumeDungeon rebuilds a stored dungeon for re-entry
func (o *orchestrator) ResumeDungeon(ctx context.Context, input *ResumeDungeonInput) (*ResumeDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	record, instance, err := o.loadAndRegenerate(ctx, input.DungeonID)
	if err != nil {
		return nil, err
	}

	slog.Info("Dungeon resumed",
		"dungeon_id", record.ID,
		"template_id", record.TemplateID,
		"seed", record.Seed,
	)

	return &ResumeDungeonOutput{
		Record:   record,
		Instance: instance,
	}, nil
}

// GetDungeonStats reads the stats snapshot off a stored record. The
// record alone answers this, so it works even when the record's template
// has since been unregistered.
func (o *orchestrator) GetDungeonStats(ctx context.Context, input *GetDungeonStatsInput) (*GetDungeonStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DungeonID == "" {
		return nil, errors.InvalidArgument("dungeon ID is required")
	}

	getOutput, err := o.dungeonRepo.Get(ctx, dungeons.GetInput{ID: input.DungeonID})
	if err != nil {
		return nil, err
	}
	record := getOutput.Record

	return &GetDungeonStatsOutput{
		DungeonID:  record.ID,
		TemplateID: record.TemplateID,
		ModifierID: record.ModifierID,
		Stats:      record.Stats,
	}, nil
}

// loadAndRegenerate fetches a record and rebuilds its instance from the
// persisted seed.
func (o *orchestrator) loadAndRegenerate(ctx context.Context, dungeonID string) (*dungeons.DungeonRecord, *entities.DungeonInstance, error) {
	if dungeonID == "" {
		return nil, nil, errors.InvalidArgument("dungeon ID is required")
	}

	getOutput, err := o.dungeonRepo.Get(ctx, dungeons.GetInput{ID: dungeonID})
	if err != nil {
		return nil, nil, err
	}
	record := getOutput.Record

	tpl, err := o.registry.Template(record.TemplateID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "stored dungeon references unknown template")
	}
	mod, err := o.registry.Modifier(record.ModifierID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "stored dungeon references unknown modifier")
	}

	// Same template, modifier, and seed: the regenerated instance is
	// structurally identical to the original.
	instance, err := generator.Generate(tpl, mod, record.Seed)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to regenerate dungeon instance")
	}

	return record, instance, nil
}

// ExpireDungeon discards a stored dungeon record
func (o *orchestrator) ExpireDungeon(ctx context.Context, input *ExpireDungeonInput) (*ExpireDungeonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.DungeonID == "" {
		return nil, errors.InvalidArgument("dungeon ID is required")
	}

	deleteOutput, err := o.dungeonRepo.Delete(ctx, dungeons.DeleteInput{ID: input.DungeonID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dungeon record")
	}

	slog.Info("Dungeon expired",
		"dungeon_id", input.DungeonID,
		"deleted", deleteOutput.Deleted,
	)

	return &ExpireDungeonOutput{
		Deleted: deleteOutput.Deleted,
	}, nil
}

// ListTemplates returns the registered template IDs
func (o *orchestrator) ListTemplates(_ context.Context, _ *ListTemplatesInput) (*ListTemplatesOutput, error) {
	return &ListTemplatesOutput{
		TemplateIDs: o.registry.TemplateIDs(),
	}, nil
}
