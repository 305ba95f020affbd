// Package generator builds dungeon instances: an ordered room-type
// sequence placed as a connected graph on a sparse grid, validated for
// entrance-to-boss reachability, and populated with template-driven
// content. The whole pipeline is a synchronous pure function of
// (template, modifier, seed).
package generator

import (
	"fmt"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// maxAttempts bounds full-pipeline regeneration after a placement or
// connectivity failure. Retries draw from the already-advanced RNG, so
// each attempt explores a different layout.
const maxAttempts = 10

// Config holds the inputs for one generation run
type Config struct {
	Template *entities.DungeonTemplate
	Modifier *entities.Modifier
	Seed     int64
}

// Validate ensures the template can produce a legal dungeon. These are
// the fail-fast conditions: no placement work happens on a bad template.
func (c *Config) Validate() error {
	if c.Template == nil {
		return errors.InvalidArgument("template is required")
	}

	vb := errors.NewValidationBuilder()
	tpl := c.Template

	if len(tpl.Distribution) == 0 {
		vb.InvalidField("Distribution", "must define at least one room type")
	}
	if tpl.RoomCount.Min < 2 {
		vb.InvalidField("RoomCount.Min", "must be at least 2 (entrance + boss)")
	}
	if tpl.RoomCount.Max < tpl.RoomCount.Min {
		vb.InvalidField("RoomCount.Max", "must not be below RoomCount.Min")
	}
	if tpl.HasMiniboss() && tpl.RoomCount.Min < 3 {
		vb.InvalidField("RoomCount.Min", "must be at least 3 when a miniboss is defined")
	}
	if tpl.CellSize <= 0 {
		vb.InvalidField("CellSize", "must be positive")
	}
	if tpl.Boss.Kind == "" {
		vb.RequiredField("Boss.Kind")
	}

	return vb.Build()
}

// Generator produces dungeon instances from a template, modifier, and
// seed. Construct one per generation call; the RNG inside is the only
// mutable state, so concurrent runs each need their own Generator.
type Generator struct {
	tpl  *entities.DungeonTemplate
	mod  *entities.Modifier
	seed int64
	rng  *RNG
}

// New creates a Generator after validating the config
func New(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mod := cfg.Modifier
	if mod == nil {
		m := entities.NoModifier
		mod = &m
	}

	return &Generator{
		tpl:  cfg.Template,
		mod:  mod,
		seed: cfg.Seed,
		rng:  NewRNG(cfg.Seed),
	}, nil
}

// Generate runs the full pipeline: sequence, place, validate, populate,
// bound, assemble. Placement and connectivity failures discard the whole
// attempt and regenerate with fresh RNG draws; exceeding the attempt
// bound is fatal and surfaced to the caller.
func (g *Generator) Generate() (*entities.DungeonInstance, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		seq := sequenceRoomTypes(g.tpl, g.mod, g.rng)

		l, err := placeRooms(seq, g.tpl, g.rng)
		if err != nil {
			continue
		}

		if err := validateConnectivity(l); err != nil {
			continue
		}

		newPopulator(g.tpl, g.mod, g.rng).populate(l)

		return g.assemble(l)
	}

	return nil, errors.ResourceExhaustedf(
		"dungeon generation failed after %d attempts for template %q", maxAttempts, g.tpl.ID).
		WithMeta("seed", g.seed)
}

// assemble packages the layout into the immutable instance and
// re-asserts the entrance/boss cardinality invariants. A violation here
// is a programming error, not a recoverable condition.
func (g *Generator) assemble(l *layout) (*entities.DungeonInstance, error) {
	var entranceID, bossID string
	entrances, bosses := 0, 0
	for _, r := range l.rooms {
		switch r.Type {
		case entities.RoomTypeEntrance:
			entrances++
			entranceID = r.ID
		case entities.RoomTypeBoss:
			bosses++
			bossID = r.ID
		}
	}
	if entrances != 1 || bosses != 1 {
		return nil, errors.Internalf(
			"assembled dungeon has %d entrance rooms and %d boss rooms", entrances, bosses)
	}

	stats := entities.DungeonStats{RoomCount: len(l.rooms)}
	for _, r := range l.rooms {
		stats.EnemyCount += len(r.Enemies)
		stats.TrapCount += len(r.Traps)
		stats.ChestCount += len(r.Chests)
		if r.Puzzle != nil {
			stats.PuzzleCount++
		}
	}
	for _, c := range l.connections {
		if c.Corridor != nil && c.Corridor.Trap != nil {
			stats.TrapCount++
		}
	}

	modID := ""
	if g.mod.ID != entities.NoModifier.ID {
		modID = g.mod.ID
	}

	return &entities.DungeonInstance{
		ID:           fmt.Sprintf("dungeon_%s_%d", g.tpl.ID, g.seed),
		Seed:         g.seed,
		TemplateID:   g.tpl.ID,
		ModifierID:   modID,
		Rooms:        l.rooms,
		Connections:  l.connections,
		CriticalPath: l.critical,
		Bounds:       calculateBounds(l.rooms),
		EntranceID:   entranceID,
		BossID:       bossID,
		Stats:        stats,
	}, nil
}

// Generate is the package-level convenience entry point: one call, one
// instance.
func Generate(tpl *entities.DungeonTemplate, mod *entities.Modifier, seed int64) (*entities.DungeonInstance, error) {
	g, err := New(&Config{Template: tpl, Modifier: mod, Seed: seed})
	if err != nil {
		return nil, err
	}
	return g.Generate()
}
