package entities

// RoomCountRange bounds how many rooms a template generates
type RoomCountRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// RoomTypeWeight is one entry in a template's room-type distribution.
// Kept as an ordered slice rather than a map so weighted sampling walks
// entries in a stable order.
type RoomTypeWeight struct {
	Type   RoomType `yaml:"type" json:"type"`
	Weight float64  `yaml:"weight" json:"weight"`
}

// EnemyPoolEntry describes one enemy kind a template can spawn
type EnemyPoolEntry struct {
	Kind     string  `yaml:"kind" json:"kind"`
	MinLevel int     `yaml:"min_level" json:"min_level"`
	MaxLevel int     `yaml:"max_level" json:"max_level"`
	Weight   float64 `yaml:"weight" json:"weight"`
}

// TrapPoolEntry describes one trap kind a template can place
type TrapPoolEntry struct {
	Type      TrapType `yaml:"type" json:"type"`
	MinDamage int      `yaml:"min_damage" json:"min_damage"`
	MaxDamage int      `yaml:"max_damage" json:"max_damage"`
	Weight    float64  `yaml:"weight" json:"weight"`
}

// PuzzlePoolEntry describes one puzzle kind a template can generate
type PuzzlePoolEntry struct {
	Type          PuzzleType `yaml:"type" json:"type"`
	MinComponents int        `yaml:"min_components" json:"min_components"`
	MaxComponents int        `yaml:"max_components" json:"max_components"`
	SymbolSet     []string   `yaml:"symbol_set,omitempty" json:"symbol_set,omitempty"`
	FailDamage    int        `yaml:"fail_damage" json:"fail_damage"`
}

// DiceSpec is a count-and-sides dice quantity (e.g. 2d6)
type DiceSpec struct {
	Count int `yaml:"count" json:"count"`
	Sides int `yaml:"sides" json:"sides"`
}

// LootTable lists what a chest of a given tier can contain
type LootTable struct {
	Items    []string `yaml:"items" json:"items"`
	MinItems int      `yaml:"min_items" json:"min_items"`
	MaxItems int      `yaml:"max_items" json:"max_items"`
	Gold     DiceSpec `yaml:"gold" json:"gold"`
}

// BossDefinition describes a boss or miniboss spawn
type BossDefinition struct {
	Kind       string `yaml:"kind" json:"kind"`
	Level      int    `yaml:"level" json:"level"`
	HelperKind string `yaml:"helper_kind,omitempty" json:"helper_kind,omitempty"`
}

// SpawnRange bounds a per-room random count
type SpawnRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// DungeonTemplate is the static, designer-authored configuration for one
// dungeon type. The generator treats it as read-only input; it is never
// mutated during a run.
type DungeonTemplate struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Theme string `yaml:"theme" json:"theme"`

	CellSize  float64        `yaml:"cell_size" json:"cell_size"`
	RoomCount RoomCountRange `yaml:"room_count" json:"room_count"`

	Distribution []RoomTypeWeight `yaml:"distribution" json:"distribution"`

	CorridorChance  float64 `yaml:"corridor_chance" json:"corridor_chance"`
	BranchingFactor float64 `yaml:"branching_factor" json:"branching_factor"`
	DeadEndChance   float64 `yaml:"dead_end_chance" json:"dead_end_chance"`

	// Doors maps a room type to its permitted door directions. A missing
	// or empty entry means all four directions are allowed.
	Doors map[RoomType][]Direction `yaml:"doors,omitempty" json:"doors,omitempty"`

	// RoomSizes maps a room type to its footprint size class. A missing
	// entry falls back to DefaultRoomSize.
	RoomSizes       map[RoomType]Dimensions `yaml:"room_sizes,omitempty" json:"room_sizes,omitempty"`
	DefaultRoomSize Dimensions              `yaml:"default_room_size" json:"default_room_size"`

	EnemyPool  []EnemyPoolEntry  `yaml:"enemy_pool" json:"enemy_pool"`
	TrapPool   []TrapPoolEntry   `yaml:"trap_pool" json:"trap_pool"`
	PuzzlePool []PuzzlePoolEntry `yaml:"puzzle_pool" json:"puzzle_pool"`

	LootTables map[ChestTier]LootTable `yaml:"loot_tables" json:"loot_tables"`

	EnemiesPerRoom  SpawnRange `yaml:"enemies_per_room" json:"enemies_per_room"`
	MaxTrapsPerRoom int        `yaml:"max_traps_per_room" json:"max_traps_per_room"`

	EliteChance        float64 `yaml:"elite_chance" json:"elite_chance"`
	TrapRoomChance     float64 `yaml:"trap_room_chance" json:"trap_room_chance"`
	BonusChestChance   float64 `yaml:"bonus_chest_chance" json:"bonus_chest_chance"`
	LockedChestChance  float64 `yaml:"locked_chest_chance" json:"locked_chest_chance"`
	GuardTrapChance    float64 `yaml:"guard_trap_chance" json:"guard_trap_chance"`
	VendorChance       float64 `yaml:"vendor_chance" json:"vendor_chance"`
	CorridorTrapChance float64 `yaml:"corridor_trap_chance" json:"corridor_trap_chance"`
	CorridorDoorChance float64 `yaml:"corridor_door_chance" json:"corridor_door_chance"`

	Miniboss *BossDefinition `yaml:"miniboss,omitempty" json:"miniboss,omitempty"`
	Boss     BossDefinition  `yaml:"boss" json:"boss"`

	Lighting    LightingStyle `yaml:"lighting" json:"lighting"`
	PropPalette []string      `yaml:"prop_palette" json:"prop_palette"`
}

// AllowedDoors returns the door directions permitted for a room type.
// An unset entry is the wildcard: all four directions.
func (t *DungeonTemplate) AllowedDoors(rt RoomType) []Direction {
	if dirs, ok := t.Doors[rt]; ok && len(dirs) > 0 {
		return dirs
	}
	return AllDirections
}

// SizeFor returns the footprint size class for a room type
func (t *DungeonTemplate) SizeFor(rt RoomType) Dimensions {
	if d, ok := t.RoomSizes[rt]; ok && d.Width > 0 {
		return d
	}
	return t.DefaultRoomSize
}

// HasMiniboss reports whether the template defines a miniboss room
func (t *DungeonTemplate) HasMiniboss() bool { return t.Miniboss != nil }

// Modifier is a named difficulty preset. The generator consumes only the
// numeric knobs; the semantic meaning of the name belongs to the caller.
type Modifier struct {
	ID              string  `yaml:"id" json:"id"`
	EnemyCountMult  float64 `yaml:"enemy_count_mult" json:"enemy_count_mult"`
	LootRarityBoost float64 `yaml:"loot_rarity_boost" json:"loot_rarity_boost"`
	BonusRooms      int     `yaml:"bonus_rooms" json:"bonus_rooms"`
}

// NoModifier is the identity modifier applied when none is supplied
var NoModifier = Modifier{ID: "none", EnemyCountMult: 1.0}
