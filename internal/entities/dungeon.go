// Package entities provides core data structures for dungeon-api.
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// RoomType identifies the role a room plays in a dungeon layout
type RoomType string

// Room types
const (
	RoomTypeEntrance RoomType = "entrance"
	RoomTypeCombat   RoomType = "combat"
	RoomTypePuzzle   RoomType = "puzzle"
	RoomTypeTreasure RoomType = "treasure"
	RoomTypeRest     RoomType = "rest"
	RoomTypeMiniboss RoomType = "miniboss"
	RoomTypeBoss     RoomType = "boss"
)

// Direction is a cardinal grid direction
type Direction string

// Directions
const (
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionEast  Direction = "east"
	DirectionWest  Direction = "west"
)

// AllDirections lists every cardinal direction in a fixed order.
// Order matters: placement iterates this slice, so it must be stable
// for seed reproducibility.
var AllDirections = []Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest}

// Offset returns the grid delta for the direction
func (d Direction) Offset() (dx, dz int) {
	switch d {
	case DirectionNorth:
		return 0, -1
	case DirectionSouth:
		return 0, 1
	case DirectionEast:
		return 1, 0
	case DirectionWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case DirectionNorth:
		return DirectionSouth
	case DirectionSouth:
		return DirectionNorth
	case DirectionEast:
		return DirectionWest
	case DirectionWest:
		return DirectionEast
	default:
		return d
	}
}

// ConnectionKind distinguishes corridor edges from direct door edges
type ConnectionKind string

// Connection kinds
const (
	ConnectionCorridor ConnectionKind = "corridor"
	ConnectionDoor     ConnectionKind = "door"
)

// TrapType identifies a trap variant
type TrapType string

// Trap types
const (
	TrapSpikes  TrapType = "spikes"
	TrapFlame   TrapType = "flame"
	TrapPoison  TrapType = "poison_dart"
	TrapPitfall TrapType = "pitfall"
	TrapArcane  TrapType = "arcane_rune"
)

// PuzzleType identifies the solution shape a puzzle generates
type PuzzleType string

// Puzzle types
const (
	PuzzleSequence PuzzleType = "sequence"
	PuzzleRotation PuzzleType = "rotation"
	PuzzleSymbol   PuzzleType = "symbol"
)

// ChestTier controls which loot table a chest draws from
type ChestTier string

// Chest tiers
const (
	ChestNormal   ChestTier = "normal"
	ChestTreasure ChestTier = "treasure"
	ChestBoss     ChestTier = "boss"
)

// EnemyRarity is the quality tier rolled for an enemy spawn
type EnemyRarity string

// Enemy rarities
const (
	RarityCommon   EnemyRarity = "common"
	RarityUncommon EnemyRarity = "uncommon"
	RarityRare     EnemyRarity = "rare"
)

// LightingStyle selects the fixture family a template lights rooms with
type LightingStyle string

// Lighting styles
const (
	LightingTorch     LightingStyle = "torch"
	LightingCrystal   LightingStyle = "crystal"
	LightingMagicGlow LightingStyle = "magic_glow"
)

// Position represents a 3D world-space coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Dimensions represents a rectangular footprint
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// EnemySpawn describes one enemy to create when the room activates
type EnemySpawn struct {
	ID       string      `json:"id"`
	Kind     string      `json:"kind"`
	Level    int         `json:"level"`
	Rarity   EnemyRarity `json:"rarity"`
	Elite    bool        `json:"elite"`
	Boss     bool        `json:"boss,omitempty"`
	Position Position    `json:"position"`
}

// TrapInstance is a placed trap with its trigger and damage data
type TrapInstance struct {
	Type          TrapType `json:"type"`
	Damage        int      `json:"damage"`
	TriggerRadius float64  `json:"trigger_radius"`
	Position      Position `json:"position"`
}

// LootDrop is one rolled loot entry inside a chest
type LootDrop struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// ChestInstance is a placed chest with rolled loot
type ChestInstance struct {
	ID       string     `json:"id"`
	Tier     ChestTier  `json:"tier"`
	Locked   bool       `json:"locked"`
	Sealed   bool       `json:"sealed,omitempty"` // opens only once the room is cleared
	Gold     int        `json:"gold"`
	Loot     []LootDrop `json:"loot"`
	Position Position   `json:"position"`
}

// PropInstance is a decorative object with no gameplay effect
type PropInstance struct {
	Kind     string   `json:"kind"`
	Position Position `json:"position"`
}

// LightFixture is one placed light source
type LightFixture struct {
	Kind     LightingStyle `json:"kind"`
	Position Position      `json:"position"`
}

// PuzzleInstance carries a generated puzzle and its solution.
// Exactly one of the Solution* fields is populated, matching Type.
type PuzzleInstance struct {
	Type            PuzzleType     `json:"type"`
	ComponentCount  int            `json:"component_count"`
	SolutionIndices []int          `json:"solution_indices,omitempty"`
	SolutionAngles  []int          `json:"solution_angles,omitempty"` // quantized to 0/90/180/270
	SolutionSymbols []string       `json:"solution_symbols,omitempty"`
	Anchors         []Position     `json:"anchors"`
	FailDamage      int            `json:"fail_damage"`
	Reward          *ChestInstance `json:"reward,omitempty"`
	Solved          bool           `json:"solved"`
}

// Room is one node in the dungeon graph. It is created during placement
// and mutated only by content population; it never moves afterward.
type Room struct {
	ID         string      `json:"id"`
	Type       RoomType    `json:"type"`
	GridX      int         `json:"grid_x"`
	GridZ      int         `json:"grid_z"`
	Center     Position    `json:"center"`
	Size       Dimensions  `json:"size"`
	Doors      []Direction `json:"doors"`
	Neighbors  []string    `json:"neighbors"`
	IsBranch   bool        `json:"is_branch,omitempty"`
	IsDeadEnd  bool        `json:"is_dead_end,omitempty"`
	IsSecret   bool        `json:"is_secret,omitempty"`
	IsCleared  bool        `json:"is_cleared,omitempty"`
	IsExplored bool        `json:"is_explored,omitempty"`

	Enemies []EnemySpawn    `json:"enemies,omitempty"`
	Traps   []TrapInstance  `json:"traps,omitempty"`
	Chests  []ChestInstance `json:"chests,omitempty"`
	Props   []PropInstance  `json:"props,omitempty"`
	Lights  []LightFixture  `json:"lights,omitempty"`
	Puzzle  *PuzzleInstance `json:"puzzle,omitempty"`

	// Boss rooms carry an exit portal that stays inactive until the
	// lifecycle manager activates it on boss defeat.
	HasExitPortal bool `json:"has_exit_portal,omitempty"`
	HasCheckpoint bool `json:"has_checkpoint,omitempty"`
	HasVendor     bool `json:"has_vendor,omitempty"`
}

// Rooms and instances participate in the shared event bus as entities
var (
	_ core.Entity = (*Room)(nil)
	_ core.Entity = (*DungeonInstance)(nil)
)

// GetID implements core.Entity
func (r *Room) GetID() string { return r.ID }

// GetType implements core.Entity
func (r *Room) GetType() string { return string(r.Type) }

// Degree returns the room's connection count
func (r *Room) Degree() int { return len(r.Neighbors) }

// CorridorGeometry is the intermediate geometry of a corridor connection
type CorridorGeometry struct {
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Length  float64       `json:"length"`
	Trap    *TrapInstance `json:"trap,omitempty"`
	HasDoor bool          `json:"has_door,omitempty"`
}

// Connection is an undirected edge between two rooms. Direction is the
// side of the From room the edge exits through.
type Connection struct {
	FromID    string            `json:"from_id"`
	ToID      string            `json:"to_id"`
	Direction Direction         `json:"direction"`
	Kind      ConnectionKind    `json:"kind"`
	Corridor  *CorridorGeometry `json:"corridor,omitempty"`
}

// Bounds is the world-space bounding box of an instance
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxZ float64 `json:"max_z"`
}

// Width returns the X extent of the bounds
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the Z extent of the bounds
func (b Bounds) Depth() float64 { return b.MaxZ - b.MinZ }

// DungeonStats holds aggregate counts for the rewards/completion tracker
type DungeonStats struct {
	RoomCount   int `json:"room_count"`
	EnemyCount  int `json:"enemy_count"`
	TrapCount   int `json:"trap_count"`
	ChestCount  int `json:"chest_count"`
	PuzzleCount int `json:"puzzle_count"`
}

// DungeonInstance is one fully generated dungeon layout. It is immutable
// once returned by the generator and may be shared read-only.
type DungeonInstance struct {
	ID           string       `json:"id"`
	Seed         int64        `json:"seed"`
	TemplateID   string       `json:"template_id"`
	ModifierID   string       `json:"modifier_id,omitempty"`
	Rooms        []*Room      `json:"rooms"`
	Connections  []Connection `json:"connections"`
	CriticalPath []string     `json:"critical_path"`
	Bounds       Bounds       `json:"bounds"`
	EntranceID   string       `json:"entrance_id"`
	BossID       string       `json:"boss_id"`
	Stats        DungeonStats `json:"stats"`
}

// GetID implements core.Entity
func (d *DungeonInstance) GetID() string { return d.ID }

// GetType implements core.Entity
func (d *DungeonInstance) GetType() string { return "dungeon" }

// RoomByID returns the room with the given ID, or nil
func (d *DungeonInstance) RoomByID(id string) *Room {
	for _, r := range d.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Entrance returns the entrance room
func (d *DungeonInstance) Entrance() *Room { return d.RoomByID(d.EntranceID) }

// Boss returns the boss room
func (d *DungeonInstance) Boss() *Room { return d.RoomByID(d.BossID) }
