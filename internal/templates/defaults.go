package templates

import (
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// BuiltinTemplates returns the templates that ship with the service
func BuiltinTemplates() []*entities.DungeonTemplate {
	return []*entities.DungeonTemplate{
		cryptTemplate(),
		cavernTemplate(),
	}
}

// BuiltinModifiers returns the difficulty presets that ship with the
// service. The numeric knobs are the whole contract; what "elite" means
// belongs to the caller.
func BuiltinModifiers() []*entities.Modifier {
	return []*entities.Modifier{
		{ID: "elite", EnemyCountMult: 1.5, LootRarityBoost: 0.15, BonusRooms: 2},
		{ID: "swarm", EnemyCountMult: 2.0, LootRarityBoost: 0.05},
	}
}

func cryptTemplate() *entities.DungeonTemplate {
	return &entities.DungeonTemplate{
		ID:        "crypt",
		Name:      "Forgotten Crypt",
		Theme:     "undead",
		CellSize:  24,
		RoomCount: entities.RoomCountRange{Min: 7, Max: 11},
		Distribution: []entities.RoomTypeWeight{
			{Type: entities.RoomTypeCombat, Weight: 5},
			{Type: entities.RoomTypePuzzle, Weight: 2},
			{Type: entities.RoomTypeTreasure, Weight: 2},
			{Type: entities.RoomTypeRest, Weight: 1},
		},
		CorridorChance:  0.6,
		BranchingFactor: 0.35,
		DeadEndChance:   0.5,
		Doors: map[entities.RoomType][]entities.Direction{
			// Boss chambers open only to the south so the approach
			// corridor reads as a gate.
			entities.RoomTypeBoss: {entities.DirectionSouth, entities.DirectionEast, entities.DirectionWest},
		},
		RoomSizes: map[entities.RoomType]entities.Dimensions{
			entities.RoomTypeEntrance: {Width: 10, Height: 5, Depth: 10},
			entities.RoomTypeBoss:     {Width: 18, Height: 8, Depth: 18},
			entities.RoomTypeMiniboss: {Width: 14, Height: 6, Depth: 14},
			entities.RoomTypeTreasure: {Width: 8, Height: 4, Depth: 8},
		},
		DefaultRoomSize: entities.Dimensions{Width: 12, Height: 5, Depth: 12},
		EnemyPool: []entities.EnemyPoolEntry{
			{Kind: "skeleton", MinLevel: 1, MaxLevel: 3, Weight: 5},
			{Kind: "zombie", MinLevel: 1, MaxLevel: 2, Weight: 3},
			{Kind: "wraith", MinLevel: 3, MaxLevel: 5, Weight: 1},
		},
		TrapPool: []entities.TrapPoolEntry{
			{Type: entities.TrapSpikes, MinDamage: 5, MaxDamage: 12, Weight: 3},
			{Type: entities.TrapPoison, MinDamage: 3, MaxDamage: 8, Weight: 2},
			{Type: entities.TrapArcane, MinDamage: 8, MaxDamage: 15, Weight: 1},
		},
		PuzzlePool: []entities.PuzzlePoolEntry{
			{Type: entities.PuzzleSequence, MinComponents: 3, MaxComponents: 6, FailDamage: 5},
			{Type: entities.PuzzleRotation, MinComponents: 3, MaxComponents: 5, FailDamage: 5},
			{Type: entities.PuzzleSymbol, MinComponents: 3, MaxComponents: 4, FailDamage: 8,
				SymbolSet: []string{"skull", "bone", "raven", "hourglass"}},
		},
		LootTables: map[entities.ChestTier]entities.LootTable{
			entities.ChestNormal: {
				Items:    []string{"healing_potion", "bone_dust", "rusty_key", "old_coin"},
				MinItems: 1, MaxItems: 2,
				Gold: entities.DiceSpec{Count: 2, Sides: 6},
			},
			entities.ChestTreasure: {
				Items:    []string{"enchanted_blade", "silver_amulet", "tome_of_wards"},
				MinItems: 1, MaxItems: 2,
				Gold: entities.DiceSpec{Count: 4, Sides: 10},
			},
			entities.ChestBoss: {
				Items:    []string{"crypt_lord_signet", "soul_gem"},
				MinItems: 1, MaxItems: 2,
				Gold: entities.DiceSpec{Count: 6, Sides: 12},
			},
		},
		EnemiesPerRoom:     entities.SpawnRange{Min: 2, Max: 4},
		MaxTrapsPerRoom:    2,
		EliteChance:        0.1,
		TrapRoomChance:     0.4,
		BonusChestChance:   0.15,
		LockedChestChance:  0.3,
		GuardTrapChance:    0.5,
		VendorChance:       0.2,
		CorridorTrapChance: 0.15,
		CorridorDoorChance: 0.3,
		Miniboss:           &entities.BossDefinition{Kind: "bone_knight", Level: 5, HelperKind: "skeleton"},
		Boss:               entities.BossDefinition{Kind: "crypt_lord", Level: 8},
		Lighting:           entities.LightingTorch,
		PropPalette: []string{
			"broken_sarcophagus", "bone_pile", "cobweb", "cracked_urn", "fallen_pillar",
		},
	}
}

func cavernTemplate() *entities.DungeonTemplate {
	return &entities.DungeonTemplate{
		ID:        "cavern",
		Name:      "Glimmering Cavern",
		Theme:     "subterranean",
		CellSize:  28,
		RoomCount: entities.RoomCountRange{Min: 6, Max: 9},
		Distribution: []entities.RoomTypeWeight{
			{Type: entities.RoomTypeCombat, Weight: 6},
			{Type: entities.RoomTypeTreasure, Weight: 3},
			{Type: entities.RoomTypeRest, Weight: 1},
		},
		CorridorChance:  0.8,
		BranchingFactor: 0.5,
		DeadEndChance:   0.7,
		DefaultRoomSize: entities.Dimensions{Width: 14, Height: 7, Depth: 14},
		RoomSizes: map[entities.RoomType]entities.Dimensions{
			entities.RoomTypeBoss: {Width: 20, Height: 10, Depth: 20},
		},
		EnemyPool: []entities.EnemyPoolEntry{
			{Kind: "cave_spider", MinLevel: 1, MaxLevel: 3, Weight: 4},
			{Kind: "rock_golem", MinLevel: 2, MaxLevel: 4, Weight: 2},
			{Kind: "deep_bat", MinLevel: 1, MaxLevel: 2, Weight: 3},
		},
		TrapPool: []entities.TrapPoolEntry{
			{Type: entities.TrapPitfall, MinDamage: 6, MaxDamage: 14, Weight: 3},
			{Type: entities.TrapSpikes, MinDamage: 4, MaxDamage: 10, Weight: 2},
		},
		LootTables: map[entities.ChestTier]entities.LootTable{
			entities.ChestNormal: {
				Items:    []string{"glow_mushroom", "raw_crystal", "miner_pick"},
				MinItems: 1, MaxItems: 2,
				Gold: entities.DiceSpec{Count: 2, Sides: 8},
			},
			entities.ChestTreasure: {
				Items:    []string{"crystal_heart", "echo_stone"},
				MinItems: 1, MaxItems: 1,
				Gold: entities.DiceSpec{Count: 5, Sides: 8},
			},
			entities.ChestBoss: {
				Items:    []string{"heart_of_the_mountain"},
				MinItems: 1, MaxItems: 1,
				Gold: entities.DiceSpec{Count: 8, Sides: 10},
			},
		},
		EnemiesPerRoom:     entities.SpawnRange{Min: 2, Max: 5},
		MaxTrapsPerRoom:    2,
		EliteChance:        0.08,
		TrapRoomChance:     0.3,
		BonusChestChance:   0.2,
		LockedChestChance:  0.2,
		GuardTrapChance:    0.4,
		VendorChance:       0.1,
		CorridorTrapChance: 0.1,
		CorridorDoorChance: 0.1,
		Boss:               entities.BossDefinition{Kind: "crystal_behemoth", Level: 7},
		Lighting:           entities.LightingCrystal,
		PropPalette: []string{
			"stalagmite", "crystal_cluster", "mushroom_patch", "rubble_heap",
		},
	}
}
