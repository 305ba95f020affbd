package generator

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// Rarity bands for enemy quality rolls. The modifier's loot rarity boost
// shifts the roll upward into the rarer bands.
const (
	uncommonThreshold = 0.60
	rareThreshold     = 0.90
)

// rotationAngles are the quantized solutions a rotation puzzle allows
var rotationAngles = []int{0, 90, 180, 270}

// defaultSymbolSet backs symbol puzzles whose pool entry names no set
var defaultSymbolSet = []string{"sun", "moon", "star", "serpent", "crown", "skull"}

// populator assigns content to placed rooms. Pure function of room,
// template, modifier, and the shared RNG; rooms are mutated in placement
// order so the draw sequence is reproducible.
type populator struct {
	tpl    *entities.DungeonTemplate
	mod    *entities.Modifier
	rng    *RNG
	roller dice.Roller

	nextSpawn int
	nextChest int
}

func newPopulator(tpl *entities.DungeonTemplate, mod *entities.Modifier, rng *RNG) *populator {
	return &populator{
		tpl:    tpl,
		mod:    mod,
		rng:    rng,
		roller: rng.Roller(),
	}
}

func (p *populator) populate(l *layout) {
	for _, room := range l.rooms {
		switch room.Type {
		case entities.RoomTypeEntrance:
			p.populateEntrance(room)
		case entities.RoomTypeCombat:
			p.populateCombat(room)
		case entities.RoomTypePuzzle:
			p.populatePuzzle(room)
		case entities.RoomTypeTreasure:
			p.populateTreasure(room)
		case entities.RoomTypeRest:
			p.populateRest(room)
		case entities.RoomTypeMiniboss:
			p.populateMiniboss(room)
		case entities.RoomTypeBoss:
			p.populateBoss(room)
		}
		p.decorate(room)
	}
}

// populateEntrance marks the entrance cleared and occasionally drops a
// flavor prop with no gameplay effect.
func (p *populator) populateEntrance(room *entities.Room) {
	room.IsCleared = true
	room.IsExplored = true
	if p.rng.Chance(0.5) {
		room.Props = append(room.Props, entities.PropInstance{
			Kind:     "warning_sign",
			Position: p.nearWall(room),
		})
	}
}

func (p *populator) populateCombat(room *entities.Room) {
	count := p.scaledEnemyCount(p.rng.Range(p.tpl.EnemiesPerRoom.Min, p.tpl.EnemiesPerRoom.Max))
	ring := ringPositions(room, count)
	for i := 0; i < count; i++ {
		room.Enemies = append(room.Enemies, p.rollEnemy(ring[i]))
	}

	if p.rng.Chance(p.tpl.TrapRoomChance) && len(p.tpl.TrapPool) > 0 {
		traps := p.rng.Range(1, max(1, p.tpl.MaxTrapsPerRoom))
		for i := 0; i < traps; i++ {
			room.Traps = append(room.Traps, rollTrap(p.tpl, p.rng, p.randomInRoom(room)))
		}
	}

	if p.rng.Chance(p.tpl.BonusChestChance) {
		room.Chests = append(room.Chests, p.rollChest(entities.ChestNormal, p.nearWall(room)))
	}
}

func (p *populator) populatePuzzle(room *entities.Room) {
	if len(p.tpl.PuzzlePool) == 0 {
		return
	}
	entry := Pick(p.rng, p.tpl.PuzzlePool)
	components := p.rng.Range(entry.MinComponents, entry.MaxComponents)
	if components < 1 {
		components = 1
	}

	puzzle := &entities.PuzzleInstance{
		Type:           entry.Type,
		ComponentCount: components,
		Anchors:        anchorPositions(room, components),
		FailDamage:     entry.FailDamage,
	}

	switch entry.Type {
	case entities.PuzzleSequence:
		puzzle.SolutionIndices = p.sequenceSolution(components)
	case entities.PuzzleRotation:
		angles := make([]int, components)
		for i := range angles {
			angles[i] = Pick(p.rng, rotationAngles)
		}
		puzzle.SolutionAngles = angles
	case entities.PuzzleSymbol:
		set := entry.SymbolSet
		if len(set) == 0 {
			set = defaultSymbolSet
		}
		symbols := make([]string, components)
		for i := range symbols {
			symbols[i] = Pick(p.rng, set)
		}
		puzzle.SolutionSymbols = symbols
	}

	reward := p.rollChest(entities.ChestNormal, room.Center)
	puzzle.Reward = &reward
	room.Puzzle = puzzle
}

func (p *populator) populateTreasure(room *entities.Room) {
	main := p.rollChest(entities.ChestTreasure, room.Center)
	main.Locked = p.rng.Chance(p.tpl.LockedChestChance)
	room.Chests = append(room.Chests, main)

	extra := p.rng.Range(1, 2)
	for i := 0; i < extra; i++ {
		room.Chests = append(room.Chests, p.rollChest(entities.ChestNormal, p.nearWall(room)))
	}

	if p.rng.Chance(p.tpl.GuardTrapChance) && len(p.tpl.TrapPool) > 0 {
		room.Traps = append(room.Traps, rollTrap(p.tpl, p.rng, p.randomInRoom(room)))
	}
}

func (p *populator) populateRest(room *entities.Room) {
	room.IsCleared = true
	room.HasCheckpoint = true
	room.HasVendor = p.rng.Chance(p.tpl.VendorChance)
}

func (p *populator) populateMiniboss(room *entities.Room) {
	def := p.tpl.Miniboss
	if def == nil {
		return
	}

	p.nextSpawn++
	room.Enemies = append(room.Enemies, entities.EnemySpawn{
		ID:       fmt.Sprintf("spawn_%d", p.nextSpawn),
		Kind:     def.Kind,
		Level:    def.Level,
		Rarity:   entities.RarityRare,
		Boss:     true,
		Position: room.Center,
	})

	helpers := p.rng.Range(1, 2)
	ring := ringPositions(room, helpers)
	for i := 0; i < helpers; i++ {
		helper := p.rollEnemy(ring[i])
		if def.HelperKind != "" {
			helper.Kind = def.HelperKind
		}
		room.Enemies = append(room.Enemies, helper)
	}

	reward := p.rollChest(entities.ChestBoss, p.nearWall(room))
	reward.Sealed = true
	room.Chests = append(room.Chests, reward)
}

func (p *populator) populateBoss(room *entities.Room) {
	def := p.tpl.Boss
	p.nextSpawn++
	room.Enemies = append(room.Enemies, entities.EnemySpawn{
		ID:       fmt.Sprintf("spawn_%d", p.nextSpawn),
		Kind:     def.Kind,
		Level:    def.Level,
		Rarity:   entities.RarityRare,
		Boss:     true,
		Position: room.Center,
	})

	// Cover props for the fight; the exit portal stays inactive until
	// the lifecycle manager flips it on boss defeat.
	cover := p.rng.Range(2, 4)
	for i := 0; i < cover; i++ {
		room.Props = append(room.Props, entities.PropInstance{
			Kind:     "cover_pillar",
			Position: p.randomInRoom(room),
		})
	}
	room.HasExitPortal = true
}

// decorate adds the theming every room type receives: a randomized prop
// count along walls and a lighting rig driven by the template style.
func (p *populator) decorate(room *entities.Room) {
	if len(p.tpl.PropPalette) > 0 {
		props := p.rng.Range(2, 6)
		for i := 0; i < props; i++ {
			kind := Pick(p.rng, p.tpl.PropPalette)
			room.Props = append(room.Props, entities.PropInstance{
				Kind:     kind,
				Position: p.nearWall(room),
			})
		}
	}

	style := p.tpl.Lighting
	if style == "" {
		style = entities.LightingTorch
	}
	count := lightCount(style)
	corners := cornerPositions(room)
	for i := 0; i < count; i++ {
		room.Lights = append(room.Lights, entities.LightFixture{
			Kind:     style,
			Position: corners[i%len(corners)],
		})
	}
}

// sequenceSolution builds an index sequence with no adjacent repeats
// whenever more than one component is available.
func (p *populator) sequenceSolution(components int) []int {
	seq := make([]int, components)
	seq[0] = p.rng.Intn(components)
	for i := 1; i < components; i++ {
		if components == 1 {
			seq[i] = 0
			continue
		}
		next := p.rng.Intn(components - 1)
		if next >= seq[i-1] {
			next++
		}
		seq[i] = next
	}
	return seq
}

func (p *populator) rollEnemy(pos entities.Position) entities.EnemySpawn {
	p.nextSpawn++
	spawn := entities.EnemySpawn{
		ID:       fmt.Sprintf("spawn_%d", p.nextSpawn),
		Kind:     "skeleton",
		Level:    1,
		Rarity:   p.rollRarity(),
		Elite:    p.rng.Chance(p.tpl.EliteChance),
		Position: pos,
	}

	if len(p.tpl.EnemyPool) > 0 {
		weights := make([]float64, len(p.tpl.EnemyPool))
		for i, e := range p.tpl.EnemyPool {
			weights[i] = e.Weight
		}
		idx := p.rng.WeightedIndex(weights)
		if idx < 0 {
			idx = p.rng.Intn(len(p.tpl.EnemyPool))
		}
		entry := p.tpl.EnemyPool[idx]
		spawn.Kind = entry.Kind
		spawn.Level = p.rng.Range(entry.MinLevel, entry.MaxLevel)
	}
	return spawn
}

// rollRarity draws a quality tier weighted 60/30/10, shifted upward by
// the modifier's loot rarity boost.
func (p *populator) rollRarity() entities.EnemyRarity {
	roll := p.rng.Float() + p.mod.LootRarityBoost
	switch {
	case roll >= rareThreshold:
		return entities.RarityRare
	case roll >= uncommonThreshold:
		return entities.RarityUncommon
	default:
		return entities.RarityCommon
	}
}

func (p *populator) rollChest(tier entities.ChestTier, pos entities.Position) entities.ChestInstance {
	p.nextChest++
	chest := entities.ChestInstance{
		ID:       fmt.Sprintf("chest_%d", p.nextChest),
		Tier:     tier,
		Position: pos,
	}

	table, ok := p.tpl.LootTables[tier]
	if !ok {
		return chest
	}

	if table.Gold.Count > 0 && table.Gold.Sides > 0 {
		rolls, err := p.roller.RollN(table.Gold.Count, table.Gold.Sides)
		if err == nil {
			for _, v := range rolls {
				chest.Gold += v
			}
		}
	}

	if len(table.Items) > 0 {
		items := p.rng.Range(table.MinItems, table.MaxItems)
		for i := 0; i < items; i++ {
			chest.Loot = append(chest.Loot, entities.LootDrop{
				Item:     Pick(p.rng, table.Items),
				Quantity: 1,
			})
		}
	}
	return chest
}

// rollTrap draws a trap from the template pool. Shared with corridor
// trap placement, so it lives at package level.
func rollTrap(tpl *entities.DungeonTemplate, rng *RNG, pos entities.Position) entities.TrapInstance {
	weights := make([]float64, len(tpl.TrapPool))
	for i, e := range tpl.TrapPool {
		weights[i] = e.Weight
	}
	idx := rng.WeightedIndex(weights)
	if idx < 0 {
		idx = rng.Intn(len(tpl.TrapPool))
	}
	entry := tpl.TrapPool[idx]

	return entities.TrapInstance{
		Type:          entry.Type,
		Damage:        rng.Range(entry.MinDamage, entry.MaxDamage),
		TriggerRadius: 1.5,
		Position:      pos,
	}
}

// scaledEnemyCount applies the modifier's multiplier to a base count.
// A positive base never rounds down to zero, so the multiplier can thin
// a room out but not empty it; a zero base stays zero.
func (p *populator) scaledEnemyCount(base int) int {
	if base <= 0 {
		return 0
	}
	mult := p.mod.EnemyCountMult
	if mult <= 0 {
		mult = 1
	}
	scaled := int(math.Round(float64(base) * mult))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// randomInRoom picks a uniform point inside the footprint, one unit in
// from the walls.
func (p *populator) randomInRoom(room *entities.Room) entities.Position {
	w := math.Max(room.Size.Width-2, 1)
	d := math.Max(room.Size.Depth-2, 1)
	return entities.Position{
		X: room.Center.X + (p.rng.Float()-0.5)*w,
		Z: room.Center.Z + (p.rng.Float()-0.5)*d,
	}
}

// nearWall picks a point along one of the four walls
func (p *populator) nearWall(room *entities.Room) entities.Position {
	side := Pick(p.rng, entities.AllDirections)
	halfW := room.Size.Width/2 - 0.5
	halfD := room.Size.Depth/2 - 0.5
	along := p.rng.Float() - 0.5

	switch side {
	case entities.DirectionNorth:
		return entities.Position{X: room.Center.X + along*room.Size.Width, Z: room.Center.Z - halfD}
	case entities.DirectionSouth:
		return entities.Position{X: room.Center.X + along*room.Size.Width, Z: room.Center.Z + halfD}
	case entities.DirectionEast:
		return entities.Position{X: room.Center.X + halfW, Z: room.Center.Z + along*room.Size.Depth}
	default:
		return entities.Position{X: room.Center.X - halfW, Z: room.Center.Z + along*room.Size.Depth}
	}
}

// ringPositions arranges n points evenly around a circle inside the room
func ringPositions(room *entities.Room, n int) []entities.Position {
	if n <= 0 {
		return nil
	}
	radius := math.Max(math.Min(room.Size.Width, room.Size.Depth)/2-1, 0.5)
	out := make([]entities.Position, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out[i] = entities.Position{
			X: room.Center.X + radius*math.Cos(angle),
			Z: room.Center.Z + radius*math.Sin(angle),
		}
	}
	return out
}

// anchorPositions lays puzzle components out linearly for small counts
// and radially for larger ones.
func anchorPositions(room *entities.Room, n int) []entities.Position {
	if n > 4 {
		return ringPositions(room, n)
	}
	out := make([]entities.Position, n)
	span := math.Max(room.Size.Width-2, 1)
	for i := 0; i < n; i++ {
		frac := 0.5
		if n > 1 {
			frac = float64(i) / float64(n-1)
		}
		out[i] = entities.Position{
			X: room.Center.X - span/2 + frac*span,
			Z: room.Center.Z,
		}
	}
	return out
}

func cornerPositions(room *entities.Room) []entities.Position {
	halfW := room.Size.Width/2 - 0.5
	halfD := room.Size.Depth/2 - 0.5
	return []entities.Position{
		{X: room.Center.X - halfW, Z: room.Center.Z - halfD},
		{X: room.Center.X + halfW, Z: room.Center.Z - halfD},
		{X: room.Center.X + halfW, Z: room.Center.Z + halfD},
		{X: room.Center.X - halfW, Z: room.Center.Z + halfD},
	}
}

func lightCount(style entities.LightingStyle) int {
	switch style {
	case entities.LightingCrystal:
		return 3
	case entities.LightingMagicGlow:
		return 2
	default:
		return 4
	}
}
