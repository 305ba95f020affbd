package generator

import (
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// sequenceRoomTypes produces the ordered list of room types for one
// generation attempt. The entrance is always first and the boss always
// last; a miniboss, if the template defines one, lands at a random
// position among the middle slots. Remaining middle slots are filled by
// weighted draw over the template distribution and then shuffled so the
// draw order leaves no bias.
func sequenceRoomTypes(tpl *entities.DungeonTemplate, mod *entities.Modifier, rng *RNG) []entities.RoomType {
	target := rng.Range(tpl.RoomCount.Min, tpl.RoomCount.Max) + mod.BonusRooms
	if target < 2 {
		target = 2
	}

	middle := make([]entities.RoomType, 0, target-2)
	if tpl.HasMiniboss() && target > 2 {
		middle = append(middle, entities.RoomTypeMiniboss)
	}

	fillable := middleFill(tpl.Distribution)
	weights := make([]float64, len(fillable))
	for i, e := range fillable {
		weights[i] = e.Weight
	}

	for len(middle) < target-2 {
		idx := rng.WeightedIndex(weights)
		if idx < 0 {
			// Degenerate distribution: pad with combat rooms rather
			// than under-filling the sequence.
			middle = append(middle, entities.RoomTypeCombat)
			continue
		}
		middle = append(middle, fillable[idx].Type)
	}

	rng.Shuffle(len(middle), func(i, j int) {
		middle[i], middle[j] = middle[j], middle[i]
	})

	seq := make([]entities.RoomType, 0, target)
	seq = append(seq, entities.RoomTypeEntrance)
	seq = append(seq, middle...)
	seq = append(seq, entities.RoomTypeBoss)
	return seq
}

// middleFill filters the distribution down to types eligible for middle
// slots. Entrance, boss, and miniboss slots are reserved, never drawn.
func middleFill(dist []entities.RoomTypeWeight) []entities.RoomTypeWeight {
	out := make([]entities.RoomTypeWeight, 0, len(dist))
	for _, e := range dist {
		switch e.Type {
		case entities.RoomTypeEntrance, entities.RoomTypeBoss, entities.RoomTypeMiniboss:
			continue
		}
		out = append(out, e)
	}
	return out
}
