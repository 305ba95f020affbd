package generator

import (
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// calculateBounds reduces all room footprints into one world-space
// bounding box. O(rooms), no failure modes.
func calculateBounds(rooms []*entities.Room) entities.Bounds {
	if len(rooms) == 0 {
		return entities.Bounds{}
	}

	first := rooms[0]
	b := entities.Bounds{
		MinX: first.Center.X - first.Size.Width/2,
		MaxX: first.Center.X + first.Size.Width/2,
		MinZ: first.Center.Z - first.Size.Depth/2,
		MaxZ: first.Center.Z + first.Size.Depth/2,
	}

	for _, r := range rooms[1:] {
		if x := r.Center.X - r.Size.Width/2; x < b.MinX {
			b.MinX = x
		}
		if x := r.Center.X + r.Size.Width/2; x > b.MaxX {
			b.MaxX = x
		}
		if z := r.Center.Z - r.Size.Depth/2; z < b.MinZ {
			b.MinZ = z
		}
		if z := r.Center.Z + r.Size.Depth/2; z > b.MaxZ {
			b.MaxZ = z
		}
	}
	return b
}
