package generator

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// Sentinel failures recovered inside the generate retry loop. Neither
// ever crosses the package boundary.
var (
	errPlacementExhausted = errors.New("placement exhausted: no frontier room has a valid adjacent cell")
	errDisconnectedGraph  = errors.New("disconnected graph: no entrance to boss path")
)

// maxRoomDegree caps connections per room. The frontier drops any room
// that reaches it.
const maxRoomDegree = 3

type gridKey struct {
	x, z int
}

// layout is the working state of one placement attempt: the sparse grid,
// the frontier of rooms still eligible for expansion, and the edge set
// built so far.
type layout struct {
	rooms       []*entities.Room
	byID        map[string]*entities.Room
	grid        map[gridKey]*entities.Room
	frontier    []*entities.Room
	connections []entities.Connection
	critical    []string
	nextID      int
}

// placeRooms runs frontier expansion over the type sequence. Rooms only
// ever attach to existing frontier rooms, so the result is a spanning
// tree; errPlacementExhausted is returned when no frontier room can host
// the next type.
func placeRooms(seq []entities.RoomType, tpl *entities.DungeonTemplate, rng *RNG) (*layout, error) {
	l := &layout{
		byID: make(map[string]*entities.Room),
		grid: make(map[gridKey]*entities.Room),
	}

	entrance := l.newRoom(seq[0], 0, 0, tpl)
	l.grid[gridKey{0, 0}] = entrance
	l.rooms = append(l.rooms, entrance)
	l.frontier = append(l.frontier, entrance)
	l.critical = append(l.critical, entrance.ID)

	for i := 1; i < len(seq); i++ {
		rt := seq[i]
		final := i == len(seq)-1

		asBranch := false
		if !final && rng.Chance(tpl.BranchingFactor) {
			// Branch placement only applies to optional room types;
			// anything else keeps the backbone growing.
			asBranch = rt == entities.RoomTypeCombat || rt == entities.RoomTypeTreasure
		}

		room, err := l.attach(rt, tpl, rng, asBranch)
		if err != nil {
			return nil, err
		}

		if asBranch {
			room.IsBranch = true
			if rng.Chance(tpl.DeadEndChance) {
				room.IsDeadEnd = true
				l.removeFromFrontier(room.ID)
			}
		} else {
			l.critical = append(l.critical, room.ID)
		}
	}

	return l, nil
}

// attach places one room of the given type adjacent to a frontier room
// and records the connecting edge. Backbone placements prefer the
// frontier rooms with the fewest connections so growth spreads instead
// of extending a single corridor; branch placements pick any frontier
// room uniformly.
func (l *layout) attach(rt entities.RoomType, tpl *entities.DungeonTemplate, rng *RNG, asBranch bool) (*entities.Room, error) {
	tried := make(map[string]bool)

	for {
		source := l.pickFrontier(rng, tried, asBranch)
		if source == nil {
			return nil, errPlacementExhausted
		}

		dirs := l.openDirections(source, rt, tpl)
		if len(dirs) == 0 {
			tried[source.ID] = true
			// Only evict rooms that are boxed in outright; a source that
			// merely cannot host this room type stays available for
			// later placements.
			if !l.hasOpenCell(source) {
				l.removeFromFrontier(source.ID)
			}
			continue
		}

		dir := Pick(rng, dirs)
		dx, dz := dir.Offset()
		room := l.newRoom(rt, source.GridX+dx, source.GridZ+dz, tpl)

		l.grid[gridKey{room.GridX, room.GridZ}] = room
		l.rooms = append(l.rooms, room)
		l.frontier = append(l.frontier, room)
		l.connect(source, room, dir, tpl, rng)

		if source.Degree() >= maxRoomDegree {
			l.removeFromFrontier(source.ID)
		}
		return room, nil
	}
}

// pickFrontier selects the source room for the next attachment. Ties on
// minimum degree break uniformly at random; the randomness is drawn from
// the shared RNG so replays stay identical.
func (l *layout) pickFrontier(rng *RNG, tried map[string]bool, any bool) *entities.Room {
	candidates := make([]*entities.Room, 0, len(l.frontier))
	for _, r := range l.frontier {
		if !tried[r.ID] {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	if any {
		return Pick(rng, candidates)
	}

	minDegree := maxRoomDegree + 1
	for _, r := range candidates {
		if d := r.Degree(); d < minDegree {
			minDegree = d
		}
	}
	best := candidates[:0]
	for _, r := range candidates {
		if r.Degree() == minDegree {
			best = append(best, r)
		}
	}
	return Pick(rng, best)
}

// openDirections returns the directions a room can expand into for a
// new room of the given type: the source's door mask must permit the
// side, the new type's mask must permit the opposite side, and the
// target cell must be empty. The degree bound is enforced here, before
// any cell math.
func (l *layout) openDirections(room *entities.Room, rt entities.RoomType, tpl *entities.DungeonTemplate) []entities.Direction {
	if room.Degree() >= maxRoomDegree {
		return nil
	}

	newDoors := tpl.AllowedDoors(rt)

	var open []entities.Direction
	for _, dir := range room.Doors {
		if !containsDirection(newDoors, dir.Opposite()) {
			continue
		}
		dx, dz := dir.Offset()
		if _, occupied := l.grid[gridKey{room.GridX + dx, room.GridZ + dz}]; !occupied {
			open = append(open, dir)
		}
	}
	return open
}

// hasOpenCell reports whether any door side of the room faces an empty
// grid cell, ignoring type compatibility.
func (l *layout) hasOpenCell(room *entities.Room) bool {
	if room.Degree() >= maxRoomDegree {
		return false
	}
	for _, dir := range room.Doors {
		dx, dz := dir.Offset()
		if _, occupied := l.grid[gridKey{room.GridX + dx, room.GridZ + dz}]; !occupied {
			return true
		}
	}
	return false
}

func containsDirection(dirs []entities.Direction, d entities.Direction) bool {
	for _, dir := range dirs {
		if dir == d {
			return true
		}
	}
	return false
}

// connect records the edge between two rooms and updates both neighbor
// lists. Connection kind is rolled from the template corridor chance;
// corridors get geometry sized by the gap between the room footprints.
func (l *layout) connect(from, to *entities.Room, dir entities.Direction, tpl *entities.DungeonTemplate, rng *RNG) {
	conn := entities.Connection{
		FromID:    from.ID,
		ToID:      to.ID,
		Direction: dir,
		Kind:      entities.ConnectionDoor,
	}

	if rng.Chance(tpl.CorridorChance) {
		conn.Kind = entities.ConnectionCorridor
		conn.Corridor = &entities.CorridorGeometry{
			Width:   2,
			Height:  3,
			Length:  corridorLength(from, to, dir, tpl.CellSize),
			HasDoor: rng.Chance(tpl.CorridorDoorChance),
		}
		if rng.Chance(tpl.CorridorTrapChance) && len(tpl.TrapPool) > 0 {
			trap := rollTrap(tpl, rng, midpoint(from.Center, to.Center))
			conn.Corridor.Trap = &trap
		}
	}

	from.Neighbors = append(from.Neighbors, to.ID)
	to.Neighbors = append(to.Neighbors, from.ID)
	l.connections = append(l.connections, conn)
}

func (l *layout) newRoom(rt entities.RoomType, gx, gz int, tpl *entities.DungeonTemplate) *entities.Room {
	l.nextID++
	size := tpl.SizeFor(rt)
	return &entities.Room{
		ID:    fmt.Sprintf("room_%d", l.nextID),
		Type:  rt,
		GridX: gx,
		GridZ: gz,
		Center: entities.Position{
			X: float64(gx) * tpl.CellSize,
			Z: float64(gz) * tpl.CellSize,
		},
		Size:  size,
		Doors: append([]entities.Direction(nil), tpl.AllowedDoors(rt)...),
	}
}

func (l *layout) removeFromFrontier(id string) {
	for i, r := range l.frontier {
		if r.ID == id {
			l.frontier = append(l.frontier[:i], l.frontier[i+1:]...)
			return
		}
	}
}

// corridorLength is the grid gap minus the half-footprints of the two
// rooms along the travel axis, clamped to a minimum of one unit.
func corridorLength(from, to *entities.Room, dir entities.Direction, cellSize float64) float64 {
	var span float64
	switch dir {
	case entities.DirectionEast, entities.DirectionWest:
		span = cellSize - from.Size.Width/2 - to.Size.Width/2
	default:
		span = cellSize - from.Size.Depth/2 - to.Size.Depth/2
	}
	if span < 1 {
		span = 1
	}
	return span
}

func midpoint(a, b entities.Position) entities.Position {
	return entities.Position{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}
