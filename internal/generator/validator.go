package generator

import (
	"github.com/KirkDiggler/dungeon-api/internal/entities"
)

// validateConnectivity runs a breadth-first traversal from the entrance
// over the undirected adjacency implied by the connection set and checks
// the boss room is reached. Placement only ever attaches to frontier
// rooms, so today the graph is a tree and this always passes; it exists
// as a backstop for extensions that add or remove edges after placement.
func validateConnectivity(l *layout) error {
	var entranceID, bossID string
	for _, r := range l.rooms {
		switch r.Type {
		case entities.RoomTypeEntrance:
			entranceID = r.ID
		case entities.RoomTypeBoss:
			bossID = r.ID
		}
	}
	if entranceID == "" || bossID == "" {
		return errDisconnectedGraph
	}

	adjacency := make(map[string][]string, len(l.rooms))
	for _, c := range l.connections {
		adjacency[c.FromID] = append(adjacency[c.FromID], c.ToID)
		adjacency[c.ToID] = append(adjacency[c.ToID], c.FromID)
	}

	visited := map[string]bool{entranceID: true}
	queue := []string{entranceID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == bossID {
			return nil
		}
		for _, next := range adjacency[id] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return errDisconnectedGraph
}
