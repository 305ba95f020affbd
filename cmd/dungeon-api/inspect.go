package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/generator"
)

var (
	inspectTemplate     string
	inspectModifier     string
	inspectSeed         int64
	inspectTemplatesDir string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Render a dungeon layout as an ASCII map",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectTemplate, "template", "crypt", "template ID")
	inspectCmd.Flags().StringVar(&inspectModifier, "modifier", "", "difficulty modifier ID")
	inspectCmd.Flags().Int64Var(&inspectSeed, "seed", 1, "generation seed")
	inspectCmd.Flags().StringVar(&inspectTemplatesDir, "templates-dir", "", "directory of extra template YAML files")
}

// Map glyphs, one per room type
var roomGlyphs = map[entities.RoomType]rune{
	entities.RoomTypeEntrance: 'E',
	entities.RoomTypeCombat:   'C',
	entities.RoomTypePuzzle:   'P',
	entities.RoomTypeTreasure: 'T',
	entities.RoomTypeRest:     'R',
	entities.RoomTypeMiniboss: 'M',
	entities.RoomTypeBoss:     'B',
}

func runInspect(cmd *cobra.Command, _ []string) error {
	registry, err := buildRegistry(inspectTemplatesDir)
	if err != nil {
		return err
	}

	tpl, err := registry.Template(inspectTemplate)
	if err != nil {
		return err
	}
	mod, err := registry.Modifier(inspectModifier)
	if err != nil {
		return err
	}

	instance, err := generator.Generate(tpl, mod, inspectSeed)
	if err != nil {
		return err
	}

	fmt.Printf("%s  seed=%d  rooms=%d\n\n", instance.ID, instance.Seed, len(instance.Rooms))
	fmt.Print(renderMap(instance))
	fmt.Println()
	fmt.Println("E entrance  C combat  P puzzle  T treasure  R rest  M miniboss  B boss")
	fmt.Println("lowercase = branch room, - | corridor/door connections")
	return nil
}

// renderMap draws the room grid with connection lines between adjacent
// cells. Each grid cell is 4 columns wide and 2 rows tall so edges fit
// between the room glyphs.
func renderMap(instance *entities.DungeonInstance) string {
	minX, maxX := instance.Rooms[0].GridX, instance.Rooms[0].GridX
	minZ, maxZ := instance.Rooms[0].GridZ, instance.Rooms[0].GridZ
	for _, room := range instance.Rooms {
		if room.GridX < minX {
			minX = room.GridX
		}
		if room.GridX > maxX {
			maxX = room.GridX
		}
		if room.GridZ < minZ {
			minZ = room.GridZ
		}
		if room.GridZ > maxZ {
			maxZ = room.GridZ
		}
	}

	width := (maxX-minX)*4 + 1
	height := (maxZ-minZ)*2 + 1
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	cell := func(room *entities.Room) (row, col int) {
		return (room.GridZ - minZ) * 2, (room.GridX - minX) * 4
	}

	for _, room := range instance.Rooms {
		row, col := cell(room)
		glyph := roomGlyphs[room.Type]
		if glyph == 0 {
			glyph = '?'
		}
		if room.IsBranch {
			glyph = []rune(strings.ToLower(string(glyph)))[0]
		}
		canvas[row][col] = glyph
	}

	for _, conn := range instance.Connections {
		from := instance.RoomByID(conn.FromID)
		to := instance.RoomByID(conn.ToID)
		if from == nil || to == nil {
			continue
		}
		fr, fc := cell(from)
		tr, tc := cell(to)
		switch {
		case fr == tr: // horizontal
			start := min(fc, tc)
			for c := start + 1; c < start+4; c++ {
				canvas[fr][c] = '-'
			}
		default: // vertical
			canvas[(fr+tr)/2][fc] = '|'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
