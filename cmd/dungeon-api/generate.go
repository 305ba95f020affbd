package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/generator"
	"github.com/KirkDiggler/dungeon-api/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/clock"
	"github.com/KirkDiggler/dungeon-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/dungeon-api/internal/redis"
	"github.com/KirkDiggler/dungeon-api/internal/repositories/dungeons"
	"github.com/KirkDiggler/dungeon-api/internal/templates"
)

var (
	generateTemplate     string
	generateModifier     string
	generateSeed         int64
	generateTemplatesDir string
	generateJSON         bool
	generateRedisAddr    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon instance",
	Long: `Generate a dungeon from a template and seed. With --redis the
instance record is persisted so the dungeon can be resumed later.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateTemplate, "template", "crypt", "template ID")
	generateCmd.Flags().StringVar(&generateModifier, "modifier", "", "difficulty modifier ID")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "generation seed (0 picks one from the clock)")
	generateCmd.Flags().StringVar(&generateTemplatesDir, "templates-dir", "", "directory of extra template YAML files")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "print the full instance as JSON")
	generateCmd.Flags().StringVar(&generateRedisAddr, "redis", "", "redis address for record persistence (optional)")
}

func buildRegistry(dir string) (*templates.Registry, error) {
	registry := templates.NewDefaultRegistry()
	if dir != "" {
		if err := registry.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	registry, err := buildRegistry(generateTemplatesDir)
	if err != nil {
		return err
	}

	var instance *entities.DungeonInstance

	if generateRedisAddr != "" {
		client, err := redisclient.NewClient(generateRedisAddr, nil)
		if err != nil {
			return err
		}
		repo, err := dungeons.NewRedisRepository(&dungeons.Config{
			Client: client,
			Clock:  clock.New(),
		})
		if err != nil {
			return err
		}
		svc, err := dungeon.NewOrchestrator(&dungeon.Config{
			DungeonRepo: repo,
			Registry:    registry,
			IDGenerator: idgen.NewUUID("dungeon"),
			EventBus:    events.NewBus(),
			Clock:       clock.New(),
		})
		if err != nil {
			return err
		}

		output, err := svc.GenerateDungeon(context.Background(), &dungeon.GenerateDungeonInput{
			TemplateID: generateTemplate,
			ModifierID: generateModifier,
			Seed:       generateSeed,
		})
		if err != nil {
			return err
		}
		instance = output.Instance
		fmt.Printf("Stored record %s (expires %s)\n",
			output.Record.ID, output.Record.ExpiresAt.Format("15:04:05"))
	} else {
		tpl, err := registry.Template(generateTemplate)
		if err != nil {
			return err
		}
		mod, err := registry.Modifier(generateModifier)
		if err != nil {
			return err
		}
		seed := generateSeed
		if seed == 0 {
			seed = clock.New().Now().UnixNano()
		}
		instance, err = generator.Generate(tpl, mod, seed)
		if err != nil {
			return err
		}
	}

	if generateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(instance)
	}

	printSummary(instance)
	return nil
}

func printSummary(instance *entities.DungeonInstance) {
	fmt.Printf("Dungeon %s (template %s, seed %d)\n", instance.ID, instance.TemplateID, instance.Seed)
	if instance.ModifierID != "" {
		fmt.Printf("Modifier: %s\n", instance.ModifierID)
	}
	fmt.Printf("Rooms: %d  Enemies: %d  Traps: %d  Chests: %d  Puzzles: %d\n",
		instance.Stats.RoomCount,
		instance.Stats.EnemyCount,
		instance.Stats.TrapCount,
		instance.Stats.ChestCount,
		instance.Stats.PuzzleCount,
	)
	fmt.Printf("Bounds: %.0fx%.0f\n", instance.Bounds.Width(), instance.Bounds.Depth())
	fmt.Println()

	for _, room := range instance.Rooms {
		marker := " "
		if room.IsBranch {
			marker = "*"
		}
		fmt.Printf("%s %-8s %-9s (%2d,%2d) enemies=%d traps=%d chests=%d\n",
			marker, room.ID, room.Type, room.GridX, room.GridZ,
			len(room.Enemies), len(room.Traps), len(room.Chests))
	}
}
