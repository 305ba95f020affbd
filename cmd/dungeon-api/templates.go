package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesDir string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available dungeon templates",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().StringVar(&templatesDir, "templates-dir", "", "directory of extra template YAML files")
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	registry, err := buildRegistry(templatesDir)
	if err != nil {
		return err
	}

	for _, id := range registry.TemplateIDs() {
		tpl, err := registry.Template(id)
		if err != nil {
			return err
		}
		miniboss := ""
		if tpl.HasMiniboss() {
			miniboss = "  +miniboss"
		}
		fmt.Printf("%-12s %-20s rooms %d-%d  boss %s%s\n",
			id, tpl.Name, tpl.RoomCount.Min, tpl.RoomCount.Max, tpl.Boss.Kind, miniboss)
	}
	return nil
}
