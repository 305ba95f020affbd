// Package main is the entry point for the dungeon-api CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dungeon-api",
	Short: "Procedural dungeon generator",
	Long:  `dungeon-api generates seeded, template-driven dungeon instances and manages their resumable records.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(templatesCmd)
}
