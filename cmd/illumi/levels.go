package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the levels in play order, either the built-in set or the directory given with --levels.`,
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels, err := loadLevels(newLogger())
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %3s  %-*s  %7s  %s\n", "#", maxIDLen, "ID", "Objects", "Name")
	fmt.Printf("  %3s  %-*s  %7s  %s\n", "-", maxIDLen, "--", "-------", "----")
	for i, l := range levels {
		fmt.Printf("  %3d  %-*s  %7d  %s\n", i+1, maxIDLen, l.ID, len(l.Objects), l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'illumi play <id>' to play a level.")
	return nil
}
