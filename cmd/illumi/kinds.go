package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/illumi/internal/registry"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List object kinds usable in level files",
	Args:  cobra.NoArgs,
	Run:   runKinds,
}

func runKinds(_ *cobra.Command, _ []string) {
	kinds := registry.List()

	maxIDLen := 4 // "Kind" header
	for _, k := range kinds {
		maxIDLen = max(maxIDLen, len(k.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "Kind", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "----", "-----------")
	for _, k := range kinds {
		fmt.Printf("  %-*s  %s\n", maxIDLen, k.ID, k.Description)
	}
}
