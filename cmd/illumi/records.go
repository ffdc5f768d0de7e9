package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/illumi/internal/storage"
)

var recordsCmd = &cobra.Command{
	Use:   "records [level-id]",
	Short: "Show best completions",
	Long: `Without arguments, shows a summary for every level. With a level ID,
shows the ten fastest completions of that level.

Examples:
  illumi records
  illumi records first-light`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func runRecords(_ *cobra.Command, args []string) error {
	logger := newLogger()
	levels, err := loadLevels(logger)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		stats, err := store.GetAllLevelStats()
		if err != nil {
			return err
		}
		fmt.Printf("  %-20s  %6s  %6s  %9s  %s\n", "Level", "Solves", "Best", "Avg", "Last solved")
		fmt.Printf("  %-20s  %6s  %6s  %9s  %s\n", "-----", "------", "----", "---", "-----------")
		for _, l := range levels {
			st, ok := stats[l.ID]
			if !ok {
				fmt.Printf("  %-20s  %6d  %6s  %9s  %s\n", l.ID, 0, "-", "-", "-")
				continue
			}
			fmt.Printf("  %-20s  %6d  %6d  %9.1f  %s\n",
				l.ID, st.Solves, st.BestTicks, st.AvgTicks, st.LastSolved.Format("2006-01-02 15:04"))
		}
		return nil
	}

	lvl, err := findLevel(levels, args[0])
	if err != nil {
		return err
	}
	best, err := store.BestCompletions(lvl.ID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", lvl.Name)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'illumi play %s' to set the first one!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Rank", "Ticks", "Rays", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "----", "----")
	for i, c := range best {
		fmt.Printf("  %-4d  %-6d  %-8d  %s\n", i+1, c.Ticks, c.Rays, c.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
