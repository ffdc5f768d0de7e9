package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/illumi/internal/light"
	"github.com/vovakirdan/illumi/internal/world"
)

var (
	flagTicks int
	flagDump  bool
	flagKeep  bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <level-id>",
	Short: "Run a level headless and print what the light does",
	Long: `Build a level and advance it without a terminal UI. Every tick prints
the rays cast, how they ended, the strongest receiver charge and whether an
enemy was lit. Tracing stops at the first win or alert unless --keep-going
is set.

Examples:
  illumi trace first-light
  illumi trace tide --ticks 300 --keep-going
  illumi trace periscope --ticks 1 --dump`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().IntVarP(&flagTicks, "ticks", "n", 120, "Number of ticks to run")
	traceCmd.Flags().BoolVar(&flagDump, "dump", false, "Print every ray segment after the last tick")
	traceCmd.Flags().BoolVar(&flagKeep, "keep-going", false, "Do not stop at the first win or alert")
}

// traceOutcomes are the terminal outcomes shown as columns.
var traceOutcomes = []light.Outcome{
	light.Absorbed, light.Reflected, light.Refracted, light.Received, light.Triggered,
}

func runTrace(_ *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadLightConfig(logger)
	if err != nil {
		return err
	}
	levels, err := loadLevels(logger)
	if err != nil {
		return err
	}
	lvl, err := findLevel(levels, args[0])
	if err != nil {
		return err
	}

	scene, err := lvl.Build(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Tracing %s (%s): %d objects, %d segments, %d arcs, %d sources, %d receivers, %d enemies\n",
		lvl.ID, lvl.Name, len(scene.Objects()), len(scene.Segments()), len(scene.Arcs()),
		len(scene.Sources()), len(scene.Receivers()), len(scene.Enemies()))
	fmt.Println()

	fmt.Printf("  %5s  %6s  %4s", "Tick", "Casts", "Wave")
	for _, o := range traceOutcomes {
		fmt.Printf("  %9s", o)
	}
	fmt.Printf("  %7s  %s\n", "Charge", "State")

	th := cfg.Receiver.ChargeThreshold
	for i := 0; i < flagTicks; i++ {
		res := scene.Tick()

		charge := 0.0
		for _, r := range scene.Receivers() {
			charge = math.Max(charge, r.Charge)
		}

		state := ""
		switch {
		case res.Alerted:
			state = "ALERT"
		case res.Satisfied:
			state = "LIT"
		case res.Blocked > 0:
			state = "blocked"
		}

		fmt.Printf("  %5d  %6d  %4d", res.Tick, res.Report.Casts, res.Report.Wavefronts)
		for _, o := range traceOutcomes {
			fmt.Printf("  %9d", res.Report.Count(o))
		}
		fmt.Printf("  %6.1f%%  %s\n", 100*charge/th, state)

		if !flagKeep && (res.Alerted || res.Satisfied) {
			break
		}
	}

	fmt.Println()
	switch {
	case scene.AnyAlerted():
		for _, e := range scene.Enemies() {
			if e.Alerted {
				fmt.Printf("Result: spotted by enemy %d at (%.0f, %.0f)\n", e.Handle, e.Pos.X, e.Pos.Y)
			}
		}
	case scene.AnySatisfied():
		fmt.Printf("Result: solved after %d ticks\n", scene.Ticks())
	default:
		fmt.Printf("Result: unsolved after %d ticks\n", scene.Ticks())
	}

	if flagDump {
		dumpRays(scene)
	}
	return nil
}

// dumpRays prints every ray chain of the last tick, one segment per line.
func dumpRays(scene *world.Scene) {
	fmt.Println()
	fmt.Printf("  %3s  %3s  %3s  %-22s  %-22s  %s\n", "Src", "Ray", "Gen", "From", "To", "Outcome")
	for si, src := range scene.Sources() {
		for ri := range src.Rays {
			src.Rays[ri].Chain(func(r *light.Ray) {
				dist := "inf"
				if !math.IsInf(r.Dist, 1) {
					dist = fmt.Sprintf("%.1f", r.Dist)
				}
				fmt.Printf("  %3d  %3d  %3d  %-22s  %-22s  %s (%s)\n",
					si, ri, r.Generation,
					fmt.Sprintf("(%.1f, %.1f)", r.Origin.X, r.Origin.Y),
					fmt.Sprintf("(%.1f, %.1f)", r.End.X, r.End.Y),
					r.Outcome, dist)
			})
		}
	}
}
