// illumi is a terminal light-propagation puzzle: steer rays from sources
// with mirrors and lenses until a receiver charges up, without lighting
// any enemy.
//
// Usage:
//
//	illumi play [level-id]    - Play (level picker when no ID is given)
//	illumi trace <level-id>   - Run a level headless and print ray statistics
//	illumi levels             - List available levels
//	illumi kinds              - List object kinds usable in level files
//	illumi records [level-id] - Show best completions
//	illumi serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--config <path>     - Light config YAML (default: search ~/.illumi/configs, ./configs)
//	--quality <preset>  - low, normal or high ray density
//	--levels <dir>      - Load levels from a directory instead of the built-in set
//	--db <path>         - Set database path (default: ~/.illumi/records.db)
//	--theme <name>      - Menu theme: default or mono
//	--verbose           - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/platform/tui"
)

var (
	// Global flags
	flagFPS       int
	flagConfig    string
	flagQuality   string
	flagLevelsDir string
	flagDBPath    string
	flagTheme     string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "illumi",
	Short: "illumi - bend light through mirrors and lenses in your terminal",
	Long: `illumi is a puzzle played with light. Sources emit rays that bounce
off mirrors, bend through lenses and stop on walls. Rotate and move the
mirrors until a receiver charges up, but keep the light off the enemies.

Available commands:
  play     - Play the levels in order, or jump to one
  trace    - Run a level without a terminal UI and print what the light does
  levels   - Show all available levels
  kinds    - Show object kinds for level files
  records  - View best completions
  serve    - Start SSH server for remote play

Examples:
  illumi play
  illumi play periscope --quality high
  illumi trace first-light --ticks 60
  illumi levels --levels ./my-levels
  illumi serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		theme, err := tui.ThemeByName(flagTheme)
		if err != nil {
			return err
		}
		tui.SetTheme(theme)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to light config YAML")
	rootCmd.PersistentFlags().StringVar(&flagQuality, "quality", "", "Quality preset: low, normal, high")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.illumi/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the stderr logger used by headless commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "illumi",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadLightConfig resolves the config file, applies the quality preset and
// repairs invalid values.
func loadLightConfig(logger *log.Logger) (config.LightConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseQuality(flagQuality)
	if err != nil {
		return cfg, err
	}
	config.ApplyQuality(&cfg, preset)

	for _, field := range cfg.Validate() {
		logger.Warn("config value out of range, using default", "field", field)
	}
	logger.Debug("config loaded",
		"rays", cfg.Light.RayCount,
		"generations", cfg.Light.MaxGenerations,
		"quality", preset)
	return cfg, nil
}

// loadLevels returns the level set selected by --levels.
func loadLevels(logger *log.Logger) ([]level.Level, error) {
	loader := level.Official()
	if flagLevelsDir != "" {
		loader = level.NewLoader(flagLevelsDir)
	}
	loader.Logger = logger

	levels, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels found in %s", flagLevelsDir)
	}
	return levels, nil
}

// findLevel picks one level from the loaded set by ID.
func findLevel(levels []level.Level, id string) (level.Level, error) {
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}
	return level.Level{}, fmt.Errorf("%w: %q (run 'illumi levels' to see available levels)", level.ErrNotFound, id)
}
