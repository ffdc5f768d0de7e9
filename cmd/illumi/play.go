package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/platform/tui"
	"github.com/vovakirdan/illumi/internal/puzzle"
	"github.com/vovakirdan/illumi/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play illumi",
	Long: `Start playing. Without a level ID a level picker is shown; after a
level you can go back to it with Esc.

Controls:
  W/A/S/D, arrows  - Move the selected object
  Z/[ and X/]      - Rotate the selected object
  Tab              - Select the next movable object
  Enter            - Continue after a level ends
  R                - Restart the level
  P                - Pause
  G                - Show level geometry
  Esc              - Back to the level picker
  Q/Ctrl+C         - Quit

Logs go to ~/.illumi/illumi.log while the game is on screen.

Examples:
  illumi play
  illumi play tide
  illumi play --quality low --fps 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog := newFileLogger()
	defer closeLog()

	cfg, err := loadLightConfig(logger)
	if err != nil {
		return err
	}
	levels, err := loadLevels(logger)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 1 {
		if _, err := findLevel(levels, args[0]); err != nil {
			return err
		}
		_, err := playFrom(args[0], levels, cfg, store, rt, logger)
		return err
	}

	// Menu loop
	for {
		menu, err := tui.RunMenu(levels, store, rt)
		if err != nil {
			return err
		}
		rt = menu.Config

		switch {
		case menu.Quit:
			return nil
		case menu.WantsRecords:
			goBack, err := tui.RunRecords(store, levels, rt.ScreenW, rt.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		back, err := playFrom(menu.LevelID, levels, cfg, store, rt, logger)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

// playFrom runs a session starting at the given level.
func playFrom(id string, levels []level.Level, cfg config.LightConfig, store *storage.Store, rt core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	sess, err := puzzle.New(cfg, levels, logger)
	if err != nil {
		return false, err
	}
	if err := sess.Start(id); err != nil {
		return false, err
	}
	logger.Info("level started", "level", id)
	return tui.Run(sess, store, rt, logger)
}

// newFileLogger logs to ~/.illumi/illumi.log so the alt screen stays clean.
// Falls back to a discarding logger when the file cannot be opened.
func newFileLogger() (*log.Logger, func()) {
	opts := log.Options{ReportTimestamp: true, Prefix: "illumi"}
	if flagVerbose {
		opts.Level = log.DebugLevel
	}

	home, err := os.UserHomeDir()
	if err == nil {
		dir := filepath.Join(home, ".illumi")
		if err = os.MkdirAll(dir, 0o755); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "illumi.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				return log.NewWithOptions(f, opts), func() { f.Close() }
			}
		}
	}
	return log.NewWithOptions(io.Discard, opts), func() {}
}
