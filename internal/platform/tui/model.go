package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/puzzle"
	"github.com/vovakirdan/illumi/internal/storage"
)

// helpHeight is the number of rows reserved under the playfield.
const helpHeight = 1

// Model is the Bubble Tea model for playing a puzzle session.
type Model struct {
	session    *puzzle.Session
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	saved      int // completions written this session
}

// NewModel creates a new Bubble Tea model for the given session.
// store and logger may be nil.
func NewModel(session *puzzle.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  session.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
// World coordinates do not depend on the terminal, so the level keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.session.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvent persists completions and logs the rest.
func (m *Model) handleEvent(ev puzzle.Event) {
	switch ev.Kind {
	case puzzle.EventLevelComplete:
		if m.logger != nil {
			m.logger.Info("level complete", "level", ev.LevelID, "ticks", ev.Ticks, "rays", ev.Rays)
		}
		if m.store == nil {
			return
		}
		if _, err := m.store.SaveCompletion(ev.LevelID, ev.Ticks, ev.Rays); err != nil {
			if m.logger != nil {
				m.logger.Warn("could not save completion", "level", ev.LevelID, "error", err)
			}
			return
		}
		m.saved++
	case puzzle.EventAlerted:
		if m.logger != nil {
			m.logger.Debug("spotted", "level", ev.LevelID, "ticks", ev.Ticks)
		}
	case puzzle.EventFinished:
		if m.logger != nil {
			m.logger.Info("all levels cleared", "last", ev.LevelID)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".illumi", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.session.Level().ID, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil && m.logger != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keyMapper.Keys)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Saved returns how many completions were written to the store.
func (m Model) Saved() int {
	return m.saved
}

// Run starts the Bubble Tea program for the given session.
// It reports whether the player asked to go back to the level picker.
func Run(session *puzzle.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(session, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
