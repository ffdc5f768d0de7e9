package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/illumi/internal/config"
	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/level/formats"
	"github.com/vovakirdan/illumi/internal/puzzle"
	"github.com/vovakirdan/illumi/internal/storage"
)

func litLevels() []level.Level {
	return []level.Level{
		{
			ID:   "lit",
			Name: "Lit",
			Objects: []formats.Object{
				{Kind: "parallel_source", X: 100, Y: 300},
				{Kind: "receiver", X: 300, Y: 300},
			},
		},
		{
			ID:   "dark",
			Name: "Dark",
			Objects: []formats.Object{
				{Kind: "mirror", X: 600, Y: 300},
				{Kind: "receiver", X: 300, Y: 300},
			},
		},
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	sess, err := puzzle.New(config.DefaultLightConfig(), litLevels(), nil)
	if err != nil {
		t.Fatalf("puzzle.New() failed: %v", err)
	}
	return NewModel(sess, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSavesCompletion(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	for i := 0; i < 4; i++ {
		m = step(t, m, TickMsg{})
	}
	if !m.gameState.Won {
		t.Fatalf("lit level not won: %+v", m.gameState)
	}
	if m.Saved() != 1 {
		t.Errorf("saved %d completions, expected 1", m.Saved())
	}

	best, err := store.BestCompletions("lit", 10)
	if err != nil {
		t.Fatalf("BestCompletions() failed: %v", err)
	}
	if len(best) != 1 || best[0].Ticks != 2 {
		t.Errorf("unexpected records: %+v", best)
	}

	// Enter moves on to the next level.
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, TickMsg{})
	if m.gameState.Level != "dark" {
		t.Errorf("expected to advance to dark, got %q", m.gameState.Level)
	}
}

func TestModelKeysReachSession(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, runeKey('p'))
	m = step(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Error("p should pause the session")
	}
	if m.inputFrame.Has(core.ActionPause) {
		t.Error("input frame not cleared after tick")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}

	m = newTestModel(t, nil)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = step(t, m, TickMsg{})

	view := m.View()
	if !strings.Contains(view, "illumi") || !strings.Contains(view, "Lit") {
		t.Error("view should contain the HUD")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-helpHeight {
		t.Errorf("screen is %dx%d after resize", m.screen.Width(), m.screen.Height())
	}
}

func TestMenuModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveCompletion("dark", 42, 100)

	m := NewMenuModel(litLevels(), store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if m.items[0].Solved || !m.items[1].Solved || m.items[1].Best != 42 {
		t.Errorf("solved marks wrong: %+v", m.items)
	}
	if !strings.Contains(m.View(), "42 ticks") {
		t.Error("menu should show the best run")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := next.(MenuModel)
	if mm.Selected() == nil || mm.Selected().LevelID != "dark" {
		t.Errorf("selected %+v", mm.Selected())
	}
	if cmd == nil {
		t.Error("selecting should end the menu program")
	}
}

func TestRecordsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveCompletion("lit", 7, 105)
	store.SaveCompletion("lit", 3, 45)

	m := NewRecordsModel(store, litLevels(), "lit", 100, 30)
	if len(m.records) != 2 || m.records[0].Ticks != 3 {
		t.Fatalf("unexpected records: %+v", m.records)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RecordsModel)
	if m.cursor != 1 || len(m.records) != 0 {
		t.Errorf("tab should move to the unsolved level, cursor %d records %d", m.cursor, len(m.records))
	}
	if !strings.Contains(m.View(), "No completions recorded yet") {
		t.Error("empty level should show the placeholder")
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"", "default", "mono"} {
		if _, err := ThemeByName(name); err != nil {
			t.Errorf("ThemeByName(%q) failed: %v", name, err)
		}
	}
	if _, err := ThemeByName("neon"); err == nil {
		t.Error("unknown theme should fail")
	}
}

func TestSessionModelFlow(t *testing.T) {
	m := NewSessionModel(litLevels(), config.DefaultLightConfig(), nil,
		core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := next.(SessionModel)
	if sm.current != screenPlay || sm.play == nil {
		t.Fatal("enter should start the first level")
	}

	next, _ = sm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = next.(SessionModel)
	if sm.current != screenMenu {
		t.Error("esc should return to the picker")
	}

	next, _ = sm.Update(tea.KeyMsg{Type: tea.KeyTab})
	sm = next.(SessionModel)
	if sm.current != screenRecords {
		t.Error("tab should open the records")
	}
	if sm.View() == "" {
		t.Error("records view is empty")
	}
}
