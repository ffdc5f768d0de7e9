package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/illumi/internal/core"
	"github.com/vovakirdan/illumi/internal/level"
	"github.com/vovakirdan/illumi/internal/storage"
)

// MenuItem represents a selectable level in the picker.
type MenuItem struct {
	LevelID string
	Title   string
	Solved  bool
	Best    uint64 // fewest ticks, 0 when unsolved
}

// MenuModel is the Bubble Tea model for the level picker.
// Row 0 is "Start from Beginning", rows 1..N are the levels.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	scrollOffset int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	theme        Theme
	quitting     bool
	back         bool
	selected     *MenuItem // Set when user selects a level
	openRecords  bool      // True if user pressed Tab for records
}

// NewMenuModel creates a new level picker. store may be nil.
func NewMenuModel(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var solved map[string]*storage.LevelStats
	if store != nil {
		if stats, err := store.GetAllLevelStats(); err == nil {
			solved = stats
		}
	}

	items := make([]MenuItem, 0, len(levels))
	for _, l := range levels {
		title := l.Name
		if title == "" {
			title = l.ID
		}
		item := MenuItem{LevelID: l.ID, Title: title}
		if st, ok := solved[l.ID]; ok && st.Solves > 0 {
			item.Solved = true
			item.Best = st.BestTicks
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     CurrentTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items) {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		if m.cursor == 0 {
			first := m.items[0]
			m.selected = &first
		} else {
			item := m.items[m.cursor-1]
			m.selected = &item
		}
		return m, tea.Quit

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit

	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems is how many level rows fit between header and footer.
func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	row := max(m.cursor-1, 0)
	visible := m.visibleItems()
	if row < m.scrollOffset {
		m.scrollOffset = row
	} else if row >= m.scrollOffset+visible {
		m.scrollOffset = row - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("I L L U M I"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level"), m.width))
	b.WriteString("\n\n")

	if m.scrollOffset == 0 {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if m.cursor == 0 {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+"Start from Beginning"), m.width))
		b.WriteString("\n")
	}

	start := m.scrollOffset
	end := min(start+m.visibleItems(), len(m.items))
	for i := start; i < end; i++ {
		item := m.items[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if item.Solved {
			style = m.theme.MenuItemSolved
		}
		if i+1 == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}

		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, item.Title)
		if item.Solved {
			line += fmt.Sprintf("  ✓ %d ticks", item.Best)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting || m.back
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	LevelID      string
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(levels []level.Level, store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(levels, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsRecords():
		result.WantsRecords = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().LevelID
	default:
		result.Quit = true
	}
	return result, nil
}
