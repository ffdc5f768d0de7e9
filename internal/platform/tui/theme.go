package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menu screens.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style
	Controls        lipgloss.Style

	// Records screen
	Border     lipgloss.Color
	TableTitle lipgloss.Style
	Selected   lipgloss.Style
	Empty      lipgloss.Style
}

// DefaultTheme returns the default warm theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true), // Bright yellow
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Amber
		MenuItemSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),            // Soft green
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Border:     lipgloss.Color("240"),
		TableTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("94")),
		Empty:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.MenuItemSolved = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.TableTitle = theme.TableTitle.Foreground(lipgloss.Color("255"))
	theme.Selected = lipgloss.NewStyle().Reverse(true)
	return theme
}

// ThemeByName resolves a theme name from the command line.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	}
	return Theme{}, fmt.Errorf("tui: unknown theme %q", name)
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return currentTheme
}
