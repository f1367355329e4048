package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menu and scoreboard screens.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuSubtitle    lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuValue       lipgloss.Style
	MenuDescription lipgloss.Style

	// Scoreboard styles
	TableBorder   lipgloss.Color
	TableSelected lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Empty         lipgloss.Style

	// Shared
	Help   lipgloss.Style
	Banner lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuSubtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuValue:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		TableBorder:   lipgloss.Color("240"),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),

		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Banner: lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.MenuValue = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.TableSelected = lipgloss.NewStyle().Reverse(true)
	theme.TabActive = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	theme.Banner = lipgloss.NewStyle().Bold(true)
	return theme
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
