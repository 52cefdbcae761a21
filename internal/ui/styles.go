package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/chatmd/internal/chat"
	"github.com/gubarz/chatmd/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// List view styles
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style

	// Detail and chrome styles
	Title   lipgloss.Style
	Error   lipgloss.Style
	Border  lipgloss.Style
	Divider lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color

	roles map[chat.Role]lipgloss.Style
	other lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Selected:   lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Title:      lipgloss.NewStyle().Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Border:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Divider:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		SelectedBg: lipgloss.Color("236"),
		roles: map[chat.Role]lipgloss.Style{
			chat.RoleUser:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
			chat.RoleAssistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
			chat.RoleSystem:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		},
		other: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	borderColor := lipgloss.Color(config.GetColorBorder())
	cursorColor := lipgloss.Color(config.GetColorCursor())
	selectedBg := lipgloss.Color(config.GetColorSelected())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.Selected = lipgloss.NewStyle().Background(selectedBg)
	s.Cursor = lipgloss.NewStyle().Foreground(cursorColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
	s.SelectedBg = selectedBg

	for _, role := range []chat.Role{chat.RoleUser, chat.RoleAssistant, chat.RoleSystem} {
		s.roles[role] = lipgloss.NewStyle().Bold(true).Foreground(parseANSIColor(config.GetRoleColor(string(role))))
	}
	s.other = lipgloss.NewStyle().Bold(true).Foreground(parseANSIColor(config.GetRoleColor("")))
}

// Role returns the style for a message role
func (s *StyleManager) Role(role chat.Role) lipgloss.Style {
	if style, ok := s.roles[role]; ok {
		return style
	}
	return s.other
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
