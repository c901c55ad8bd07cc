package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clark/tui/styles"
)

// Theme returns a huh theme using the TUI colour palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true)

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Lavender)

	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true)

	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Pink)

	// Confirm buttons
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(styles.LightLavender).
		Background(styles.BrightPurple).
		Bold(true).
		Padding(0, 2).
		MarginRight(1)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Background(styles.DeepPurple).
		Padding(0, 2).
		MarginRight(1)

	t.Focused.Card = t.Focused.Base
	t.Focused.Next = t.Focused.FocusedButton

	// Blurred fields keep the focused look without the accent border
	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.
		BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Purple)

	t.Help.ShortKey = lipgloss.NewStyle().Foreground(styles.Cyan)
	t.Help.ShortDesc = lipgloss.NewStyle().Foreground(styles.Purple)
	t.Help.ShortSeparator = lipgloss.NewStyle().Foreground(styles.Purple)

	return t
}
