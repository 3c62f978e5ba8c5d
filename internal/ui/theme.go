// Package ui holds the loading and overlay view models and the terminal
// front end that renders them.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Stone  = lipgloss.Color("#2b2b33")
	Parch  = lipgloss.Color("#e9dfc7")
	Dim    = lipgloss.Color("#8c8577")
	Gold   = lipgloss.Color("#d9a441")
	Ember  = lipgloss.Color("#d4603a")
	Ivy    = lipgloss.Color("#7fa36b")
	Border = lipgloss.Color("#5a5360")

	App = lipgloss.NewStyle().
		Foreground(Parch).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Gold)

	Title  = lipgloss.NewStyle().Foreground(Gold).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Dim)
	Hot    = lipgloss.NewStyle().Foreground(Ember).Bold(true)
	Good   = lipgloss.NewStyle().Foreground(Ivy)
	BarOn  = lipgloss.NewStyle().Foreground(Gold)
	BarOff = lipgloss.NewStyle().Foreground(Stone)
)
