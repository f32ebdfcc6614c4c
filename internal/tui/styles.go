package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorAccent   = lipgloss.Color("39")
	colorSubtle   = lipgloss.Color("241")
	colorDisabled = lipgloss.Color("238")
	colorError    = lipgloss.Color("196")
	colorValue    = lipgloss.Color("252")
	colorSelected = lipgloss.Color("57")
	colorSelectFg = lipgloss.Color("229")
)

// Text styles.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	InfoStyle   = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	LabelStyle  = lipgloss.NewStyle().Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(colorValue)
	ErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// Container, table and pager styles.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	BoxStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(colorSubtle)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(colorSelectFg).Background(colorSelected)
	PagerActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	PagerDisabledStyle = lipgloss.NewStyle().Foreground(colorDisabled)
)
