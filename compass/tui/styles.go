package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary = "#7D56F4"
	colorSuccess = "#04B575"
	colorError   = "#FF5F5F"
	colorInfo    = "#626262"
	colorText    = "#FAFAFA"
	colorBorder  = "#874BFD"
)

var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color(colorPrimary)).
	MarginTop(1).
	MarginBottom(1)

var InputStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color(colorBorder)).
	Padding(0, 1).
	Width(50)

var StatusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(colorSuccess))

var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(colorError))

var InfoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color(colorInfo))

var HeadingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color(colorText)).
	Background(lipgloss.Color(colorPrimary)).
	Padding(0, 1)

var BoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(colorBorder)).
	Padding(0, 1).
	Width(76)

var (
	barFilled = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorInfo))
)
