package main

import "github.com/charmbracelet/lipgloss"

// Color palette, adapted from the teacher's internal/tui/styles.go for the
// demo's single-pane chrome instead of a multi-panel dashboard.
var (
	colorGreen    = lipgloss.Color("#00FF00")
	colorBlue     = lipgloss.Color("#5599FF")
	colorGray     = lipgloss.Color("#666666")
	colorWhite    = lipgloss.Color("#FFFFFF")
	colorDimWhite = lipgloss.Color("#AAAAAA")
)

var paneBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBlue)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorWhite).
	Background(colorBlue).
	Padding(0, 1)

var helpStyle = lipgloss.NewStyle().
	Foreground(colorDimWhite).
	Padding(0, 1)

var feedbackStyle = lipgloss.NewStyle().
	Foreground(colorGreen).
	Bold(true)

var dimStyle = lipgloss.NewStyle().
	Foreground(colorGray)
