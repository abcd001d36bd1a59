package main

import "github.com/charmbracelet/lipgloss"

var (
	colorGray   = lipgloss.Color("#888888")
	colorGreen  = lipgloss.Color("#00FF00")
	colorPurple = lipgloss.Color("#8524a6")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPurple)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorGray)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
)
