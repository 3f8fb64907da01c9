package controller

import "github.com/charmbracelet/lipgloss"

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	contextStyle = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
