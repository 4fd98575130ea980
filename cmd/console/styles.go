package main

import "github.com/charmbracelet/lipgloss"

var (
	leftPane  = lipgloss.NewStyle().Padding(1, 0, 1, 2)
	rightPane = lipgloss.NewStyle().Padding(1, 2, 0, 1)

	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	npcStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	playerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	questStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	ruleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("31")).
			Padding(1, 3).
			Foreground(lipgloss.Color("252"))
	boxTitleStyle = headingStyle.Align(lipgloss.Center)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pickedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("45")).Bold(true)
)
