package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette
var (
	DraculaForeground = lipgloss.AdaptiveColor{Light: "0", Dark: "255"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "8", Dark: "7"}
	DraculaOrange     = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	TitleStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)

	// Search bar
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	SearchTextStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)

	// Category bar styles
	CategoryArrowStyle = lipgloss.NewStyle().
				Foreground(DraculaComment)
	CategoryItemStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Padding(0, 1)
	CategoryItemActiveStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true).
				Padding(0, 1)
	CategoryPendingStyle = lipgloss.NewStyle().
				Foreground(DraculaOrange).
				Italic(true)

	// Detail view styles
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(DraculaComment)
	DetailPriceStyle = lipgloss.NewStyle().
				Foreground(DraculaGreen).
				Bold(true)
	DetailBodyStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DraculaRed).
			Bold(true)
	EmptyStyle = lipgloss.NewStyle().
			Foreground(DraculaOrange).
			Padding(1, 2)
)
