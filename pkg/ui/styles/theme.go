// Package styles provides the shared theme for the chat UI.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (AMD red)
	ColorAccent = lipgloss.Color("160")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorSuccess = lipgloss.Color("42")

	ColorPlaceholder = lipgloss.Color("240")

	// Border colors
	ColorBorder      = lipgloss.Color("238")
	ColorBorderFocus = lipgloss.Color("160")
)

// Text styles
var (
	// TitleStyle for the window title
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// UserStyle for the user's own lines
	UserStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)

	// AssistantStyle for assistant replies
	AssistantStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// ErrorStyle for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// SeparatorStyle for the rule between transcript and input
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// Status bar styles
var (
	// StatusBarStyle is the default status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Background(lipgloss.Color("#2A2A2A")).
			Padding(0, 1)

	// StatusBarErrorStyle is used while the last send failed
	StatusBarErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#D32F2F")).
				Padding(0, 1).
				Bold(true)
)
