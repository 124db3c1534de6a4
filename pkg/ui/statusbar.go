package ui

import (
	"fmt"
	"strings"

	"amdchat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

// StatusBarView renders the connection status line
type StatusBarView struct {
	status string
	model  string
	failed bool
	width  int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{width: 80}
}

// SetStatus updates the status text. failed switches to the error style.
func (s *StatusBarView) SetStatus(status string, failed bool) {
	s.status = status
	s.failed = failed
}

// SetModel updates the active model displayed.
func (s *StatusBarView) SetModel(model string) {
	s.model = strings.TrimSpace(model)
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Status returns the current status text.
func (s *StatusBarView) Status() string {
	return s.status
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	content := s.status
	if s.model != "" {
		content = fmt.Sprintf("%s | %s", s.status, s.model)
	}

	// 2 columns of padding
	maxWidth := s.width - 2
	if maxWidth < 1 {
		maxWidth = 1
	}
	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	style := styles.StatusBarStyle
	if s.failed {
		style = styles.StatusBarErrorStyle
	}
	return style.Width(s.width).Render(content)
}
