package ui

import (
	"strings"

	"amdchat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

type lineKind int

const (
	lineUser lineKind = iota
	lineAssistant
	lineError
	lineInfo
)

type displayEntry struct {
	kind lineKind
	text string
}

// TranscriptView is the scrollable chat area. It keeps the display entries
// and re-wraps them when the width changes.
type TranscriptView struct {
	entries []displayEntry
	lines   []string
	width   int
	height  int
	scrollY int
	follow  bool
}

// NewTranscriptView creates an empty view that sticks to the bottom.
func NewTranscriptView() *TranscriptView {
	return &TranscriptView{follow: true}
}

// SetSize sets the visible area.
func (v *TranscriptView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.reflow()
}

func (v *TranscriptView) add(kind lineKind, text string) {
	v.entries = append(v.entries, displayEntry{kind: kind, text: text})
	v.reflow()
}

// Reset clears every entry.
func (v *TranscriptView) Reset() {
	v.entries = nil
	v.scrollY = 0
	v.follow = true
	v.reflow()
}

// ScrollUp moves the view n lines towards the start.
func (v *TranscriptView) ScrollUp(n int) {
	v.scrollY -= n
	if v.scrollY < 0 {
		v.scrollY = 0
	}
	v.follow = false
}

// ScrollDown moves the view n lines towards the end.
func (v *TranscriptView) ScrollDown(n int) {
	maxScroll := v.maxScroll()
	v.scrollY += n
	if v.scrollY > maxScroll {
		v.scrollY = maxScroll
	}
	v.follow = v.scrollY >= maxScroll
}

// View renders exactly height lines.
func (v *TranscriptView) View() string {
	if v.height <= 0 {
		return ""
	}

	out := make([]string, 0, v.height)
	end := v.scrollY + v.height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	for i := v.scrollY; i < end; i++ {
		out = append(out, v.lines[i])
	}
	for len(out) < v.height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (v *TranscriptView) reflow() {
	v.lines = v.lines[:0]
	if v.width <= 0 {
		v.scrollY = 0
		return
	}

	for i, entry := range v.entries {
		if i > 0 && entry.kind == lineUser {
			v.lines = append(v.lines, "")
		}
		style := styleFor(entry.kind)
		for _, raw := range strings.Split(sanitizeContent(entry.text), "\n") {
			wrapped := ansi.Wrap(strings.ReplaceAll(raw, "\t", "    "), v.width, "")
			for _, line := range strings.Split(wrapped, "\n") {
				v.lines = append(v.lines, style.Render(line))
			}
		}
	}

	if v.follow || v.scrollY > v.maxScroll() {
		v.scrollY = v.maxScroll()
	}
}

func styleFor(kind lineKind) lipgloss.Style {
	switch kind {
	case lineUser:
		return styles.UserStyle
	case lineError:
		return styles.ErrorStyle
	case lineInfo:
		return styles.FooterStyle
	default:
		return styles.AssistantStyle
	}
}

func (v *TranscriptView) maxScroll() int {
	max := len(v.lines) - v.height
	if max < 0 {
		return 0
	}
	return max
}

func sanitizeContent(content string) string {
	if content == "" {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch r {
		case '\n', '\t':
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "...")
}
