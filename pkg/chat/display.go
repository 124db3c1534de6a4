package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"amdchat/pkg/conversation"
)

const (
	UserPrefix      = "Вы: "
	AssistantPrefix = "Чат-бот: "
	ErrorPrefix     = "Ошибка: "
)

// DisplayLog records the lines shown to the user, in display order.
type DisplayLog struct {
	mu    sync.RWMutex
	lines []string
}

// NewDisplayLog creates an empty log.
func NewDisplayLog() *DisplayLog {
	return &DisplayLog{}
}

// Append records one rendered line. Embedded newlines are kept as-is.
func (l *DisplayLog) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

// Lines returns a copy of the recorded lines.
func (l *DisplayLog) Lines() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of recorded lines.
func (l *DisplayLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// Reset drops every recorded line.
func (l *DisplayLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}

// String returns the plain-text transcript: every line followed by "\n".
func (l *DisplayLog) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sb strings.Builder
	for _, line := range l.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Export writes the plain-text transcript to path as UTF-8.
func (l *DisplayLog) Export(path string) error {
	return writeExport(path, l.String())
}

// ExportMarkdown writes the raw transcript as markdown, one section per turn.
// The system prompt is omitted.
func ExportMarkdown(path string, messages []conversation.Message) error {
	return writeExport(path, RenderMarkdown(messages))
}

// RenderMarkdown renders the raw transcript as markdown.
func RenderMarkdown(messages []conversation.Message) string {
	var sb strings.Builder
	sb.WriteString("# Chat transcript\n")
	for _, msg := range messages {
		var title string
		switch msg.Role {
		case conversation.RoleUser:
			title = "User"
		case conversation.RoleAssistant:
			title = "Assistant"
		default:
			continue
		}
		sb.WriteString("\n## ")
		sb.WriteString(title)
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeExport(path, content string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("export path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
