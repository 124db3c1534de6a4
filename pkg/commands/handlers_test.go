package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"amdchat/pkg/ai"
	"amdchat/pkg/chat"
	"amdchat/pkg/conversation"
)

type blockingExchanger struct {
	release chan struct{}
}

func (b *blockingExchanger) Exchange(ctx context.Context, store *conversation.Store) (ai.DisplayReply, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return ai.DisplayReply{}, nil
}

func newTestContext(t *testing.T, args string) *Context {
	t.Helper()
	store := conversation.New("persona")
	session := chat.NewSession(&blockingExchanger{release: make(chan struct{})}, store, "persona", slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(session.Close)
	return NewContext(session, chat.NewDisplayLog(), args, "")
}

func TestClearHandler(t *testing.T) {
	ctx := newTestContext(t, "")
	ctx.Session.Store().AppendUser("hi")
	ctx.Session.Store().AppendAssistant("hello")
	ctx.Display.Append("Вы: hi")

	result := (&ClearHandler{}).Execute(ctx)

	if !result.Cleared || result.Error != nil {
		t.Fatalf("Expected cleared result, got %+v", result)
	}
	if ctx.Session.Store().Len() != 1 {
		t.Errorf("Expected only the system message, got %d", ctx.Session.Store().Len())
	}
	if ctx.Display.Len() != 0 {
		t.Errorf("Expected empty display log, got %d", ctx.Display.Len())
	}
}

func TestClearHandler_Busy(t *testing.T) {
	ctx := newTestContext(t, "")
	if err := ctx.Session.Submit("hi"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	ctx.Display.Append("Вы: hi")

	result := (&ClearHandler{}).Execute(ctx)

	if result.Cleared {
		t.Fatal("Expected clear to be refused while busy")
	}
	if ctx.Display.Len() != 1 {
		t.Error("Display log must be kept when clear is refused")
	}
}

func TestExportHandler_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chat.txt")
	ctx := newTestContext(t, path)
	ctx.Display.Append("Вы: hi")
	ctx.Display.Append("Чат-бот: hello")

	result := (&ExportHandler{}).Execute(ctx)
	if result.Error != nil {
		t.Fatalf("Execute() error: %v", result.Error)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != ctx.Display.String() {
		t.Errorf("Expected %q, got %q", ctx.Display.String(), string(data))
	}
}

func TestExportHandler_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.MD")
	ctx := newTestContext(t, path)
	ctx.Session.Store().AppendUser("hi")

	result := (&ExportHandler{}).Execute(ctx)
	if result.Error != nil {
		t.Fatalf("Execute() error: %v", result.Error)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Chat transcript\n") {
		t.Errorf("Expected markdown transcript, got %q", string(data))
	}
}

func TestExportHandler_MissingPath(t *testing.T) {
	result := (&ExportHandler{}).Execute(newTestContext(t, ""))
	if result.Message != "Usage: /export <file>" {
		t.Errorf("Unexpected message %q", result.Message)
	}
}

func TestCopyHandler(t *testing.T) {
	ctx := newTestContext(t, "")

	if result := (&CopyHandler{}).Execute(ctx); result.Copy != "" {
		t.Errorf("Expected nothing to copy, got %q", result.Copy)
	}

	ctx.LastReply = "reply"
	if result := (&CopyHandler{}).Execute(ctx); result.Copy != "reply" {
		t.Errorf("Expected last reply to be copied, got %q", result.Copy)
	}
}

func TestHelpHandler_ListsCommands(t *testing.T) {
	d := NewDispatcher()
	result := d.Dispatch("/help", NewContext(nil, nil, "", ""))

	for _, name := range []string{"/clear", "/export", "/copy", "/quit", "/help"} {
		if !strings.Contains(result.Message, name) {
			t.Errorf("Help should mention %s, got %q", name, result.Message)
		}
	}
}
