package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"amdchat/pkg/chat"
)

// ClearHandler handles the /clear command
type ClearHandler struct{}

func (h *ClearHandler) Name() string        { return "/clear" }
func (h *ClearHandler) Description() string { return "Start a new conversation" }

func (h *ClearHandler) Execute(ctx *Context) *Result {
	if err := ctx.Session.Clear(); err != nil {
		if errors.Is(err, chat.ErrBusy) {
			return &Result{Message: "Cannot clear while a request is in flight"}
		}
		return &Result{Error: err}
	}
	ctx.Display.Reset()
	return &Result{Cleared: true}
}

// ExportHandler handles the /export command
type ExportHandler struct{}

func (h *ExportHandler) Name() string { return "/export" }
func (h *ExportHandler) Description() string {
	return "Save the chat to <file> (.md saves the raw transcript)"
}

func (h *ExportHandler) Execute(ctx *Context) *Result {
	path := ctx.Args
	if path == "" {
		return &Result{Message: "Usage: /export <file>"}
	}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".md") {
		err = chat.ExportMarkdown(path, ctx.Session.Store().Snapshot())
	} else {
		err = ctx.Display.Export(path)
	}
	if err != nil {
		return &Result{Error: err}
	}
	return &Result{Message: "Saved chat to " + path}
}

// CopyHandler handles the /copy command
type CopyHandler struct{}

func (h *CopyHandler) Name() string        { return "/copy" }
func (h *CopyHandler) Description() string { return "Copy the last reply to the clipboard" }

func (h *CopyHandler) Execute(ctx *Context) *Result {
	if ctx.LastReply == "" {
		return &Result{Message: "Nothing to copy yet"}
	}
	return &Result{
		Message: "Copied last reply to clipboard",
		Copy:    ctx.LastReply,
	}
}

// QuitHandler handles the /quit command
type QuitHandler struct{}

func (h *QuitHandler) Name() string        { return "/quit" }
func (h *QuitHandler) Description() string { return "Exit" }

func (h *QuitHandler) Execute(ctx *Context) *Result {
	return &Result{Quit: true}
}

// HelpHandler handles the /help command
type HelpHandler struct {
	dispatcher *Dispatcher
}

func (h *HelpHandler) Name() string        { return "/help" }
func (h *HelpHandler) Description() string { return "Show help" }

func (h *HelpHandler) Execute(ctx *Context) *Result {
	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, handler := range h.dispatcher.Handlers() {
		fmt.Fprintf(&sb, "\n  %-8s - %s", handler.Name(), handler.Description())
	}
	sb.WriteString("\n\nEnter sends, PgUp/PgDn scroll, Ctrl+C exits. Start a message with // to send text that begins with a command name.")
	return &Result{Message: sb.String()}
}
