// Package commands implements the slash commands typed into the chat input.
package commands

import (
	"sort"
	"strings"
)

// Result represents the result of a command execution
type Result struct {
	Message string // feedback for the user, not part of the transcript
	Error   error
	Quit    bool
	Cleared bool
	Copy    string // text to place on the clipboard
}

// Handler is the interface for command handlers
type Handler interface {
	Execute(ctx *Context) *Result
	Name() string
	Description() string
}

// Dispatcher routes commands to their handlers
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher creates a new command dispatcher
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	// Register default handlers
	d.Register(&ClearHandler{})
	d.Register(&ExportHandler{})
	d.Register(&CopyHandler{})
	d.Register(&QuitHandler{})
	d.Register(&HelpHandler{dispatcher: d})

	return d
}

// Register adds a handler to the dispatcher
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
}

// Dispatch executes a command by name
func (d *Dispatcher) Dispatch(cmdName string, ctx *Context) *Result {
	handler, ok := d.GetHandler(cmdName)
	if !ok {
		return &Result{
			Message: "Unknown command " + cmdName + ", try /help",
		}
	}

	return handler.Execute(ctx)
}

// GetHandler returns a handler by name
func (d *Dispatcher) GetHandler(cmdName string) (Handler, bool) {
	h, ok := d.handlers[strings.ToLower(cmdName)]
	return h, ok
}

// IsCommand reports whether input names a registered command. Other text,
// including paths such as "/dev/dri", is sent as a message.
func (d *Dispatcher) IsCommand(input string) bool {
	name, _ := Parse(input)
	_, ok := d.GetHandler(name)
	return ok
}

// Handlers returns every registered handler ordered by name.
func (d *Dispatcher) Handlers() []Handler {
	list := make([]Handler, 0, len(d.handlers))
	for _, h := range d.handlers {
		list = append(list, h)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// Unescape turns a leading "//" into "/" so a message may start with a
// command name. It reports whether input was escaped.
func Unescape(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "//") {
		return trimmed[1:], true
	}
	return input, false
}

// Parse splits "/export ~/chat.txt" into the command name and its argument.
func Parse(input string) (name, args string) {
	input = strings.TrimSpace(input)
	name, args, _ = strings.Cut(input, " ")
	return name, strings.TrimSpace(args)
}
