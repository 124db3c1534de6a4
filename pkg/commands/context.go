package commands

import (
	"amdchat/pkg/chat"
)

// Context contains all the context needed for command execution
type Context struct {
	Session   *chat.Session
	Display   *chat.DisplayLog
	Args      string
	LastReply string
}

// NewContext creates a new command context
func NewContext(session *chat.Session, display *chat.DisplayLog, args, lastReply string) *Context {
	return &Context{
		Session:   session,
		Display:   display,
		Args:      args,
		LastReply: lastReply,
	}
}
