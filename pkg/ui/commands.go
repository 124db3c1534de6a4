package ui

import (
	"amdchat/pkg/chat"
	"amdchat/pkg/commands"

	tea "charm.land/bubbletea/v2"
)

// runCommand dispatches a slash command typed into the input and applies
// its result to the window. Command output is shown but never logged.
func (m *Model) runCommand(input string) tea.Cmd {
	name, args := commands.Parse(input)
	ctx := commands.NewContext(m.session, m.display, args, m.lastReply)
	result := m.dispatcher.Dispatch(name, ctx)

	if result.Cleared {
		m.transcript.Reset()
		m.lastReply = ""
	}
	if result.Error != nil {
		m.transcript.add(lineError, chat.ErrorPrefix+result.Error.Error())
	}
	if result.Message != "" {
		m.info(result.Message)
	}

	switch {
	case result.Quit:
		return tea.Quit
	case result.Copy != "":
		return m.copyToClipboard(result.Copy)
	}
	return nil
}
