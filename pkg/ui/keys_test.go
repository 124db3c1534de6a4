package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Test helpers for creating v2 KeyPressMsg values

// newKeyPressMsg creates a KeyPressMsg from a key code (for special keys)
func newKeyPressMsg(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// newCtrlKeyPressMsg creates a Ctrl+<char> KeyPressMsg
func newCtrlKeyPressMsg(char rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{
		Code: char,
		Mod:  tea.ModCtrl,
	})
}

var (
	testKeyEnter  = newKeyPressMsg(tea.KeyEnter)
	testKeyPgUp   = newKeyPressMsg(tea.KeyPgUp)
	testKeyPgDown = newKeyPressMsg(tea.KeyPgDown)
	testKeyCtrlC  = newCtrlKeyPressMsg('c')
)
