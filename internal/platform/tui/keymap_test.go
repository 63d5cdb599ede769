package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", runeKey('j'), core.ActionDown, false},
		{"wasd left", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"hint", runeKey('?'), core.ActionHint, false},
		{"escape deselects", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := keys.MapKey(tc.msg)
			if action != tc.action {
				t.Errorf("MapKey(%q) action = %v, expected %v", tc.msg.String(), action, tc.action)
			}
			if quit != tc.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tc.msg.String(), quit, tc.quit)
			}
		})
	}
}

func TestKeyMapMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(runeKey('l'), &frame) {
		t.Error("movement must not quit")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("expected ActionRight in frame")
	}

	keys.MapKeyToFrame(runeKey('x'), &frame)
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys must not set an action")
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("short help is empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 11 {
		t.Errorf("full help lists %d bindings, expected 11", total)
	}
}
