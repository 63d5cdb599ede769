// Package tui provides the Bubble Tea integration for the match-three game.
// It handles the terminal UI loop, input mapping and level selection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval converts a tick rate to the delay between ticks. Rates below
// one are treated as one tick per second.
func tickInterval(tickRate int) time.Duration {
	return time.Second / time.Duration(max(tickRate, 1))
}
