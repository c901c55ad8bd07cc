package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/clark/playback"
)

// playbackMsg carries one normalized update from the player.
type playbackMsg struct {
	update playback.Update
}

// playerClosedMsg is sent once the player's update channel is drained and closed.
type playerClosedMsg struct{}

// playerErrMsg reports a player command that failed.
type playerErrMsg struct {
	err error
}

// waitForUpdate returns a tea.Cmd that waits for the next update on the channel.
// It is re-armed after every playbackMsg so updates are consumed one at a time.
func waitForUpdate(ch <-chan playback.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return playerClosedMsg{}
		}
		return playbackMsg{update: u}
	}
}

// waitForPlayerErr returns a tea.Cmd that waits for the next failed player
// command. It is re-armed after every playerErrMsg.
func waitForPlayerErr(q *playerQueue) tea.Cmd {
	return func() tea.Msg {
		select {
		case err := <-q.errs:
			return playerErrMsg{err: err}
		case <-q.done:
			return nil
		}
	}
}
