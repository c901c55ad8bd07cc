package tui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/clark/marks"
	"github.com/user/clark/playback"
	"github.com/user/clark/tui/components"
	"github.com/user/clark/tui/styles"
)

// defaultWidth is used until the first tea.WindowSizeMsg arrives.
const defaultWidth = 80

// Player is the set of playback commands the UI issues.
type Player interface {
	TogglePause() error
	SetPause(paused bool) error
	SeekRelative(seconds float64) error
	SeekAbsolute(seconds float64) error
	SeekPercent(percent float64) error
	AddSpeed(delta float64) error
	AddVolume(delta float64) error
}

// Result is what a finished session hands back to the caller.
type Result struct {
	// Marks in the order they were made.
	Marks []int64
	// Sorted marks, ascending.
	Sorted []int64
	// DurationMs is the last duration the player reported.
	DurationMs int64
	// PlayerClosed is set when the session ended because the player went away.
	PlayerClosed bool
}

// Model is the Bubbletea model for the marking UI.
// It is the only writer of the playback state and the mark store: player
// updates arrive as messages and key presses are dispatched in Update.
type Model struct {
	player   Player
	commands *playerQueue
	updates  <-chan playback.Update
	logger   *slog.Logger

	// store holds the marks made this session
	store *marks.Store
	// state is the last playback state reported by the player
	state playback.State
	// playerClosed is set when the update channel closed
	playerClosed bool
	// quitting flag to signal shutdown
	quitting bool
	// terminal width
	width int
	help  help.Model
}

// NewModel creates a model driving player and fed by updates. Player commands
// run on a worker owned by the model until Stop is called.
func NewModel(player Player, updates <-chan playback.Update, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.HelpDesc
	return &Model{
		player:   player,
		commands: newPlayerQueue(),
		updates:  updates,
		logger:   logger,
		store:    marks.New(),
		width:    defaultWidth,
		help:     h,
	}
}

// Init starts listening for player updates and failed player commands.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForPlayerErr(m.commands))
}

// Stop ends the player command worker. Commands not yet sent are dropped.
func (m *Model) Stop() {
	m.commands.stop()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case playbackMsg:
		if _, closed := msg.update.(playback.Closed); closed {
			return m.closePlayer()
		}
		m.state = msg.update.Apply(m.state)
		return m, waitForUpdate(m.updates)

	case playerClosedMsg:
		return m.closePlayer()

	case playerErrMsg:
		m.logger.Warn("player command failed", "error", msg.err)
		return m, waitForPlayerErr(m.commands)

	case tea.KeyMsg:
		return m, m.dispatch(ActionForKey(msg))
	}

	return m, nil
}

// closePlayer ends the session because the player is gone.
func (m *Model) closePlayer() (tea.Model, tea.Cmd) {
	if !m.playerClosed {
		m.logger.Info("player closed")
	}
	m.playerClosed = true
	m.quitting = true
	return m, tea.Quit
}

// dispatch applies one action. Mark edits happen here; the displayed position
// and pause state only change when the player reports them back.
func (m *Model) dispatch(a Action) tea.Cmd {
	switch a.Kind {
	case ActionQuit:
		m.quitting = true
		return tea.Quit

	case ActionTogglePause:
		return m.toPlayer(m.player.TogglePause)

	case ActionMark:
		m.store.Mark(m.state.PositionMs)
		return nil

	case ActionDelete:
		m.store.Delete()
		return nil

	case ActionPrevMark:
		v, ok := m.store.NearestBelow(m.state.PositionMs - 1)
		if !ok {
			return nil
		}
		return m.seekToMark(v)

	case ActionNextMark:
		v, ok := m.store.NearestAbove(m.state.PositionMs + 1)
		if !ok {
			return nil
		}
		return m.seekToMark(v)

	case ActionSeekPercent:
		percent := a.Arg
		return m.toPlayer(func() error { return m.player.SeekPercent(percent) })

	case ActionSeekEnd:
		// Seeking to the exact last millisecond is unreliable; use the last whole second.
		seconds := float64(m.state.DurationMs / 1000)
		return m.toPlayer(func() error { return m.player.SeekAbsolute(seconds) })

	case ActionSeekRelative:
		seconds := a.Arg
		return m.toPlayer(func() error { return m.player.SeekRelative(seconds) })

	case ActionSpeed:
		delta := a.Arg
		return m.toPlayer(func() error { return m.player.AddSpeed(delta) })

	case ActionVolume:
		delta := a.Arg
		return m.toPlayer(func() error { return m.player.AddVolume(delta) })

	case ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	return nil
}

// seekToMark selects v and moves the player there, paused.
func (m *Model) seekToMark(v int64) tea.Cmd {
	m.store.SelectValue(v)
	seconds := float64(v) / 1000
	return m.toPlayer(func() error {
		return errors.Join(m.player.SeekAbsolute(seconds), m.player.SetPause(true))
	})
}

// toPlayer queues fn behind earlier player commands so the player sees them
// in key order. The display is not touched until the player reports back.
func (m *Model) toPlayer(fn func() error) tea.Cmd {
	if !m.commands.push(fn) {
		m.logger.Warn("player command dropped, queue full")
	}
	return nil
}

// markStats describes the selected mark for the header.
func (m *Model) markStats() components.MarkStats {
	selected, ok := m.store.SelectedMark()
	if !ok {
		return components.MarkStats{}
	}
	rank, count := m.store.RankOfSelected()
	return components.MarkStats{Selected: selected, Rank: rank, Count: count}
}

// View renders the header, progress and mark rows plus the key help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := components.HeaderRow(m.state.PositionMs, m.state.DurationMs, m.markStats(), m.width)
	progress := components.ProgressRow(m.state.PositionMs, m.state.DurationMs, m.state.Paused, m.width)
	markRow := components.MarkRow(m.store.Sorted(), m.state.DurationMs, m.width)

	var b strings.Builder
	b.WriteString(styles.Header.Render(header))
	b.WriteString("\n")
	b.WriteString(styles.Progress.Render(progress))
	b.WriteString("\n")
	b.WriteString(styles.Marker.Render(markRow))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// Result returns the session outcome.
func (m *Model) Result() Result {
	return Result{
		Marks:        m.store.Marks(),
		Sorted:       m.store.Sorted(),
		DurationMs:   m.state.DurationMs,
		PlayerClosed: m.playerClosed,
	}
}

// Run starts the marking UI in the alternate screen and blocks until the
// user quits or the player goes away. The terminal is restored on return.
func Run(player Player, updates <-chan playback.Update, logger *slog.Logger, opts ...tea.ProgramOption) (Result, error) {
	model := NewModel(player, updates, logger)
	defer model.Stop()
	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	if _, err := p.Run(); err != nil {
		return model.Result(), err
	}
	return model.Result(), nil
}
