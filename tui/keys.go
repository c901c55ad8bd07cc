package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	coarseSeekSeconds = 15.0
	fineSeekSeconds   = 5.0
	// frameSeekSeconds is roughly one frame at 60fps.
	frameSeekSeconds = 0.016
	speedStep        = 0.2
	volumeStep       = 5.0
)

// ActionKind identifies what a key press asks for.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionTogglePause
	ActionMark
	ActionDelete
	ActionPrevMark
	ActionNextMark
	// ActionSeekPercent seeks to Arg percent of the duration.
	ActionSeekPercent
	// ActionSeekEnd seeks to the last whole second of the media.
	ActionSeekEnd
	// ActionSeekRelative seeks by Arg seconds.
	ActionSeekRelative
	// ActionSpeed changes the playback speed by Arg.
	ActionSpeed
	// ActionVolume changes the volume by Arg.
	ActionVolume
	// ActionToggleHelp switches the footer between short and full key help.
	ActionToggleHelp
)

// Action is a decoded key press.
type Action struct {
	Kind ActionKind
	Arg  float64
}

// keyMap holds the fixed key bindings. It implements help.KeyMap.
type keyMap struct {
	Quit        key.Binding
	TogglePause key.Binding
	Mark        key.Binding
	Delete      key.Binding
	PrevMark    key.Binding
	NextMark    key.Binding
	Percent     key.Binding
	SeekEnd     key.Binding
	BackCoarse  key.Binding
	FwdCoarse   key.Binding
	BackFine    key.Binding
	FwdFine     key.Binding
	BackFrame   key.Binding
	FwdFrame    key.Binding
	SpeedDown   key.Binding
	SpeedUp     key.Binding
	VolumeDown  key.Binding
	VolumeUp    key.Binding
	Help        key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "quit"),
	),
	TogglePause: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "play/pause"),
	),
	Mark: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark"),
	),
	Delete: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "delete mark"),
	),
	PrevMark: key.NewBinding(
		key.WithKeys("J"),
		key.WithHelp("J", "prev mark"),
	),
	NextMark: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "next mark"),
	),
	Percent: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "seek 0-90%"),
	),
	SeekEnd: key.NewBinding(
		key.WithKeys(")"),
		key.WithHelp(")", "seek end"),
	),
	BackCoarse: key.NewBinding(
		key.WithKeys("j"),
		key.WithHelp("j", "-15s"),
	),
	FwdCoarse: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "+15s"),
	),
	BackFine: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "-5s"),
	),
	FwdFine: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "+5s"),
	),
	BackFrame: key.NewBinding(
		key.WithKeys(","),
		key.WithHelp(",", "-frame"),
	),
	FwdFrame: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "+frame"),
	),
	SpeedDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "slower"),
	),
	SpeedUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "faster"),
	),
	VolumeDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "vol down"),
	),
	VolumeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "vol up"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePause, k.Mark, k.Delete, k.PrevMark, k.NextMark, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by concern.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePause, k.Mark, k.Delete, k.PrevMark, k.NextMark},
		{k.BackCoarse, k.FwdCoarse, k.BackFine, k.FwdFine, k.BackFrame, k.FwdFrame},
		{k.Percent, k.SeekEnd, k.SpeedDown, k.SpeedUp, k.VolumeDown, k.VolumeUp},
		{k.Help, k.Quit},
	}
}

// ActionForKey maps a key press to its action. Unbound keys give ActionNone.
func ActionForKey(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, keys.Quit):
		return Action{Kind: ActionQuit}
	case key.Matches(msg, keys.TogglePause):
		return Action{Kind: ActionTogglePause}
	case key.Matches(msg, keys.Mark):
		return Action{Kind: ActionMark}
	case key.Matches(msg, keys.Delete):
		return Action{Kind: ActionDelete}
	case key.Matches(msg, keys.PrevMark):
		return Action{Kind: ActionPrevMark}
	case key.Matches(msg, keys.NextMark):
		return Action{Kind: ActionNextMark}
	case key.Matches(msg, keys.Percent):
		digit, _ := strconv.Atoi(msg.String())
		return Action{Kind: ActionSeekPercent, Arg: float64(10 * digit)}
	case key.Matches(msg, keys.SeekEnd):
		return Action{Kind: ActionSeekEnd}
	case key.Matches(msg, keys.BackCoarse):
		return Action{Kind: ActionSeekRelative, Arg: -coarseSeekSeconds}
	case key.Matches(msg, keys.FwdCoarse):
		return Action{Kind: ActionSeekRelative, Arg: coarseSeekSeconds}
	case key.Matches(msg, keys.BackFine):
		return Action{Kind: ActionSeekRelative, Arg: -fineSeekSeconds}
	case key.Matches(msg, keys.FwdFine):
		return Action{Kind: ActionSeekRelative, Arg: fineSeekSeconds}
	case key.Matches(msg, keys.BackFrame):
		return Action{Kind: ActionSeekRelative, Arg: -frameSeekSeconds}
	case key.Matches(msg, keys.FwdFrame):
		return Action{Kind: ActionSeekRelative, Arg: frameSeekSeconds}
	case key.Matches(msg, keys.SpeedDown):
		return Action{Kind: ActionSpeed, Arg: -speedStep}
	case key.Matches(msg, keys.SpeedUp):
		return Action{Kind: ActionSpeed, Arg: speedStep}
	case key.Matches(msg, keys.VolumeDown):
		return Action{Kind: ActionVolume, Arg: -volumeStep}
	case key.Matches(msg, keys.VolumeUp):
		return Action{Kind: ActionVolume, Arg: volumeStep}
	case key.Matches(msg, keys.Help):
		return Action{Kind: ActionToggleHelp}
	}
	return Action{Kind: ActionNone}
}
