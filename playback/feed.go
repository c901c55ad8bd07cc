// Package playback turns mpv property notifications into normalized playback
// updates for the UI loop.
package playback

import (
	"context"
	"log/slog"
	"math"

	"github.com/user/clark/mpv"
)

// State is the playback state shown by the UI.
type State struct {
	PositionMs int64
	DurationMs int64
	Paused     bool
}

// Update is one normalized change of the playback state.
type Update interface {
	// Apply returns st with the change applied.
	Apply(st State) State
}

// Position is a new playback position in milliseconds.
type Position int64

// Duration is a new media duration in milliseconds.
type Duration int64

// Paused is a new pause flag.
type Paused bool

// Closed reports that the player went away.
type Closed struct{}

func (p Position) Apply(st State) State { st.PositionMs = int64(p); return st }
func (d Duration) Apply(st State) State { st.DurationMs = int64(d); return st }
func (p Paused) Apply(st State) State { st.Paused = bool(p); return st }
func (Closed) Apply(st State) State { return st }

// NormalizePosition converts a position in seconds to milliseconds.
// A missing value or a negative one (mpv briefly reports those when a loop
// wraps to the start) becomes 0.
func NormalizePosition(v interface{}) int64 {
	secs, ok := v.(float64)
	if !ok || secs < 0 {
		return 0
	}
	return int64(math.Round(secs * 1000))
}

// NormalizeDuration converts a duration in seconds to milliseconds; a missing
// value becomes 0.
func NormalizeDuration(v interface{}) int64 {
	secs, ok := v.(float64)
	if !ok || secs < 0 {
		return 0
	}
	return int64(math.Round(secs * 1000))
}

// Normalize maps one mpv event to an update. Events the UI does not care
// about report false.
func Normalize(ev mpv.Event) (Update, bool) {
	if ev.Name != "property-change" {
		return nil, false
	}
	switch ev.Property {
	case mpv.PropPlaybackTime:
		return Position(NormalizePosition(ev.Data)), true
	case mpv.PropDuration:
		return Duration(NormalizeDuration(ev.Data)), true
	case mpv.PropPause:
		paused, ok := ev.Data.(bool)
		if !ok {
			return nil, false
		}
		return Paused(paused), true
	}
	return nil, false
}

// Feed forwards normalized updates from the player's notification context to
// the single owner of the UI state.
type Feed struct {
	logger *slog.Logger
}

// NewFeed creates a feed that logs through logger.
func NewFeed(logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Feed{logger: logger}
}

// Run reads events until the channel closes or ctx is done. Every relevant
// event becomes exactly one update on out; nothing is coalesced. When the
// player goes away Closed is sent and out is closed.
func (f *Feed) Run(ctx context.Context, events <-chan mpv.Event, out chan<- Update) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				f.logger.Info("player notifications ended")
				select {
				case out <- Closed{}:
				case <-ctx.Done():
				}
				return
			}
			u, ok := Normalize(ev)
			if !ok {
				f.logger.Debug("ignoring mpv event", "event", ev.Name, "property", ev.Property)
				continue
			}
			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}
}
