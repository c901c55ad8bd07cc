package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/clark/mpv"
)

func TestNormalizePosition(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want int64
	}{
		{"nil", nil, 0},
		{"negative loop wrap", -0.04, 0},
		{"zero", 0.0, 0},
		{"rounds to ms", 12.3456, 12346},
		{"whole seconds", 3.0, 3000},
		{"wrong type", "1.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePosition(tt.v))
		})
	}
}

func TestNormalizeDuration(t *testing.T) {
	assert.Equal(t, int64(0), NormalizeDuration(nil))
	assert.Equal(t, int64(90500), NormalizeDuration(90.5))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		ev   mpv.Event
		want Update
		ok   bool
	}{
		{"position", mpv.Event{Name: "property-change", Property: mpv.PropPlaybackTime, Data: 1.5}, Position(1500), true},
		{"position unavailable", mpv.Event{Name: "property-change", Property: mpv.PropPlaybackTime}, Position(0), true},
		{"duration", mpv.Event{Name: "property-change", Property: mpv.PropDuration, Data: 60.0}, Duration(60000), true},
		{"paused", mpv.Event{Name: "property-change", Property: mpv.PropPause, Data: true}, Paused(true), true},
		{"paused missing", mpv.Event{Name: "property-change", Property: mpv.PropPause}, nil, false},
		{"other property", mpv.Event{Name: "property-change", Property: "volume", Data: 50.0}, nil, false},
		{"other event", mpv.Event{Name: "seek"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.ev)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdate_Apply(t *testing.T) {
	st := State{}
	st = Position(1200).Apply(st)
	st = Duration(5000).Apply(st)
	st = Paused(true).Apply(st)
	st = Closed{}.Apply(st)

	assert.Equal(t, State{PositionMs: 1200, DurationMs: 5000, Paused: true}, st)
}

func TestFeed_Run(t *testing.T) {
	events := make(chan mpv.Event, 4)
	out := make(chan Update, 4)

	events <- mpv.Event{Name: "property-change", Property: mpv.PropPlaybackTime, Data: -1.0}
	events <- mpv.Event{Name: "file-loaded"}
	events <- mpv.Event{Name: "property-change", Property: mpv.PropPause, Data: false}
	close(events)

	NewFeed(nil).Run(context.Background(), events, out)

	var got []Update
	for u := range out {
		got = append(got, u)
	}
	assert.Equal(t, []Update{Position(0), Paused(false), Closed{}}, got)
}

func TestFeed_RunStopsOnCancel(t *testing.T) {
	events := make(chan mpv.Event)
	out := make(chan Update)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewFeed(nil).Run(ctx, events, out)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("feed did not stop")
	}
	_, ok := <-out
	require.False(t, ok)
}
