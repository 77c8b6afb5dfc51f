// Package robux converts the global session clock's elapsed play time
// into whole-unit currency awards, exactly once per minute boundary.
//
// There is exactly one logical timer driving awards system-wide. An
// earlier design ran one timer per mounted game and multiplied rewards;
// this design derives award timing purely from the clock's elapsed time
// and a single lastAwardedMinute watermark, so the number of games
// polling is irrelevant.
package robux

import (
	"context"
	"sync"
	"time"

	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/storage"
)

// PollInterval is how often the timer checks for a crossed minute
// boundary. Award granularity is per-minute, so a second is plenty.
const PollInterval = time.Second

// Timer awards one robux per elapsed minute of active play.
type Timer struct {
	mu    sync.Mutex
	kv    storage.KV
	clock *sessionclock.Clock

	running           bool
	game              string
	lastAwardedMinute int
	rate              int
}

// NewTimer creates a Timer deriving awards from clock.
func NewTimer(kv storage.KV, clock *sessionclock.Clock) *Timer {
	return &Timer{kv: kv, clock: clock, rate: 1}
}

// SetRate changes the robux awarded per minute. Rates below one are
// ignored so awards never stop entirely.
func (t *Timer) SetRate(perMinute int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if perMinute >= 1 {
		t.rate = perMinute
	}
}

// Start begins award tracking for a game. The watermark is reset to the
// minute already on the clock, so time elapsed before this call (for
// example in a resumed session) is not double-awarded.
func (t *Timer) Start(game string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
	t.game = game
	t.lastAwardedMinute = int(t.clock.Elapsed() / time.Minute)
}

// Stop halts award tracking. Idempotent.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.game = ""
	t.lastAwardedMinute = 0
}

// Running reports whether the timer is tracking awards.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Game returns the game the timer was started for, or "".
func (t *Timer) Game() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game
}

// Poll awards robux for any minute boundaries crossed since the last
// poll and returns the number awarded. Multiple boundaries crossed at
// once (a backgrounded poll loop) are coalesced into a single award of
// the full difference. Calling Poll repeatedly within one minute awards
// nothing. Pausing needs no handling here: a paused clock stops
// advancing elapsed time, so the watermark is never passed.
func (t *Timer) Poll() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0
	}

	currentMinute := int(t.clock.Elapsed() / time.Minute)
	if currentMinute <= t.lastAwardedMinute {
		return 0
	}

	awarded := (currentMinute - t.lastAwardedMinute) * t.rate
	t.lastAwardedMinute = currentMinute
	storage.SetRobuxCount(t.kv, storage.GetRobuxCount(t.kv)+awarded)
	return awarded
}

// Earned returns the robux earned so far this session, derived from the
// clock rather than tracked independently, so it is consistent with the
// clock by construction.
func (t *Timer) Earned() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.clock.Elapsed()/time.Minute) * t.rate
}

// Run polls until ctx is cancelled. The TUI drives Poll from its own
// tick messages instead; Run serves headless callers.
func (t *Timer) Run(ctx context.Context) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Poll()
		}
	}
}
