// Package sessionclock tracks elapsed wall time for the current play
// session. The clock is the single source of truth for "how long has
// the user been actively playing", independent of which mini-game is
// active: it survives navigation between games, supports pause/resume
// for inactivity, and freeze/unfreeze for detours to the statistics
// screen that should not count against play time.
package sessionclock

import (
	"sync"
	"time"

	"github.com/rahulnair/neuroplay/internal/storage"
)

const (
	// SessionTimeout resets the session after this much inactivity.
	SessionTimeout = 10 * time.Minute

	// MaxSessionAge discards any persisted session older than this.
	MaxSessionAge = 2 * time.Hour
)

// Source supplies the current time. Production code uses SystemSource;
// tests substitute a fake to step time deterministically.
type Source interface {
	Now() time.Time
}

// SystemSource is a Source backed by time.Now.
type SystemSource struct{}

func (SystemSource) Now() time.Time { return time.Now() }

// Listener receives the elapsed play time and active flag on every
// state transition.
type Listener func(elapsed time.Duration, active bool)

// state is the persisted clock snapshot. Millisecond timestamps keep
// the stored blob compatible with the export format.
type state struct {
	IsActive          bool  `json:"isActive"`
	StartTime         int64 `json:"startTime"`         // unix ms, 0 if inactive
	TotalPausedTime   int64 `json:"totalPausedTime"`   // ms
	CurrentPauseStart int64 `json:"currentPauseStart"` // unix ms, 0 if not paused
	IsFrozen          bool  `json:"isFrozen"`
	FrozenElapsed     int64 `json:"frozenElapsed"`    // ms, valid while frozen
	LastActivityTime  int64 `json:"lastActivityTime"` // unix ms
}

// Clock is the global session clock service.
type Clock struct {
	mu        sync.Mutex
	kv        storage.KV
	src       Source
	st        state
	listeners map[int]Listener
	nextID    int
}

// New creates a Clock backed by kv, restoring any persisted session
// that has not expired. A nil src defaults to the system clock.
// Persistence failures leave the clock inactive rather than failing.
func New(kv storage.KV, src Source) *Clock {
	if src == nil {
		src = SystemSource{}
	}
	c := &Clock{
		kv:        kv,
		src:       src,
		listeners: make(map[int]Listener),
	}
	c.load()
	return c
}

func (c *Clock) load() {
	var st state
	if !storage.GetJSON(c.kv, storage.KeyGlobalClock, &st) {
		return
	}
	if st.StartTime == 0 {
		return
	}

	now := c.src.Now().UnixMilli()
	lastActivity := st.LastActivityTime
	if lastActivity == 0 {
		lastActivity = st.StartTime
	}

	// Liveness rule: a session expires after 10 minutes of inactivity
	// or 2 hours of age.
	age := time.Duration(now-st.StartTime) * time.Millisecond
	inactive := time.Duration(now-lastActivity) * time.Millisecond
	if age >= MaxSessionAge || inactive >= SessionTimeout {
		if err := c.kv.Delete(storage.KeyGlobalClock); err != nil {
			// Stale blob stays behind; it will be discarded again on
			// the next load.
			_ = err
		}
		return
	}

	c.st = st
}

func (c *Clock) save() {
	storage.SetJSON(c.kv, storage.KeyGlobalClock, c.st)
}

// StartSession starts a new session, or continues the existing one.
// A session stale for SessionTimeout or more is discarded and restarted.
// Continuing a frozen session folds the frozen interval into paused
// time so it is excluded from elapsed play time.
func (c *Clock) StartSession() {
	c.mu.Lock()

	now := c.src.Now().UnixMilli()

	if c.st.IsActive && c.st.LastActivityTime != 0 {
		inactive := time.Duration(now-c.st.LastActivityTime) * time.Millisecond
		if inactive >= SessionTimeout {
			c.st = state{
				IsActive:         true,
				StartTime:        now,
				LastActivityTime: now,
			}
			c.save()
			c.mu.Unlock()
			c.notify()
			return
		}
	}

	if !c.st.IsActive {
		c.st = state{
			IsActive:         true,
			StartTime:        now,
			LastActivityTime: now,
		}
	} else {
		if c.st.IsFrozen {
			c.foldFrozenLocked(now)
		}
		c.st.LastActivityTime = now
	}
	c.save()
	c.mu.Unlock()
	c.notify()
}

// EndSession resets the clock to the inactive state.
func (c *Clock) EndSession() {
	c.mu.Lock()
	c.st = state{}
	c.save()
	c.mu.Unlock()
	c.notify()
}

// RecordActivity refreshes the activity stamp to suppress the
// inactivity timeout. Callers invoke this on every meaningful user
// interaction.
func (c *Clock) RecordActivity() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.st.IsActive {
		return
	}
	c.st.LastActivityTime = c.src.Now().UnixMilli()
	c.save()
}

// Pause records the start of an inactivity pause. Calling Pause twice
// without an intervening Resume is a no-op.
func (c *Clock) Pause() {
	c.mu.Lock()
	if !c.st.IsActive || c.st.CurrentPauseStart != 0 {
		c.mu.Unlock()
		return
	}
	c.st.CurrentPauseStart = c.src.Now().UnixMilli()
	c.save()
	c.mu.Unlock()
	c.notify()
}

// Resume ends the current pause, adding its duration to the paused
// total. No-op when not paused.
func (c *Clock) Resume() {
	c.mu.Lock()
	if !c.st.IsActive || c.st.CurrentPauseStart == 0 {
		c.mu.Unlock()
		return
	}
	c.st.TotalPausedTime += c.src.Now().UnixMilli() - c.st.CurrentPauseStart
	c.st.CurrentPauseStart = 0
	c.save()
	c.mu.Unlock()
	c.notify()
}

// Freeze captures the elapsed time so a stats detour does not advance
// the displayed timer. No-op when already frozen or inactive.
func (c *Clock) Freeze() {
	c.mu.Lock()
	if !c.st.IsActive || c.st.IsFrozen {
		c.mu.Unlock()
		return
	}
	c.st.FrozenElapsed = int64(c.elapsedLocked() / time.Millisecond)
	c.st.IsFrozen = true
	c.save()
	c.mu.Unlock()
	c.notify()
}

// Unfreeze folds the real time spent frozen into the paused total, so
// the displayed timer does not jump.
func (c *Clock) Unfreeze() {
	c.mu.Lock()
	if !c.st.IsActive || !c.st.IsFrozen {
		c.mu.Unlock()
		return
	}
	c.foldFrozenLocked(c.src.Now().UnixMilli())
	c.save()
	c.mu.Unlock()
	c.notify()
}

// foldFrozenLocked clears the frozen state, attributing the interval
// spent frozen to paused time.
func (c *Clock) foldFrozenLocked(nowMs int64) {
	currentElapsed := nowMs - c.st.StartTime - c.st.TotalPausedTime
	frozenFor := currentElapsed - c.st.FrozenElapsed
	if frozenFor > 0 {
		c.st.TotalPausedTime += frozenFor
	}
	c.st.IsFrozen = false
	c.st.FrozenElapsed = 0
}

// Elapsed returns the active play time for the current session,
// floored at zero. While frozen it returns the captured elapsed value.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *Clock) elapsedLocked() time.Duration {
	if !c.st.IsActive || c.st.StartTime == 0 {
		return 0
	}
	if c.st.IsFrozen {
		return time.Duration(c.st.FrozenElapsed) * time.Millisecond
	}

	now := c.src.Now().UnixMilli()
	elapsed := now - c.st.StartTime - c.st.TotalPausedTime
	if c.st.CurrentPauseStart != 0 {
		elapsed -= now - c.st.CurrentPauseStart
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return time.Duration(elapsed) * time.Millisecond
}

// IsActive reports whether a session is running.
func (c *Clock) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.IsActive
}

// IsPaused reports whether an inactivity pause is in progress.
func (c *Clock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.CurrentPauseStart != 0
}

// IsFrozen reports whether the clock is frozen for a stats detour.
func (c *Clock) IsFrozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.IsFrozen
}

// StartTime returns when the session started, or the zero time.
func (c *Clock) StartTime() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.StartTime == 0 {
		return time.Time{}
	}
	return time.UnixMilli(c.st.StartTime)
}

// TotalPaused returns the accumulated paused time for the session.
func (c *Clock) TotalPaused() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Duration(c.st.TotalPausedTime) * time.Millisecond
}

// Subscribe registers a listener invoked on every state transition.
// The returned function removes the listener.
func (c *Clock) Subscribe(l Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Clock) notify() {
	c.mu.Lock()
	elapsed := c.elapsedLocked()
	active := c.st.IsActive
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.Unlock()

	for _, l := range ls {
		l(elapsed, active)
	}
}
