package robux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/storage"
)

type fakeSource struct {
	now time.Time
}

func (f *fakeSource) Now() time.Time          { return f.now }
func (f *fakeSource) advance(d time.Duration) { f.now = f.now.Add(d) }

func setup(t *testing.T) (*Timer, *fakeSource, storage.KV, *sessionclock.Clock) {
	t.Helper()
	src := &fakeSource{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryKV()
	clock := sessionclock.New(kv, src)
	return NewTimer(kv, clock), src, kv, clock
}

func TestPoll_AwardsOncePerMinute(t *testing.T) {
	timer, src, kv, clock := setup(t)
	clock.StartSession()
	timer.Start("multiply")

	src.advance(59 * time.Second)
	assert.Equal(t, 0, timer.Poll())

	src.advance(2 * time.Second)
	assert.Equal(t, 1, timer.Poll())
	assert.Equal(t, 1, storage.GetRobuxCount(kv))

	// Repeated polls within the same minute award nothing more.
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0, timer.Poll())
	}
	assert.Equal(t, 1, storage.GetRobuxCount(kv))
}

func TestPoll_CoalescesMissedMinutes(t *testing.T) {
	timer, src, kv, clock := setup(t)
	clock.StartSession()
	timer.Start("divide")

	// Backgrounded tab: four minutes pass between polls.
	src.advance(4*time.Minute + time.Second)
	assert.Equal(t, 4, timer.Poll())
	assert.Equal(t, 4, storage.GetRobuxCount(kv))
}

func TestStart_ResetsWatermarkToCurrentMinute(t *testing.T) {
	timer, src, kv, clock := setup(t)
	clock.StartSession()

	// Three minutes already on the clock before the timer starts.
	src.advance(3 * time.Minute)
	timer.Start("clockwise")

	assert.Equal(t, 0, timer.Poll())
	src.advance(time.Minute)
	assert.Equal(t, 1, timer.Poll())
	assert.Equal(t, 1, storage.GetRobuxCount(kv))
}

func TestPoll_NoAwardWhilePaused(t *testing.T) {
	timer, src, kv, clock := setup(t)
	clock.StartSession()
	timer.Start("timeofday")

	clock.Pause()
	src.advance(10 * time.Minute)
	assert.Equal(t, 0, timer.Poll())
	assert.Equal(t, 0, storage.GetRobuxCount(kv))

	clock.Resume()
	src.advance(time.Minute)
	assert.Equal(t, 1, timer.Poll())
}

func TestStop_Idempotent(t *testing.T) {
	timer, src, _, clock := setup(t)
	clock.StartSession()
	timer.Start("multiply")
	timer.Stop()
	timer.Stop()

	src.advance(5 * time.Minute)
	assert.Equal(t, 0, timer.Poll())
	assert.False(t, timer.Running())
}

func TestEarned_DerivedFromClock(t *testing.T) {
	timer, src, _, clock := setup(t)
	clock.StartSession()
	timer.Start("multiply")

	src.advance(150 * time.Second)
	assert.Equal(t, 2, timer.Earned())

	clock.Pause()
	src.advance(time.Hour)
	assert.Equal(t, 2, timer.Earned())
}

func TestPoll_AccumulatesAcrossExistingBalance(t *testing.T) {
	timer, src, kv, clock := setup(t)
	storage.SetRobuxCount(kv, 40)

	clock.StartSession()
	timer.Start("divide")
	src.advance(2 * time.Minute)
	timer.Poll()

	assert.Equal(t, 42, storage.GetRobuxCount(kv))
}

func TestSetRate_MultipliesAwards(t *testing.T) {
	timer, src, kv, clock := setup(t)
	timer.SetRate(3)
	timer.SetRate(0) // ignored

	clock.StartSession()
	timer.Start("multiply")
	src.advance(2 * time.Minute)

	assert.Equal(t, 6, timer.Poll())
	assert.Equal(t, 6, storage.GetRobuxCount(kv))
	assert.Equal(t, 6, timer.Earned())
}
