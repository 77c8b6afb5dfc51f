package sessionclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulnair/neuroplay/internal/storage"
)

// fakeSource is a manually stepped time source.
type fakeSource struct {
	now time.Time
}

func (f *fakeSource) Now() time.Time { return f.now }

func (f *fakeSource) advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestClock(t *testing.T) (*Clock, *fakeSource, storage.KV) {
	t.Helper()
	src := &fakeSource{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryKV()
	return New(kv, src), src, kv
}

func TestElapsed_InactiveIsZero(t *testing.T) {
	c, _, _ := newTestClock(t)
	assert.Equal(t, time.Duration(0), c.Elapsed())
	assert.False(t, c.IsActive())
}

func TestElapsed_AdvancesWhileActive(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()

	src.advance(90 * time.Second)
	assert.Equal(t, 90*time.Second, c.Elapsed())

	src.advance(30 * time.Second)
	assert.Equal(t, 2*time.Minute, c.Elapsed())
}

func TestPauseResume_ExcludesPausedTime(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()

	src.advance(time.Minute)
	c.Pause()

	src.advance(5 * time.Minute)
	// Elapsed does not advance while paused.
	assert.Equal(t, time.Minute, c.Elapsed())

	c.Resume()
	assert.Equal(t, time.Minute, c.Elapsed())

	src.advance(time.Minute)
	assert.Equal(t, 2*time.Minute, c.Elapsed())
}

func TestPause_Idempotent(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()

	src.advance(time.Minute)
	c.Pause()
	src.advance(time.Minute)
	c.Pause() // second pause must not restart the pause window
	src.advance(time.Minute)
	c.Resume()

	assert.Equal(t, time.Minute, c.Elapsed())
}

func TestResume_WithoutPauseIsNoOp(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()
	src.advance(time.Minute)
	c.Resume()
	assert.Equal(t, time.Minute, c.Elapsed())
}

func TestFreezeUnfreeze_RoundTrip(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()

	src.advance(3 * time.Minute)
	c.Freeze()
	atFreeze := c.Elapsed()
	require.Equal(t, 3*time.Minute, atFreeze)

	// Time spent on the stats screen must not inflate elapsed.
	src.advance(7 * time.Minute)
	assert.Equal(t, atFreeze, c.Elapsed())

	c.Unfreeze()
	assert.Equal(t, atFreeze, c.Elapsed())

	src.advance(time.Minute)
	assert.Equal(t, atFreeze+time.Minute, c.Elapsed())
}

func TestStartSession_FoldsFrozenTime(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()

	src.advance(2 * time.Minute)
	c.Freeze()
	src.advance(4 * time.Minute)

	// Re-entering a game continues the session and unfreezes.
	c.StartSession()
	assert.True(t, c.IsActive())
	assert.False(t, c.IsFrozen())
	assert.Equal(t, 2*time.Minute, c.Elapsed())
}

func TestStartSession_StaleSessionRestarts(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()
	src.advance(5 * time.Minute)

	// 11 minutes with no recorded activity exceeds the timeout.
	src.advance(11 * time.Minute)
	c.StartSession()

	assert.Equal(t, time.Duration(0), c.Elapsed())
	assert.True(t, c.IsActive())
}

func TestRecordActivity_SuppressesTimeout(t *testing.T) {
	c, src, _ := newTestClock(t)
	c.StartSession()

	for i := 0; i < 3; i++ {
		src.advance(9 * time.Minute)
		c.RecordActivity()
	}

	c.StartSession()
	assert.Equal(t, 27*time.Minute, c.Elapsed())
}

func TestPersistence_RestoredAcrossInstances(t *testing.T) {
	src := &fakeSource{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryKV()

	c1 := New(kv, src)
	c1.StartSession()
	src.advance(4 * time.Minute)
	c1.RecordActivity()

	c2 := New(kv, src)
	assert.True(t, c2.IsActive())
	assert.Equal(t, 4*time.Minute, c2.Elapsed())
}

func TestPersistence_ExpiredStateDiscardedOnLoad(t *testing.T) {
	src := &fakeSource{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryKV()

	c1 := New(kv, src)
	c1.StartSession()

	src.advance(11 * time.Minute)
	c2 := New(kv, src)
	assert.False(t, c2.IsActive())
	assert.Equal(t, time.Duration(0), c2.Elapsed())
}

func TestPersistence_MaxAgeDiscardedOnLoad(t *testing.T) {
	src := &fakeSource{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	kv := storage.NewMemoryKV()

	c1 := New(kv, src)
	c1.StartSession()

	// Activity keeps the inactivity window fresh, but the session still
	// expires at the two hour mark.
	for i := 0; i < 25; i++ {
		src.advance(5 * time.Minute)
		c1.RecordActivity()
	}

	c2 := New(kv, src)
	assert.False(t, c2.IsActive())
}

func TestPersistence_CorruptStateFallsBackInactive(t *testing.T) {
	src := &fakeSource{now: time.Now()}
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(storage.KeyGlobalClock, []byte("{not json")))

	c := New(kv, src)
	assert.False(t, c.IsActive())
	assert.Equal(t, time.Duration(0), c.Elapsed())
}

func TestSubscribe_NotifiedOnTransitions(t *testing.T) {
	c, src, _ := newTestClock(t)

	var calls []time.Duration
	var lastActive bool
	unsub := c.Subscribe(func(elapsed time.Duration, active bool) {
		calls = append(calls, elapsed)
		lastActive = active
	})

	c.StartSession()
	src.advance(time.Minute)
	c.Pause()
	c.Resume()
	c.EndSession()

	require.Len(t, calls, 4)
	assert.False(t, lastActive)

	unsub()
	c.StartSession()
	assert.Len(t, calls, 4)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{10 * time.Minute, "10:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.d))
	}
}
