package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuroplay.db")
	kv, err := Open(path)
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("k", []byte("v1")))
	got, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	// Upsert overwrites.
	require.NoError(t, kv.Set("k", []byte("v2")))
	got, _, _ = kv.Get("k")
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Delete("k"))
	_, ok, _ = kv.Get("k")
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	assert.NoError(t, kv.Delete("k"))
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neuroplay.db")

	kv, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("robux_count", []byte("9")))
	require.NoError(t, kv.Close())

	kv2, err := Open(path)
	require.NoError(t, err)
	defer kv2.Close()
	got, ok, err := kv2.Get("robux_count")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("9"), got)
}

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, "multiply_progress", Key("multiply", KindProgress))
	assert.Equal(t, "timeofday_settings", Key("Time Of Day", KindSettings))
}

func TestGetJSONMergesOverDefaults(t *testing.T) {
	kv := NewMemoryKV()

	// Stored blob only has some fields; the rest keep their defaults.
	require.NoError(t, kv.Set(Key("multiply", KindSettings), []byte(`{"theme":"space"}`)))

	s := GetSettings(kv, "multiply")
	assert.Equal(t, "space", s.Theme)
	assert.Equal(t, DefaultSettings().FontSize, s.FontSize)
	assert.Equal(t, DefaultSettings().AudioEnabled, s.AudioEnabled)
}

func TestGetJSONIgnoresCorruptValue(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(Key("multiply", KindProgress), []byte(`{broken`)))

	p := GetProgress(kv, "multiply")
	assert.Equal(t, 1, p.CurrentLevel)
	assert.NotNil(t, p.LevelAccuracies)
	assert.NotNil(t, p.ErrorPatterns)
}

func TestProgressClampsBadLevels(t *testing.T) {
	kv := NewMemoryKV()
	SetJSON(kv, Key("multiply", KindProgress), map[string]any{"currentLevel": 0})
	assert.Equal(t, 1, GetProgress(kv, "multiply").CurrentLevel)

	SetJSON(kv, Key("multiply", KindProgress), map[string]any{"currentLevel": -2})
	assert.Equal(t, 1, GetProgress(kv, "multiply").CurrentLevel)
}

func TestSessionsCapped(t *testing.T) {
	kv := NewMemoryKV()

	for i := 1; i <= MaxSessions+10; i++ {
		AddSession(kv, "divide", LevelSession{Level: i})
	}

	got := GetSessions(kv, "divide")
	require.Len(t, got, MaxSessions)
	// Oldest entries were dropped.
	assert.Equal(t, 11, got[0].Level)
	assert.Equal(t, MaxSessions+10, got[len(got)-1].Level)
}

func TestResetProgressClearsGameKeys(t *testing.T) {
	kv := NewMemoryKV()

	p := DefaultProgress()
	p.TotalCorrect = 5
	SaveProgress(kv, "multiply", p)
	AddSession(kv, "multiply", LevelSession{Level: 1})
	SetJSON(kv, Key("multiply", KindEnhancedProgress), map[string]any{"sessionsCount": 3})
	SetRobuxCount(kv, 7)

	ResetProgress(kv, "multiply")

	assert.Equal(t, 0, GetProgress(kv, "multiply").TotalCorrect)
	assert.Empty(t, GetSessions(kv, "multiply"))
	_, ok, _ := kv.Get(Key("multiply", KindEnhancedProgress))
	assert.False(t, ok)
	// Robux is account-wide and survives a per-game reset.
	assert.Equal(t, 7, GetRobuxCount(kv))
}

func TestRobuxCount(t *testing.T) {
	kv := NewMemoryKV()

	assert.Equal(t, 0, GetRobuxCount(kv))

	SetRobuxCount(kv, 12)
	assert.Equal(t, 12, GetRobuxCount(kv))

	SetRobuxCount(kv, -4)
	assert.Equal(t, 0, GetRobuxCount(kv))

	ts := LastRobuxUpdate(kv)
	assert.False(t, ts.IsZero())
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestErrorPatternsAndWeakAreas(t *testing.T) {
	kv := NewMemoryKV()

	// Level 3 "7x8" misses two of three attempts.
	RecordErrorPattern(kv, "multiply", 3, "7x8", false)
	RecordErrorPattern(kv, "multiply", 3, "7x8", false)
	RecordErrorPattern(kv, "multiply", 3, "7x8", true)

	// Level 2 "2x2" is fine.
	for i := 0; i < 4; i++ {
		RecordErrorPattern(kv, "multiply", 2, "2x2", true)
	}

	weak := WeakAreas(kv, "multiply")
	require.Len(t, weak, 1)
	assert.Equal(t, "3_7x8", weak[0].Key)
	assert.Equal(t, 3, weak[0].Attempts)
	assert.Equal(t, 67, weak[0].ErrorRate)
}

func TestMarkCompletedDeduplicates(t *testing.T) {
	p := DefaultProgress()
	p.MarkCompleted(2)
	p.MarkCompleted(2)
	p.MarkCompleted(5)
	assert.Equal(t, []int{2, 5}, p.LevelsCompleted)
}
