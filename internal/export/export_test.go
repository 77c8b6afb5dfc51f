package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
)

type fixedSource struct {
	now time.Time
}

func (f fixedSource) Now() time.Time { return f.now }

func seed(t *testing.T) storage.KV {
	t.Helper()
	kv := storage.NewMemoryKV()

	storage.SetRobuxCount(kv, 17)

	p := storage.DefaultProgress()
	p.CurrentLevel = 4
	p.TotalCorrect = 30
	p.TotalQuestions = 40
	storage.SaveProgress(kv, "multiply", p)

	s := storage.DefaultSettings()
	s.Theme = "space"
	storage.SaveSettings(kv, "multiply", s)

	storage.AddSession(kv, "multiply", storage.LevelSession{
		Level:             3,
		Accuracy:          0.9,
		Duration:          2 * time.Minute,
		QuestionsAnswered: 10,
		BestStreak:        6,
	})

	return kv
}

func TestExportRoundTrip(t *testing.T) {
	kv := seed(t)
	src := fixedSource{now: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}

	arc := Export(kv, []string{"multiply", "divide"}, src)
	assert.Equal(t, SchemaVersion, arc.SchemaVersion)
	assert.Equal(t, src.now, arc.ExportedAt)
	assert.Equal(t, 17, arc.RobuxCount)
	require.Contains(t, arc.Games, "multiply")
	require.Contains(t, arc.Games, "divide")
	assert.Equal(t, 4, arc.Games["multiply"].Progress.CurrentLevel)
	assert.Equal(t, "space", arc.Games["multiply"].Settings.Theme)
	require.Len(t, arc.Games["multiply"].Sessions, 1)

	data, err := Marshal(arc)
	require.NoError(t, err)

	// Import into a fresh store restores everything.
	fresh := storage.NewMemoryKV()
	got, err := Import(fresh, data)
	require.NoError(t, err)
	assert.Equal(t, 17, got.RobuxCount)

	assert.Equal(t, 17, storage.GetRobuxCount(fresh))
	p := storage.GetProgress(fresh, "multiply")
	assert.Equal(t, 4, p.CurrentLevel)
	assert.Equal(t, 30, p.TotalCorrect)
	assert.Equal(t, "space", storage.GetSettings(fresh, "multiply").Theme)
	assert.Len(t, storage.GetSessions(fresh, "multiply"), 1)
}

func TestExportIncludesStatistics(t *testing.T) {
	kv := seed(t)
	src := fixedSource{now: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)}

	svc := stats.NewService(kv, src, []string{"multiply"})
	id := svc.CreateSession("multiply", 4)
	svc.AddAnswer(id, true, 3*time.Second, 4)
	svc.EndSession(id, 2, stats.EndCompletion)

	arc := Export(kv, []string{"multiply"}, src)
	require.Len(t, arc.Games["multiply"].StatsSessions, 1)
	assert.Equal(t, 1, arc.Games["multiply"].StatsProgress.SessionsCount)
}

func TestImportRejectsMalformed(t *testing.T) {
	kv := storage.NewMemoryKV()

	cases := map[string]string{
		"not json":          `{"schemaVersion": 1,`,
		"missing games":     `{"schemaVersion": 1, "exportedAt": "2025-07-01T00:00:00Z"}`,
		"bad version type":  `{"schemaVersion": "one", "exportedAt": "x", "games": {}}`,
		"negative robux":    `{"schemaVersion": 1, "exportedAt": "x", "robuxCount": -5, "games": {}}`,
		"games not object":  `{"schemaVersion": 1, "exportedAt": "x", "games": []}`,
		"game missing keys": `{"schemaVersion": 1, "exportedAt": "2025-07-01T00:00:00Z", "games": {"multiply": {}}}`,
	}
	for name, payload := range cases {
		_, err := Import(kv, []byte(payload))
		assert.Error(t, err, name)
	}

	// Nothing was written along the way.
	assert.Equal(t, 0, storage.GetRobuxCount(kv))
}

func TestImportRejectsNewerSchema(t *testing.T) {
	kv := seed(t)
	arc := Export(kv, []string{"multiply"}, fixedSource{now: time.Now()})
	arc.SchemaVersion = SchemaVersion + 1

	data, err := Marshal(arc)
	require.NoError(t, err)

	_, err = Import(storage.NewMemoryKV(), data)
	assert.Error(t, err)
}

func TestImportLeavesOtherGamesAlone(t *testing.T) {
	kv := seed(t)

	// An archive holding only divide data.
	arc := Archive{
		SchemaVersion: SchemaVersion,
		ExportedAt:    time.Now(),
		RobuxCount:    5,
		Games: map[string]GameData{
			"divide": {
				Settings: storage.DefaultSettings(),
				Progress: storage.DefaultProgress(),
			},
		},
	}
	data, err := Marshal(arc)
	require.NoError(t, err)

	_, err = Import(kv, data)
	require.NoError(t, err)

	// Multiply progress from before the import is still there.
	assert.Equal(t, 4, storage.GetProgress(kv, "multiply").CurrentLevel)
	assert.Equal(t, 5, storage.GetRobuxCount(kv))
}

func TestArchiveJSONShape(t *testing.T) {
	kv := seed(t)
	data, err := Marshal(Export(kv, []string{"multiply"}, fixedSource{now: time.Now()}))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "schemaVersion")
	assert.Contains(t, doc, "exportedAt")
	assert.Contains(t, doc, "robuxCount")
	assert.Contains(t, doc, "games")
}
