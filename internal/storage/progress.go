package storage

import (
	"sort"
	"strconv"
	"time"
)

// ErrorPattern tracks attempts and errors for one level/question-shape
// combination, used to surface weak areas in progress reports.
type ErrorPattern struct {
	Attempts int `json:"attempts"`
	Errors   int `json:"errors"`
}

// Progress is the per-game persisted progress record. It is owned by the
// session controller and mutated only at answer-processing or
// level-completion boundaries. Counters are monotonically increasing;
// the record is never deleted except by an explicit reset.
type Progress struct {
	CurrentLevel    int                     `json:"currentLevel"`
	LevelsCompleted []int                   `json:"levelsCompleted"`
	TotalCorrect    int                     `json:"totalCorrect"`
	TotalQuestions  int                     `json:"totalQuestions"`
	TotalPlayTime   int                     `json:"totalPlayTime"` // seconds
	SessionsCount   int                     `json:"sessionsCount"`
	LevelAccuracies map[int]float64         `json:"levelAccuracies"`
	ErrorPatterns   map[string]ErrorPattern `json:"errorPatterns"`
	LastPlayed      *time.Time              `json:"lastPlayed"`
}

// DefaultProgress returns a fresh progress record at level 1.
func DefaultProgress() Progress {
	return Progress{
		CurrentLevel:    1,
		LevelAccuracies: make(map[int]float64),
		ErrorPatterns:   make(map[string]ErrorPattern),
	}
}

// GetProgress reads the progress for a game, merging onto defaults.
func GetProgress(kv KV, game string) Progress {
	p := DefaultProgress()
	GetJSON(kv, Key(game, KindProgress), &p)
	if p.CurrentLevel < 1 {
		p.CurrentLevel = 1
	}
	if p.LevelAccuracies == nil {
		p.LevelAccuracies = make(map[int]float64)
	}
	if p.ErrorPatterns == nil {
		p.ErrorPatterns = make(map[string]ErrorPattern)
	}
	return p
}

// SaveProgress persists the progress for a game.
func SaveProgress(kv KV, game string, p Progress) {
	SetJSON(kv, Key(game, KindProgress), p)
}

// ResetProgress removes the progress, session history, and any current
// session for a game. This is the only path that deletes progress.
func ResetProgress(kv KV, game string) {
	for _, kind := range []string{KindProgress, KindSessions, KindCurrentSession, KindEnhancedSessions, KindEnhancedProgress} {
		if err := kv.Delete(Key(game, kind)); err != nil {
			warnf("reset %s %s: %v", game, kind, err)
		}
	}
}

// MarkCompleted records a completed level id in the progress set.
func (p *Progress) MarkCompleted(level int) {
	for _, id := range p.LevelsCompleted {
		if id == level {
			return
		}
	}
	p.LevelsCompleted = append(p.LevelsCompleted, level)
}

// RecordErrorPattern updates the attempt/error counters for one
// level/shape combination.
func RecordErrorPattern(kv KV, game string, level int, shape string, wasCorrect bool) {
	p := GetProgress(kv, game)
	key := patternKey(level, shape)
	ep := p.ErrorPatterns[key]
	ep.Attempts++
	if !wasCorrect {
		ep.Errors++
	}
	p.ErrorPatterns[key] = ep
	SaveProgress(kv, game, p)
}

// WeakArea is a level/shape combination with a high observed error rate.
type WeakArea struct {
	Key       string `json:"key"`
	ErrorRate int    `json:"errorRate"` // percent
	Attempts  int    `json:"attempts"`
}

// WeakAreas returns up to five level/shape combinations with at least 3
// attempts and an error rate above 40%, worst first.
func WeakAreas(kv KV, game string) []WeakArea {
	p := GetProgress(kv, game)

	var areas []WeakArea
	for key, ep := range p.ErrorPatterns {
		if ep.Attempts < 3 {
			continue
		}
		rate := float64(ep.Errors) / float64(ep.Attempts)
		if rate > 0.4 {
			areas = append(areas, WeakArea{
				Key:       key,
				ErrorRate: int(rate*100 + 0.5),
				Attempts:  ep.Attempts,
			})
		}
	}

	sort.Slice(areas, func(i, j int) bool { return areas[i].ErrorRate > areas[j].ErrorRate })
	if len(areas) > 5 {
		areas = areas[:5]
	}
	return areas
}

func patternKey(level int, shape string) string {
	return strconv.Itoa(level) + "_" + shape
}
