package adaptive

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rahulnair/neuroplay/internal/storage"
)

// Trend describes accuracy direction over recent sessions.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// trendWindow is how many recent sessions a trend considers.
const trendWindow = 5

// PerformanceTrend votes +1/-1 per improving/declining consecutive pair
// over the last five sessions; a net of two either way decides it.
func PerformanceTrend(sessions []storage.LevelSession) Trend {
	if len(sessions) < 2 {
		return TrendInsufficientData
	}

	recent := sessions
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}

	vote := 0
	for i := 1; i < len(recent); i++ {
		switch {
		case recent[i].Accuracy > recent[i-1].Accuracy:
			vote++
		case recent[i].Accuracy < recent[i-1].Accuracy:
			vote--
		}
	}

	switch {
	case vote >= 2:
		return TrendImproving
	case vote <= -2:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// LevelAccuracy pairs a level with its accuracy percentage.
type LevelAccuracy struct {
	Level    int `json:"level"`
	Accuracy int `json:"accuracy"` // percent
}

// Difficulty is a specific weak level/shape combination from the
// error-pattern diagnostics.
type Difficulty struct {
	Level     int    `json:"level"`
	Shape     string `json:"type"`
	ErrorRate int    `json:"errorRate"` // percent
}

// Report is the aggregated progress report for one game.
type Report struct {
	CurrentLevel         int          `json:"currentLevel"`
	OverallAccuracy      int          `json:"overallAccuracy"` // percent
	TotalPlayTime        int          `json:"totalPlayTime"`   // seconds
	SessionsCompleted    int          `json:"sessionsCompleted"`
	Trend                Trend        `json:"trend"`
	LevelBreakdown       map[int]int  `json:"levelBreakdown"` // level -> percent
	AreasForImprovement  []LevelAccuracy `json:"areasForImprovement"`
	Strengths            []LevelAccuracy `json:"strengths"`
	SpecificDifficulties []Difficulty    `json:"specificDifficulties"`
}

// Report thresholds: below 70% flags a level for improvement, 85% and
// up counts as a strength.
const (
	improvementThreshold = 0.70
	strengthThreshold    = 0.85
)

// GenerateProgressReport aggregates per-level accuracy into a breakdown
// and folds in weak-area diagnostics.
func GenerateProgressReport(progress storage.Progress, sessions []storage.LevelSession, weakAreas []storage.WeakArea) Report {
	report := Report{
		CurrentLevel:      progress.CurrentLevel,
		TotalPlayTime:     progress.TotalPlayTime,
		SessionsCompleted: progress.SessionsCount,
		Trend:             PerformanceTrend(sessions),
		LevelBreakdown:    make(map[int]int),
	}

	if progress.TotalQuestions > 0 {
		report.OverallAccuracy = int(float64(progress.TotalCorrect)/float64(progress.TotalQuestions)*100 + 0.5)
	}

	levels := make([]int, 0, len(progress.LevelAccuracies))
	for level := range progress.LevelAccuracies {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	for _, level := range levels {
		accuracy := progress.LevelAccuracies[level]
		pct := int(accuracy*100 + 0.5)
		report.LevelBreakdown[level] = pct

		entry := LevelAccuracy{Level: level, Accuracy: pct}
		switch {
		case accuracy < improvementThreshold:
			report.AreasForImprovement = append(report.AreasForImprovement, entry)
		case accuracy >= strengthThreshold:
			report.Strengths = append(report.Strengths, entry)
		}
	}

	for _, area := range weakAreas {
		level, shape := splitPatternKey(area.Key)
		report.SpecificDifficulties = append(report.SpecificDifficulties, Difficulty{
			Level:     level,
			Shape:     shape,
			ErrorRate: area.ErrorRate,
		})
	}

	return report
}

// OptimalDifficulty suggests the level to offer next from persisted
// per-level accuracy: 85% and up moves up a level, below 50% moves
// down, otherwise stay.
func OptimalDifficulty(progress storage.Progress) int {
	level := progress.CurrentLevel
	if level < 1 {
		level = 1
	}

	accuracy, ok := progress.LevelAccuracies[level]
	if !ok {
		return level
	}

	if accuracy >= strengthThreshold && level < MaxLevel {
		return level + 1
	}
	if accuracy < 0.50 && level > 1 {
		return level - 1
	}
	return level
}

// EstimateTimeToCompletion extrapolates remaining play time from the
// average time spent per completed level.
func EstimateTimeToCompletion(progress storage.Progress) time.Duration {
	remaining := MaxLevel - progress.CurrentLevel
	if remaining <= 0 {
		return 0
	}
	completed := progress.CurrentLevel - 1
	if completed < 1 {
		completed = 1
	}
	avgPerLevel := progress.TotalPlayTime / completed
	return time.Duration(remaining*avgPerLevel) * time.Second
}

func splitPatternKey(key string) (int, string) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, key
	}
	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, key
	}
	return level, parts[1]
}
