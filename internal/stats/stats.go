// Package stats keeps durable, structured records of play sessions
// independent of any particular game's UI state, and aggregates them
// into per-level and per-game summaries.
package stats

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/storage"
)

const (
	// MaxRecords caps the enhanced session history per game.
	MaxRecords = 100

	// BreakThreshold is how long continuous play runs before the break
	// reminder is due.
	BreakThreshold = 20 * time.Minute
)

// EndReason records why a session ended. Diagnostic only: it does not
// change how the session is aggregated.
type EndReason string

const (
	EndCompletion EndReason = "completion"
	EndPause      EndReason = "pause"
	EndNavigation EndReason = "navigation"
	EndBreakModal EndReason = "break_modal"
)

// Answer is one answer within a session record.
type Answer struct {
	Correct        bool  `json:"correct"`
	ResponseTimeMs int64 `json:"responseTime"`
	Level          int   `json:"level"`
	Timestamp      int64 `json:"timestamp"` // unix ms
}

// Record is the immutable per-session summary persisted at end of
// session. Invariants: Duration = EndTime - StartTime, and
// CorrectAnswers + IncorrectAnswers = len(Answers).
type Record struct {
	SessionID        string    `json:"sessionId"`
	GameName         string    `json:"gameName"`
	Date             string    `json:"date"` // YYYY-MM-DD
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	DurationSec      int       `json:"duration"`
	Level            int       `json:"level"`
	CorrectAnswers   int       `json:"correctAnswers"`
	IncorrectAnswers int       `json:"incorrectAnswers"`
	RobuxEarned      int       `json:"robuxEarned"`
	BestStreak       int       `json:"bestStreak"`
	CurrentStreak    int       `json:"currentStreak"`
	EndedBy          EndReason `json:"endedBy"`
	Answers          []Answer  `json:"answers"`
}

// LevelStats aggregates answers for one level of one game.
type LevelStats struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	PlayTimeSec int `json:"playTime"`
	TimesPlayed int `json:"timesPlayed"`
}

// GameProgress is the running per-game aggregate folded from ended
// sessions.
type GameProgress struct {
	TotalCorrect     int                `json:"totalCorrect"`
	TotalIncorrect   int                `json:"totalIncorrect"`
	TotalPlayTimeSec int                `json:"totalPlayTime"`
	TotalRobuxEarned int                `json:"totalRobuxEarned"`
	SessionsCount    int                `json:"sessionsCount"`
	LastPlayed       *time.Time         `json:"lastPlayed"`
	LevelStats       map[int]LevelStats `json:"levelStats"`
}

// Service tracks active sessions in memory and persists immutable
// records when they end.
type Service struct {
	mu    sync.Mutex
	kv    storage.KV
	src   sessionclock.Source
	games []string

	active map[string]*Record

	// Continuous-play stopwatch, separate from the global session
	// clock; it exists only to trigger break reminders.
	continuousStart time.Time
	breakAfter      time.Duration
}

// NewService creates a statistics service over kv for the given games.
// A nil src defaults to the system clock.
func NewService(kv storage.KV, src sessionclock.Source, games []string) *Service {
	if src == nil {
		src = sessionclock.SystemSource{}
	}
	return &Service{
		kv:         kv,
		src:        src,
		games:      games,
		active:     make(map[string]*Record),
		breakAfter: BreakThreshold,
	}
}

// SetBreakThreshold overrides how much continuous play triggers the
// break reminder. Non-positive values are ignored.
func (s *Service) SetBreakThreshold(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.breakAfter = d
	}
}

// CreateSession allocates an in-memory session for a game and level and
// returns its id. The continuous-play stopwatch starts lazily with the
// first session.
func (s *Service) CreateSession(game string, level int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.src.Now()
	if s.continuousStart.IsZero() {
		s.continuousStart = now
	}

	id := uuid.NewString()
	s.active[id] = &Record{
		SessionID: id,
		GameName:  game,
		Date:      now.Format("2006-01-02"),
		StartTime: now,
		Level:     level,
	}
	return id
}

// AddAnswer appends an answer to an active session and updates the
// running counts and streaks. Unknown ids are logged and ignored: the
// session may have already been ended by a racing pause or navigation.
func (s *Service) AddAnswer(id string, correct bool, responseTime time.Duration, level int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.active[id]
	if !ok {
		warnf("session %s not found", id)
		return
	}

	if level == 0 {
		level = rec.Level
	}
	rec.Answers = append(rec.Answers, Answer{
		Correct:        correct,
		ResponseTimeMs: responseTime.Milliseconds(),
		Level:          level,
		Timestamp:      s.src.Now().UnixMilli(),
	})

	if correct {
		rec.CorrectAnswers++
		rec.CurrentStreak++
		if rec.CurrentStreak > rec.BestStreak {
			rec.BestStreak = rec.CurrentStreak
		}
	} else {
		rec.IncorrectAnswers++
		rec.CurrentStreak = 0
	}
}

// EndSession finalizes an active session, persists its record (history
// capped to the most recent MaxRecords), and folds it into the game's
// running aggregate. Ending an unknown or already-ended id is a no-op,
// so a racing double-end cannot double-count.
func (s *Service) EndSession(id string, robuxEarned int, reason EndReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.active[id]
	if !ok {
		warnf("session %s not found for ending", id)
		return
	}
	delete(s.active, id)

	now := s.src.Now()
	rec.EndTime = now
	rec.DurationSec = int(now.Sub(rec.StartTime) / time.Second)
	rec.RobuxEarned = robuxEarned
	rec.EndedBy = reason

	s.saveRecord(rec)
	s.foldIntoProgress(rec)

	// Break or navigation resets the continuous-play stopwatch; a pause
	// or completion leaves it running.
	if reason == EndBreakModal || reason == EndNavigation {
		s.continuousStart = time.Time{}
	}
}

// ActiveSession returns a copy of an active session record, or nil.
func (s *Service) ActiveSession(id string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.active[id]
	if !ok {
		return nil
	}
	cp := *rec
	cp.Answers = append([]Answer(nil), rec.Answers...)
	return &cp
}

// ContinuousPlayTime returns how long play has been continuous, for the
// break reminder. Zero when the stopwatch has not started.
func (s *Service) ContinuousPlayTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.continuousStart.IsZero() {
		return 0
	}
	return s.src.Now().Sub(s.continuousStart)
}

// BreakDue reports whether continuous play has reached the reminder
// threshold.
func (s *Service) BreakDue() bool {
	elapsed := s.ContinuousPlayTime()
	s.mu.Lock()
	defer s.mu.Unlock()
	return elapsed >= s.breakAfter
}

// ResetContinuousPlay restarts the stopwatch, called when the user
// acknowledges the break reminder and keeps playing.
func (s *Service) ResetContinuousPlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.continuousStart = s.src.Now()
}

func (s *Service) saveRecord(rec *Record) {
	key := storage.Key(rec.GameName, storage.KindEnhancedSessions)
	var records []Record
	storage.GetJSON(s.kv, key, &records)
	records = append(records, *rec)
	if len(records) > MaxRecords {
		records = records[len(records)-MaxRecords:]
	}
	storage.SetJSON(s.kv, key, records)
}

func (s *Service) foldIntoProgress(rec *Record) {
	key := storage.Key(rec.GameName, storage.KindEnhancedProgress)
	progress := GameProgress{LevelStats: make(map[int]LevelStats)}
	storage.GetJSON(s.kv, key, &progress)
	if progress.LevelStats == nil {
		progress.LevelStats = make(map[int]LevelStats)
	}

	progress.TotalCorrect += rec.CorrectAnswers
	progress.TotalIncorrect += rec.IncorrectAnswers
	progress.TotalPlayTimeSec += rec.DurationSec
	progress.TotalRobuxEarned += rec.RobuxEarned
	progress.SessionsCount++
	end := rec.EndTime
	progress.LastPlayed = &end

	ls := progress.LevelStats[rec.Level]
	ls.Correct += rec.CorrectAnswers
	ls.Incorrect += rec.IncorrectAnswers
	ls.PlayTimeSec += rec.DurationSec
	ls.TimesPlayed++
	progress.LevelStats[rec.Level] = ls

	storage.SetJSON(s.kv, key, progress)
}

// GameStats bundles the persisted aggregate and history for one game.
type GameStats struct {
	GameName string       `json:"gameName"`
	Progress GameProgress `json:"progress"`
	Sessions []Record     `json:"sessions"`
	Accuracy float64      `json:"accuracy"` // percent
}

// Stats returns the aggregate and session history for a game.
func (s *Service) Stats(game string) GameStats {
	progress := GameProgress{LevelStats: make(map[int]LevelStats)}
	storage.GetJSON(s.kv, storage.Key(game, storage.KindEnhancedProgress), &progress)
	if progress.LevelStats == nil {
		progress.LevelStats = make(map[int]LevelStats)
	}

	var records []Record
	storage.GetJSON(s.kv, storage.Key(game, storage.KindEnhancedSessions), &records)

	gs := GameStats{GameName: game, Progress: progress, Sessions: records}
	if total := progress.TotalCorrect + progress.TotalIncorrect; total > 0 {
		gs.Accuracy = float64(progress.TotalCorrect) / float64(total) * 100
	}
	return gs
}

// Totals sums aggregates across games.
type Totals struct {
	TotalCorrect     int `json:"totalCorrect"`
	TotalIncorrect   int `json:"totalIncorrect"`
	TotalPlayTimeSec int `json:"totalPlayTime"`
	TotalRobuxEarned int `json:"totalRobuxEarned"`
	TotalSessions    int `json:"totalSessions"`
}

// AllStats bundles every game's stats with cross-game totals.
type AllStats struct {
	Games  map[string]GameStats `json:"games"`
	Totals Totals               `json:"totals"`
}

// AllGameStats returns stats for every registered game plus totals.
func (s *Service) AllGameStats() AllStats {
	all := AllStats{Games: make(map[string]GameStats)}
	for _, game := range s.games {
		gs := s.Stats(game)
		all.Games[game] = gs
		all.Totals.TotalCorrect += gs.Progress.TotalCorrect
		all.Totals.TotalIncorrect += gs.Progress.TotalIncorrect
		all.Totals.TotalPlayTimeSec += gs.Progress.TotalPlayTimeSec
		all.Totals.TotalRobuxEarned += gs.Progress.TotalRobuxEarned
		all.Totals.TotalSessions += gs.Progress.SessionsCount
	}
	return all
}

// RecentSessions returns the most recent records, newest first. An
// empty game name searches every registered game.
func (s *Service) RecentSessions(game string, limit int) []Record {
	var records []Record
	if game != "" {
		records = s.Stats(game).Sessions
	} else {
		for _, g := range s.games {
			records = append(records, s.Stats(g).Sessions...)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartTime.After(records[j].StartTime)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// SessionsByDate returns records for a YYYY-MM-DD date, oldest first.
// An empty game name searches every registered game.
func (s *Service) SessionsByDate(game, date string) []Record {
	var matched []Record
	games := s.games
	if game != "" {
		games = []string{game}
	}
	for _, g := range games {
		for _, rec := range s.Stats(g).Sessions {
			if rec.Date == date {
				matched = append(matched, rec)
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.Before(matched[j].StartTime)
	})
	return matched
}

// SessionByID finds a session in the active set or the stored history.
func (s *Service) SessionByID(id string) *Record {
	if rec := s.ActiveSession(id); rec != nil {
		return rec
	}
	for _, g := range s.games {
		for _, rec := range s.Stats(g).Sessions {
			if rec.SessionID == id {
				cp := rec
				return &cp
			}
		}
	}
	return nil
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: stats: "+format+"\n", args...)
}
