package storage

import "time"

// MaxSessions caps the light per-game session history.
const MaxSessions = 50

// LevelSession is the light per-session summary appended on level
// completion. The richer Session Record lives in the statistics service.
type LevelSession struct {
	Level             int           `json:"level"`
	Accuracy          float64       `json:"accuracy"`
	Duration          time.Duration `json:"duration"`
	QuestionsAnswered int           `json:"questionsAnswered"`
	BestStreak        int           `json:"bestStreak"`
	Timestamp         time.Time     `json:"timestamp"`
}

// GetSessions reads the session history for a game. Corrupt or missing
// data yields an empty history.
func GetSessions(kv KV, game string) []LevelSession {
	var sessions []LevelSession
	GetJSON(kv, Key(game, KindSessions), &sessions)
	return sessions
}

// AddSession appends a session summary, stamping it and trimming the
// history to the most recent MaxSessions entries.
func AddSession(kv KV, game string, s LevelSession) {
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	sessions := append(GetSessions(kv, game), s)
	if len(sessions) > MaxSessions {
		sessions = sessions[len(sessions)-MaxSessions:]
	}
	SetJSON(kv, Key(game, KindSessions), sessions)
}
