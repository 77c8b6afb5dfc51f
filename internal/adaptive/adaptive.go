// Package adaptive decides pacing and progression from a session's
// answer history. Everything here is a pure function over the data
// passed in; no state is kept across calls.
package adaptive

import (
	"fmt"
	"time"
)

// MaxLevel is the highest level any game advances to.
const MaxLevel = 12

// Accuracy thresholds. Between ReduceThreshold and AdvanceThreshold is
// the optimal learning zone: neither advancing nor simplifying is
// recommended there.
const (
	AdvanceThreshold = 0.80
	ReduceThreshold  = 0.60
	scaffoldAllTier  = 0.40

	minAnswersToJudge   = 5
	minAnswersToAdvance = 10
)

// Per-question time limit bounds for AdjustTimeLimit.
const (
	MinTimeLimit = 8 * time.Second
	MaxTimeLimit = 30 * time.Second
)

// Answer is one answered question within a session.
type Answer struct {
	Correct      bool
	ResponseTime time.Duration
	Level        int
	Timestamp    time.Time
}

// Action is the three-way pacing decision.
type Action string

const (
	ActionAdvance  Action = "advance"
	ActionSimplify Action = "simplify"
	ActionContinue Action = "continue"
)

// Scaffold is a support aid offered when difficulty is reduced.
type Scaffold string

const (
	ScaffoldShowNumbers Scaffold = "showNumbers"
	ScaffoldExtendTime  Scaffold = "extendTime"
	ScaffoldShowHints   Scaffold = "showHints"
)

// Recommendation is the result of RecommendedAction.
type Recommendation struct {
	Action    Action
	Reason    string
	NextLevel int
	Scaffolds []Scaffold
}

// SessionAccuracy returns the fraction of correct answers, or 0 for an
// empty history.
func SessionAccuracy(answers []Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	correct := 0
	for _, a := range answers {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(answers))
}

// ShouldAdvanceLevel reports readiness for the next level: at least
// five answers with 80% accuracy or better.
func ShouldAdvanceLevel(answers []Answer) bool {
	if len(answers) < minAnswersToJudge {
		return false
	}
	return SessionAccuracy(answers) >= AdvanceThreshold
}

// ShouldReduceDifficulty reports struggling: at least five answers with
// accuracy below 60%.
func ShouldReduceDifficulty(answers []Answer) bool {
	if len(answers) < minAnswersToJudge {
		return false
	}
	return SessionAccuracy(answers) < ReduceThreshold
}

// RecommendedAction makes the three-way pacing decision for the
// session. Advancing requires ten answers; simplifying requires five.
// Anything else, including the 60–80% optimal learning zone, continues
// at the current level.
func RecommendedAction(answers []Answer, currentLevel int) Recommendation {
	accuracy := SessionAccuracy(answers)
	pct := int(accuracy*100 + 0.5)

	if accuracy >= AdvanceThreshold && len(answers) >= minAnswersToAdvance {
		next := currentLevel + 1
		if next > MaxLevel {
			next = MaxLevel
		}
		return Recommendation{
			Action:    ActionAdvance,
			Reason:    fmt.Sprintf("Accuracy %d%% - ready for next level!", pct),
			NextLevel: next,
		}
	}

	if accuracy < ReduceThreshold && len(answers) >= minAnswersToJudge {
		return Recommendation{
			Action:    ActionSimplify,
			Reason:    fmt.Sprintf("Accuracy %d%% - adding more support", pct),
			NextLevel: currentLevel,
			Scaffolds: ScaffoldsFor(accuracy),
		}
	}

	return Recommendation{
		Action:    ActionContinue,
		Reason:    fmt.Sprintf("Accuracy %d%% - in the optimal learning zone", pct),
		NextLevel: currentLevel,
	}
}

// ScaffoldsFor selects support aids by accuracy tier: 40% and below
// gets all three, above 40% and under 60% gets numbers and extra time.
func ScaffoldsFor(accuracy float64) []Scaffold {
	if accuracy <= scaffoldAllTier {
		return []Scaffold{ScaffoldShowNumbers, ScaffoldExtendTime, ScaffoldShowHints}
	}
	if accuracy < ReduceThreshold {
		return []Scaffold{ScaffoldShowNumbers, ScaffoldExtendTime}
	}
	return nil
}

// AdjustTimeLimit tunes the per-question timer from the most recent
// answers (callers pass the last five or fewer). Fast and accurate
// speeds the timer up; slow or inaccurate slows it down. Fewer than
// three samples leave the base untouched.
func AdjustTimeLimit(base time.Duration, recent []Answer) time.Duration {
	if base <= 0 || len(recent) < 3 {
		return base
	}

	var total time.Duration
	for _, a := range recent {
		total += a.ResponseTime
	}
	avg := total / time.Duration(len(recent))
	accuracy := SessionAccuracy(recent)

	if accuracy >= AdvanceThreshold && avg < base/2 {
		adjusted := base * 8 / 10
		if adjusted < MinTimeLimit {
			adjusted = MinTimeLimit
		}
		return adjusted
	}

	if accuracy < ReduceThreshold || avg > base*9/10 {
		adjusted := base * 5 / 4
		if adjusted > MaxTimeLimit {
			adjusted = MaxTimeLimit
		}
		return adjusted
	}

	return base
}
