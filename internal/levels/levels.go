// Package levels holds the per-game level tables and question
// generators. The session engine consumes only the Game interface, so
// question content stays independent of the session machinery.
package levels

import (
	"math/rand"
	"time"
)

// ChoiceCount is how many answer choices every question offers.
const ChoiceCount = 4

// maxRecent is how many recent questions each game remembers to avoid
// repeats.
const maxRecent = 5

// LevelConfig describes one level of a game.
type LevelConfig struct {
	ID                int
	Name              string
	Description       string
	QuestionsRequired int           // correct answers needed to complete
	TimeAllowed       time.Duration // 0 = untimed
	Hints             []string
	MediatedPrompts   []string
}

// Question is one generated question. Answers are compared as strings
// so clock times and vocabulary words fit the same engine as products
// and quotients.
type Question struct {
	Prompt      string
	Answer      string
	Explanation string
	Shape       string // question shape for error-pattern tracking, e.g. "7x8"
}

// Game generates questions and choices for a progressive set of levels.
type Game interface {
	// Name is the storage namespace, e.g. "multiply".
	Name() string

	// Title is the display name, e.g. "Multiply Master".
	Title() string

	// MaxLevel is the highest level id.
	MaxLevel() int

	// Level returns the config for a level id, clamping out-of-range
	// ids to the nearest valid level.
	Level(id int) LevelConfig

	// Generate produces the next question for a level, avoiding recent
	// repeats.
	Generate(cfg LevelConfig) Question

	// Choices returns exactly ChoiceCount options for a question,
	// shuffled, with no duplicates, including the correct answer.
	Choices(q Question, cfg LevelConfig) []string
}

// Hint returns the hint at index, clamped to the last available hint.
func Hint(cfg LevelConfig, index int) string {
	if len(cfg.Hints) == 0 {
		return "Think about what you know!"
	}
	if index >= len(cfg.Hints) {
		index = len(cfg.Hints) - 1
	}
	if index < 0 {
		index = 0
	}
	return cfg.Hints[index]
}

// MediatedPrompt returns a random encouragement line for the level.
func MediatedPrompt(cfg LevelConfig, rng *rand.Rand) string {
	if len(cfg.MediatedPrompts) == 0 {
		return "Great work!"
	}
	return cfg.MediatedPrompts[rng.Intn(len(cfg.MediatedPrompts))]
}

// All returns every game in display order, sharing one rng.
func All() []Game {
	rng := newRNG(nil)
	return []Game{
		NewClockwise(rng),
		NewMultiply(rng),
		NewDivide(rng),
		NewTimeOfDay(rng),
	}
}

// Names returns the storage namespaces of every game.
func Names() []string {
	games := All()
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name()
	}
	return names
}

// ByName finds a game by its storage name, or nil.
func ByName(name string) Game {
	for _, g := range All() {
		if g.Name() == name {
			return g
		}
	}
	return nil
}

func newRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// recentList tracks recently served question keys.
type recentList struct {
	keys []string
}

func (r *recentList) seen(key string) bool {
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

func (r *recentList) add(key string) {
	r.keys = append(r.keys, key)
	if len(r.keys) > maxRecent {
		r.keys = r.keys[len(r.keys)-maxRecent:]
	}
}

func (r *recentList) reset() {
	r.keys = nil
}

// clampLevel snaps a level id into [1, max].
func clampLevel(id, max int) int {
	if id < 1 {
		return 1
	}
	if id > max {
		return max
	}
	return id
}

// shuffle returns choices in random order.
func shuffle(rng *rand.Rand, choices []string) []string {
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// contains reports whether list holds s.
func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
