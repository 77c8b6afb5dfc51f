package levels

import (
	"fmt"
	"math/rand"
	"time"
)

// period is one time of day with its bilingual names.
type period struct {
	key         string
	english     string
	norwegian   string
	hourLo      int // inclusive, 24h clock; night wraps past midnight
	hourHi      int
	sceneHint   string
	translation string
}

var periods = []period{
	{"morning", "Morning", "Morgen", 6, 11,
		"The sun is low and rising - this is when we wake up and eat breakfast!",
		`Morgen sounds like "morning" - they come from the same old word!`},
	{"noon", "Noon", "Midt på dagen", 12, 12,
		"The sun is directly over your head - it's exactly 12 o'clock!",
		`Midt på dagen means "middle of the day" - noon is 12:00!`},
	{"afternoon", "Afternoon", "Ettermiddag", 13, 17,
		"The sun is high but past your head - it's after lunch time!",
		`Ettermiddag means "after midday" - it's the time after noon!`},
	{"evening", "Evening", "Kveld", 18, 20,
		"The sun is setting and the sky turns orange and pink - dinner time!",
		`Kveld is evening - when we eat dinner and the sun goes down!`},
	{"night", "Night", "Natt", 21, 5,
		"It's dark outside with stars and moon - time to sleep!",
		`Natt sounds like "night" - when it's dark and we sleep!`},
}

type questionType int

const (
	sceneToEnglish questionType = iota
	sceneToNorwegian
	englishToNorwegian
	norwegianToEnglish
	questionTypeCount
)

// TimeOfDay is the bilingual time-of-day vocabulary game. It has a
// single mixed level cycling four question types over five periods.
type TimeOfDay struct {
	rng      *rand.Rand
	recent   recentList
	typeIdx  int
	lastType questionType
}

// NewTimeOfDay creates the time-of-day game. A nil rng is seeded from
// the current time.
func NewTimeOfDay(rng *rand.Rand) *TimeOfDay {
	return &TimeOfDay{rng: newRNG(rng), lastType: -1}
}

func (t *TimeOfDay) Name() string  { return "timeofday" }
func (t *TimeOfDay) Title() string { return "Time of Day" }
func (t *TimeOfDay) MaxLevel() int { return 1 }

func (t *TimeOfDay) Level(id int) LevelConfig {
	return LevelConfig{
		ID:                1,
		Name:              "Times of Day",
		Description:       "Learn all times of day in English and Norwegian",
		QuestionsRequired: 15,
		Hints: []string{
			"Morning = Morgen (sunrise, breakfast)",
			"Noon = Midt på dagen (sun overhead, 12:00)",
			"Afternoon = Ettermiddag (after lunch)",
			"Evening = Kveld (sunset, dinner)",
			"Night = Natt (dark, sleep)",
		},
		MediatedPrompts: []string{
			"You're learning two languages at once!",
			"Think about what happens during this time!",
			"Norwegian and English have similar words!",
			"You're becoming bilingual!",
		},
	}
}

// pickPeriod avoids periods asked about recently, falling back to a
// uniform pick when everything is recent.
func (t *TimeOfDay) pickPeriod() period {
	var fresh []period
	for _, p := range periods {
		if !t.recent.seen(p.key) {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) == 0 {
		fresh = periods
	}
	return fresh[t.rng.Intn(len(fresh))]
}

// nextType cycles question types, never repeating the previous one.
func (t *TimeOfDay) nextType() questionType {
	qt := questionType(t.typeIdx % int(questionTypeCount))
	t.typeIdx++
	if qt == t.lastType {
		qt = questionType(t.typeIdx % int(questionTypeCount))
		t.typeIdx++
	}
	t.lastType = qt
	return qt
}

func (t *TimeOfDay) Generate(cfg LevelConfig) Question {
	p := t.pickPeriod()
	t.recent.add(p.key)

	// Anchor the scene with a concrete hour so text-only play still
	// has something to read.
	hour := p.hourLo
	if p.hourHi >= p.hourLo {
		hour = p.hourLo + t.rng.Intn(p.hourHi-p.hourLo+1)
	} else { // night wraps midnight
		span := (24 - p.hourLo) + p.hourHi + 1
		hour = (p.hourLo + t.rng.Intn(span)) % 24
	}

	switch t.nextType() {
	case sceneToEnglish:
		return Question{
			Prompt:      fmt.Sprintf("%s It is around %02d:00. What time of day is this?", p.sceneHint, hour),
			Answer:      p.english,
			Explanation: p.sceneHint,
			Shape:       "english",
		}
	case sceneToNorwegian:
		return Question{
			Prompt:      fmt.Sprintf("%s It is around %02d:00. Hva tid på dagen er dette?", p.sceneHint, hour),
			Answer:      p.norwegian,
			Explanation: p.sceneHint,
			Shape:       "norwegian",
		}
	case englishToNorwegian:
		return Question{
			Prompt:      fmt.Sprintf("How do you say %q in Norwegian?", p.english),
			Answer:      p.norwegian,
			Explanation: p.translation,
			Shape:       "norwegian",
		}
	default:
		return Question{
			Prompt:      fmt.Sprintf("How do you say %q in English?", p.norwegian),
			Answer:      p.english,
			Explanation: p.translation,
			Shape:       "english",
		}
	}
}

// Choices always offers all five period names in the answer's
// language, shuffled.
func (t *TimeOfDay) Choices(q Question, cfg LevelConfig) []string {
	choices := make([]string, 0, len(periods))
	for _, p := range periods {
		if q.Shape == "norwegian" {
			choices = append(choices, p.norwegian)
		} else {
			choices = append(choices, p.english)
		}
	}
	shuffle(t.rng, choices)
	return choices
}

// PeriodFor maps a wall-clock time to its period key, useful for
// greeting the player by actual time of day.
func PeriodFor(now time.Time) string {
	h := now.Hour()
	for _, p := range periods {
		if p.hourLo <= p.hourHi {
			if h >= p.hourLo && h <= p.hourHi {
				return p.key
			}
		} else if h >= p.hourLo || h <= p.hourHi {
			return p.key
		}
	}
	return "night"
}
