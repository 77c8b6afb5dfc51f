package levels

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// multiplyLevel extends LevelConfig with multiplication parameters.
type multiplyLevel struct {
	LevelConfig
	table  int   // fixed table, 0 when mixed
	tables []int // tables drawn from when mixed
	lo, hi int   // multiplier range
}

// Multiply is the times-table game. Levels follow the
// key-facts-then-derivation sequence: 2s, 10s and 5s first, then tables
// derived from them, then mixed practice.
type Multiply struct {
	rng    *rand.Rand
	recent recentList
	levels []multiplyLevel
}

// NewMultiply creates the multiplication game. A nil rng is seeded from
// the current time.
func NewMultiply(rng *rand.Rand) *Multiply {
	return &Multiply{rng: newRNG(rng), levels: multiplyLevels()}
}

func (m *Multiply) Name() string  { return "multiply" }
func (m *Multiply) Title() string { return "Multiply Master" }
func (m *Multiply) MaxLevel() int { return len(m.levels) }

func (m *Multiply) Level(id int) LevelConfig {
	return m.level(id).LevelConfig
}

func (m *Multiply) level(id int) multiplyLevel {
	return m.levels[clampLevel(id, len(m.levels))-1]
}

func (m *Multiply) Generate(cfg LevelConfig) Question {
	lv := m.level(cfg.ID)

	var a, b int
	for attempts := 0; attempts < 20; attempts++ {
		table := lv.table
		if len(lv.tables) > 0 {
			table = lv.tables[m.rng.Intn(len(lv.tables))]
		}
		a = table
		b = lv.lo + m.rng.Intn(lv.hi-lv.lo+1)
		if m.rng.Intn(2) == 0 {
			a, b = b, a
		}
		if !m.recent.seen(factKey(a, b)) && !m.recent.seen(factKey(b, a)) {
			break
		}
	}
	m.recent.add(factKey(a, b))

	product := a * b
	return Question{
		Prompt:      fmt.Sprintf("%d × %d = ?", a, b),
		Answer:      strconv.Itoa(product),
		Explanation: fmt.Sprintf("%d × %d = %d", a, b, product),
		Shape:       factKey(a, b),
	}
}

func (m *Multiply) Choices(q Question, cfg LevelConfig) []string {
	correct, _ := strconv.Atoi(q.Answer)
	lv := m.level(cfg.ID)

	spread := 10
	if lv.table > 0 && lv.table*2 > spread {
		spread = lv.table * 2
	}
	return numericChoices(m.rng, correct, spread)
}

func factKey(a, b int) string {
	return strconv.Itoa(a) + "x" + strconv.Itoa(b)
}

// numericChoices builds ChoiceCount unique positive options around the
// correct answer, shuffled.
func numericChoices(rng *rand.Rand, correct, spread int) []string {
	choices := []string{strconv.Itoa(correct)}

	for attempts := 0; len(choices) < ChoiceCount && attempts < 100; attempts++ {
		offset := rng.Intn(spread+1) - spread/2
		if offset == 0 {
			if rng.Intn(2) == 0 {
				offset = 1
			} else {
				offset = -1
			}
		}
		wrong := correct + offset
		if wrong > 0 && !contains(choices, strconv.Itoa(wrong)) {
			choices = append(choices, strconv.Itoa(wrong))
		}
	}

	// Simple offsets fill any remaining slots.
	for offset := 1; len(choices) < ChoiceCount; offset++ {
		wrong := correct + offset
		if !contains(choices, strconv.Itoa(wrong)) {
			choices = append(choices, strconv.Itoa(wrong))
		}
	}

	return shuffle(rng, choices)
}

func multiplyLevels() []multiplyLevel {
	lv := func(id int, name, desc string, table int, tables []int, required int, timed time.Duration, hints []string, prompts []string) multiplyLevel {
		return multiplyLevel{
			LevelConfig: LevelConfig{
				ID:                id,
				Name:              name,
				Description:       desc,
				QuestionsRequired: required,
				TimeAllowed:       timed,
				Hints:             hints,
				MediatedPrompts:   prompts,
			},
			table:  table,
			tables: tables,
			lo:     1,
			hi:     10,
		}
	}

	return []multiplyLevel{
		lv(1, "Doubles (×2)", "Master the 2 times table - doubling numbers", 2, nil, 15, 0,
			[]string{"×2 means double the number", "Think: the number + itself", "2 × 7 = 7 + 7"},
			[]string{"Doubling is one of the most useful math skills!", "You can double anything - even big numbers!"}),
		lv(2, "Tens (×10)", "The easiest table - just add a zero!", 10, nil, 15, 0,
			[]string{"×10 just adds a zero to the end", "10 × 4 = 40 (4 with a 0)", "The pattern: 10, 20, 30, 40..."},
			[]string{"The 10s are the easiest - just add zero!", "Notice the pattern? Every answer ends in 0!"}),
		lv(3, "Fives (×5)", "Half of tens - ends in 0 or 5", 5, nil, 20, 0,
			[]string{"×5 is half of ×10", "5 × 4 = half of 10 × 4 = half of 40 = 20", "Answers always end in 0 or 5"},
			[]string{"See how 5s relate to 10s? Half!", "The pattern: 5, 10, 15, 20, 25..."}),
		lv(4, "Threes (×3)", "Double plus one more group", 3, nil, 20, 0,
			[]string{"×3 = ×2 + one more group", "3 × 4 = (2 × 4) + 4 = 8 + 4 = 12", "Double it, then add one more"},
			[]string{"You're using your ×2 skills to learn ×3!", "Your brain is making connections!"}),
		lv(5, "Fours (×4)", "Double the double!", 4, nil, 20, 0,
			[]string{"×4 = double × double", "4 × 6 = 2 × (2 × 6) = 2 × 12 = 24", "Double it twice!"},
			[]string{"Double-double! Your ×2 skills make ×4 easy!", "See how everything connects?"}),
		lv(6, "Sixes (×6)", "Five plus one more, or double threes", 6, nil, 20, 0,
			[]string{"×6 = ×5 + one more group", "6 × 7 = (5 × 7) + 7 = 35 + 7 = 42", "Or double the ×3 answer"},
			[]string{"Two paths to every ×6 answer!", "Pick the path that feels easiest!"}),
		lv(7, "Sevens (×7)", "Five plus two more groups", 7, nil, 20, 20*time.Second,
			[]string{"×7 = ×5 + ×2", "7 × 6 = (5 × 6) + (2 × 6) = 30 + 12 = 42", "Split it into chunks you know"},
			[]string{"Sevens are tricky - you're doing great!", "Break it down, build it up!"}),
		lv(8, "Eights (×8)", "Double, double, double!", 8, nil, 20, 20*time.Second,
			[]string{"×8 = double three times", "8 × 3 = 2 × 2 × 2 × 3 = 24", "Or ×10 minus two groups"},
			[]string{"Three doublings gets you any ×8!", "You have more than one tool now!"}),
		lv(9, "Nines (×9)", "Ten minus one group", 9, nil, 20, 20*time.Second,
			[]string{"×9 = ×10 - one group", "9 × 6 = (10 × 6) - 6 = 60 - 6 = 54", "The digits of ×9 answers add to 9"},
			[]string{"The nines have a magic pattern!", "Check: do the digits add to 9?"}),
		lv(10, "Mixed Key Facts", "2s, 5s and 10s together", 0, []int{2, 5, 10}, 20, 15*time.Second,
			[]string{"Spot which table the question uses", "All three of these are your strongest tables"},
			[]string{"Mixing it up - you know all of these!", "Fast recall is building!"}),
		lv(11, "Mixed Derived", "3s, 4s, 6s, 7s, 8s and 9s together", 0, []int{3, 4, 6, 7, 8, 9}, 25, 15*time.Second,
			[]string{"Use the derivation tricks you learned", "Every fact connects to a key fact"},
			[]string{"You're deriving answers like a mathematician!", "All those tricks are paying off!"}),
		lv(12, "Grand Mix", "Every table from 2 to 10", 0, []int{2, 3, 4, 5, 6, 7, 8, 9, 10}, 25, 12*time.Second,
			[]string{"Trust your recall - you know these", "If stuck, derive from 2s, 5s or 10s"},
			[]string{"The whole times table is yours!", "Mastery level: maximum!"}),
	}
}
