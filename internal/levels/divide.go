package levels

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// divideLevel extends LevelConfig with division parameters.
type divideLevel struct {
	LevelConfig
	divisor  int
	divisors []int // drawn from when mixed
	lo, hi   int   // quotient range
}

// Divide is the division game. Every question is a whole-number fact
// built as divisor × quotient, so answers are always exact.
type Divide struct {
	rng    *rand.Rand
	recent recentList
	levels []divideLevel
}

// NewDivide creates the division game. A nil rng is seeded from the
// current time.
func NewDivide(rng *rand.Rand) *Divide {
	return &Divide{rng: newRNG(rng), levels: divideLevels()}
}

func (d *Divide) Name() string  { return "divide" }
func (d *Divide) Title() string { return "Division Quest" }
func (d *Divide) MaxLevel() int { return len(d.levels) }

func (d *Divide) Level(id int) LevelConfig {
	return d.level(id).LevelConfig
}

func (d *Divide) level(id int) divideLevel {
	return d.levels[clampLevel(id, len(d.levels))-1]
}

func (d *Divide) Generate(cfg LevelConfig) Question {
	lv := d.level(cfg.ID)

	var divisor, quotient, dividend int
	for attempts := 0; attempts < 20; attempts++ {
		divisor = lv.divisor
		if len(lv.divisors) > 0 {
			divisor = lv.divisors[d.rng.Intn(len(lv.divisors))]
		}
		quotient = lv.lo + d.rng.Intn(lv.hi-lv.lo+1)
		dividend = divisor * quotient
		if !d.recent.seen(quotientKey(dividend, divisor)) {
			break
		}
	}
	d.recent.add(quotientKey(dividend, divisor))

	prompts := []string{
		fmt.Sprintf("What is %d ÷ %d?", dividend, divisor),
		fmt.Sprintf("%d divided by %d equals?", dividend, divisor),
		fmt.Sprintf("How many %ds are in %d?", divisor, dividend),
	}

	return Question{
		Prompt:      prompts[d.rng.Intn(len(prompts))],
		Answer:      strconv.Itoa(quotient),
		Explanation: fmt.Sprintf("%d ÷ %d = %d because %d × %d = %d", dividend, divisor, quotient, divisor, quotient, dividend),
		Shape:       quotientKey(dividend, divisor),
	}
}

func (d *Divide) Choices(q Question, cfg LevelConfig) []string {
	correct, _ := strconv.Atoi(q.Answer)
	// Wrong answers stay within ±5 of the quotient.
	return numericChoices(d.rng, correct, 10)
}

func quotientKey(dividend, divisor int) string {
	return strconv.Itoa(dividend) + "/" + strconv.Itoa(divisor)
}

func divideLevels() []divideLevel {
	lv := func(id int, name, desc string, divisor int, divisors []int, required int, timed time.Duration, hints []string, prompts []string) divideLevel {
		return divideLevel{
			LevelConfig: LevelConfig{
				ID:                id,
				Name:              name,
				Description:       desc,
				QuestionsRequired: required,
				TimeAllowed:       timed,
				Hints:             hints,
				MediatedPrompts:   prompts,
			},
			divisor:  divisor,
			divisors: divisors,
			lo:       1,
			hi:       10,
		}
	}

	return []divideLevel{
		lv(1, "Halves (÷2)", "Splitting into two equal groups", 2, nil, 15, 0,
			[]string{"÷2 means split into two equal parts", "14 ÷ 2: what plus itself makes 14?", "Half of 14 is 7"},
			[]string{"Halving undoes doubling!", "You already know these from ×2!"}),
		lv(2, "Tens (÷10)", "Remove a zero", 10, nil, 15, 0,
			[]string{"÷10 takes a zero off the end", "40 ÷ 10 = 4", "Count how many tens fit"},
			[]string{"The tens work backwards too!", "Just drop the zero!"}),
		lv(3, "Fives (÷5)", "How many fives fit?", 5, nil, 20, 0,
			[]string{"Count by fives up to the number", "35 ÷ 5: 5, 10, 15, 20, 25, 30, 35 - seven fives", "÷5 is ÷10 then double"},
			[]string{"Skip counting by fives works every time!", "Fives and tens are partners!"}),
		lv(4, "Threes (÷3)", "Splitting into three groups", 3, nil, 20, 0,
			[]string{"Think: 3 times what makes this number?", "12 ÷ 3 = 4 because 3 × 4 = 12", "Use the ×3 facts you know"},
			[]string{"Division is multiplication in reverse!", "Your ×3 table is the key!"}),
		lv(5, "Fours (÷4)", "Half, then half again", 4, nil, 20, 0,
			[]string{"÷4 = halve it twice", "24 ÷ 4: half is 12, half again is 6", "Or think 4 × ? = 24"},
			[]string{"Two halvings beats one big division!", "Halve and halve again!"}),
		lv(6, "Sixes (÷6)", "Six times what?", 6, nil, 20, 0,
			[]string{"Think: 6 × ? makes this number", "42 ÷ 6 = 7 because 6 × 7 = 42", "Or ÷2 then ÷3"},
			[]string{"You know the ×6 facts - just reverse them!", "Break big divisions into small steps!"}),
		lv(7, "Sevens (÷7)", "The trickiest table in reverse", 7, nil, 20, 20*time.Second,
			[]string{"Think: 7 × ? makes this number", "56 ÷ 7 = 8 because 7 × 8 = 56", "Count by sevens if stuck"},
			[]string{"Sevens both ways - impressive!", "The hardest facts are becoming easy!"}),
		lv(8, "Eights (÷8)", "Halve three times", 8, nil, 20, 20*time.Second,
			[]string{"÷8 = halve, halve, halve", "48 ÷ 8: 24, 12, 6", "Or think 8 × ? = 48"},
			[]string{"Three halvings!", "Eights hold no secrets from you!"}),
		lv(9, "Nines (÷9)", "Nine times what?", 9, nil, 20, 20*time.Second,
			[]string{"Think: 9 × ? makes this number", "63 ÷ 9 = 7 because 9 × 7 = 63", "The dividend's digits add to 9"},
			[]string{"The nines pattern works in reverse too!", "Digit sums are your secret weapon!"}),
		lv(10, "Mixed Key Facts", "÷2, ÷5 and ÷10 together", 0, []int{2, 5, 10}, 20, 15*time.Second,
			[]string{"Spot the divisor first", "These are your three strongest tables"},
			[]string{"Mixing the easy ones - warm up that recall!", "You know every one of these!"}),
		lv(11, "Mixed Derived", "÷3, ÷4, ÷6, ÷7, ÷8 and ÷9 together", 0, []int{3, 4, 6, 7, 8, 9}, 25, 15*time.Second,
			[]string{"Reverse the multiplication fact", "Use halving tricks where they fit"},
			[]string{"Every division has a multiplication twin!", "You're thinking in both directions!"}),
		lv(12, "Grand Mix", "Every divisor from 2 to 10", 0, []int{2, 3, 4, 5, 6, 7, 8, 9, 10}, 25, 12*time.Second,
			[]string{"Trust your fact recall", "Estimate first, then check"},
			[]string{"Full division mastery!", "Nothing left to divide you from victory!"}),
	}
}
