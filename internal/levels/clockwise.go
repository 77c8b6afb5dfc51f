package levels

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// clockwiseLevel extends LevelConfig with the time-picking rules for a
// clock-reading level.
type clockwiseLevel struct {
	LevelConfig
	hourOptions   []int
	minuteOptions []int // nil means any minute 0-59
	hourOnly      bool  // only the hour hand is shown
	distractors   int   // dashed hands to ignore
	elapsed       bool  // ask "what time will it be in N minutes?"
	mixed         bool  // mix standard and elapsed questions
}

// Clockwise is the analog clock reading game. Answers are times in
// "H:MM" form, except on hour-only levels where the answer is the hour.
type Clockwise struct {
	rng    *rand.Rand
	recent recentList
	levels []clockwiseLevel
}

// NewClockwise creates the clock game. A nil rng is seeded from the
// current time.
func NewClockwise(rng *rand.Rand) *Clockwise {
	return &Clockwise{rng: newRNG(rng), levels: clockwiseLevels()}
}

func (c *Clockwise) Name() string  { return "clockwise" }
func (c *Clockwise) Title() string { return "ClockWise" }
func (c *Clockwise) MaxLevel() int { return len(c.levels) }

func (c *Clockwise) Level(id int) LevelConfig {
	return c.level(id).LevelConfig
}

func (c *Clockwise) level(id int) clockwiseLevel {
	return c.levels[clampLevel(id, len(c.levels))-1]
}

// FormatTime renders an hour and minute the way the game displays and
// compares answers: no leading zero on the hour, two-digit minutes.
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// ParseTime parses an "H:MM" answer on a 12-hour clock. It returns
// false for anything out of range or malformed.
func ParseTime(s string) (hour, minute int, ok bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, false
	}
	if h < 1 || h > 12 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func (c *Clockwise) pickMinute(lv clockwiseLevel) int {
	if lv.minuteOptions == nil {
		return c.rng.Intn(60)
	}
	return lv.minuteOptions[c.rng.Intn(len(lv.minuteOptions))]
}

func (c *Clockwise) Generate(cfg LevelConfig) Question {
	lv := c.level(cfg.ID)

	var hour, minute int
	for attempts := 0; attempts < 20; attempts++ {
		hour = lv.hourOptions[c.rng.Intn(len(lv.hourOptions))]
		minute = c.pickMinute(lv)
		if !c.recent.seen(FormatTime(hour, minute)) {
			break
		}
	}
	c.recent.add(FormatTime(hour, minute))

	elapsed := lv.elapsed || (lv.mixed && c.rng.Float64() > 0.6)
	if elapsed {
		gaps := []int{15, 20, 30, 45}
		gap := gaps[c.rng.Intn(len(gaps))]
		ansMinute := minute + gap
		ansHour := hour
		if ansMinute >= 60 {
			ansHour = hour%12 + 1
		}
		ansMinute %= 60
		return Question{
			Prompt:      fmt.Sprintf("The clock shows %s. What time will it be in %d minutes?", FormatTime(hour, minute), gap),
			Answer:      FormatTime(ansHour, ansMinute),
			Explanation: fmt.Sprintf("%s plus %d minutes is %s", FormatTime(hour, minute), gap, FormatTime(ansHour, ansMinute)),
			Shape:       "elapsed",
		}
	}

	if lv.hourOnly {
		return Question{
			Prompt:      fmt.Sprintf("The hour hand points to %d. What hour is it?", hour),
			Answer:      strconv.Itoa(hour),
			Explanation: fmt.Sprintf("The hand points to %d, so it's %d o'clock", hour, hour),
			Shape:       "hour",
		}
	}

	prompt := fmt.Sprintf("The hour hand is at %d and the minute hand is at %d minutes. What time is it?", hour, minute)
	if lv.distractors > 0 {
		prompt = fmt.Sprintf("Ignoring %d dashed hands: the solid hour hand is at %d, the solid minute hand at %d minutes. What time is it?", lv.distractors, hour, minute)
	}
	return Question{
		Prompt:      prompt,
		Answer:      FormatTime(hour, minute),
		Explanation: fmt.Sprintf("Hour hand at %d, minute hand showing %d minutes: %s", hour, minute, FormatTime(hour, minute)),
		Shape:       "time",
	}
}

func (c *Clockwise) Choices(q Question, cfg LevelConfig) []string {
	lv := c.level(cfg.ID)

	if lv.hourOnly && q.Shape == "hour" {
		correct, _ := strconv.Atoi(q.Answer)
		choices := []string{q.Answer}
		for len(choices) < ChoiceCount {
			wrong := lv.hourOptions[c.rng.Intn(len(lv.hourOptions))]
			if wrong != correct && !contains(choices, strconv.Itoa(wrong)) {
				choices = append(choices, strconv.Itoa(wrong))
			}
			if len(lv.hourOptions) < ChoiceCount {
				// Small pools (cardinal hours) need filler outside the pool.
				wrong = 1 + c.rng.Intn(12)
				if wrong != correct && !contains(choices, strconv.Itoa(wrong)) {
					choices = append(choices, strconv.Itoa(wrong))
				}
			}
		}
		shuffle(c.rng, choices)
		return choices
	}

	hour, minute, _ := ParseTime(q.Answer)
	choices := []string{q.Answer}
	offsets := []int{5, 10, 15, -5, -10, -15}
	for len(choices) < ChoiceCount {
		var wh, wm int
		switch c.rng.Intn(3) {
		case 0: // same hour, different minute
			wh = hour
			if lv.minuteOptions == nil {
				wm = (minute + offsets[c.rng.Intn(len(offsets))] + 60) % 60
			} else {
				wm = c.pickMinute(lv)
				if wm == minute {
					wm = (minute + 15) % 60
				}
			}
		case 1: // different hour, same minute
			wh = lv.hourOptions[c.rng.Intn(len(lv.hourOptions))]
			if wh == hour {
				wh = hour%12 + 1
			}
			wm = minute
		default: // both different
			wh = lv.hourOptions[c.rng.Intn(len(lv.hourOptions))]
			wm = c.pickMinute(lv)
		}
		candidate := FormatTime(wh, wm)
		if !contains(choices, candidate) {
			choices = append(choices, candidate)
		}
	}
	shuffle(c.rng, choices)
	return choices
}

func clockwiseLevels() []clockwiseLevel {
	allHours := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	return []clockwiseLevel{
		{
			LevelConfig: LevelConfig{
				ID: 1, Name: "Hour Hand - Cardinal Positions",
				Description:       "Learn to read the hour hand at 12, 3, 6, and 9",
				QuestionsRequired: 5,
				Hints: []string{
					"This is the hour hand - the short, thick hand",
					"It points straight at the hour",
					"12 is up, 3 is right, 6 is down, 9 is left",
				},
				MediatedPrompts: []string{
					"You're learning to see where the hour hand points!",
					"The hour hand moves slowly around the clock.",
				},
			},
			hourOptions: []int{12, 3, 6, 9}, minuteOptions: []int{0}, hourOnly: true,
		},
		{
			LevelConfig: LevelConfig{
				ID: 2, Name: "Hour Hand - All Positions",
				Description:       "Read the hour hand at any of the 12 positions",
				QuestionsRequired: 8,
				Hints: []string{
					"Each number marks one hour",
					"The hour hand tells us the hour",
				},
				MediatedPrompts: []string{
					"You can now read all 12 hour positions!",
					"Notice how the hour hand moves clockwise.",
				},
			},
			hourOptions: allHours, minuteOptions: []int{0}, hourOnly: true,
		},
		{
			LevelConfig: LevelConfig{
				ID: 3, Name: "Two Hands - On the Hour",
				Description:       "Now adding the minute hand - it points to 12 on the hour",
				QuestionsRequired: 8,
				Hints: []string{
					"The long thin hand is the minute hand",
					"When the minute hand points to 12, it's exactly on the hour",
					"Focus on the short hand to tell the hour",
				},
				MediatedPrompts: []string{
					"Two hands at once - your brain is handling more!",
					"When it's exactly on the hour, the minute hand points straight up.",
				},
			},
			hourOptions: allHours, minuteOptions: []int{0},
		},
		{
			LevelConfig: LevelConfig{
				ID: 4, Name: "Two Hands - Half Past",
				Description:       "Read times on the hour and half past",
				QuestionsRequired: 8,
				Hints: []string{
					"When the minute hand points to 6, it means 30 minutes",
					"Half past means the minute hand went halfway around",
					"Notice the hour hand moves between numbers at :30",
				},
				MediatedPrompts: []string{
					"Half past 3 means 3:30 - you're halfway to the next hour.",
					"The hour hand sits between two numbers at half past!",
				},
			},
			hourOptions: allHours, minuteOptions: []int{0, 30},
		},
		{
			LevelConfig: LevelConfig{
				ID: 5, Name: "Quarter Hours",
				Description:       "Quarter past, half past, quarter to",
				QuestionsRequired: 10,
				Hints: []string{
					"Minute hand at 3 = 15 minutes (quarter past)",
					"Minute hand at 9 = 45 minutes (quarter to)",
					"A quarter of 60 minutes is 15 minutes",
				},
				MediatedPrompts: []string{
					"Quarters conquered!",
					"You're reading four positions confidently now.",
				},
			},
			hourOptions: allHours, minuteOptions: []int{0, 15, 30, 45},
		},
		{
			LevelConfig: LevelConfig{
				ID: 6, Name: "Five-Minute Intervals",
				Description:       "Read times at 5-minute marks",
				QuestionsRequired: 10,
				Hints: []string{
					"Each number on the clock = 5 minutes",
					"Minute hand at 1 = 5 minutes, at 2 = 10 minutes",
					"Count by 5s from 12 to where the minute hand points",
				},
				MediatedPrompts: []string{
					"You're now reading any 5-minute interval!",
					"Each tick mark is 1 minute, each number is 5.",
				},
			},
			hourOptions: allHours, minuteOptions: []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55},
		},
		{
			LevelConfig: LevelConfig{
				ID: 7, Name: "Three Hands - Adding Seconds",
				Description:       "A second hand joins - keep reading hours and minutes",
				QuestionsRequired: 10, TimeAllowed: 20 * time.Second,
				Hints: []string{
					"The thinnest, fastest hand shows seconds - you can ignore it",
					"Focus on the hour (thick) and minute (medium) hands",
				},
				MediatedPrompts: []string{
					"Three hands and you kept your focus!",
					"Filtering the second hand is real attention training.",
				},
			},
			hourOptions: allHours, minuteOptions: []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55},
		},
		{
			LevelConfig: LevelConfig{
				ID: 8, Name: "Three Hands - Any Time",
				Description:       "Read any minute with three hands visible",
				QuestionsRequired: 10, TimeAllowed: 20 * time.Second,
				Hints: []string{
					"Look at where the minute hand is between the numbers",
					"Each small tick = 1 minute",
					"The hour hand position tells you if it's closer to this hour or the next",
				},
				MediatedPrompts: []string{
					"Minute-perfect reading!",
					"Any time, any hands - you can read it.",
				},
			},
			hourOptions: allHours,
		},
		{
			LevelConfig: LevelConfig{
				ID: 9, Name: "Selective Attention",
				Description:       "Ignore a dashed distractor hand",
				QuestionsRequired: 10, TimeAllowed: 15 * time.Second,
				Hints: []string{
					"Only solid hands show the real time",
					"The dashed hand is a trick - skip it",
					"Find the short solid hand first",
				},
				MediatedPrompts: []string{
					"Excellent selective attention! You ignored the distractor.",
					"This trains your brain to focus on relevant information.",
				},
			},
			hourOptions: allHours, distractors: 1,
		},
		{
			LevelConfig: LevelConfig{
				ID: 10, Name: "Multiple Distractors",
				Description:       "Filter multiple irrelevant hands",
				QuestionsRequired: 10, TimeAllowed: 10 * time.Second,
				Hints: []string{
					"Multiple dashed hands - ignore them all",
					"Only solid hands show the real time",
					"Practice focusing only on what matters",
				},
				MediatedPrompts: []string{
					"Your selective attention is exceptional!",
					"Five hands, two filtered - impressive!",
				},
			},
			hourOptions: allHours, distractors: 2,
		},
		{
			LevelConfig: LevelConfig{
				ID: 11, Name: "Elapsed Time",
				Description:       "Calculate time differences",
				QuestionsRequired: 10, TimeAllowed: 15 * time.Second,
				Hints: []string{
					"Think about how the hands move forward",
					"Add the minutes, then see if you pass an hour",
					"It helps to imagine the minute hand moving",
				},
				MediatedPrompts: []string{
					"You're now reasoning about time, not just reading it!",
					"What time will dinner be ready if it takes 30 minutes?",
				},
			},
			hourOptions: allHours, elapsed: true,
		},
		{
			LevelConfig: LevelConfig{
				ID: 12, Name: "Time Master",
				Description:       "Mixed challenges with all skills",
				QuestionsRequired: 10, TimeAllowed: 10 * time.Second,
				Hints: []string{
					"Use all your skills together",
					"Identify hands, filter distractors, read time",
					"You've trained for this - trust your brain",
				},
				MediatedPrompts: []string{
					"You've completed the full progression!",
					"These skills help with reading, math, and problem-solving!",
				},
			},
			hourOptions: allHours, distractors: 2, mixed: true,
		},
	}
}
