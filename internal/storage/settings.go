package storage

// Settings holds per-game display and input preferences. These are not
// gameplay-critical: reads merge stored values onto defaults and are
// never validated further.
type Settings struct {
	Font              string `json:"font"`
	FontSize          string `json:"fontSize"`
	HighContrast      bool   `json:"highContrast"`
	ClockSize         string `json:"clockSize"`
	InputMethod       string `json:"inputMethod"`
	AudioEnabled      bool   `json:"audioEnabled"`
	ShowTimer         bool   `json:"showTimer"`
	AlwaysShowNumbers bool   `json:"alwaysShowNumbers"`
	Theme             string `json:"theme"`
	QuestionsPerLevel int    `json:"questionsPerLevel"`
}

// DefaultSettings returns the hardcoded defaults every read merges onto.
func DefaultSettings() Settings {
	return Settings{
		Font:              "lexend",
		FontSize:          "normal",
		ClockSize:         "normal",
		InputMethod:       "text",
		ShowTimer:         true,
		Theme:             "ocean",
		QuestionsPerLevel: 10,
	}
}

// GetSettings reads the settings for a game, merging onto defaults.
// Corrupt or missing data yields the defaults.
func GetSettings(kv KV, game string) Settings {
	s := DefaultSettings()
	GetJSON(kv, Key(game, KindSettings), &s)
	return s
}

// SaveSettings persists the settings for a game.
func SaveSettings(kv KV, game string, s Settings) {
	SetJSON(kv, Key(game, KindSettings), s)
}
