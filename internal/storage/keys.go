package storage

import "strings"

// Shared keys, not namespaced per game.
const (
	KeyRobuxCount      = "robux_count"
	KeyRobuxLastUpdate = "robux_last_update"
	KeyGlobalClock     = "global_session_clock"
)

// Per-game key kinds.
const (
	KindSettings = "settings"
	KindProgress = "progress"
	KindSessions = "sessions"
	// KindCurrentSession has no writer; it is kept so reset clears any
	// key left behind by older data files.
	KindCurrentSession   = "current_session"
	KindEnhancedSessions = "enhanced_sessions"
	KindEnhancedProgress = "enhanced_progress"
)

// Key builds the namespaced storage key for a game and kind,
// e.g. Key("multiply", KindProgress) -> "multiply_progress".
func Key(game, kind string) string {
	g := strings.ReplaceAll(strings.ToLower(game), " ", "")
	return g + "_" + kind
}
