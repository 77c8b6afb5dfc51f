package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// KV is the persistence port shared by all services. Values are
// JSON-serialized blobs keyed by a flat, per-game namespaced key.
type KV interface {
	// Get returns the raw value for key, or ok=false if absent.
	Get(key string) ([]byte, bool, error)

	// Set writes the raw value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
}

// GetJSON unmarshals the value at key into out. Returns false if the key
// is absent or the stored value is corrupt. out is left untouched on
// failure, so callers can pre-fill it with defaults (merge-on-read).
func GetJSON(kv KV, key string, out any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		warnf("read %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		warnf("corrupt value at %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON marshals v and writes it at key. Failures are logged, not
// propagated: the caller continues with its in-memory state.
func SetJSON(kv KV, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		warnf("marshal %s: %v", key, err)
		return
	}
	if err := kv.Set(key, raw); err != nil {
		warnf("write %s: %v", key, err)
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: storage: "+format+"\n", args...)
}
