// Package export round-trips player data as a single JSON document,
// for backups and moving between machines. Imports are validated
// against an embedded JSON Schema before anything is written.
package export

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
)

// SchemaVersion is bumped when the archive layout changes shape.
const SchemaVersion = 1

// GameData is everything persisted for one game.
type GameData struct {
	Settings      storage.Settings       `json:"settings"`
	Progress      storage.Progress       `json:"progress"`
	Sessions      []storage.LevelSession `json:"sessions"`
	StatsSessions []stats.Record         `json:"statsSessions"`
	StatsProgress stats.GameProgress     `json:"statsProgress"`
}

// Archive is the exported document.
type Archive struct {
	SchemaVersion int                 `json:"schemaVersion"`
	ExportedAt    time.Time           `json:"exportedAt"`
	RobuxCount    int                 `json:"robuxCount"`
	Games         map[string]GameData `json:"games"`
}

// Export collects every game's data into an archive.
func Export(kv storage.KV, games []string, src sessionclock.Source) Archive {
	if src == nil {
		src = sessionclock.SystemSource{}
	}
	arc := Archive{
		SchemaVersion: SchemaVersion,
		ExportedAt:    src.Now(),
		RobuxCount:    storage.GetRobuxCount(kv),
		Games:         make(map[string]GameData, len(games)),
	}
	for _, game := range games {
		gd := GameData{
			Settings: storage.GetSettings(kv, game),
			Progress: storage.GetProgress(kv, game),
			Sessions: storage.GetSessions(kv, game),
		}
		storage.GetJSON(kv, storage.Key(game, storage.KindEnhancedSessions), &gd.StatsSessions)
		storage.GetJSON(kv, storage.Key(game, storage.KindEnhancedProgress), &gd.StatsProgress)
		arc.Games[game] = gd
	}
	return arc
}

// Marshal renders an archive as indented JSON.
func Marshal(arc Archive) ([]byte, error) {
	data, err := json.MarshalIndent(arc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal archive: %w", err)
	}
	return data, nil
}

// Import validates data and writes it into kv, replacing each game
// present in the archive. Games absent from the archive are untouched.
func Import(kv storage.KV, data []byte) (Archive, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Archive{}, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return Archive{}, err
	}
	if err := schema.Validate(parsed); err != nil {
		return Archive{}, fmt.Errorf("archive failed validation: %w", err)
	}

	var arc Archive
	if err := json.Unmarshal(data, &arc); err != nil {
		return Archive{}, fmt.Errorf("decode archive: %w", err)
	}
	if arc.SchemaVersion > SchemaVersion {
		return Archive{}, fmt.Errorf("archive schema version %d is newer than supported version %d", arc.SchemaVersion, SchemaVersion)
	}

	storage.SetRobuxCount(kv, arc.RobuxCount)
	for game, gd := range arc.Games {
		storage.SaveSettings(kv, game, gd.Settings)
		storage.SaveProgress(kv, game, gd.Progress)
		storage.SetJSON(kv, storage.Key(game, storage.KindSessions), gd.Sessions)
		storage.SetJSON(kv, storage.Key(game, storage.KindEnhancedSessions), gd.StatsSessions)
		storage.SetJSON(kv, storage.Key(game, storage.KindEnhancedProgress), gd.StatsProgress)
	}
	return arc, nil
}

// archiveSchema is deliberately strict about the envelope and loose
// about inner game fields, so older exports with extra keys still load.
const archiveSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schemaVersion", "exportedAt", "games"],
  "properties": {
    "schemaVersion": {"type": "integer", "minimum": 1},
    "exportedAt": {"type": "string"},
    "robuxCount": {"type": "integer", "minimum": 0},
    "games": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["settings", "progress"],
        "properties": {
          "settings": {"type": "object"},
          "progress": {
            "type": "object",
            "properties": {
              "currentLevel": {"type": "integer", "minimum": 1},
              "totalCorrect": {"type": "integer", "minimum": 0},
              "totalQuestions": {"type": "integer", "minimum": 0}
            }
          },
          "sessions": {"type": ["array", "null"]},
          "statsSessions": {"type": ["array", "null"]},
          "statsProgress": {"type": "object"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schemaVal  *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(archiveSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse archive schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://neuroplay-archive.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schemaVal, schemaErr = c.Compile(url)
	})
	return schemaVal, schemaErr
}
