package errorreport

import (
	stdjson "encoding/json"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/suma737/webharness/internal/taxonomy"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one persisted failure event. Records are written once at capture
// time and never mutated; the on-disk JSON file is the unit of storage.
type Record struct {
	Code       int               `json:"code"`
	Category   taxonomy.Category `json:"category"`
	Message    string            `json:"message"`
	Title      string            `json:"title"`
	Details    map[string]any    `json:"details,omitempty"`
	Location   string            `json:"location,omitempty"`
	Screenshot string            `json:"screenshot,omitempty"`
	Timestamp  string            `json:"timestamp"`
}

// readRecord loads and decodes a single persisted record file.
func readRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read record %s: %w", path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode record %s: %w", path, err)
	}
	return rec, nil
}

// sanitizeDetails returns a details payload that is guaranteed to serialize.
// Payloads that cannot be marshaled (cycles, unsupported types) are replaced
// with a fallback representation instead of failing the report. The probe
// must use encoding/json: it detects cyclic values and returns an error,
// where json-iterator recurses until the runtime aborts.
func sanitizeDetails(details map[string]any) (out map[string]any) {
	if details == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			out = map[string]any{"unserializable": fmt.Sprintf("marshal panic: %v", r)}
		}
	}()
	if _, err := stdjson.Marshal(details); err != nil {
		return map[string]any{"unserializable": err.Error()}
	}
	return details
}
