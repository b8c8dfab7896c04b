package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"deckprobe/internal/model"
)

type jsonPayload struct {
	Meta       Metadata                `json:"meta"`
	Sweep      model.SweepReport       `json:"sweep"`
	Generation *model.GenerationResult `json:"generation,omitempty"`
}

// WriteJSON writes the probe report to a JSON file. The generation result is
// optional and omitted when the sweep never reached it.
func WriteJSON(path string, meta Metadata, sweep model.SweepReport, generation *model.GenerationResult) error {
	payload := jsonPayload{Meta: meta, Sweep: sweep, Generation: generation}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil && !os.IsExist(err) {
			return err
		}
	}

	return os.WriteFile(path, data, 0o644)
}
