package output

import (
	"time"

	"github.com/google/uuid"
)

// Metadata captures aggregated information about a probe run.
type Metadata struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Target      string    `json:"target"`
}

// BuildMetadata creates a Metadata value for the current run.
func BuildMetadata(target string, generatedAt time.Time) Metadata {
	return Metadata{
		RunID:       uuid.NewString(),
		GeneratedAt: generatedAt,
		Target:      target,
	}
}
