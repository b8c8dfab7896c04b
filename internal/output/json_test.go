package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"deckprobe/internal/model"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	meta := Metadata{
		RunID:       "00000000-0000-0000-0000-000000000001",
		GeneratedAt: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
		Target:      "http://localhost:8501",
	}

	sweep := model.SweepReport{
		Target:  "http://localhost:8501",
		Success: true,
		Health: model.Outcome{
			OK:            true,
			StatusCode:    200,
			ContentLength: 15,
			Payload:       map[string]any{"status": "ok"},
		},
		Homepage: model.Outcome{
			OK:            true,
			StatusCode:    200,
			ContentLength: 1234,
		},
		WellKnown: []model.PathStatus{
			{Path: "/_stcore/health", Available: true, StatusCode: 200},
			{Path: "/robots.txt", Available: false},
		},
		WebSocketURL: "ws://localhost:8501/ws",
	}

	if err := WriteJSON(path, meta, sweep, nil); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read JSON output: %v", err)
	}

	const expected = `{
  "meta": {
    "run_id": "00000000-0000-0000-0000-000000000001",
    "generated_at": "2024-03-01T15:04:05Z",
    "target": "http://localhost:8501"
  },
  "sweep": {
    "target": "http://localhost:8501",
    "success": true,
    "health": {
      "ok": true,
      "status_code": 200,
      "content_length": 15,
      "payload": {
        "status": "ok"
      }
    },
    "homepage": {
      "ok": true,
      "status_code": 200,
      "content_length": 1234
    },
    "well_known": [
      {
        "path": "/_stcore/health",
        "available": true,
        "status_code": 200
      },
      {
        "path": "/robots.txt",
        "available": false
      }
    ],
    "websocket_url": "ws://localhost:8501/ws"
  }
}`

	if string(data) != expected {
		t.Fatalf("unexpected JSON output:\nexpected:\n%s\n\nactual:\n%s", expected, string(data))
	}
}

func TestWriteJSONCreatesParentDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "report.json")

	meta := BuildMetadata("http://localhost:8501", time.Now().UTC())

	if err := WriteJSON(path, meta, model.SweepReport{Target: "http://localhost:8501"}, nil); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected report file to exist: %v", err)
	}
}

func TestBuildMetadataAssignsRunID(t *testing.T) {
	t.Parallel()

	first := BuildMetadata("http://localhost:8501", time.Now().UTC())
	second := BuildMetadata("http://localhost:8501", time.Now().UTC())

	if first.RunID == "" {
		t.Fatalf("expected a run ID")
	}
	if first.RunID == second.RunID {
		t.Fatalf("expected distinct run IDs, got %q twice", first.RunID)
	}
}
