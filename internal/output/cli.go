package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"deckprobe/internal/model"
)

const bannerWidth = 60

func banner(w io.Writer, title string) {
	line := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, line)
}

// PrintSweep writes the homepage sweep progress lines to w.
func PrintSweep(w io.Writer, report model.SweepReport) {
	banner(w, "deckprobe - HTTP connectivity test")
	fmt.Fprintf(w, "\nTesting against: %s\n", report.Target)

	fmt.Fprintln(w, "\n[1] Checking server health...")
	if !report.Health.OK {
		fmt.Fprintf(w, "    [✖] Server check failed: %s (%s)\n", report.Health.Message, report.Health.ReasonText())
		fmt.Fprintln(w, "\n    Make sure the app is running, e.g.:")
		fmt.Fprintf(w, "    streamlit run app.py --server.port=%s\n", portHint(report.Target))
		return
	}
	fmt.Fprintf(w, "    [✔] Server is running (HTTP %d)\n", report.Health.StatusCode)

	fmt.Fprintln(w, "\n[2] Fetching homepage...")
	if !report.Homepage.OK {
		fmt.Fprintf(w, "    [✖] Failed: %s (%s)\n", report.Homepage.Message, report.Homepage.ReasonText())
		return
	}
	fmt.Fprintf(w, "    [✔] Homepage fetched (HTTP %d)\n", report.Homepage.StatusCode)
	fmt.Fprintf(w, "    Content-Length: %d bytes\n", report.Homepage.ContentLength)

	fmt.Fprintln(w, "\n[3] Testing well-known endpoints...")
	for _, status := range report.WellKnown {
		if status.Available {
			fmt.Fprintf(w, "    [✔] %s - HTTP %d\n", status.Path, status.StatusCode)
		} else {
			fmt.Fprintf(w, "    [-] %s - not available\n", status.Path)
		}
	}

	fmt.Fprintln(w, "\n[4] WebSocket protocol...")
	fmt.Fprintf(w, "    WebSocket URL: %s\n", report.WebSocketURL)
	fmt.Fprintln(w, "    (display only; no socket is opened)")

	fmt.Fprintln(w)
	banner(w, "Basic HTTP connectivity test completed!")
}

// PrintGeneration writes the generation sweep attempt lines to w.
func PrintGeneration(w io.Writer, result model.GenerationResult) {
	fmt.Fprintln(w)
	banner(w, "Slide deck generation test")

	for _, attempt := range result.Attempts {
		fmt.Fprintf(w, "\n[?] Trying endpoint: %s\n", attempt.Endpoint)
		switch {
		case attempt.Note != "" && attempt.StatusCode == 0:
			fmt.Fprintf(w, "    [✖] %s\n", attempt.Note)
		case attempt.Note != "":
			fmt.Fprintf(w, "    Status: %d (%s)\n", attempt.StatusCode, attempt.Note)
		default:
			fmt.Fprintf(w, "    Status: %d\n", attempt.StatusCode)
		}
	}

	if result.Success {
		fmt.Fprintf(w, "\n[✔] Endpoint responded: %s\n", result.Endpoint)
		if data, err := json.MarshalIndent(result.Payload, "    ", "  "); err == nil {
			fmt.Fprintf(w, "    %s\n", data)
		}
		return
	}

	fmt.Fprintf(w, "\n[✖] %s\n", result.Message)
	fmt.Fprintln(w, "    The target may be a UI-only app without a REST API.")
}

// portHint extracts the port from a target URL for the startup hint.
func portHint(target string) string {
	if idx := strings.LastIndex(target, ":"); idx != -1 && idx > len("https") {
		port := target[idx+1:]
		if port != "" && !strings.Contains(port, "/") {
			return port
		}
	}
	return "8501"
}
