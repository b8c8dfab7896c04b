package network

import (
	"errors"
	"net/url"
	"strings"
)

// NormalizeBase validates a base URL and trims any trailing slashes so paths
// can be appended verbatim. A missing scheme defaults to http.
func NormalizeBase(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", errors.New("base URL is empty")
	}

	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", err
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("base URL must use http or https")
	}

	if parsed.Host == "" {
		return "", errors.New("base URL has no host")
	}

	return strings.TrimRight(parsed.String(), "/"), nil
}

// WebSocketURL derives the websocket address advertised for a base URL.
// It is synthesized for display only; the probe never dials it.
func WebSocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + "/ws"
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + "/ws"
	default:
		return base + "/ws"
	}
}
