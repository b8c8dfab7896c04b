package model

import "strconv"

// Reason classifies the fault behind a failed probe call.
type Reason uint8

const (
	// ReasonNone marks an outcome that carried no fault.
	ReasonNone Reason = iota
	// ReasonConnectionRefused means nothing accepted the TCP connection.
	ReasonConnectionRefused
	// ReasonTransport covers every other transport fault: timeouts, DNS, TLS.
	ReasonTransport
	// ReasonParse means a body expected to be JSON did not parse.
	ReasonParse
)

// MarshalJSON serializes the reason as its code string.
func (r Reason) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

func (r Reason) String() string {
	switch r {
	case ReasonConnectionRefused:
		return "connection-refused"
	case ReasonTransport:
		return "transport-error"
	case ReasonParse:
		return "parse-error"
	default:
		return "none"
	}
}

// Outcome is the result of a single probe call. The OK flag selects which of
// the remaining fields are populated.
type Outcome struct {
	OK            bool              `json:"ok"`
	StatusCode    int               `json:"status_code,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	ContentLength int               `json:"content_length,omitempty"`
	Payload       map[string]any    `json:"payload,omitempty"`
	Reason        Reason            `json:"reason,omitempty"`
	Message       string            `json:"message,omitempty"`
}

// ReasonText exposes the reason code for serialized reports.
func (o Outcome) ReasonText() string {
	if o.OK {
		return ""
	}
	return o.Reason.String()
}

// Refused reports whether the outcome failed because nothing was listening.
func (o Outcome) Refused() bool {
	return !o.OK && o.Reason == ReasonConnectionRefused
}

// PathStatus is the classification of one well-known path.
type PathStatus struct {
	Path       string `json:"path"`
	Available  bool   `json:"available"`
	StatusCode int    `json:"status_code,omitempty"`
}

// SweepReport aggregates the homepage sweep: health check, homepage fetch and
// the well-known path classifications.
type SweepReport struct {
	Target       string       `json:"target"`
	Success      bool         `json:"success"`
	Health       Outcome      `json:"health"`
	Homepage     Outcome      `json:"homepage"`
	WellKnown    []PathStatus `json:"well_known,omitempty"`
	WebSocketURL string       `json:"websocket_url,omitempty"`
}

// GenerationAttempt records one candidate endpoint tried during the
// generation sweep.
type GenerationAttempt struct {
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"status_code,omitempty"`
	Note       string `json:"note,omitempty"`
}

// GenerationResult is the overall outcome of the generation sweep.
type GenerationResult struct {
	Success  bool                `json:"success"`
	Endpoint string              `json:"endpoint,omitempty"`
	Payload  map[string]any      `json:"payload,omitempty"`
	Attempts []GenerationAttempt `json:"attempts"`
	Message  string              `json:"message,omitempty"`
}
