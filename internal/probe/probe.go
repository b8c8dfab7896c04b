package probe

import (
	"context"
	"encoding/json"
	"time"

	"deckprobe/internal/config"
	"deckprobe/internal/model"
	"deckprobe/internal/network"
)

// NoEndpointMessage is reported when the generation sweep exhausts every
// candidate without a usable response.
const NoEndpointMessage = "no API endpoint found"

// Transport is the outbound HTTP capability a Client probes through.
type Transport interface {
	Get(ctx context.Context, rawURL string) (*network.Response, error)
	PostJSON(ctx context.Context, rawURL string, payload any) (*network.Response, error)
}

// Client performs a fixed sequence of best-effort HTTP calls against a
// target base address. Transport and parse faults never escape as errors;
// every operation reports an outcome instead.
type Client struct {
	base            string
	transport       Transport
	timeout         time.Duration
	generateTimeout time.Duration
	wellKnownPaths  []string
	generationPaths []string
}

// New builds a probe client for the provided normalized base URL.
func New(base string, transport Transport, opts ...Option) *Client {
	c := &Client{
		base:            base,
		transport:       transport,
		timeout:         10 * time.Second,
		generateTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Option adjusts optional probe client settings.
type Option func(*Client)

// WithTimeout sets the per-call timeout for GET probes.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithGenerateTimeout sets the per-call timeout for generation POSTs.
func WithGenerateTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.generateTimeout = d
		}
	}
}

// WithWellKnownPaths overrides the well-known path sweep list.
func WithWellKnownPaths(paths []string) Option {
	return func(c *Client) {
		if len(paths) > 0 {
			c.wellKnownPaths = paths
		}
	}
}

// WithGenerationPaths overrides the generation endpoint candidates.
func WithGenerationPaths(paths []string) Option {
	return func(c *Client) {
		if len(paths) > 0 {
			c.generationPaths = paths
		}
	}
}

// Base returns the normalized target base URL.
func (c *Client) Base() string {
	return c.base
}

// CheckHealth probes {base}/health. Any HTTP response, whatever the status,
// is an Ok outcome; only transport faults produce the error variant.
func (c *Client) CheckHealth(ctx context.Context) model.Outcome {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.transport.Get(callCtx, c.base+"/health")
	if err != nil {
		return failure(err)
	}

	outcome := model.Outcome{
		OK:            true,
		StatusCode:    resp.StatusCode,
		ContentLength: len(resp.Body),
	}

	var payload map[string]any
	if json.Unmarshal(resp.Body, &payload) == nil {
		outcome.Payload = payload
	}

	return outcome
}

// GetPage fetches {base}{path} and reports status, headers and body length.
func (c *Client) GetPage(ctx context.Context, path string) model.Outcome {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.transport.Get(callCtx, c.base+path)
	if err != nil {
		return failure(err)
	}

	headers := make(map[string]string, len(resp.Headers))
	for name := range resp.Headers {
		headers[name] = resp.Headers.Get(name)
	}

	return model.Outcome{
		OK:            true,
		StatusCode:    resp.StatusCode,
		Headers:       headers,
		ContentLength: len(resp.Body),
	}
}

// RunHomepageSweep runs the fixed probe sequence: health check, homepage
// fetch, then the well-known path sweep. A transport fault on the health
// check or the homepage aborts the sweep; individual well-known paths are
// classified independently and never abort it.
func (c *Client) RunHomepageSweep(ctx context.Context) model.SweepReport {
	report := model.SweepReport{Target: c.base}

	report.Health = c.CheckHealth(ctx)
	if !report.Health.OK {
		return report
	}

	report.Homepage = c.GetPage(ctx, "/")
	if !report.Homepage.OK {
		return report
	}

	report.WellKnown = c.sweepPaths(ctx, c.wellKnownPathsOrDefault())
	report.WebSocketURL = network.WebSocketURL(c.base)
	report.Success = true

	return report
}

// sweepPaths probes each path in order, tolerating individual failures.
func (c *Client) sweepPaths(ctx context.Context, paths []string) []model.PathStatus {
	statuses := make([]model.PathStatus, 0, len(paths))
	for _, path := range paths {
		outcome := c.GetPage(ctx, path)
		statuses = append(statuses, model.PathStatus{
			Path:       path,
			Available:  outcome.OK,
			StatusCode: outcome.StatusCode,
		})
	}
	return statuses
}

type generationPayload struct {
	Prompt string  `json:"prompt"`
	APIKey *string `json:"api_key"`
}

// AttemptGeneration POSTs the prompt to each candidate endpoint in order.
// The first 200 response with a JSON body wins; a connection refusal stops
// the whole sweep since the server is gone.
func (c *Client) AttemptGeneration(ctx context.Context, prompt, credential string) model.GenerationResult {
	payload := generationPayload{Prompt: prompt}
	if credential != "" {
		payload.APIKey = &credential
	}

	result := model.GenerationResult{Attempts: []model.GenerationAttempt{}}

	for _, endpoint := range c.generationPathsOrDefault() {
		attempt := model.GenerationAttempt{Endpoint: endpoint}

		callCtx, cancel := context.WithTimeout(ctx, c.generateTimeout)
		resp, err := c.transport.PostJSON(callCtx, c.base+endpoint, payload)
		cancel()

		if err != nil {
			reason, message := classify(err)
			attempt.Note = message
			result.Attempts = append(result.Attempts, attempt)

			if reason == model.ReasonConnectionRefused {
				break
			}
			continue
		}

		attempt.StatusCode = resp.StatusCode

		if resp.StatusCode == 200 {
			var parsed map[string]any
			if json.Unmarshal(resp.Body, &parsed) == nil {
				result.Attempts = append(result.Attempts, attempt)
				result.Success = true
				result.Endpoint = endpoint
				result.Payload = parsed
				return result
			}
			attempt.Note = model.ReasonParse.String()
		}

		result.Attempts = append(result.Attempts, attempt)
	}

	result.Message = NoEndpointMessage
	return result
}

func (c *Client) wellKnownPathsOrDefault() []string {
	if len(c.wellKnownPaths) > 0 {
		return c.wellKnownPaths
	}
	return config.DefaultWellKnownPaths
}

func (c *Client) generationPathsOrDefault() []string {
	if len(c.generationPaths) > 0 {
		return c.generationPaths
	}
	return config.DefaultGenerationPaths
}
