package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the probe target used when no positional URL is given.
const DefaultBaseURL = "http://localhost:8501"

// DefaultWellKnownPaths are probed after the homepage fetch. Individual
// failures never abort the sweep.
var DefaultWellKnownPaths = []string{"/_stcore/health", "/robots.txt", "/favicon.ico"}

// DefaultGenerationPaths are the candidate generation endpoints, tried
// strictly in this order.
var DefaultGenerationPaths = []string{
	"/api/generate",
	"/api/slide",
	"/api/v1/generate",
	"/api/generate_slides",
	"/generate",
}

// Config contains runtime configuration provided via flags and the optional
// YAML profile.
type Config struct {
	BaseURL         string
	Prompt          string
	Credential      string
	Timeout         time.Duration
	GenerateTimeout time.Duration
	Proxy           string
	Insecure        bool
	WellKnownPaths  []string
	GenerationPaths []string
	Outputs         []OutputTarget
	Profile         string
}

// OutputFormat represents a supported output channel.
type OutputFormat int

const (
	OutputCLI OutputFormat = iota
	OutputJSON
)

func (f OutputFormat) String() string {
	switch f {
	case OutputCLI:
		return "cli"
	case OutputJSON:
		return "json"
	default:
		return "unknown"
	}
}

func (f OutputFormat) requiresPath() bool {
	return f == OutputJSON
}

// OutputTarget represents a configured output destination.
type OutputTarget struct {
	Format OutputFormat
	Path   string
}

// profile mirrors the YAML probe profile file.
type profile struct {
	WellKnownPaths  []string `yaml:"well_known_paths"`
	GenerationPaths []string `yaml:"generation_paths"`
	Timeout         string   `yaml:"timeout"`
	GenerateTimeout string   `yaml:"generate_timeout"`
}

// ParseFlags parses CLI flags and positional arguments into a Config value.
// The first positional argument overrides the base URL; the remaining ones
// join into the generation prompt.
func ParseFlags() (Config, error) {
	cfg := Config{
		BaseURL:         DefaultBaseURL,
		Timeout:         10 * time.Second,
		GenerateTimeout: 30 * time.Second,
	}

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [OPTIONS] [base_url] [prompt words...]\n\n", os.Args[0])
		fmt.Fprintln(out, "Probes a slide-generation web app: health check, homepage,")
		fmt.Fprintln(out, "well-known paths, and (when a prompt is given) guessed API endpoints.")
		fmt.Fprintln(out, "\nOptions:")

		printOption(out, "timeout", "t", "duration", "Maximum time to wait for GET responses (e.g. 10s, 1m).", cfg.Timeout.String())
		printOption(out, "generate-timeout", "", "duration", "Per-call timeout for generation endpoint POSTs.", cfg.GenerateTimeout.String())
		printOption(out, "credential", "k", "string", "API credential forwarded in generation requests.", "")
		printOption(out, "proxy", "", "string", "Forward HTTP requests through the provided proxy (e.g. http://127.0.0.1:8080).", "")
		printOption(out, "insecure", "", "", "Skip TLS certificate verification when probing HTTPS targets.", "")
		printOption(out, "profile", "", "string", "YAML probe profile overriding path lists and timeouts.", "")
		printOption(out, "output", "o", "string", "Configure one or more outputs (e.g. 'cli', 'json=report.json'). May be repeated or comma separated.", "cli")
	}

	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum time to wait for GET responses (e.g. 10s, 1m).")
	registerDurationAlias("t", "timeout", &cfg.Timeout)

	flag.DurationVar(&cfg.GenerateTimeout, "generate-timeout", cfg.GenerateTimeout, "Per-call timeout for generation endpoint POSTs.")

	flag.StringVar(&cfg.Credential, "credential", "", "API credential forwarded in generation requests.")
	registerStringAlias("k", "credential", &cfg.Credential)

	flag.StringVar(&cfg.Proxy, "proxy", "", "Forward HTTP requests through the provided proxy (e.g. http://127.0.0.1:8080).")

	flag.BoolVar(&cfg.Insecure, "insecure", false, "Skip TLS certificate verification when probing HTTPS targets.")

	flag.StringVar(&cfg.Profile, "profile", "", "YAML probe profile overriding path lists and timeouts.")

	collector := newOutputCollector(&cfg.Outputs)
	flag.Var(collector, "output", "Configure one or more outputs (e.g. cli, json=report.json). May be repeated or comma separated.")
	flag.Var(collector, "o", "Alias for --output.")

	flag.Parse()

	if !collector.has(OutputCLI) {
		_ = collector.add(OutputCLI, "")
	}

	if cfg.Profile != "" {
		if err := applyProfile(&cfg, cfg.Profile, flagWasSet); err != nil {
			return cfg, err
		}
	}

	if len(cfg.WellKnownPaths) == 0 {
		cfg.WellKnownPaths = DefaultWellKnownPaths
	}
	if len(cfg.GenerationPaths) == 0 {
		cfg.GenerationPaths = DefaultGenerationPaths
	}

	args := flag.Args()
	if len(args) > 0 {
		cfg.BaseURL = args[0]
	}
	if len(args) > 1 {
		cfg.Prompt = strings.Join(args[1:], " ")
	}

	if cfg.Timeout <= 0 {
		return cfg, errors.New("--timeout must be positive")
	}
	if cfg.GenerateTimeout <= 0 {
		return cfg, errors.New("--generate-timeout must be positive")
	}

	return cfg, nil
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// applyProfile layers profile values under any explicitly set flags.
func applyProfile(cfg *Config, path string, wasSet func(string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read profile %s: %w", path, err)
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid profile %s: %w", path, err)
	}

	if len(p.WellKnownPaths) > 0 {
		cfg.WellKnownPaths = normalizePaths(p.WellKnownPaths)
	}
	if len(p.GenerationPaths) > 0 {
		cfg.GenerationPaths = normalizePaths(p.GenerationPaths)
	}

	if p.Timeout != "" && !wasSet("timeout") && !wasSet("t") {
		d, err := parseDurationValue(p.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in profile %s: %w", path, err)
		}
		cfg.Timeout = d
	}
	if p.GenerateTimeout != "" && !wasSet("generate-timeout") {
		d, err := parseDurationValue(p.GenerateTimeout)
		if err != nil {
			return fmt.Errorf("invalid generate_timeout in profile %s: %w", path, err)
		}
		cfg.GenerateTimeout = d
	}

	return nil
}

func normalizePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, p)
	}
	return out
}

// parseDurationValue accepts Go duration syntax or a bare number of seconds.
func parseDurationValue(value string) (time.Duration, error) {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		seconds, convErr := strconv.Atoi(value)
		if convErr != nil {
			return 0, err
		}
		return time.Duration(seconds) * time.Second, nil
	}
	return parsed, nil
}

func registerStringAlias(name, canonical string, target *string) {
	flag.CommandLine.Var(&stringAlias{target: target}, name, fmt.Sprintf("Alias for --%s", canonical))
}

func registerDurationAlias(name, canonical string, target *time.Duration) {
	flag.CommandLine.Var(&durationAlias{target: target}, name, fmt.Sprintf("Alias for --%s", canonical))
}

func printOption(out io.Writer, primary, alias, value, description, defaultValue string) {
	line := fmt.Sprintf("  -%s", primary)
	if alias != "" {
		line += fmt.Sprintf(" (-%s)", alias)
	}
	if value != "" {
		line += " " + value
	}
	if defaultValue != "" {
		line += fmt.Sprintf(" (default %s)", defaultValue)
	}

	fmt.Fprintln(out, line)
	fmt.Fprintf(out, "        %s\n", description)
}

type stringAlias struct {
	target *string
}

func (s *stringAlias) Set(value string) error {
	*s.target = value
	return nil
}

func (s *stringAlias) String() string {
	if s.target == nil {
		return ""
	}
	return *s.target
}

type durationAlias struct {
	target *time.Duration
}

func (d *durationAlias) Set(value string) error {
	if value == "" {
		return errors.New("duration flag requires a value")
	}

	parsed, err := parseDurationValue(value)
	if err != nil {
		return err
	}

	*d.target = parsed
	return nil
}

func (d *durationAlias) String() string {
	if d.target == nil {
		return ""
	}
	return d.target.String()
}

type outputCollector struct {
	targets  *[]OutputTarget
	selected map[OutputFormat]string
}

func newOutputCollector(targets *[]OutputTarget) *outputCollector {
	return &outputCollector{targets: targets, selected: make(map[OutputFormat]string)}
}

func (o *outputCollector) Set(value string) error {
	if value == "" {
		return errors.New("output flag requires a value")
	}

	entries := strings.Split(value, ",")
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		format, path, err := parseOutputEntry(entry)
		if err != nil {
			return err
		}

		if err := o.add(format, path); err != nil {
			return err
		}
	}

	return nil
}

func (o *outputCollector) String() string {
	if o == nil || o.targets == nil {
		return ""
	}

	parts := make([]string, 0, len(*o.targets))
	for _, target := range *o.targets {
		if target.Format.requiresPath() {
			parts = append(parts, fmt.Sprintf("%s=%s", target.Format.String(), target.Path))
		} else {
			parts = append(parts, target.Format.String())
		}
	}

	return strings.Join(parts, ",")
}

func (o *outputCollector) add(format OutputFormat, path string) error {
	if o == nil {
		return errors.New("output collector not initialised")
	}

	if _, exists := o.selected[format]; exists {
		return fmt.Errorf("output %s already specified", format.String())
	}

	if format.requiresPath() && path == "" {
		return fmt.Errorf("output %s requires a file path", format.String())
	}

	if !format.requiresPath() && path != "" {
		return fmt.Errorf("output %s does not accept a file path", format.String())
	}

	*o.targets = append(*o.targets, OutputTarget{Format: format, Path: path})
	o.selected[format] = path
	return nil
}

func (o *outputCollector) has(format OutputFormat) bool {
	if o == nil {
		return false
	}
	_, ok := o.selected[format]
	return ok
}

func parseOutputEntry(entry string) (OutputFormat, string, error) {
	var formatStr, path string

	if idx := strings.IndexAny(entry, "=:"); idx != -1 {
		formatStr = strings.ToLower(strings.TrimSpace(entry[:idx]))
		path = strings.TrimSpace(entry[idx+1:])
	} else {
		formatStr = strings.ToLower(strings.TrimSpace(entry))
	}

	format, err := parseOutputFormat(formatStr)
	if err != nil {
		return 0, "", err
	}

	if format.requiresPath() && path == "" {
		return 0, "", fmt.Errorf("output %s requires a file path", format.String())
	}

	if !format.requiresPath() && path != "" {
		return 0, "", fmt.Errorf("output %s does not accept a file path", format.String())
	}

	return format, path, nil
}

func parseOutputFormat(value string) (OutputFormat, error) {
	switch value {
	case OutputCLI.String():
		return OutputCLI, nil
	case OutputJSON.String():
		return OutputJSON, nil
	default:
		return 0, fmt.Errorf("unsupported output format %q", value)
	}
}
