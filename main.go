package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"deckprobe/internal/config"
	"deckprobe/internal/model"
	"deckprobe/internal/network"
	"deckprobe/internal/output"
	"deckprobe/internal/probe"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		exitWithError(err)
	}

	base, err := network.NormalizeBase(cfg.BaseURL)
	if err != nil {
		exitWithError(fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err))
	}

	client, err := network.NewClient(cfg)
	if err != nil {
		exitWithError(err)
	}

	p := probe.New(base, client,
		probe.WithTimeout(cfg.Timeout),
		probe.WithGenerateTimeout(cfg.GenerateTimeout),
		probe.WithWellKnownPaths(cfg.WellKnownPaths),
		probe.WithGenerationPaths(cfg.GenerationPaths),
	)

	ctx := context.Background()

	sweep := p.RunHomepageSweep(ctx)
	output.PrintSweep(os.Stdout, sweep)

	var generation *model.GenerationResult
	if sweep.Success && cfg.Prompt != "" {
		result := p.AttemptGeneration(ctx, cfg.Prompt, cfg.Credential)
		output.PrintGeneration(os.Stdout, result)
		generation = &result
	}

	for _, target := range cfg.Outputs {
		if target.Format != config.OutputJSON {
			continue
		}
		meta := output.BuildMetadata(base, time.Now().UTC())
		if err := output.WriteJSON(target.Path, meta, sweep, generation); err != nil {
			fmt.Fprintf(os.Stderr, "Report can't be saved in %s due to exception: %v\n", target.Path, err)
		}
	}

	// Probe outcomes never change the exit status; this is a reporting
	// tool, not a pass/fail gate.
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Usage: %s [Options] use -h for help\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
