package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
	"gopkg.in/yaml.v3"
)

// compareOptions holds the compare command flags. Zero values mean "not set".
type compareOptions struct {
	ConfigPath   string
	Strategies   []string
	DataPath     string
	Symbol       string
	Start        time.Time
	End          time.Time
	Parallel     bool
	StrictWarmup bool
	Format       string
	LogLevel     string
}

const defaultLogLevel = "warn"

// buildConfig merges the optional config file with the command line flags and
// returns the engine configuration as yaml. Flags win over the file; strategies
// given with --strategy are appended to the ones listed in the file.
func buildConfig(opts compareOptions) (string, error) {
	values := map[string]any{}
	var strategies []types.StrategyConfig

	if opts.ConfigPath != "" {
		content, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return "", fmt.Errorf("failed to read config: %w", err)
		}

		// nodes keep the file's scalars as written, dates included
		var nodes map[string]*yaml.Node
		if err := yaml.Unmarshal(content, &nodes); err != nil {
			return "", fmt.Errorf("failed to parse config %s: %w", opts.ConfigPath, err)
		}

		for key, node := range nodes {
			if key == "strategies" {
				if err := node.Decode(&strategies); err != nil {
					return "", fmt.Errorf("failed to parse strategies in %s: %w", opts.ConfigPath, err)
				}

				continue
			}

			values[key] = node
		}
	}

	if opts.Symbol != "" {
		values["symbol"] = opts.Symbol
	}

	if !opts.Start.IsZero() {
		values["start_time"] = opts.Start
	}

	if !opts.End.IsZero() {
		values["end_time"] = opts.End
	}

	if opts.Parallel {
		values["parallel"] = true
	}

	if opts.StrictWarmup {
		values["strict_warmup"] = true
	}

	if opts.LogLevel != "" {
		values["log_level"] = opts.LogLevel
	} else if _, ok := values["log_level"]; !ok {
		values["log_level"] = defaultLogLevel
	}

	for _, value := range opts.Strategies {
		config, err := strategy.ParseStrategyConfig(value)
		if err != nil {
			return "", err
		}

		strategies = append(strategies, config)
	}

	if len(strategies) > 0 {
		values["strategies"] = strategies
	}

	out, err := yaml.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to build config: %w", err)
	}

	return string(out), nil
}
