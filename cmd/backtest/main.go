package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	engine_types "github.com/rxtech-lab/argo-research/internal/backtest/engine"
	engine "github.com/rxtech-lab/argo-research/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-research/internal/strategy"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/urfave/cli/v3"
)

// runCompare configures a backtest engine from opts, runs it and writes the report to w.
func runCompare(ctx context.Context, opts compareOptions, w io.Writer) error {
	config, err := buildConfig(opts)
	if err != nil {
		return err
	}

	e := engine.NewBacktestEngineV1()
	if err := e.Initialize(config); err != nil {
		return err
	}

	if err := e.SetDataPath(opts.DataPath); err != nil {
		return err
	}

	report, err := e.Run(ctx, engine_types.LifecycleCallbacks{})
	if err != nil {
		return err
	}

	return writeReport(w, *report, opts.Format)
}

func compareAction(ctx context.Context, cmd *cli.Command) error {
	opts := compareOptions{
		ConfigPath:   cmd.String("config"),
		Strategies:   cmd.StringSlice("strategy"),
		DataPath:     cmd.String("data"),
		Symbol:       cmd.String("symbol"),
		Parallel:     cmd.Bool("parallel"),
		StrictWarmup: cmd.Bool("strict-warmup"),
		Format:       cmd.String("format"),
		LogLevel:     cmd.String("log-level"),
	}

	if cmd.IsSet("start") {
		opts.Start = cmd.Timestamp("start")
	}

	if cmd.IsSet("end") {
		opts.End = cmd.Timestamp("end")
	}

	if opts.ConfigPath == "" && len(opts.Strategies) == 0 {
		return fmt.Errorf("either --config or at least one --strategy is required")
	}

	return runCompare(ctx, opts, os.Stdout)
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	var (
		schema string
		err    error
	)

	if cmd.Bool("strategy") {
		schema, err = strategy.ConfigSchema()
	} else {
		schema, err = engine.NewBacktestEngineV1().GetConfigSchema()
	}

	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func dateFlag(name string, usage string) *cli.TimestampFlag {
	return &cli.TimestampFlag{
		Name:  name,
		Usage: usage,
		Config: cli.TimestampConfig{
			Layouts: []string{time.DateOnly},
		},
	}
}

func strategyTypes() string {
	names := make([]string, 0, len(types.AllStrategyTypes))
	for _, t := range types.AllStrategyTypes {
		names = append(names, fmt.Sprint(t))
	}

	return strings.Join(names, ", ")
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Compare moving average crossover strategies on daily bars",
		Commands: []*cli.Command{
			{
				Name:  "compare",
				Usage: "Run strategies over a price series and report their returns",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the backtest config yaml",
					},
					&cli.StringSliceFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   fmt.Sprintf("Strategy as `type:short:long` (types: %s). Repeatable", strategyTypes()),
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Parquet or csv file (glob allowed, must match one file)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Symbol to evaluate when the file holds several",
					},
					dateFlag("start", "Start date in `YYYY-MM-DD` format"),
					dateFlag("end", "End date in `YYYY-MM-DD` format"),
					&cli.BoolFlag{
						Name:  "parallel",
						Usage: "Evaluate strategies concurrently",
					},
					&cli.BoolFlag{
						Name:  "strict-warmup",
						Usage: "Fail when the series is too short for any strategy to signal",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (table, yaml, json)",
						Value:   formatTable,
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
					},
				},
				Action: compareAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the backtest config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strategy",
						Usage: "Print the schema of a single strategy entry instead",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
