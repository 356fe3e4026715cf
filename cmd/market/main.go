package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-research/internal/logger"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// downloadAction parses the flags, sets up the market data client and starts the download.
func downloadAction(ctx context.Context, cmd *cli.Command) error {
	ticker := cmd.String("ticker")
	startDate := cmd.Timestamp("start")
	endDate := cmd.Timestamp("end")
	providerFlag := cmd.String("provider")
	dataPath := cmd.String("data")

	config, err := clientConfigFromEnv(providerFlag, dataPath)
	if err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return err
	}
	defer log.Sync()

	config.Logger = log

	client, err := marketdata.NewClient(config, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	fmt.Printf("Downloading daily bars for %s from %s to %s using %s...\n",
		ticker, startDate.Format(time.DateOnly), endDate.Format(time.DateOnly), providerFlag)

	path, err := client.Download(ctx, marketdata.DownloadParams{
		Ticker:    ticker,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nSaved to %s\n", path)

	return nil
}

// fundamentalsAction prints the headline fundamentals of a ticker.
func fundamentalsAction(ctx context.Context, cmd *cli.Command) error {
	config, err := clientConfigFromEnv(cmd.String("provider"), os.TempDir())
	if err != nil {
		return err
	}

	client, err := marketdata.NewClient(config, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}

	fundamentals, err := client.Fundamentals(ctx, cmd.String("ticker"))
	if err != nil {
		return err
	}

	fmt.Println(renderFundamentals(fundamentals))

	return nil
}

func renderFundamentals(f types.Fundamentals) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Metric", f.Symbol).
		Row("P/E ratio", fmt.Sprintf("%.2f", f.PERatio)).
		Row("Market cap", fmt.Sprintf("%.0f", f.MarketCap)).
		Row("Dividend yield", fmt.Sprintf("%.4f", f.DividendYield)).
		Row("EPS", fmt.Sprintf("%.2f", f.EPS)).
		Row("Revenue", fmt.Sprintf("%.0f", f.Revenue)).
		String()
}

func providerFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "provider",
		Aliases:  []string{"p"},
		Usage:    fmt.Sprintf("Data provider to use (%s)", strings.Join(marketdata.GetSupportedProviders(), ", ")),
		Value:    string(marketdata.ProviderYahoo),
		Required: false,
	}
}

func tickerFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "ticker",
		Aliases:  []string{"t"},
		Usage:    "Ticker symbol",
		Required: true,
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "market",
		Usage: "Download daily market data and fundamentals",
		Commands: []*cli.Command{
			{
				Name:  "download",
				Usage: "Download daily bars to a Parquet file",
				Flags: []cli.Flag{
					tickerFlag(),
					&cli.TimestampFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "Start date in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{time.DateOnly},
						},
						Required: true,
					},
					&cli.TimestampFlag{
						Name:     "end",
						Aliases:  []string{"e"},
						Usage:    "End date in `YYYY-MM-DD` format. Defaults to today.",
						Value:    time.Now(),
						Required: false,
						Config: cli.TimestampConfig{
							Layouts: []string{time.DateOnly},
						},
					},
					providerFlag(),
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the data output directory",
						Value:    "data",
						Required: false,
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "warn",
					},
				},
				Action: downloadAction,
			},
			{
				Name:   "fundamentals",
				Usage:  "Print P/E ratio, market cap, dividend yield, EPS and revenue",
				Flags:  []cli.Flag{tickerFlag(), providerFlag()},
				Action: fundamentalsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
