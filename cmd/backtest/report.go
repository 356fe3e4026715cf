package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-research/internal/types"
)

const formatTable = "table"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// writeReport prints the report as a table or encodes it as yaml or json.
func writeReport(w io.Writer, report types.ComparisonReport, format string) error {
	switch format {
	case "", formatTable:
		_, err := fmt.Fprintln(w, renderReport(report))

		return err
	case string(types.ReportFormatYAML), string(types.ReportFormatJSON):
		return types.WriteComparisonReport(w, report, types.ReportFormat(format))
	default:
		return fmt.Errorf("unsupported format %q (table, yaml, json)", format)
	}
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

func renderReport(report types.ComparisonReport) string {
	rows := make([][]string, 0, len(report.Strategies))
	best := -1

	for i, s := range report.Strategies {
		if s.Key == report.Best {
			best = i
		}

		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			s.Name,
			s.Key,
			percent(s.FinalReturn),
			strconv.Itoa(s.WarmupPeriods),
			strconv.Itoa(s.BuySignals),
			strconv.Itoa(s.SellSignals),
			strconv.Itoa(s.PositionChanges),
			fmt.Sprintf("%d/%d/%d", s.Exposure.Long, s.Exposure.Short, s.Exposure.Undefined),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == best:
				return bestStyle
			default:
				return cellStyle
			}
		}).
		Headers("#", "Strategy", "Key", "Final return", "Warm-up", "Buys", "Sells", "Changes", "Long/Short/Undef").
		Rows(rows...)

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %d bars  %s to %s",
		report.Symbol, report.Bars, report.Start.Format(time.DateOnly), report.End.Format(time.DateOnly))))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "Buy and hold: %s\n", percent(report.BuyAndHoldReturn))
	fmt.Fprintf(&b, "Best: %s\n", report.Best)

	return b.String()
}
