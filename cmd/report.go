package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/report"
	"github.com/Tiliavir/diary/internal/timecalc"
)

var (
	reportMonth  string
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the monthly report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Month to report (YYYY-MM); defaults to this month")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, html")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output file; defaults to stdout")
}

// reportFor parses a --month value, defaulting to the month of now.
func reportFor(month string, now time.Time) (int, time.Month) {
	if month == "" {
		return now.Year(), now.Month()
	}
	y, m, err := timecalc.ParseMonth(month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --month value %q: %v\n", month, err)
		os.Exit(1)
	}
	return y, m
}

func writeReport(w io.Writer, r report.Report, format string, p *i18n.Printer) error {
	switch format {
	case "html":
		return report.WriteHTML(w, r, p)
	case "text", "":
		return report.WriteText(w, r, p)
	}
	return fmt.Errorf("unknown report format %q: want text or html", format)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	year, month := reportFor(reportMonth, now)
	if reportFormat != "text" && reportFormat != "html" {
		fmt.Fprintf(os.Stderr, "unknown report format %q: want text or html\n", reportFormat)
		os.Exit(1)
	}

	a := openApp(ctx, now)
	defer a.close()

	out, err := createOutput(reportOut)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer out.Close()

	if err := writeReport(out, a.ctrl.Report(year, month), reportFormat, a.printer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}
