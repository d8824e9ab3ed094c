package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/aggregate"
)

var (
	chartFilter filterFlags
	chartPeriod string
	chartWidth  int
	chartHeight int
	chartOut    string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Draw hours per category as a stacked bar chart (SVG)",
	Long: `chart draws the filtered entries as stacked bars, one colour per category.
--period year shows the twelve months of this year; 30, 60 or 90 shows that
many days ending today.`,
	Args: cobra.NoArgs,
	RunE: runChart,
}

func init() {
	chartFilter.bind(chartCmd)
	chartCmd.Flags().StringVar(&chartPeriod, "period", "", "year, 30, 60 or 90; defaults to the config")
	chartCmd.Flags().IntVar(&chartWidth, "width", 0, "Width in pixels; defaults to the config")
	chartCmd.Flags().IntVar(&chartHeight, "height", 0, "Height in pixels; defaults to the config")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "chart.svg", `Output file, "-" for stdout`)
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	a := openApp(ctx, now)
	defer a.close()

	s := a.ctrl.State().WithFilter(chartFilter.criteria())
	if chartPeriod != "" {
		p, err := aggregate.ParsePeriod(chartPeriod, now)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		s = s.WithPeriod(p)
	}
	a.ctrl.SetState(s)

	w, h := a.cfg.Display.ChartWidth, a.cfg.Display.ChartHeight
	if chartWidth > 0 {
		w = chartWidth
	}
	if chartHeight > 0 {
		h = chartHeight
	}

	out, err := createOutput(chartOut)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := a.ctrl.WriteChart(out, a.ctrl.Render(now), w, h); err != nil {
		out.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if chartOut != "-" && chartOut != "" {
		fmt.Printf("Chart written to %s (%s)\n", chartOut, s.Period)
	}
	return nil
}
