package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the diary is stored and this month's hours",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	a := openApp(ctx, now)
	defer a.close()

	dir, _ := a.cfg.DataDir()
	all := a.ctrl.Store().All()
	r := a.ctrl.Report(now.Year(), now.Month())

	fmt.Printf("Storage: %s (%s)\n", a.cfg.Storage.Backend, dir)
	fmt.Printf("Entries: %d, %s in total\n", len(all), a.printer.Hours(timecalc.FormatHoursFixed(filter.TotalHours(all))))
	fmt.Printf("%s: %s on %d day(s)\n",
		a.printer.MonthTitle(now.Year(), now.Month()),
		a.printer.Hours(timecalc.FormatHoursFixed(r.TotalHours)),
		r.WorkDays,
	)
	for _, c := range model.Categories {
		fmt.Printf("  %-10s %s\n", a.printer.Category(c), a.printer.Hours(timecalc.FormatHoursFixed(r.CategoryTotal(c))))
	}
	return nil
}
