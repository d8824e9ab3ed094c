package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/calendar"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

var (
	calendarMonth string
	calendarPrev  int
	calendarNext  int
	calendarDay   string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month of entries as a calendar",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM); defaults to this month")
	calendarCmd.Flags().CountVar(&calendarPrev, "prev", "Go back one month (repeatable)")
	calendarCmd.Flags().CountVar(&calendarNext, "next", "Go forward one month (repeatable)")
	calendarCmd.Flags().StringVar(&calendarDay, "day", "", "Select a day (YYYY-MM-DD) and list its entries")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()

	var dayKey string
	if calendarDay != "" {
		d, ok := model.ParseDay(calendarDay)
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid --day value %q\n", calendarDay)
			os.Exit(1)
		}
		dayKey = model.DayKey(d)
	}
	var year int
	var month time.Month
	if calendarMonth != "" {
		var err error
		year, month, err = timecalc.ParseMonth(calendarMonth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --month value %q: %v\n", calendarMonth, err)
			os.Exit(1)
		}
	}

	a := openApp(ctx, now)
	defer a.close()

	s := a.ctrl.State()
	switch {
	case dayKey != "":
		s = s.SelectDay(dayKey)
	case calendarMonth != "":
		s.Year, s.Month = year, month
	}
	for i := 0; i < calendarPrev; i++ {
		s = s.PrevMonth()
	}
	for i := 0; i < calendarNext; i++ {
		s = s.NextMonth()
	}
	a.ctrl.SetState(s)
	v := a.ctrl.Render(now)

	if err := calendar.Render(os.Stdout, v.Calendar, a.printer); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if dayKey != "" {
		fmt.Println()
		printList(os.Stdout, v.List, v.Totals, a.printer)
		fmt.Printf("\nNew entry for this day: diary add --date %s --title ...\n", s.NewEntryDate(now))
	}
	return nil
}
