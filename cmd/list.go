package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// filterFlags select the entries shown by list, chart, email and print.
type filterFlags struct {
	query string
	mood  string
	from  string
	to    string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Search title, tasks, skills, links and category")
	cmd.Flags().StringVar(&f.mood, "mood", "", "Only entries with this mood")
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest date (YYYY-MM-DD)")
}

func (f *filterFlags) criteria() filter.Criteria {
	return filter.Criteria{Query: f.query, Mood: f.mood, From: f.from, To: f.to}
}

var listFilter filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listFilter.bind(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	a := openApp(ctx, now)
	defer a.close()

	a.ctrl.SetState(a.ctrl.State().WithFilter(listFilter.criteria()))
	v := a.ctrl.Render(now)
	printList(os.Stdout, v.List, v.Totals, a.printer)
	return nil
}

// printList groups entries by date and prints them with a totals footer.
func printList(w io.Writer, entries []model.Entry, totals string, p *i18n.Printer) {
	if len(entries) == 0 {
		fmt.Fprintln(w, p.Sprintf(i18n.KeyListEmpty))
		return
	}

	currentDay := "\x00"
	for _, e := range entries {
		if e.Date != currentDay {
			day := e.Date
			if day == "" {
				day = "----------"
			}
			fmt.Fprintln(w, day)
			currentDay = e.Date
		}

		mood := ""
		if e.Mood != "" {
			mood = " " + e.Mood
		}
		fmt.Fprintf(w, "  %s  [%s · %s]%s  (%s)\n",
			e.Title,
			p.Category(e.DisplayCategory()),
			p.Hours(timecalc.FormatHoursTrim(e.Hours.Float())),
			mood,
			e.ID,
		)
		for _, line := range strings.Split(strings.TrimSpace(e.Tasks), "\n") {
			if line != "" {
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
		if len(e.Skills) > 0 {
			fmt.Fprintf(w, "      #%s\n", strings.Join(e.Skills, " #"))
		}
		for _, l := range e.Links {
			fmt.Fprintf(w, "      %s\n", l)
		}
		if n := len(e.Photos); n > 0 {
			fmt.Fprintf(w, "      %d photo(s)\n", n)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, totals)
}
