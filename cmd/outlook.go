package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/msgraph"
	"github.com/Tiliavir/diary/internal/timecalc"
)

var (
	outlookImportFrom     string
	outlookImportTo       string
	outlookImportDate     string
	outlookImportDryRun   bool
	outlookImportCategory string
	outlookImportTZ       string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import Outlook calendar events as diary entries",
	Long: `import turns busy calendar events into entries: the subject becomes the
title and the event length the hours. Running it again updates changed events
and keeps what you added to the entries yourself.`,
	Args: cobra.NoArgs,
	RunE: runOutlookImport,
}

func init() {
	outlookImportCmd.Flags().StringVar(&outlookImportFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookImportCmd.Flags().StringVar(&outlookImportTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookImportCmd.Flags().StringVar(&outlookImportDate, "date", "", "Import a specific date (YYYY-MM-DD); default is today")
	outlookImportCmd.Flags().BoolVar(&outlookImportDryRun, "dry-run", false, "Print planned operations without writing")
	outlookImportCmd.Flags().StringVar(&outlookImportCategory, "category", string(model.Intern), "Category for imported entries")
	outlookImportCmd.Flags().StringVar(&outlookImportTZ, "timezone", "", "IANA timezone for event times (e.g. Asia/Bangkok)")
	outlookCmd.AddCommand(outlookImportCmd)
}

// importRange resolves --date, --from and --to into an inclusive day range.
func importRange(now time.Time) (time.Time, time.Time) {
	parse := func(flag, v string) time.Time {
		d, err := time.Parse(model.DateLayout, v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --%s value %q: %v\n", flag, v, err)
			os.Exit(1)
		}
		return d
	}

	switch {
	case outlookImportDate != "":
		d := parse("date", outlookImportDate)
		return timecalc.StartOfDay(d), timecalc.EndOfDay(d)

	case outlookImportFrom != "" || outlookImportTo != "":
		if outlookImportFrom == "" {
			fmt.Fprintln(os.Stderr, "--from is required when --to is specified")
			os.Exit(1)
		}
		from := timecalc.StartOfDay(parse("from", outlookImportFrom))
		to := timecalc.EndOfDay(now)
		if outlookImportTo != "" {
			to = timecalc.EndOfDay(parse("to", outlookImportTo))
		}
		return from, to
	}
	return timecalc.StartOfDay(now), timecalc.EndOfDay(now)
}

func runOutlookImport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	from, to := importRange(now)

	category := model.Category(outlookImportCategory)
	if !category.Known() {
		fmt.Fprintf(os.Stderr, "invalid --category value %q: want one of %v\n", outlookImportCategory, model.Categories)
		os.Exit(1)
	}

	ctx := context.Background()
	a := openApp(ctx, now)
	defer a.close()

	dryTag := ""
	if outlookImportDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Importing Outlook events (%s → %s)%s...\n",
		from.Format(model.DateLayout), to.Format(model.DateLayout), dryTag)
	fmt.Println()

	client, err := graphClient(ctx, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		a.close()
		os.Exit(1)
	}

	events, err := client.GetCalendarView(ctx, from, to, outlookImportTZ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		a.close()
		os.Exit(1)
	}

	result, err := msgraph.Sync(ctx, events, a.ctrl.Store(), msgraph.SyncOptions{
		DryRun:   outlookImportDryRun,
		Timezone: outlookImportTZ,
		Category: category,
		Out:      os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import error: %v\n", err)
		a.close()
		os.Exit(2)
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d imported\n", result.Imported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	fmt.Printf("  %d updated\n", result.Updated)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		a.close()
		os.Exit(2)
	}
	return nil
}

func graphClient(ctx context.Context, a *app) (*msgraph.Client, error) {
	auth, err := msgraph.NewAuthenticator(a.cfg.Outlook, os.Stdout, a.logger)
	if err != nil {
		return nil, err
	}
	return msgraph.NewClient(ctx, auth)
}
