package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/printer"
)

var (
	printFilter filterFlags
	printReport bool
	printMonth  string
	printStdout bool
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the entry list or the monthly report",
	Args:  cobra.NoArgs,
	RunE:  runPrint,
}

func init() {
	printFilter.bind(printCmd)
	printCmd.Flags().BoolVar(&printReport, "report", false, "Print the monthly report instead of the list")
	printCmd.Flags().StringVar(&printMonth, "month", "", "Report month (YYYY-MM); defaults to this month")
	printCmd.Flags().BoolVar(&printStdout, "stdout", false, "Write the document to stdout instead of lp")
}

func runPrint(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	year, month := reportFor(printMonth, now)

	a := openApp(ctx, now)
	defer a.close()

	var doc bytes.Buffer
	var title string
	if printReport {
		r := a.ctrl.Report(year, month)
		if err := writeReport(&doc, r, "text", a.printer); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		title = a.printer.MonthTitle(year, month)
	} else {
		a.ctrl.SetState(a.ctrl.State().WithFilter(printFilter.criteria()))
		v := a.ctrl.Render(now)
		printList(&doc, v.List, v.Totals, a.printer)
		title = "diary"
	}

	var p printer.Printer = printer.Command{}
	if printStdout {
		p = printer.Stdout{W: os.Stdout}
	}
	if err := p.Print(ctx, title, &doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.close()
		os.Exit(1)
	}
	return nil
}
