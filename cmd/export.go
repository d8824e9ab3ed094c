package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/model"
)

var (
	exportFormat string
	exportOut    string
	resetYes     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries",
	Long: `export writes every entry to diary.json (or diary.csv). The JSON form can be read back
with "diary import"; csv is for spreadsheets and leaves photos out.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all entries with an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all entries",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", `Output file, "-" for stdout; defaults to diary.json or diary.csv`)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "csv" {
		fmt.Fprintf(os.Stderr, "unknown export format %q: want json or csv\n", exportFormat)
		os.Exit(1)
	}
	if exportOut == "" {
		exportOut = "diary." + exportFormat
	}
	ctx := context.Background()
	a := openApp(ctx, time.Now())
	defer a.close()

	out, err := createOutput(exportOut)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	switch exportFormat {
	case "csv":
		err = writeCSV(out, a.ctrl.Store().All())
	default:
		err = a.ctrl.Export(out)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if exportOut != "-" {
		fmt.Printf("Exported %d entries to %s\n", a.ctrl.Store().Len(), exportOut)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp(ctx, time.Now())
	defer a.close()

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.close()
		os.Exit(1)
	}
	defer f.Close()

	n, err := a.ctrl.Import(ctx, f)
	if err != nil {
		a.fail(err)
	}
	fmt.Println(a.printer.Sprintf(i18n.KeyNoticeImported, n))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a := openApp(ctx, time.Now())
	defer a.close()

	if !resetYes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete all %d entries?", a.ctrl.Store().Len())) {
		return nil
	}
	if err := a.ctrl.Store().Reset(ctx); err != nil {
		a.fail(err)
	}
	fmt.Println(a.printer.Sprintf(i18n.KeyNoticeReset))
	return nil
}

func writeCSV(w io.Writer, entries []model.Entry) error {
	var b strings.Builder
	b.WriteString("id,date,title,hours,mood,category,tasks,skills,links,photos\n")
	for _, e := range entries {
		fields := []string{
			e.ID,
			e.Date,
			e.Title,
			fmt.Sprint(e.Hours.Float()),
			e.Mood,
			string(e.Category),
			e.Tasks,
			strings.Join(e.Skills, ";"),
			strings.Join(e.Links, ";"),
			fmt.Sprint(len(e.Photos)),
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvEscape(f))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
