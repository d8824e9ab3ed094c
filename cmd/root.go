package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var langFlag string

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "diary – an intern diary for the command line",
	Long: `diary is a single-binary, file-based intern diary.
Entries are stored in ~/.diary/ and can be listed, shown on a monthly
calendar, charted as SVG and summarised in monthly reports.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	// A .env file is optional; DIARY_* variables may also come from the shell.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Label language (en, th); overrides the config")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(emailCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(outlookCmd)
}
