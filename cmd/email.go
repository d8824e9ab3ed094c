package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/diary/internal/config"
	"github.com/Tiliavir/diary/internal/mail"
)

var (
	emailFilter  filterFlags
	emailOutlook bool
	emailTo      string
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Compose a summary mail of your entries",
	Long: `email opens your mail client with a summary of the (filtered) entries:
total hours followed by date, title, hours and tasks of each entry.
With --outlook, or "composer": "outlook" in the config, the mail is saved
as an Outlook draft instead.`,
	Args: cobra.NoArgs,
	RunE: runEmail,
}

func init() {
	emailFilter.bind(emailCmd)
	emailCmd.Flags().BoolVar(&emailOutlook, "outlook", false, "Save as an Outlook draft via Microsoft Graph")
	emailCmd.Flags().StringVar(&emailTo, "to", "", "Recipient; defaults to the config")
}

func runEmail(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	now := time.Now()
	a := openApp(ctx, now)
	defer a.close()

	a.ctrl.SetState(a.ctrl.State().WithFilter(emailFilter.criteria()))
	msg := mail.Summary(a.ctrl.Render(now).List, a.printer)
	msg.To = a.cfg.Mail.Recipient
	if emailTo != "" {
		msg.To = emailTo
	}

	var composer mail.Composer = mail.Mailto{}
	if emailOutlook || a.cfg.Mail.Composer == config.ComposerOutlook {
		client, err := graphClient(ctx, a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
			a.close()
			os.Exit(1)
		}
		composer = mail.OutlookDraft{
			Client: client,
			Out:    os.Stdout,
			Logger: a.logger,
		}
	}

	if err := composer.Compose(ctx, msg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		a.close()
		os.Exit(1)
	}
	return nil
}
