// Package mail hands a diary summary to the user's mail client, either as
// a mailto: link or as an Outlook draft.
package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/msgraph"
	"github.com/Tiliavir/diary/internal/timecalc"
)

// Message is a plain-text mail ready for composition.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Composer opens a pre-filled message. Delivery is up to the user.
type Composer interface {
	Compose(ctx context.Context, m Message) error
}

// Summary builds the diary summary mail: a greeting, the total hours and one
// "date | title (hours)" block per entry followed by its tasks.
func Summary(entries []model.Entry, p *i18n.Printer) Message {
	if p == nil {
		p = i18n.New("")
	}
	var total float64
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		h := e.Hours.Float()
		total += h
		blocks = append(blocks, fmt.Sprintf("%s | %s (%s)\n%s",
			e.Date, e.Title, p.Hours(timecalc.FormatHoursTrim(h)), e.Tasks))
	}

	var b strings.Builder
	b.WriteString(p.Sprintf(i18n.KeyMailGreeting))
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf(i18n.KeyMailTotal, timecalc.FormatHoursTrim(total)))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n")
	return Message{Subject: p.Sprintf(i18n.KeyMailSubject), Body: b.String()}
}

// Opener launches the platform handler for a URL.
type Opener func(ctx context.Context, rawURL string) error

// Mailto composes through the system's default mail client.
type Mailto struct {
	// Open defaults to OpenURL.
	Open Opener
}

// URL returns the mailto: link for m. Line breaks become CRLF and spaces
// are percent-encoded, since mail clients do not decode '+'.
func (Mailto) URL(m Message) string {
	q := func(s string) string {
		s = strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return "mailto:" + url.PathEscape(m.To) + "?subject=" + q(m.Subject) + "&body=" + q(m.Body)
}

func (c Mailto) Compose(ctx context.Context, m Message) error {
	open := c.Open
	if open == nil {
		open = OpenURL
	}
	if err := open(ctx, c.URL(m)); err != nil {
		return fmt.Errorf("opening mail client: %w", err)
	}
	return nil
}

// OpenURL opens rawURL with the platform's URL handler.
func OpenURL(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return browser.OpenURL(rawURL)
}

// DraftCreator saves a message as a draft.
type DraftCreator interface {
	CreateDraft(ctx context.Context, subject, body string, to ...string) (msgraph.Draft, error)
}

// OutlookDraft composes by saving a draft through Microsoft Graph.
type OutlookDraft struct {
	Client DraftCreator
	// Out receives the draft's link. Nil discards it.
	Out    io.Writer
	Logger *log.Logger
}

func (c OutlookDraft) Compose(ctx context.Context, m Message) error {
	if c.Client == nil {
		return errors.New("outlook composer has no graph client")
	}
	d, err := c.Client.CreateDraft(ctx, m.Subject, m.Body, m.To)
	if err != nil {
		return fmt.Errorf("creating outlook draft: %w", err)
	}
	if c.Logger != nil {
		c.Logger.InfoContext(ctx, "draft created", "id", d.ID)
	}
	if c.Out != nil && d.WebLink != "" {
		fmt.Fprintf(c.Out, "Draft saved: %s\n", d.WebLink)
	}
	return nil
}
