package mail_test

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/mail"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/msgraph"
)

var entries = []model.Entry{
	{Date: "2024-03-05", Title: "Kickoff", Hours: 3, Tasks: "setup\nreading"},
	{Date: "2024-03-06", Title: "Lecture", Hours: 1.5},
}

func TestSummary(t *testing.T) {
	m := mail.Summary(entries, i18n.New("en"))
	if m.Subject != "Internship diary report" {
		t.Errorf("Subject = %q", m.Subject)
	}
	want := "Hello,\n\nTotal hours: 4.5 h\n\n" +
		"2024-03-05 | Kickoff (3 h)\nsetup\nreading\n\n" +
		"2024-03-06 | Lecture (1.5 h)\n\n"
	if m.Body != want {
		t.Errorf("Body =\n%q\nwant\n%q", m.Body, want)
	}
}

func TestSummaryThai(t *testing.T) {
	m := mail.Summary(entries[:1], i18n.New("th"))
	if m.Subject != "รายงานบันทึกการฝึกงาน" {
		t.Errorf("Subject = %q", m.Subject)
	}
	if !strings.Contains(m.Body, "สรุปชั่วโมงรวม 3 ชม.") || !strings.Contains(m.Body, "(3 ชม.)") {
		t.Errorf("Body = %q", m.Body)
	}
}

func TestMailtoURL(t *testing.T) {
	u := mail.Mailto{}.URL(mail.Message{To: "mentor@example.com", Subject: "A report", Body: "line 1\nline 2"})
	if !strings.HasPrefix(u, "mailto:mentor@example.com?subject=A%20report&body=") {
		t.Errorf("URL = %q", u)
	}
	if !strings.Contains(u, "line%201%0D%0Aline%202") {
		t.Errorf("body not CRLF-encoded: %q", u)
	}
	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatal(err)
	}
	if got := parsed.Query().Get("body"); got != "line 1\r\nline 2" {
		t.Errorf("decoded body = %q", got)
	}
}

func TestMailtoCompose(t *testing.T) {
	var opened string
	c := mail.Mailto{Open: func(_ context.Context, u string) error {
		opened = u
		return nil
	}}
	if err := c.Compose(context.Background(), mail.Message{Subject: "s", Body: "b"}); err != nil {
		t.Fatal(err)
	}
	if opened != "mailto:?subject=s&body=b" {
		t.Errorf("opened %q", opened)
	}

	failing := mail.Mailto{Open: func(context.Context, string) error { return errors.New("no handler") }}
	if err := failing.Compose(context.Background(), mail.Message{}); err == nil {
		t.Error("expected opener error")
	}
}

func TestOpenURLHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := mail.OpenURL(ctx, "mailto:?subject=s"); !errors.Is(err, context.Canceled) {
		t.Errorf("OpenURL error = %v, want context.Canceled", err)
	}
}

type fakeDrafts struct {
	subject, body string
	to           []string
}

func (f *fakeDrafts) CreateDraft(_ context.Context, subject, body string, to ...string) (msgraph.Draft, error) {
	f.subject, f.body, f.to = subject, body, to
	return msgraph.Draft{ID: "1", WebLink: "https://outlook.example/1"}, nil
}

func TestOutlookDraft(t *testing.T) {
	f := &fakeDrafts{}
	var out bytes.Buffer
	c := mail.OutlookDraft{Client: f, Out: &out}
	if err := c.Compose(context.Background(), mail.Message{To: "a@b.c", Subject: "s", Body: "b"}); err != nil {
		t.Fatal(err)
	}
	if f.subject != "s" || f.body != "b" || len(f.to) != 1 || f.to[0] != "a@b.c" {
		t.Errorf("draft = %+v", f)
	}
	if !strings.Contains(out.String(), "https://outlook.example/1") {
		t.Errorf("out = %q", out.String())
	}
	if err := (mail.OutlookDraft{}).Compose(context.Background(), mail.Message{}); err == nil {
		t.Error("expected error without client")
	}
}
