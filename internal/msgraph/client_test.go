package msgraph_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/diary/internal/msgraph"
)

func TestCreateDraft(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/me/messages" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"AAMk","webLink":"https://outlook.example/draft"}`)
	}))
	defer srv.Close()

	c := msgraph.NewClientWithHTTP(srv.Client(), srv.URL+"/")
	d, err := c.CreateDraft(context.Background(), "Report", "line 1\nline 2", "mentor@example.com", " ")
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if d.ID != "AAMk" || d.WebLink != "https://outlook.example/draft" {
		t.Errorf("draft = %+v", d)
	}
	if got["subject"] != "Report" {
		t.Errorf("subject = %v", got["subject"])
	}
	body := got["body"].(map[string]any)
	if body["contentType"] != "Text" || body["content"] != "line 1\nline 2" {
		t.Errorf("body = %v", body)
	}
	to := got["toRecipients"].([]any)
	if len(to) != 1 {
		t.Fatalf("toRecipients = %v, want one address", to)
	}
}

func TestCreateDraftError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"denied"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := msgraph.NewClientWithHTTP(srv.Client(), srv.URL).CreateDraft(context.Background(), "s", "b")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("err = %v, want graph 403 error", err)
	}
}

func TestGetCalendarViewFollowsNextLink(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Prefer") != `outlook.timezone="Asia/Bangkok"` {
			t.Errorf("Prefer header = %q", r.Header.Get("Prefer"))
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = io.WriteString(w, `{"value":[{"id":"2","subject":"Second"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"value":[{"id":"1","subject":"First"}],"@odata.nextLink":"`+srv.URL+`/me/calendarView?page=2"}`)
	}))
	defer srv.Close()

	c := msgraph.NewClientWithHTTP(srv.Client(), srv.URL)
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	events, err := c.GetCalendarView(context.Background(), from, from.AddDate(0, 1, 0), "Asia/Bangkok")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Subject != "First" || events[1].Subject != "Second" {
		t.Errorf("events = %+v", events)
	}
}
