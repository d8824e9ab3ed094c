package msgraph_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/diary/internal/config"
	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/msgraph"
)

func TestTokenFileMissing(t *testing.T) {
	f := msgraph.TokenFile{Path: filepath.Join(t.TempDir(), "auth", "tokens.json")}
	tok, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tok != nil {
		t.Errorf("Load = %+v, want nil", tok)
	}
}

func TestTokenFileRoundTrip(t *testing.T) {
	f := msgraph.TokenFile{Path: filepath.Join(t.TempDir(), "auth", "tokens.json")}
	want := &oauth2.Token{AccessToken: "abc", RefreshToken: "r1", TokenType: "Bearer"}
	if err := f.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != "abc" || got.RefreshToken != "r1" {
		t.Errorf("Load = %+v", got)
	}
}

func TestTokenFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := msgraph.TokenFile{Path: path}.Load()
	if err == nil || !strings.Contains(err.Error(), "corrupt token file") {
		t.Errorf("Load error = %v, want corrupt token file", err)
	}
}

func TestOAuthConfig(t *testing.T) {
	oc := msgraph.OAuthConfig(config.OutlookConfig{TenantID: "contoso", ClientID: "app-1"})
	if oc.ClientID != "app-1" {
		t.Errorf("ClientID = %q", oc.ClientID)
	}
	if want := "https://login.microsoftonline.com/contoso/oauth2/v2.0/token"; oc.Endpoint.TokenURL != want {
		t.Errorf("TokenURL = %q, want %q", oc.Endpoint.TokenURL, want)
	}
	if !strings.HasSuffix(oc.Endpoint.DeviceAuthURL, "/devicecode") {
		t.Errorf("DeviceAuthURL = %q", oc.Endpoint.DeviceAuthURL)
	}
}

func TestAuthenticatorUsesCachedToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	tokens := msgraph.TokenFile{Path: filepath.Join(t.TempDir(), "tokens.json")}
	cached := &oauth2.Token{AccessToken: "cached", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
	if err := tokens.Save(cached); err != nil {
		t.Fatal(err)
	}
	auth := &msgraph.Authenticator{
		OAuth:  msgraph.OAuthConfig(config.OutlookConfig{TenantID: "common", ClientID: "x"}),
		Tokens: tokens,
		Logger: log.Discard(),
	}

	ctx := context.Background()
	hc, err := auth.HTTPClient(ctx)
	if err != nil {
		t.Fatalf("HTTPClient: %v", err)
	}
	c := msgraph.NewClientWithHTTP(hc, srv.URL)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := c.GetCalendarView(ctx, from, from.Add(24*time.Hour), "UTC"); err != nil {
		t.Fatalf("GetCalendarView: %v", err)
	}
	if gotAuth != "Bearer cached" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer cached")
	}
}
