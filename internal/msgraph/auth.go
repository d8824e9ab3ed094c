package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/diary/internal/config"
	"github.com/Tiliavir/diary/internal/log"
)

// Scopes requested from Microsoft Graph: calendar reads for the Outlook
// import and mail writes for drafts.
var Scopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"https://graph.microsoft.com/Mail.ReadWrite",
	"offline_access",
}

func loginURL(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// OAuthConfig returns the device-code oauth2 configuration for the tenant and
// application in outlook.
func OAuthConfig(outlook config.OutlookConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID: outlook.ClientID,
		Scopes:   Scopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: loginURL(outlook.TenantID, "devicecode"),
			TokenURL:      loginURL(outlook.TenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// TokenFile caches an oauth2 token as JSON on disk.
type TokenFile struct {
	Path string
}

// DefaultTokenFile is the token cache under the diary base directory.
func DefaultTokenFile() (TokenFile, error) {
	base, err := config.BaseDir()
	if err != nil {
		return TokenFile{}, err
	}
	return TokenFile{Path: filepath.Join(base, "auth", "msgraph_tokens.json")}, nil
}

// Load returns the cached token, or nil when none has been stored yet.
func (f TokenFile) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to sign in again): %w", f.Path, err)
	}
	return &tok, nil
}

// Save replaces the cached token. The file is readable by the owner only.
func (f TokenFile) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Authenticator obtains Graph tokens: from the cache, by refreshing, or by
// running the device-code flow with sign-in instructions written to Prompt.
type Authenticator struct {
	OAuth  *oauth2.Config
	Tokens TokenFile
	Prompt io.Writer
	Logger *log.Logger
}

// NewAuthenticator configures an Authenticator for outlook using the default
// token cache.
func NewAuthenticator(outlook config.OutlookConfig, prompt io.Writer, logger *log.Logger) (*Authenticator, error) {
	tokens, err := DefaultTokenFile()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Authenticator{
		OAuth:  OAuthConfig(outlook),
		Tokens: tokens,
		Prompt: prompt,
		Logger: logger.WithComponent("msgraph"),
	}, nil
}

// Token returns a valid token, signing in interactively when neither the
// cached token nor a refresh can provide one.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := a.Tokens.Load()
	if err != nil {
		a.Logger.WarnContext(ctx, "ignoring cached token", "error", err)
		tok = nil
	}
	if tok != nil && tok.Valid() {
		return tok, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := a.OAuth.TokenSource(ctx, tok).Token()
		if err == nil {
			a.store(ctx, refreshed)
			return refreshed, nil
		}
		a.Logger.WarnContext(ctx, "token refresh failed, signing in again", "error", err)
	}

	resp, err := a.OAuth.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}
	if a.Prompt != nil {
		fmt.Fprintf(a.Prompt, "\nTo sign in, open %s\nand enter the code: %s\n\n", resp.VerificationURI, resp.UserCode)
	}

	tok, err = a.OAuth.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	a.store(ctx, tok)
	return tok, nil
}

// HTTPClient returns an http.Client that authorizes Graph requests and
// writes every refreshed token back to the cache.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}
	src := &cachingTokenSource{
		src:  a.OAuth.TokenSource(ctx, tok),
		auth: a,
		ctx:  ctx,
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, src), nil
}

func (a *Authenticator) store(ctx context.Context, tok *oauth2.Token) {
	if err := a.Tokens.Save(tok); err != nil {
		a.Logger.WarnContext(ctx, "could not cache token", "error", err)
	}
}

type cachingTokenSource struct {
	src  oauth2.TokenSource
	auth *Authenticator
	ctx  context.Context
	last string
}

func (s *cachingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		s.auth.store(s.ctx, tok)
	}
	return tok, nil
}
