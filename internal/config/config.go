// Package config loads diary settings from ~/.diary/config.json and the
// environment.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Tiliavir/diary/internal/aggregate"
	"github.com/Tiliavir/diary/internal/log"
)

// Config is the root configuration for diary, stored in ~/.diary/config.json.
// The file supports single-line // comments for documentation purposes.
// Every field can be overridden by a DIARY_* environment variable.
type Config struct {
	Storage StorageConfig `json:"storage" envPrefix:"STORAGE_"`
	Display DisplayConfig `json:"display" envPrefix:"DISPLAY_"`
	Images  ImagesConfig  `json:"images" envPrefix:"IMAGES_"`
	Mail    MailConfig    `json:"mail" envPrefix:"MAIL_"`
	Outlook OutlookConfig `json:"outlook" envPrefix:"OUTLOOK_"`
	Log     LogConfig     `json:"log" envPrefix:"LOG_"`
}

// StorageConfig selects where entries are persisted.
type StorageConfig struct {
	// Backend is "json" (entries.json) or "sqlite" (diary.db).
	Backend string `json:"backend" env:"BACKEND"`
	// DataDir holds the data files. Empty means ~/.diary.
	DataDir string `json:"data_dir" env:"DATA_DIR"`
}

// DisplayConfig controls localization and chart output.
type DisplayConfig struct {
	Language    string `json:"language" env:"LANGUAGE"`
	ChartPeriod string `json:"chart_period" env:"CHART_PERIOD"`
	ChartWidth  int    `json:"chart_width" env:"CHART_WIDTH"`
	ChartHeight int    `json:"chart_height" env:"CHART_HEIGHT"`
}

// ImagesConfig controls photo downscaling.
type ImagesConfig struct {
	MaxWidth int `json:"max_width" env:"MAX_WIDTH"`
	Quality  int `json:"quality" env:"QUALITY"`
}

// MailConfig selects the mail composer.
type MailConfig struct {
	// Composer is "mailto" or "outlook".
	Composer  string `json:"composer" env:"COMPOSER"`
	Recipient string `json:"recipient" env:"RECIPIENT"`
}

// OutlookConfig holds Microsoft Graph settings used for Outlook drafts.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id" env:"TENANT_ID"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id" env:"CLIENT_ID"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `json:"level" env:"LEVEL"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	ComposerMailto  = "mailto"
	ComposerOutlook = "outlook"

	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID.
	// It supports device code flow without a client secret and requires no
	// app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"

	DefaultLanguage    = "en"
	DefaultChartPeriod = "year"
	DefaultChartWidth  = 960
	DefaultChartHeight = 420
	DefaultMaxWidth    = 1200
	DefaultQuality     = 85
	DefaultLogLevel    = "warn"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "DIARY_"

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendJSON},
		Display: DisplayConfig{
			Language:    DefaultLanguage,
			ChartPeriod: DefaultChartPeriod,
			ChartWidth:  DefaultChartWidth,
			ChartHeight: DefaultChartHeight,
		},
		Images:  ImagesConfig{MaxWidth: DefaultMaxWidth, Quality: DefaultQuality},
		Mail:    MailConfig{Composer: ComposerMailto},
		Outlook: OutlookConfig{TenantID: DefaultTenantID, ClientID: DefaultClientID},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// diary configuration – ~/.diary/config.json
//
// All settings are optional. Every value can also be set through the
// environment, e.g. DIARY_STORAGE_BACKEND=sqlite or DIARY_DISPLAY_LANGUAGE=th.
{
  // ── Storage ──────────────────────────────────────────────────────────────
  "storage": {
    // "json" keeps entries in entries.json, "sqlite" in diary.db.
    "backend": "json",
    // Directory for data files. Empty means ~/.diary.
    "data_dir": ""
  },

  // ── Display ──────────────────────────────────────────────────────────────
  "display": {
    // Label language: "en" or "th".
    "language": "en",
    // Default chart period: "year", "30", "60" or "90".
    "chart_period": "year",
    "chart_width": 960,
    "chart_height": 420
  },

  // ── Photos ───────────────────────────────────────────────────────────────
  "images": {
    // Photos wider than this are scaled down before they are stored.
    "max_width": 1200,
    // JPEG quality, 1-100.
    "quality": 85
  },

  // ── Email summary ────────────────────────────────────────────────────────
  "mail": {
    // "mailto" opens the default mail client, "outlook" creates an Outlook draft.
    "composer": "mailto",
    "recipient": ""
  },

  // ── Microsoft Graph (only used by the "outlook" composer) ───────────────
  "outlook": {
    "tenant_id": "common",
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab"
  },

  "log": {
    // debug, info, warn or error. Logs go to stderr.
    "level": "warn"
  }
}
`

// BaseDir returns the root data directory (~/.diary).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".diary"), nil
}

// configFilePath returns the path to ~/.diary/config.json.
func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.diary/config.json, creating it with annotated defaults on
// first run, then applies DIARY_* environment overrides.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit config path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		var fileCfg Config
		if err := json.Unmarshal(stripLineComments(data), &fileCfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		cfg = fileCfg
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Display.Language == "" {
		c.Display.Language = d.Display.Language
	}
	if c.Display.ChartPeriod == "" {
		c.Display.ChartPeriod = d.Display.ChartPeriod
	}
	if c.Display.ChartWidth == 0 {
		c.Display.ChartWidth = d.Display.ChartWidth
	}
	if c.Display.ChartHeight == 0 {
		c.Display.ChartHeight = d.Display.ChartHeight
	}
	if c.Images.MaxWidth == 0 {
		c.Images.MaxWidth = d.Images.MaxWidth
	}
	if c.Images.Quality == 0 {
		c.Images.Quality = d.Images.Quality
	}
	if c.Mail.Composer == "" {
		c.Mail.Composer = d.Mail.Composer
	}
	if c.Outlook.TenantID == "" {
		c.Outlook.TenantID = d.Outlook.TenantID
	}
	if c.Outlook.ClientID == "" {
		c.Outlook.ClientID = d.Outlook.ClientID
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// DataDir returns the configured data directory, defaulting to ~/.diary.
func (c Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	return BaseDir()
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of [%s %s]", c.Storage.Backend, BackendJSON, BackendSQLite))
	}
	if _, err := aggregate.ParsePeriod(c.Display.ChartPeriod, time.Time{}); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Display.ChartWidth <= 0 || c.Display.ChartHeight <= 0 {
		problems = append(problems, fmt.Sprintf("invalid chart size %dx%d: must be positive", c.Display.ChartWidth, c.Display.ChartHeight))
	}
	if c.Images.MaxWidth <= 0 {
		problems = append(problems, fmt.Sprintf("invalid image max width %d: must be positive", c.Images.MaxWidth))
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		problems = append(problems, fmt.Sprintf("invalid image quality %d: must be between 1 and 100", c.Images.Quality))
	}
	switch c.Mail.Composer {
	case ComposerMailto, ComposerOutlook:
	default:
		problems = append(problems, fmt.Sprintf("invalid mail composer '%s': must be one of [%s %s]", c.Mail.Composer, ComposerMailto, ComposerOutlook))
	}
	if c.Mail.Composer == ComposerOutlook && c.Outlook.ClientID == "" {
		problems = append(problems, "outlook client id is required when using the outlook composer")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
