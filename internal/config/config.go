// Package config loads the typed bednights configuration from viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/Veraticus/bednights/internal/auth"
	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
)

// EnvPrefix prefixes environment overrides, e.g. BEDNIGHTS_API_TOKEN.
const EnvPrefix = "BEDNIGHTS"

// Config is the typed application configuration.
type Config struct {
	API     APIConfig
	Cache   CacheConfig
	Logging LoggingConfig
	UI      UIConfig
	Forms   FormsConfig
}

// APIConfig configures the REST client and the session it acts for.
type APIConfig struct {
	BaseURL       string
	Token         string
	Role          string
	DefaultRole   string
	Email         string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// CacheConfig configures response caching and local snapshots. An empty
// SnapshotPath disables snapshots.
type CacheConfig struct {
	SnapshotPath string
	TTL          time.Duration
	Size         int
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// UIConfig configures list rendering.
type UIConfig struct {
	Locale      string
	Theme       string
	PageWindow  int
	NarrowWidth int
}

// FormsConfig bounds accepted date input. Empty values use the defaults.
type FormsConfig struct {
	MinDate string
	MaxDate string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.default_role", auth.DefaultRole)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_attempts", 1)
	v.SetDefault("api.retry_delay", 500*time.Millisecond)
	v.SetDefault("cache.snapshot_path", "")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.size", 64)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.page_window", 10)
	v.SetDefault("ui.narrow_width", 80)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	cfg := Config{
		API: APIConfig{
			BaseURL:       strings.TrimSpace(v.GetString("api.base_url")),
			Token:         v.GetString("api.token"),
			Role:          v.GetString("api.role"),
			DefaultRole:   v.GetString("api.default_role"),
			Email:         v.GetString("api.email"),
			Timeout:       v.GetDuration("api.timeout"),
			RetryAttempts: v.GetInt("api.retry_attempts"),
			RetryDelay:    v.GetDuration("api.retry_delay"),
		},
		Cache: CacheConfig{
			SnapshotPath: ExpandPath(v.GetString("cache.snapshot_path")),
			TTL:          v.GetDuration("cache.ttl"),
			Size:         v.GetInt("cache.size"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		UI: UIConfig{
			Locale:      v.GetString("ui.locale"),
			Theme:       v.GetString("ui.theme"),
			PageWindow:  v.GetInt("ui.page_window"),
			NarrowWidth: v.GetInt("ui.narrow_width"),
		},
		Forms: FormsConfig{
			MinDate: v.GetString("forms.min_date"),
			MaxDate: v.GetString("forms.max_date"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL: %w", c.API.BaseURL, common.ErrInvalidConfig)
	}
	if c.API.RetryAttempts < 1 {
		return fmt.Errorf("api.retry_attempts must be at least 1: %w", common.ErrInvalidConfig)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive: %w", common.ErrInvalidConfig)
	}
	if c.UI.PageWindow < 0 {
		return fmt.Errorf("ui.page_window cannot be negative: %w", common.ErrInvalidConfig)
	}
	if _, err := language.Parse(c.UI.Locale); err != nil {
		return fmt.Errorf("ui.locale %q: %w", c.UI.Locale, common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	for key, value := range map[string]string{"forms.min_date": c.Forms.MinDate, "forms.max_date": c.Forms.MaxDate} {
		if value == "" {
			continue
		}
		if _, ok := model.ParseDate(value); !ok {
			return fmt.Errorf("%s %q is not a date: %w", key, value, common.ErrInvalidConfig)
		}
	}
	return nil
}

// Session builds the caller's session from the API settings.
func (c Config) Session() auth.Session {
	return auth.New(c.API.Token, c.API.Role, c.API.Email, c.API.DefaultRole)
}

// Language returns the collation locale for sorting.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.UI.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// DateBounds returns the configured date limits, falling back to fallback's
// values for unset ones.
func (c Config) DateBounds(fallbackMin, fallbackMax time.Time) (time.Time, time.Time) {
	lo, hi := fallbackMin, fallbackMax
	if t, ok := model.ParseDate(c.Forms.MinDate); ok {
		lo = t
	}
	if t, ok := model.ParseDate(c.Forms.MaxDate); ok {
		hi = t
	}
	return lo, hi
}
