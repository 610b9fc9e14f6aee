package tui

import (
	"context"
	"time"

	"golang.org/x/text/language"

	"github.com/Veraticus/bednights/internal/auth"
	"github.com/Veraticus/bednights/internal/forms"
	"github.com/Veraticus/bednights/internal/model"
	"github.com/Veraticus/bednights/internal/pages"
	"github.com/Veraticus/bednights/internal/service"
	"github.com/Veraticus/bednights/internal/tui/themes"
)

// Loader fetches one entity collection. It never fails; degraded results
// carry the error.
type Loader interface {
	Load(ctx context.Context, entity model.Entity) service.LoadResult
}

// Mutator sends validated creates, updates and deletes.
type Mutator interface {
	Save(ctx context.Context, page pages.Page, rec model.Record) (model.MutationResult, error)
	Delete(ctx context.Context, entity model.Entity, id string) (model.MutationResult, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Loader      Loader
	Mutator     Mutator
	Session     auth.Session
	Language    language.Tag
	Bounds      forms.Bounds
	Now         func() time.Time
	Pages       []pages.Page
	Width       int
	Height      int
	NarrowWidth int
	PageWindow  int
	ToastTTL    time.Duration
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Language:    language.English,
		Bounds:      forms.DefaultBounds(time.Now()),
		Now:         time.Now,
		Pages:       pages.All(),
		Width:       80,
		Height:      24,
		NarrowWidth: 80,
		PageWindow:  2,
		ToastTTL:    4 * time.Second,
	}
}

// WithLoader sets the record loader.
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.Loader = loader
	}
}

// WithMutator sets the mutation service.
func WithMutator(mutator Mutator) Option {
	return func(c *Config) {
		c.Mutator = mutator
	}
}

// WithSession sets the signed-in user.
func WithSession(session auth.Session) Option {
	return func(c *Config) {
		c.Session = session
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLanguage sets the collation language for sorting and options.
func WithLanguage(tag language.Tag) Option {
	return func(c *Config) {
		c.Language = tag
	}
}

// WithBounds sets the accepted date filter window.
func WithBounds(b forms.Bounds) Option {
	return func(c *Config) {
		c.Bounds = b
	}
}

// WithPages limits the dashboard to pages, in tab order.
func WithPages(p ...pages.Page) Option {
	return func(c *Config) {
		c.Pages = p
	}
}

// WithLayout sets the card threshold width and the page-link window.
func WithLayout(narrowWidth, pageWindow int) Option {
	return func(c *Config) {
		c.NarrowWidth = narrowWidth
		c.PageWindow = pageWindow
	}
}

// WithToastTTL sets how long notifications stay visible.
func WithToastTTL(d time.Duration) Option {
	return func(c *Config) {
		c.ToastTTL = d
	}
}

// WithClock replaces the clock used for "updated ago" labels.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
