package sluggable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/sluggable/pkg/slug"
)

const (
	DefaultPattern     = ":name"
	DefaultField       = "slug"
	DefaultReplacement = "-"
)

// Config describes one slug binding: which template builds the slug, which
// field stores it, the separator, and whether existing slugs are regenerated.
// It can be populated from the environment with pkg/config.
type Config struct {
	Pattern     string `env:"SLUG_PATTERN" envDefault:":name"`
	Field       string `env:"SLUG_FIELD" envDefault:"slug"`
	Replacement string `env:"SLUG_REPLACEMENT" envDefault:"-"`
	Overwrite   bool   `env:"SLUG_OVERWRITE" envDefault:"false"`
}

// Option modifies a Config built by NewConfig.
type Option func(*Config)

// WithPattern sets the template the slug is built from, e.g. ":id-:title".
func WithPattern(pattern string) Option {
	return func(c *Config) { c.Pattern = pattern }
}

// WithField sets the name of the field that stores the slug.
func WithField(field string) Option {
	return func(c *Config) { c.Field = field }
}

// WithReplacement sets the separator placed between words.
func WithReplacement(sep string) Option {
	return func(c *Config) { c.Replacement = sep }
}

// WithOverwrite makes every generation replace an existing slug.
func WithOverwrite(overwrite bool) Option {
	return func(c *Config) { c.Overwrite = overwrite }
}

// NewConfig returns the default configuration with opts applied.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		Pattern:     DefaultPattern,
		Field:       DefaultField,
		Replacement: DefaultReplacement,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks that the configuration can only produce well-formed slugs.
// The replacement may be empty (words are joined) but must pass
// slug.ValidSeparator: letters, digits and characters that fold into them
// would make normalization ambiguous.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Field) == "" {
		return errors.Join(ErrInvalidConfig, errors.New("field name is empty"))
	}
	if !slug.ValidSeparator(c.Replacement) {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("replacement %q contains or folds into letters or digits", c.Replacement))
	}
	return nil
}
