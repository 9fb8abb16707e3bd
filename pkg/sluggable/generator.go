package sluggable

import "github.com/dmitrymomot/sluggable/pkg/slug"

// Generate interpolates pattern against rec and normalizes the result with
// separator. A pattern without placeholders is slugified as-is, so
// Generate("slug me", nil, "-") returns "slug-me".
func Generate(pattern string, rec Record, separator string) string {
	return slug.Make(Interpolate(pattern, rec), slug.Separator(separator))
}

// Generator applies a Config to records. It is immutable and safe for
// concurrent use.
type Generator struct {
	cfg Config
}

// NewGenerator validates cfg and returns a Generator bound to it.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// MustGenerator is like NewGenerator but panics on an invalid configuration.
func MustGenerator(cfg Config) *Generator {
	g, err := NewGenerator(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// Config returns the configuration the Generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate returns the slug for rec. When the record already holds a
// non-empty slug and overwrite is off, that slug is returned unchanged.
func (g *Generator) Generate(rec Record) string {
	if !g.cfg.Overwrite {
		if current := FieldString(rec, g.cfg.Field); current != "" {
			return current
		}
	}
	return Generate(g.cfg.Pattern, rec, g.cfg.Replacement)
}
