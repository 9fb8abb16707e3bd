package slug

import "slices"

// Option configures the slug generation behavior.
type Option func(*config)

// config holds the configuration for slug generation.
type config struct {
	separator    string
	stripChars   string
	replacements []replacement
	maxLength    int
}

type replacement struct {
	old, new string
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		separator: "-",
	}
}

// MaxLength sets the maximum length of the generated slug in runes.
// Truncation may cut a word but never leaves a trailing separator. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator placed between words.
// Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// StripChars sets characters to remove before slugification.
// Stripped characters do not produce a separator: "a'b" with StripChars("'") becomes "ab".
func StripChars(chars string) Option {
	return func(c *config) {
		c.stripChars = chars
	}
}

// CustomReplace sets string replacements to apply before slugification.
// For example: {"&": "and", "@": "at"}.
// Longer keys are applied first so overlapping keys behave predictably.
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.replacements = c.replacements[:0]
		for old, new := range replacements {
			if old == "" {
				continue
			}
			c.replacements = append(c.replacements, replacement{old: old, new: new})
		}
		slices.SortFunc(c.replacements, func(a, b replacement) int {
			if d := len(b.old) - len(a.old); d != 0 {
				return d
			}
			if a.old < b.old {
				return -1
			}
			if a.old > b.old {
				return 1
			}
			return 0
		})
	}
}
