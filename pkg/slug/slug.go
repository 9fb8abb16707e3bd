package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make creates a URL-safe slug from the input string.
//
// Letters are transliterated to ASCII where possible, every other character
// becomes the separator, runs of separators collapse into one and the result
// never starts or ends with a separator. The output is always lowercase.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	for _, r := range cfg.replacements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}

	if cfg.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))

	sepLen := utf8.RuneCountInString(cfg.separator)
	lastWasSep := true // avoids a leading separator
	pendingSep := false
	runeCount := 0

	for _, r := range s {
		if !isASCIIAlnum(r) {
			if !lastWasSep {
				pendingSep = true
				lastWasSep = true
			}
			continue
		}

		// Separators are written lazily so the result never ends with one.
		need := 1
		if pendingSep {
			need += sepLen
		}
		if cfg.maxLength > 0 && runeCount+need > cfg.maxLength {
			break
		}
		if pendingSep {
			b.WriteString(cfg.separator)
			pendingSep = false
		}

		b.WriteRune(unicode.ToLower(r))
		lastWasSep = false
		runeCount += need
	}

	return b.String()
}

// Valid reports whether s is already a normalized slug for the given separator.
// Empty strings are valid.
func Valid(s string, opts ...Option) bool {
	return Make(s, opts...) == s
}

// ValidSeparator reports whether sep keeps Make idempotent: it must survive
// normalization unchanged, so it may not contain letters or digits, nor
// characters that fold into them ("²", "½", "№"). The empty separator is valid.
func ValidSeparator(sep string) bool {
	for _, r := range sep {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	sample := "a" + sep + "b"
	return Make(sample, Separator(sep)) == sample
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// fold transliterates s towards ASCII: table lookups first for letters Unicode
// does not decompose, then NFKD with combining marks removed.
func fold(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	t := transform.Chain(
		runes.Map(normalizeDiacritic),
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
