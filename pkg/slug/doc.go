// Package slug turns arbitrary text into URL-safe slugs.
//
// A slug contains only lowercase ASCII letters, digits and a separator. Runs of
// other characters collapse into a single separator, and the result never
// starts or ends with one.
//
// # Usage
//
//	import "github.com/dmitrymomot/sluggable/pkg/slug"
//
//	slug.Make("Hello, World!")
//	// Result: "hello-world"
//
//	slug.Make("SLUG(!@#(ME")
//	// Result: "slug-me"
//
//	slug.Make("dr who", slug.Separator("."))
//	// Result: "dr.who"
//
// # Configuration Options
//
//   - Separator: separator placed between words (default: "-")
//   - MaxLength: maximum slug length in runes
//   - StripChars: characters removed before processing
//   - CustomReplace: string replacements applied before processing (e.g. "&" → "and")
//
// # Unicode Support
//
// Latin letters are transliterated: a lookup table handles letters without a
// canonical decomposition ("straße" → "strase", "Łódź" → "lodz"), and NFKD
// decomposition with combining marks removed handles the rest ("café" → "cafe",
// "ﬁle" → "file"). Scripts with no ASCII form, emoji and symbols become
// separators.
//
// Make is idempotent, Make(Make(s)) == Make(s), for every separator accepted
// by ValidSeparator. All functions are safe for concurrent use.
package slug
