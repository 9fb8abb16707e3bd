package sluggable

import "strings"

// Interpolate replaces every ":identifier" placeholder in template with the
// string form of the matching field of rec. Identifiers are the longest run of
// ASCII letters, digits and underscores after the colon. Absent and null
// fields become "". A colon that is not followed by an identifier character
// is kept as literal text.
func Interpolate(template string, rec Record) string {
	if strings.IndexByte(template, ':') < 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		if c != ':' {
			b.WriteByte(c)
			i++
			continue
		}

		j := i + 1
		for j < len(template) && isIdentByte(template[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(c)
			i++
			continue
		}

		b.WriteString(FieldString(rec, template[i+1:j]))
		i = j
	}

	return b.String()
}

// Placeholders lists the field names referenced by template, in order of first appearance.
func Placeholders(template string) []string {
	var (
		names []string
		seen  = map[string]struct{}{}
	)
	for i := 0; i < len(template); i++ {
		if template[i] != ':' {
			continue
		}
		j := i + 1
		for j < len(template) && isIdentByte(template[j]) {
			j++
		}
		if j == i+1 {
			continue
		}
		name := template[i+1 : j]
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		i = j - 1
	}
	return names
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
