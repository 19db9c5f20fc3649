package ident

import (
	"strings"
	"unicode"
)

// SplitQualified splits a potentially record-qualified field reference into its parts.
func SplitQualified(ident string) []string {
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil
	}
	var parts []string
	var buf strings.Builder
	inQuotes := false
	runes := []rune(ident)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				buf.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case '.':
			if inQuotes {
				buf.WriteRune(r)
				continue
			}
			part := strings.TrimSpace(buf.String())
			parts = append(parts, part)
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	part := strings.TrimSpace(buf.String())
	parts = append(parts, part)
	return parts
}

// Qualify renders record and field as a single reference, e.g. person.age.
// An empty record yields the bare field.
func Qualify(record, field string) string {
	if record == "" {
		return Render([]string{field})
	}
	return Render([]string{record, field})
}

// Render joins parts with dots, quoting only the parts that need it.
func Render(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		if NeedsQuote(p) {
			out[i] = Quote(p)
		} else {
			out[i] = p
		}
	}
	return strings.Join(out, ".")
}

// NeedsQuote reports whether part must be quoted to survive SplitQualified.
func NeedsQuote(part string) bool {
	if part == "" {
		return true
	}
	for _, r := range part {
		if r == '.' || r == '"' || r == '=' || unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// Quote safely quotes a single identifier part.
func Quote(part string) string {
	return `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
}

// SnakeCase converts a Go identifier such as FirstName or HTTPCode to first_name / http_code.
func SnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
