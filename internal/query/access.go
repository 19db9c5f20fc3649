package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mickamy/gotrap/internal/ident"
)

// Access describes a recognized field read or write.
type Access struct {
	Op     string // get, set
	Record string // optional qualifier, e.g. person in person.age
	Field  string
	Value  string // raw right-hand side for set
	Quoted bool   // Value was a quoted string literal
}

var (
	reGet = regexp.MustCompile(`(?i)^(?:get|read)\s+(.+)$`)
	reSet = regexp.MustCompile(`(?i)^(?:set|write)\s+(.+)$`)
)

// ParseAccess attempts to recognize a single access statement. Accepted forms:
//
//	get age | read person.age | person.age
//	set age = 40 | write person.age = 40 | person.age = 40
//
// A trailing semicolon is ignored.
func ParseAccess(s string) (Access, bool) {
	qs := TrimStatement(s)
	if qs == "" {
		return Access{}, false
	}
	if m := reSet.FindStringSubmatch(qs); len(m) == 2 {
		return parseAssign(m[1])
	}
	if m := reGet.FindStringSubmatch(qs); len(m) == 2 {
		if _, _, ok := splitAssign(m[1]); ok {
			return Access{}, false
		}
		return parseRef("get", m[1])
	}
	if _, _, ok := splitAssign(qs); ok {
		return parseAssign(qs)
	}
	return parseRef("get", qs)
}

// TrimStatement strips surrounding space, trailing semicolons and comment-only lines.
func TrimStatement(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") {
		return ""
	}
	for strings.HasSuffix(trimmed, ";") {
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-1])
	}
	return trimmed
}

func parseAssign(s string) (Access, bool) {
	lhs, rhs, ok := splitAssign(s)
	if !ok {
		return Access{}, false
	}
	a, ok := parseRef("set", lhs)
	if !ok {
		return Access{}, false
	}
	rhs = strings.TrimSpace(rhs)
	if rhs == "" {
		return Access{}, false
	}
	if len(rhs) >= 2 && (rhs[0] == '"' || rhs[0] == '\'') && rhs[len(rhs)-1] == rhs[0] {
		if rhs[0] == '\'' {
			a.Value = rhs[1 : len(rhs)-1]
		} else if v, err := strconv.Unquote(rhs); err == nil {
			a.Value = v
		} else {
			return Access{}, false
		}
		a.Quoted = true
		return a, true
	}
	a.Value = rhs
	return a, true
}

func parseRef(op, ref string) (Access, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || (strings.ContainsAny(ref, " \t") && !strings.Contains(ref, `"`)) {
		return Access{}, false
	}
	parts := ident.SplitQualified(ref)
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return Access{}, false
		}
		return Access{Op: op, Field: parts[0]}, true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Access{}, false
		}
		return Access{Op: op, Record: parts[0], Field: parts[1]}, true
	default:
		return Access{}, false
	}
}

// splitAssign splits at the first '=' outside double quotes.
func splitAssign(s string) (string, string, bool) {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case '=':
			if !inQuotes {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}
