// Package pattern implements the name-matching contract the core engine
// consumes: substring, glob, and regex matching on a basename,
// case-sensitively or not. Compiled patterns are cached per
// (pattern, flags) tuple.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

type cacheKey struct {
	pattern       string
	caseSensitive bool
	useGlob       bool
	useRegex      bool
}

var (
	compiledMu sync.RWMutex
	compiled   = map[cacheKey]*regexp.Regexp{}
)

// Matches reports whether name satisfies pattern under the given flags.
// An empty pattern always matches. Regex wins if both useGlob and
// useRegex are set.
func Matches(name, pattern string, caseSensitive, useGlob, useRegex bool) bool {
	if pattern == "" {
		return true
	}

	if useRegex {
		re, err := compile(cacheKey{pattern, caseSensitive, false, true}, func() (*regexp.Regexp, error) {
			return regexp.Compile(withCase(pattern, caseSensitive))
		})
		if err != nil {
			return false
		}
		return re.MatchString(name)
	}

	if useGlob {
		re, err := compile(cacheKey{pattern, caseSensitive, true, false}, func() (*regexp.Regexp, error) {
			return regexp.Compile(withCase(globToRegex(pattern), caseSensitive))
		})
		if err != nil {
			return false
		}
		return re.MatchString(name)
	}

	if caseSensitive {
		return strings.Contains(name, pattern)
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

func withCase(expr string, caseSensitive bool) string {
	if caseSensitive {
		return expr
	}
	return "(?i)" + expr
}

func compile(key cacheKey, build func() (*regexp.Regexp, error)) (*regexp.Regexp, error) {
	compiledMu.RLock()
	re, ok := compiled[key]
	compiledMu.RUnlock()
	if ok {
		return re, nil
	}

	compiledMu.Lock()
	defer compiledMu.Unlock()
	if re, ok := compiled[key]; ok {
		return re, nil
	}
	re, err := build()
	if err != nil {
		return nil, err
	}
	compiled[key] = re
	return re, nil
}

// globToRegex translates a glob pattern supporting *, ?, [abc], and
// {a,b} alternation into an equivalent, fully-anchored regular
// expression.
func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(glob)
	braceDepth := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i + 1
			negate := false
			if j < len(runes) && (runes[j] == '!' || runes[j] == '^') {
				negate = true
				j++
			}
			start := j
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				// Unterminated class: treat '[' literally.
				b.WriteString(regexp.QuoteMeta(string(r)))
				continue
			}
			class := string(runes[start:j])
			b.WriteString("[")
			if negate {
				b.WriteString("^")
			}
			b.WriteString(escapeClassBody(class))
			b.WriteString("]")
			i = j
		case '{':
			b.WriteString("(?:")
			braceDepth++
		case '}':
			if braceDepth > 0 {
				b.WriteString(")")
				braceDepth--
			} else {
				b.WriteString(regexp.QuoteMeta(string(r)))
			}
		case ',':
			if braceDepth > 0 {
				b.WriteString("|")
			} else {
				b.WriteString(regexp.QuoteMeta(string(r)))
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString("$")
	return b.String()
}

// escapeClassBody escapes characters that are special inside a
// character class but leaves ranges ("a-z") intact.
func escapeClassBody(class string) string {
	var b strings.Builder
	for _, r := range class {
		switch r {
		case '\\', ']':
			fmt.Fprintf(&b, "\\%c", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
