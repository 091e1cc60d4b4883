// Package pattern selects scenario ids with shell-style globs.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter matches ids against a set of globs. An empty filter matches everything.
//
// Supported syntax:
//
//	*      any run of characters
//	?      exactly one character
//	[...]  one character from the class
//	\x     the literal x
type Filter struct {
	globs    []string
	compiled []*regexp.Regexp
}

// Compile builds a filter from globs, ignoring blank entries.
func Compile(globs []string) (*Filter, error) {
	f := &Filter{}
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		re, err := regexp.Compile("^" + globToRegex(g) + "$")
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", g, err)
		}
		f.globs = append(f.globs, g)
		f.compiled = append(f.compiled, re)
	}
	return f, nil
}

func (f *Filter) Patterns() []string {
	return append([]string(nil), f.globs...)
}

func (f *Filter) Empty() bool {
	return len(f.compiled) == 0
}

// Match reports whether id matches any glob of the filter.
func (f *Filter) Match(id string) bool {
	if f.Empty() {
		return true
	}
	for _, re := range f.compiled {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

// Match is a one-off check of a single glob.
func Match(glob, id string) bool {
	f, err := Compile([]string{glob})
	if err != nil || f.Empty() {
		return false
	}
	return f.Match(id)
}

func globToRegex(glob string) string {
	var b strings.Builder
	b.Grow(len(glob) * 2)

	inClass := false
	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		switch {
		case ch == '\\' && i+1 < len(glob):
			i++
			b.WriteString(regexp.QuoteMeta(string(glob[i])))
		case inClass:
			if ch == ']' {
				inClass = false
			}
			b.WriteByte(ch)
		case ch == '[':
			inClass = true
			b.WriteByte(ch)
		case ch == '*':
			b.WriteString(".*")
		case ch == '?':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	return b.String()
}
