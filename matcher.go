package durable

import "strings"

// ExactMatcher matches import sources against a fixed set.
type ExactMatcher struct {
	sources map[string]bool
}

// NewExactMatcher creates a matcher from a list of import sources.
func NewExactMatcher(sources []string) *ExactMatcher {
	m := &ExactMatcher{sources: make(map[string]bool)}
	for _, s := range sources {
		m.sources[s] = true
	}
	return m
}

// MatchModule returns true if the source is in the set.
func (m *ExactMatcher) MatchModule(source string) bool {
	return m.sources[source]
}

// PatternMatcher matches import sources with trailing-wildcard support.
//
// Supports patterns like:
//   - "./workflows/signup" - exact match
//   - "./workflows/*" - matches everything under the prefix
//   - "@app/flows*" - bare prefix match
type PatternMatcher struct {
	exact    map[string]bool
	prefixes []string
}

// NewPatternMatcher creates a matcher from exact sources and "*"-suffixed
// prefixes.
func NewPatternMatcher(patterns []string) *PatternMatcher {
	m := &PatternMatcher{exact: make(map[string]bool)}
	for _, p := range patterns {
		if strings.HasSuffix(p, "*") {
			m.prefixes = append(m.prefixes, strings.TrimSuffix(p, "*"))
		} else {
			m.exact[p] = true
		}
	}
	return m
}

// MatchModule returns true if the source matches any pattern.
func (m *PatternMatcher) MatchModule(source string) bool {
	if m.exact[source] {
		return true
	}
	for _, p := range m.prefixes {
		if strings.HasPrefix(source, p) {
			return true
		}
	}
	return false
}

// RelativeMatcher matches relative import sources ("./x", "../x"). It is
// the client-mode default: local project files are assumed to hold workflow
// code, while bare package specifiers are left alone.
type RelativeMatcher struct{}

// NewRelativeMatcher creates the relative-import matcher.
func NewRelativeMatcher() *RelativeMatcher {
	return &RelativeMatcher{}
}

// MatchModule returns true for relative sources.
func (m *RelativeMatcher) MatchModule(source string) bool {
	return strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../")
}

// CompositeMatcher combines multiple matchers.
type CompositeMatcher struct {
	matchers []ModuleMatcher
}

// NewCompositeMatcher creates a matcher that matches if any sub-matcher matches.
func NewCompositeMatcher(matchers ...ModuleMatcher) *CompositeMatcher {
	return &CompositeMatcher{matchers: matchers}
}

// MatchModule returns true if any sub-matcher matches.
func (m *CompositeMatcher) MatchModule(source string) bool {
	for _, matcher := range m.matchers {
		if matcher.MatchModule(source) {
			return true
		}
	}
	return false
}
