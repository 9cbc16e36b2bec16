package project

import (
	"strings"
)

// IgnoreFile is the per-directory rule file consulted during collection.
const IgnoreFile = ".surgeignore"

// builtinPatterns are evaluated before caller and .surgeignore rules,
// so an explicit negation can still re-include them.
var builtinPatterns = []string{
	".git/",
	".hg/",
	".svn/",
	"CVS/",
	IgnoreFile,
	".DS_Store",
}

// rule is one compiled ignore pattern scoped to a directory.
type rule struct {
	pattern  string   // original text, kept for error messages
	base     string   // slash path the rule is scoped to, "" for the root
	segments []string // compiled path segments, "**" spans segments
	negate   bool
	dirOnly  bool
}

// compileRule parses a single pattern line. The second return value is
// false for blank lines and comments.
func compileRule(base, line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	r := rule{pattern: line, base: base}

	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	// \# and \! introduce literal pattern text
	if strings.HasPrefix(line, `\#`) || strings.HasPrefix(line, `\!`) {
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if line == "" {
		return rule{}, false
	}

	// A slash anywhere anchors the pattern to the rule's directory;
	// otherwise it matches at any depth below it.
	anchored := strings.Contains(line, "/")
	line = strings.TrimPrefix(line, "/")

	r.segments = strings.Split(line, "/")
	if !anchored {
		r.segments = append([]string{"**"}, r.segments...)
	}
	return r, true
}

// matches reports whether the rule matches rel (a slash path relative
// to the collection root). Paths outside the rule's base never match.
func (r rule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	target := rel
	if r.base != "" {
		rest, ok := strings.CutPrefix(rel, r.base+"/")
		if !ok {
			return false
		}
		target = rest
	}
	return matchSegments(r.segments, strings.Split(target, "/"))
}

// RuleSet is an ordered list of ignore rules evaluated last-match-wins.
// Construct with [NewRuleSet]; the zero value excludes nothing.
type RuleSet struct {
	rules []rule
}

// NewRuleSet builds a rule set from the built-in excludes followed by
// the given root-scoped patterns.
func NewRuleSet(patterns ...string) *RuleSet {
	rs := &RuleSet{}
	rs.AddFrom("", builtinPatterns...)
	rs.AddFrom("", patterns...)
	return rs
}

// AddFrom appends patterns scoped to base, a slash path relative to the
// collection root ("" scopes to the root itself). Rules added later
// override earlier ones for the paths they both match.
func (rs *RuleSet) AddFrom(base string, patterns ...string) {
	for _, p := range patterns {
		if r, ok := compileRule(base, p); ok {
			rs.rules = append(rs.rules, r)
		}
	}
}

// clone returns an independent copy. Collection appends .surgeignore
// rules to a clone so the caller's set stays reusable.
func (rs *RuleSet) clone() *RuleSet {
	out := &RuleSet{rules: make([]rule, len(rs.rules))}
	copy(out.rules, rs.rules)
	return out
}

type matchResult int

const (
	matchNone matchResult = iota
	matchInclude
	matchExclude
)

// match evaluates rel against every rule and returns the decision of
// the last one that matched.
func (rs *RuleSet) match(rel string, isDir bool) matchResult {
	res := matchNone
	for _, r := range rs.rules {
		if !r.matches(rel, isDir) {
			continue
		}
		if r.negate {
			res = matchInclude
		} else {
			res = matchExclude
		}
	}
	return res
}

// Excluded reports whether rel should be left out of the archive.
// A path is excluded when the last rule matching it excludes it, or
// when any parent directory is excluded; negations cannot re-include
// files beneath an excluded directory.
func (rs *RuleSet) Excluded(rel string, isDir bool) bool {
	if rel == "" {
		return false
	}
	segs := strings.Split(rel, "/")
	for i := 1; i < len(segs); i++ {
		if rs.match(strings.Join(segs[:i], "/"), true) == matchExclude {
			return true
		}
	}
	return rs.match(rel, isDir) == matchExclude
}

// matchSegments matches compiled pattern segments against path
// segments. "**" consumes zero or more segments, except in trailing
// position where it requires at least one (an excluded directory's
// contents, not the directory itself).
func matchSegments(pattern, path []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			if len(pattern) == 1 {
				return len(path) > 0
			}
			for i := 0; i <= len(path); i++ {
				if matchSegments(pattern[1:], path[i:]) {
					return true
				}
			}
			return false
		}
		if len(path) == 0 {
			return false
		}
		if !matchSegment(pattern[0], path[0]) {
			return false
		}
		pattern, path = pattern[1:], path[1:]
	}
	return len(path) == 0
}

// matchSegment matches a single pattern segment against a single path
// segment: `*` matches any run of characters, `?` exactly one,
// `[a-z]`/`[!a-z]` character classes, `\` escapes the next character.
// Implemented as a two-cursor scan with backtracking for `*`.
func matchSegment(pattern, name string) bool {
	p, n := []rune(pattern), []rune(name)
	px, nx := 0, 0
	starPx, starNx := -1, 0

	for nx < len(n) {
		if px < len(p) {
			switch p[px] {
			case '*':
				starPx, starNx = px, nx
				px++
				continue
			case '?':
				px++
				nx++
				continue
			case '\\':
				if px+1 < len(p) && p[px+1] == n[nx] {
					px += 2
					nx++
					continue
				}
			case '[':
				if spec, next, ok := charClass(p, px); ok {
					if classMatch(spec, n[nx]) {
						px = next
						nx++
						continue
					}
				} else if n[nx] == '[' {
					px++
					nx++
					continue
				}
			default:
				if p[px] == n[nx] {
					px++
					nx++
					continue
				}
			}
		}
		if starPx >= 0 {
			starNx++
			px = starPx + 1
			nx = starNx
			continue
		}
		return false
	}

	for px < len(p) && p[px] == '*' {
		px++
	}
	return px == len(p)
}

// charClass extracts the class body starting at p[start] ('[') and the
// index just past the closing ']'. ok is false for an unterminated
// class, which is then treated as a literal '['.
func charClass(p []rune, start int) (spec []rune, next int, ok bool) {
	i := start + 1
	if i < len(p) && (p[i] == '!' || p[i] == '^') {
		i++
	}
	if i < len(p) && p[i] == ']' { // literal ']' as first class member
		i++
	}
	for i < len(p) && p[i] != ']' {
		i++
	}
	if i >= len(p) {
		return nil, 0, false
	}
	return p[start+1 : i], i + 1, true
}

// classMatch reports whether c is matched by the class body spec
// (without brackets), honoring leading negation and a-z ranges.
func classMatch(spec []rune, c rune) bool {
	negate := false
	if len(spec) > 0 && (spec[0] == '!' || spec[0] == '^') {
		negate = true
		spec = spec[1:]
	}
	matched := false
	for i := 0; i < len(spec); i++ {
		if i+2 < len(spec) && spec[i+1] == '-' {
			if spec[i] <= c && c <= spec[i+2] {
				matched = true
			}
			i += 2
			continue
		}
		if spec[i] == c {
			matched = true
		}
	}
	return matched != negate
}
