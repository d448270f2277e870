// Package token defines tokens which should be parsed from text.
//
// A token is built from regex fragments written in regexp2 (.NET style)
// syntax: named groups are (?<name>...), backreferences are \k<name>.
// Named groups inside a token pattern are renamed into the token's
// namespace, so different tokens may use the same group names.
package token

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// MatchType describes which marker of a token has been matched.
type MatchType int

const (
	Start MatchType = iota + 1
	End
	Single
)

func (mt MatchType) String() string {
	switch mt {
	case Start:
		return "start"
	case End:
		return "end"
	case Single:
		return "single"
	}
	return "unknown"
}

// Params contains styling attributes attached to segments produced under a token.
// Values may be of any type; GroupRef values are replaced by captured group
// values when the token is matched.
type Params = map[string]any

// ParamText is the params key holding text override for matched tokens
// (e.g. a link token replacing "[label](url)" with "label").
const ParamText = "text"

// ValueFunc transforms a captured group value before it is stored in a segment param.
type ValueFunc = func(value string) string

// ResolveFunc maps a matched token onto a finer-grained token and corrected
// match type. Used by composite tokens matching several markers with one
// pattern. last is the most recent unclosed token or nil.
type ResolveFunc = func(matched string, mt MatchType, last *Token) (*Token, MatchType)

// GroupRef is a reference to a named capture group of a token pattern.
// When used as a param value it is replaced by the group value captured by
// the match, transformed by Func if set.
type GroupRef struct {
	// Group contains group name as written in the token pattern, without the token namespace prefix.
	Group string

	// Func is an optional transform applied to the captured value. It is called even if the group did not capture.
	Func ValueFunc
}

// Value returns the captured value of the referenced group for a match on token t.
// A group that is missing or did not capture yields an empty string.
func (g GroupRef) Value(t *Token, m *regexp2.Match) string {
	value := ""
	grp := m.GroupByName(t.name + "_" + g.Group)
	if grp != nil && len(grp.Captures) > 0 {
		value = grp.Capture.String()
	}
	if g.Func != nil {
		value = g.Func(value)
	}
	return value
}

// Matches group definitions, but not lookbehind assertions:
// the first name character cannot be "=" or "!".
var groupDefRe = regexp.MustCompile(`\(\?<([A-Za-z_][A-Za-z0-9_]*)>`)

// Matches backreferences to named groups.
var groupRefRe = regexp.MustCompile(`\\k<([A-Za-z_][A-Za-z0-9_]*)>`)

// Token is a definition of token which should be parsed from text.
// Tokens are identified by pointer, a definition may be used by a single parser only.
type Token struct {
	name       string
	groupStart string
	groupEnd   string
	patStart   string
	patEnd     string
	skip       bool
	params     Params
	resolve    ResolveFunc
}

// New creates a token definition.
// start and end are regex fragments for the token markers; end may be empty
// for tokens matched by a single pattern. For paired tokens the start marker
// only matches when an end marker exists later in the text.
// params may be nil.
func New(name, start, end string, params Params) *Token {
	t := &Token{name: name, groupStart: name + "_start", params: params}
	if end == "" {
		t.patStart = t.namespace(start, t.groupStart)
	} else {
		t.groupEnd = name + "_end"
		t.patStart = t.namespace(start+"(?=.+?(?:"+end+"))", t.groupStart)
		t.patEnd = t.namespace(end, t.groupEnd)
	}
	return t
}

// NewSkip creates a paired token which suppresses interpretation of any
// markup between its start and end markers (verbatim/code spans).
func NewSkip(name, start, end string, params Params) *Token {
	t := New(name, start, end, params)
	t.skip = true
	return t
}

// namespace renames named groups and backreferences in a regex fragment
// into the token's namespace and encloses the fragment in a named group.
func (t *Token) namespace(pattern, group string) string {
	pattern = groupDefRe.ReplaceAllString(pattern, "(?<"+t.name+"_${1}>")
	pattern = groupRefRe.ReplaceAllString(pattern, `\k<`+t.name+"_${1}>")
	return "(?<" + group + ">" + pattern + ")"
}

// Name returns token name.
func (t *Token) Name() string {
	return t.name
}

// GroupStart returns the capture group name for the start marker.
func (t *Token) GroupStart() string {
	return t.groupStart
}

// GroupEnd returns the capture group name for the end marker or empty string for single tokens.
func (t *Token) GroupEnd() string {
	return t.groupEnd
}

// PatternStart returns the namespaced regex fragment for the start marker.
func (t *Token) PatternStart() string {
	return t.patStart
}

// PatternEnd returns the namespaced regex fragment for the end marker or empty string for single tokens.
func (t *Token) PatternEnd() string {
	return t.patEnd
}

// Skip reports whether markup between the token markers is left uninterpreted.
func (t *Token) Skip() bool {
	return t.skip
}

// Params returns the token's styling attributes. The returned map must not be modified.
func (t *Token) Params() Params {
	return t.params
}

// Resolve returns the token's resolver hook or nil.
func (t *Token) Resolve() ResolveFunc {
	return t.resolve
}

// SetResolve installs a resolver hook consulted every time the token is matched.
func (t *Token) SetResolve(fn ResolveFunc) {
	t.resolve = fn
}
