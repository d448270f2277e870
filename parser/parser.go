// Package parser compiles token definitions into a compound regex and
// parses text to a flat list of styled segments.
package parser

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/mikos/remark"
	"github.com/mikos/remark/token"
)

// Error codes used by parser:
const (
	// ErrNoTokens indicates that New was called with an empty token list.
	ErrNoTokens = remark.ParserErrors + iota

	// ErrDuplicateName indicates that two token definitions share a name.
	ErrDuplicateName

	// ErrBadPattern indicates that the compound regex built from token
	// patterns cannot be compiled. Error message contains the regexp2 error.
	ErrBadPattern

	// ErrMatch indicates a regex engine failure while scanning the input.
	ErrMatch
)

// TextFunc transforms text before or after parsing.
type TextFunc = func(text string) string

type groupRec struct {
	tok *token.Token
	mt  token.MatchType
}

// Parser is a simple regex-based lexer/parser for inline markup.
// A compiled Parser is immutable and safe for concurrent use, except that
// the Preprocess and Postprocess hooks must not be replaced once the Parser
// is shared.
type Parser struct {
	// Preprocess transforms the whole input before parsing. Optional.
	Preprocess TextFunc

	// Postprocess transforms plain text between matched tokens, except
	// verbatim text inside skip sections. Optional.
	Postprocess TextFunc

	tokens []*token.Token
	re     *regexp2.Regexp
	groups map[string]groupRec
	order  []string
}

// New creates a Parser for the given token definitions.
// Token order matters: earlier tokens take precedence when several could
// match at the same position.
func New(tokens []*token.Token) (*Parser, error) {
	if len(tokens) == 0 {
		return nil, remark.NewError(ErrNoTokens, "no token definitions")
	}

	patterns := make([]string, 0, len(tokens)*2)
	groups := make(map[string]groupRec)
	order := make([]string, 0, len(tokens)*2)
	for _, t := range tokens {
		if _, found := groups[t.GroupStart()]; found {
			return nil, remark.FormatError(ErrDuplicateName, "duplicate token name %q", t.Name())
		}
		patterns = append(patterns, t.PatternStart())
		order = append(order, t.GroupStart())
		if t.GroupEnd() == "" {
			groups[t.GroupStart()] = groupRec{t, token.Single}
		} else {
			groups[t.GroupStart()] = groupRec{t, token.Start}
			groups[t.GroupEnd()] = groupRec{t, token.End}
			patterns = append(patterns, t.PatternEnd())
			order = append(order, t.GroupEnd())
		}
	}

	re, e := regexp2.Compile(strings.Join(patterns, "|"), regexp2.Singleline)
	if e != nil {
		return nil, remark.FormatError(ErrBadPattern, "cannot compile token patterns: %s", e)
	}
	return &Parser{tokens: tokens, re: re, groups: groups, order: order}, nil
}

// matchedToken finds which token has been matched by the compound regex.
// Composite tokens are given a chance to resolve the match onto a
// finer-grained token. Returns the captured top-level group.
func (p *Parser) matchedToken(m *regexp2.Match, stack *tokenStack) (*token.Token, token.MatchType, *regexp2.Group) {
	for _, name := range p.order {
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		rec := p.groups[name]
		tok, mt := rec.tok, rec.mt
		if resolve := tok.Resolve(); resolve != nil {
			tok, mt = resolve(g.Capture.String(), mt, stack.last())
		}
		return tok, mt, g
	}
	return nil, 0, nil
}

// Parse parses text to obtain a list of Segments.
// Imbalanced markup never causes an error: unmatched end markers are
// ignored and unmatched start markers style the rest of the text.
func (p *Parser) Parse(text string) ([]Segment, error) {
	if p.Preprocess != nil {
		text = p.Preprocess(text)
	}
	// regexp2 counts positions in runes, keep the input as a rune slice
	// so captured spans can be mapped back onto it.
	runes := []rune(text)
	stack := &tokenStack{}
	segments := []Segment{}
	lastPos := 0

	m, e := p.re.FindRunesMatch(runes)
	for e == nil && m != nil {
		tok, mt, g := p.matchedToken(m, stack)
		if tok == nil || stack.skipToken(tok, mt) {
			m, e = p.re.FindNextMatch(m)
			continue
		}

		params := stack.mergedParams()
		raw := stack.inSkip()

		// An end marker without a matching start marker is left in the text.
		if mt == token.End && !stack.remove(tok) {
			m, e = p.re.FindNextMatch(m)
			continue
		}

		if g.Index > lastPos {
			chunk := string(runes[lastPos:g.Index])
			if !raw && p.Postprocess != nil {
				chunk = p.Postprocess(chunk)
			}
			segments = append(segments, newSegment(chunk, params))
		}

		switch mt {
		case token.Start:
			stack.add(tok)
		case token.Single:
			segments = append(segments, newTokenSegment(g.Capture.String(), params, tok, m))
		}
		lastPos = g.Index + g.Length

		m, e = p.re.FindNextMatch(m)
	}
	if e != nil {
		return nil, remark.FormatError(ErrMatch, "scan failed: %s", e)
	}

	if lastPos < len(runes) {
		chunk := string(runes[lastPos:])
		if p.Postprocess != nil {
			chunk = p.Postprocess(chunk)
		}
		segments = append(segments, newSegment(chunk, stack.mergedParams()))
	}
	return segments, nil
}
