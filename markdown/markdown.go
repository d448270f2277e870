// Package markdown provides a ready-made Markdown dialect and a compact
// tag-based way to define similar inline markup dialects.
//
// A Tag is a single marker character sequence ("**", "`", "~~"). All tags
// of a dialect are compiled into one composite token sharing a single
// backreferenced alternation, which keeps the compound parser regex small
// and makes marker matching rules (escaping, word boundaries, paired
// closing markers) uniform.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mikos/remark/parser"
	"github.com/mikos/remark/token"
)

// Markers only match at non-alphanumeric boundaries.
const (
	boundaryLeft  = `(?:(?<=[^a-zA-Z0-9])|(?<=^))`
	boundaryRight = `(?:(?=[^a-zA-Z0-9])|(?=$))`
)

// Marker patterns: not escaped, not directly repeated, start markers only
// match when a closing marker exists later in the text.
const (
	commonStart = boundaryLeft + `(?<!\\)(?<tag>%s)(?!\s)(?:(?!\k<tag>))(?=.+?(?:(?<![\s\\]))\k<tag>` + boundaryRight + `)`
	commonEnd   = `(?<![\s\\])(%s)` + boundaryRight
	skipStart   = `(?<!\\)(?<skip_tag>%s)(?:(?!\k<skip_tag>))(?=.+?(?:(?<!\\))\k<skip_tag>)`
	skipEnd     = `(?<!\\)(%s)`
)

var (
	spaceRunRe = regexp.MustCompile(" +")
	escapedRe  = regexp.MustCompile(`\\(.)`)
)

// tagLiteral unescapes a marker regex fragment to the text it matches.
func tagLiteral(char string) string {
	return escapedRe.ReplaceAllString(char, "$1")
}

// CleanWhitespace collapses runs of spaces to a single space.
// Used as the postprocess hook of markdown parsers.
func CleanWhitespace(text string) string {
	return spaceRunRe.ReplaceAllString(text, " ")
}

// Tag is a single markdown marker. char is a regex fragment matching the
// marker literally, i.e. special characters are escaped ("\*\*").
type Tag struct {
	char    string
	literal string
	tok     *token.Token
}

// NewTag creates a markdown marker attaching params to the text it encloses.
func NewTag(char string, params token.Params) *Tag {
	literal := tagLiteral(char)
	return &Tag{char: char, literal: literal, tok: token.New(literal, "", "", params)}
}

// NewSkipTag creates a markdown marker for verbatim spans: markup between
// two markers is not interpreted. params may be nil.
func NewSkipTag(char string, params token.Params) *Tag {
	literal := tagLiteral(char)
	return &Tag{char: char, literal: literal, tok: token.NewSkip(literal, "", "", params)}
}

// Token returns the stack token representing this marker in parse results.
func (tag *Tag) Token() *token.Token {
	return tag.tok
}

// Group compiles markdown tags into one composite token usable by parser.New.
type Group struct {
	*token.Token
	tags map[string]*Tag
}

// NewGroup creates a composite token for the given tags.
// Tag order matters: a marker that is a prefix of another ("*" vs "**")
// must come after it.
func NewGroup(name string, tags ...*Tag) *Group {
	byLiteral := make(map[string]*Tag, len(tags))
	var common, skip []string
	for _, tag := range tags {
		byLiteral[tag.literal] = tag
		if tag.tok.Skip() {
			skip = append(skip, tag.char)
		} else {
			common = append(common, tag.char)
		}
	}

	var starts, ends []string
	if len(common) > 0 {
		alt := strings.Join(common, "|")
		starts = append(starts, fmt.Sprintf(commonStart, alt))
		ends = append(ends, fmt.Sprintf(commonEnd, alt))
	}
	if len(skip) > 0 {
		alt := strings.Join(skip, "|")
		starts = append(starts, fmt.Sprintf(skipStart, alt))
		ends = append(ends, fmt.Sprintf(skipEnd, alt))
	}

	g := &Group{
		Token: token.New(name, strings.Join(starts, "|"), strings.Join(ends, "|"), nil),
		tags:  byLiteral,
	}
	g.Token.SetResolve(g.resolveTag)
	return g
}

// resolveTag maps a match on the composite token back onto its tag.
// A skip tag opens and closes with the same marker, so a match is an end
// marker whenever the same tag is already on top of the stack.
func (g *Group) resolveTag(matched string, mt token.MatchType, last *token.Token) (*token.Token, token.MatchType) {
	tag, found := g.tags[matched]
	if !found {
		return g.Token, mt
	}
	if tag.tok.Skip() && last == tag.tok {
		mt = token.End
	}
	return tag.tok, mt
}

// NewParser creates a parser for a markdown dialect: the tags plus any
// extra plain token definitions (links, line breaks). Tags are wrapped
// into a single Group with a name not colliding with the extra tokens.
func NewParser(tags []*Tag, tokens ...*token.Token) (*parser.Parser, error) {
	all := make([]*token.Token, 0, len(tokens)+1)
	all = append(all, tokens...)

	if len(tags) > 0 {
		name := "markdown"
		for nameTaken(name, tokens) {
			name += "G"
		}
		all = append(all, NewGroup(name, tags...).Token)
	}

	p, e := parser.New(all)
	if e != nil {
		return nil, e
	}
	p.Postprocess = CleanWhitespace
	return p, nil
}

func nameTaken(name string, tokens []*token.Token) bool {
	for _, t := range tokens {
		if t.Name() == name {
			return true
		}
	}
	return false
}
