package markdown

import (
	"regexp"

	"github.com/mikos/remark/parser"
	"github.com/mikos/remark/token"
)

// Segment param keys attached by the standard token set.
const (
	AttrBold          = "is_bold"
	AttrItalic        = "is_italic"
	AttrStrikethrough = "is_strikethrough"
	AttrUnderline     = "is_underline"
	AttrLinkTarget    = "link_target"
	AttrSegmentType   = "segment_type"
)

// SegmentLineBreak is the AttrSegmentType value of line break segments.
const SegmentLineBreak = "LINE_BREAK"

const (
	linkPattern    = `(?<!\\)\[(?<link>.+?)\]\((?<url>.+?)\)`
	newlinePattern = `\n|\r\n`
)

var urlProtoRe = regexp.MustCompile(`(?i)^[a-z][\w-]+:/{1,3}`)

// CompleteURL prepends "http://" to url if it has no protocol prefix.
func CompleteURL(url string) string {
	if urlProtoRe.MatchString(url) {
		return url
	}
	return "http://" + url
}

// StandardTags returns the standard markdown markers:
// bold, italic, strikethrough, underline, and backtick verbatim spans.
func StandardTags() []*Tag {
	return []*Tag{
		NewTag(`\*\*\*`, token.Params{AttrBold: true, AttrItalic: true}),
		NewTag(`___`, token.Params{AttrBold: true, AttrItalic: true}),
		NewTag(`\*\*`, token.Params{AttrBold: true}),
		NewTag(`__`, token.Params{AttrBold: true}),
		NewTag(`\*`, token.Params{AttrItalic: true}),
		NewTag(`_`, token.Params{AttrItalic: true}),
		NewSkipTag("```", nil),
		NewSkipTag("``", nil),
		NewSkipTag("`", nil),
		NewTag(`~~`, token.Params{AttrStrikethrough: true}),
		NewTag(`==`, token.Params{AttrUnderline: true}),
	}
}

// StandardTokens returns the non-marker token definitions of the standard
// set: links with URL autocompletion and line breaks.
func StandardTokens() []*token.Token {
	return []*token.Token{
		token.New("link", linkPattern, "", token.Params{
			token.ParamText: token.GroupRef{Group: "link"},
			AttrLinkTarget:  token.GroupRef{Group: "url", Func: CompleteURL},
		}),
		token.New("br", newlinePattern, "", token.Params{
			token.ParamText: "\n",
			AttrSegmentType: SegmentLineBreak,
		}),
	}
}

// New creates a markdown parser with the standard token set.
func New() (*parser.Parser, error) {
	return NewParser(StandardTags(), StandardTokens()...)
}
