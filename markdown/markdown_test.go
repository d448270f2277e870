package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mikos/remark/parser"
	"github.com/mikos/remark/token"
)

func standardParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, e := New()
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	return p
}

func tagParser(t *testing.T, tags ...*Tag) *parser.Parser {
	t.Helper()
	p, e := NewParser(tags)
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	return p
}

func checkSegments(t *testing.T, p *parser.Parser, text string, expected []parser.Segment) {
	t.Helper()
	actual, e := p.Parse(text)
	if e != nil {
		t.Fatalf("text %q: unexpected error: %s", text, e)
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("text %q: segments mismatch (-expected +actual):\n%s", text, diff)
	}
}

func TestSingleBold(t *testing.T) {
	p := tagParser(t, NewTag(`\*\*`, token.Params{AttrBold: true}))
	expected := []parser.Segment{
		{Text: "pre ", Params: token.Params{}},
		{Text: "BOLD", Params: token.Params{AttrBold: true}},
		{Text: " post", Params: token.Params{}},
	}
	checkSegments(t, p, "pre **BOLD** post", expected)
}

func TestWhitespaceCleanup(t *testing.T) {
	p := tagParser(t, NewTag(`\*\*`, token.Params{AttrBold: true}))
	expected := []parser.Segment{
		{Text: "pre ", Params: token.Params{}},
		{Text: "BOLD TEXT", Params: token.Params{AttrBold: true}},
		{Text: " post", Params: token.Params{}},
	}
	checkSegments(t, p, "pre  **BOLD  TEXT**  post", expected)
}

func TestSingleSkip(t *testing.T) {
	p := tagParser(t,
		NewTag(`\*`, token.Params{AttrBold: true}),
		NewSkipTag("`", nil),
	)
	expected := []parser.Segment{
		{Text: "pre ", Params: token.Params{}},
		{Text: "*skip*", Params: token.Params{}},
		{Text: " post", Params: token.Params{}},
	}
	checkSegments(t, p, "pre `*skip*` post", expected)
}

func TestWhitespaceInSkip(t *testing.T) {
	p := tagParser(t,
		NewTag(`\*`, token.Params{AttrBold: true}),
		NewSkipTag("`", nil),
	)
	expected := []parser.Segment{
		{Text: "pre ", Params: token.Params{}},
		{Text: "*skip  this*", Params: token.Params{}},
		{Text: " post", Params: token.Params{}},
	}
	checkSegments(t, p, "pre `*skip  this*` post", expected)
}

func TestExample(t *testing.T) {
	text := "Hello **bold** world!\nYou can **try *this* awesome** [link](www.eff.org)."
	expected := []parser.Segment{
		{Text: "Hello ", Params: token.Params{}},
		{Text: "bold", Params: token.Params{AttrBold: true}},
		{Text: " world!", Params: token.Params{}},
		{Text: "\n", Params: token.Params{AttrSegmentType: SegmentLineBreak}},
		{Text: "You can ", Params: token.Params{}},
		{Text: "try ", Params: token.Params{AttrBold: true}},
		{Text: "this", Params: token.Params{AttrBold: true, AttrItalic: true}},
		{Text: " awesome", Params: token.Params{AttrBold: true}},
		{Text: " ", Params: token.Params{}},
		{Text: "link", Params: token.Params{AttrLinkTarget: "http://www.eff.org"}},
		{Text: ".", Params: token.Params{}},
	}
	checkSegments(t, standardParser(t), text, expected)
}

func TestAllStandardMarkers(t *testing.T) {
	text := strings.Join([]string{
		"***bold italic***",
		"___bold italic___",
		"__bold__",
		"**bold**",
		"~~strike~~",
		"==underline==",
		"*italic*",
		"_italic_",
		"`skip`",
		"`*skip*`",
		"``**skip**``",
		"```***skip***```",
		"*mixed **formatting** demo*",
		"`*mixed **formatting** demo*`",
	}, "\n")

	br := parser.Segment{Text: "\n", Params: token.Params{AttrSegmentType: SegmentLineBreak}}
	expected := []parser.Segment{
		{Text: "bold italic", Params: token.Params{AttrBold: true, AttrItalic: true}}, br,
		{Text: "bold italic", Params: token.Params{AttrBold: true, AttrItalic: true}}, br,
		{Text: "bold", Params: token.Params{AttrBold: true}}, br,
		{Text: "bold", Params: token.Params{AttrBold: true}}, br,
		{Text: "strike", Params: token.Params{AttrStrikethrough: true}}, br,
		{Text: "underline", Params: token.Params{AttrUnderline: true}}, br,
		{Text: "italic", Params: token.Params{AttrItalic: true}}, br,
		{Text: "italic", Params: token.Params{AttrItalic: true}}, br,
		{Text: "skip", Params: token.Params{}}, br,
		{Text: "*skip*", Params: token.Params{}}, br,
		{Text: "**skip**", Params: token.Params{}}, br,
		{Text: "***skip***", Params: token.Params{}}, br,
		{Text: "mixed ", Params: token.Params{AttrItalic: true}},
		{Text: "formatting", Params: token.Params{AttrBold: true, AttrItalic: true}},
		{Text: " demo", Params: token.Params{AttrItalic: true}}, br,
		{Text: "*mixed **formatting** demo*", Params: token.Params{}},
	}
	checkSegments(t, standardParser(t), text, expected)
}

func TestSkipping(t *testing.T) {
	text := "Hello `**not bold**` world!\nYou can **try `*this*` awesome** `[link](www.eff.org)`."
	expected := []parser.Segment{
		{Text: "Hello ", Params: token.Params{}},
		{Text: "**not bold**", Params: token.Params{}},
		{Text: " world!", Params: token.Params{}},
		{Text: "\n", Params: token.Params{AttrSegmentType: SegmentLineBreak}},
		{Text: "You can ", Params: token.Params{}},
		{Text: "try ", Params: token.Params{AttrBold: true}},
		{Text: "*this*", Params: token.Params{AttrBold: true}},
		{Text: " awesome", Params: token.Params{AttrBold: true}},
		{Text: " ", Params: token.Params{}},
		{Text: "[link](www.eff.org)", Params: token.Params{}},
		{Text: ".", Params: token.Params{}},
	}
	checkSegments(t, standardParser(t), text, expected)
}

func TestMixedMarkers(t *testing.T) {
	expected := []parser.Segment{
		{Text: "bold ", Params: token.Params{AttrBold: true}},
		{Text: "struck", Params: token.Params{AttrBold: true, AttrStrikethrough: true}},
		{Text: " and ", Params: token.Params{}},
		{Text: "under", Params: token.Params{AttrUnderline: true}},
	}
	checkSegments(t, standardParser(t), "**bold ~~struck~~** and ==under==", expected)
}

func TestUnmatchedMarkers(t *testing.T) {
	p := standardParser(t)
	samples := []string{
		"escaped \\*\\*not bold\\*\\*",
		"plain** text",
		"tight:**not closed",
	}
	for _, text := range samples {
		checkSegments(t, p, text, []parser.Segment{{Text: text, Params: token.Params{}}})
	}
}

func TestBackslashMarker(t *testing.T) {
	p := tagParser(t, NewTag(`\\`, token.Params{AttrBold: true}))
	expected := []parser.Segment{
		{Text: "pre ", Params: token.Params{}},
		{Text: "bold", Params: token.Params{AttrBold: true}},
		{Text: " post", Params: token.Params{}},
	}
	checkSegments(t, p, `pre \bold\ post`, expected)
}

func TestUnicodeText(t *testing.T) {
	expected := []parser.Segment{
		{Text: "жирный ", Params: token.Params{}},
		{Text: "текст", Params: token.Params{AttrBold: true}},
	}
	checkSegments(t, standardParser(t), "жирный **текст**", expected)
}

func TestCompleteURL(t *testing.T) {
	samples := map[string]string{
		"www.eff.org":             "http://www.eff.org",
		"https://example.com":     "https://example.com",
		"ftp://host/file":         "ftp://host/file",
		"mailto://someone":        "mailto://someone",
		"example.com/page?q=test": "http://example.com/page?q=test",
	}
	for url, expected := range samples {
		if actual := CompleteURL(url); actual != expected {
			t.Fatalf("url %q: expected %q, got %q", url, expected, actual)
		}
	}
}

func TestGroupNameCollision(t *testing.T) {
	extra := token.New("markdown", `~`, "", token.Params{"x": true})
	p, e := NewParser([]*Tag{NewTag(`\*\*`, token.Params{AttrBold: true})}, extra)
	if e != nil {
		t.Fatalf("unexpected error: %s", e)
	}
	expected := []parser.Segment{
		{Text: "~", Params: token.Params{"x": true}},
		{Text: "bold", Params: token.Params{AttrBold: true}},
	}
	checkSegments(t, p, "~**bold**", expected)
}
