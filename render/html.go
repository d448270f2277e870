// Package render renders parsed segments as inline HTML or ANSI-styled
// terminal text. Both renderers understand the param keys attached by the
// standard markdown token set.
package render

import (
	"html"
	"strings"

	"github.com/mikos/remark/markdown"
	"github.com/mikos/remark/parser"
)

// HTML renders segments as inline HTML. Segment text is escaped; styling
// params map to <b>, <i>, <s>, <u>, and <a> elements, line breaks to <br>.
func HTML(segments []parser.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.String(markdown.AttrSegmentType) == markdown.SegmentLineBreak {
			sb.WriteString("<br>")
			continue
		}
		text := html.EscapeString(seg.Text)
		if seg.Bool(markdown.AttrItalic) {
			text = "<i>" + text + "</i>"
		}
		if seg.Bool(markdown.AttrBold) {
			text = "<b>" + text + "</b>"
		}
		if seg.Bool(markdown.AttrStrikethrough) {
			text = "<s>" + text + "</s>"
		}
		if seg.Bool(markdown.AttrUnderline) {
			text = "<u>" + text + "</u>"
		}
		if target := seg.String(markdown.AttrLinkTarget); target != "" {
			text = `<a href="` + html.EscapeString(target) + `">` + text + "</a>"
		}
		sb.WriteString(text)
	}
	return sb.String()
}
