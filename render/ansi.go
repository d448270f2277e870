package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mikos/remark/markdown"
	"github.com/mikos/remark/parser"
)

var linkStyle = lipgloss.NewStyle().
	Underline(true).
	Foreground(lipgloss.Color("12"))

// ANSI renders segments as terminal text, mapping styling params to ANSI
// attributes. Link targets are appended in parentheses after the label
// unless the label already is the target.
func ANSI(segments []parser.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.String(markdown.AttrSegmentType) == markdown.SegmentLineBreak {
			sb.WriteString("\n")
			continue
		}
		if target := seg.String(markdown.AttrLinkTarget); target != "" {
			sb.WriteString(linkStyle.Render(seg.Text))
			if seg.Text != target {
				sb.WriteString(" (" + target + ")")
			}
			continue
		}
		style := lipgloss.NewStyle().
			Bold(seg.Bool(markdown.AttrBold)).
			Italic(seg.Bool(markdown.AttrItalic)).
			Strikethrough(seg.Bool(markdown.AttrStrikethrough)).
			Underline(seg.Bool(markdown.AttrUnderline))
		sb.WriteString(style.Render(seg.Text))
	}
	return sb.String()
}
