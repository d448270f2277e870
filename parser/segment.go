package parser

import (
	"github.com/dlclark/regexp2"

	"github.com/mikos/remark/token"
)

// Segment is a fragment of parsed text carrying the merged styling params
// of all formatting tokens open at that point.
type Segment struct {
	Text   string       `json:"text"`
	Params token.Params `json:"params,omitempty"`
}

// Bool returns a boolean param value; missing or non-boolean params yield false.
func (s Segment) Bool(key string) bool {
	v, _ := s.Params[key].(bool)
	return v
}

// String returns a string param value; missing or non-string params yield an empty string.
func (s Segment) String(key string) string {
	v, _ := s.Params[key].(string)
	return v
}

// newSegment builds a segment from preceding or trailing plain text.
// It takes ownership of params.
func newSegment(text string, params token.Params) Segment {
	delete(params, token.ParamText)
	return Segment{Text: text, Params: params}
}

// newTokenSegment builds a segment for a matched single token: stack params
// are overridden by token params, GroupRef values are resolved against the
// match, and the text param, if any, overrides the matched text.
// stackParams is copied, the preceding text segment may still hold it.
func newTokenSegment(text string, stackParams token.Params, t *token.Token, m *regexp2.Match) Segment {
	params := make(token.Params, len(stackParams)+len(t.Params())+1)
	for k, v := range stackParams {
		params[k] = v
	}
	params[token.ParamText] = text
	for k, v := range t.Params() {
		params[k] = v
	}
	for k, v := range params {
		if ref, ok := v.(token.GroupRef); ok {
			params[k] = ref.Value(t, m)
		}
	}
	if s, ok := params[token.ParamText].(string); ok {
		text = s
	}
	delete(params, token.ParamText)
	return Segment{Text: text, Params: params}
}
