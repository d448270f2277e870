package parser

import (
	"github.com/mikos/remark/token"
)

// tokenStack holds formatting tokens opened and not yet closed during parsing.
type tokenStack struct {
	data []*token.Token
}

func (s *tokenStack) add(t *token.Token) {
	s.data = append(s.data, t)
}

// last returns the most recently opened token or nil.
func (s *tokenStack) last() *token.Token {
	if len(s.data) == 0 {
		return nil
	}
	return s.data[len(s.data)-1]
}

// inSkip reports whether parsing is currently inside a skip section.
func (s *tokenStack) inSkip() bool {
	t := s.last()
	return t != nil && t.Skip()
}

// mergedParams merges params of all open tokens, later entries winning on
// key conflict. The returned map is owned by the caller.
func (s *tokenStack) mergedParams() token.Params {
	params := token.Params{}
	for _, t := range s.data {
		for k, v := range t.Params() {
			params[k] = v
		}
	}
	return params
}

// remove pops the last occurrence of t from the stack.
// Returns false if t is not on the stack (imbalanced markup).
func (s *tokenStack) remove(t *token.Token) bool {
	for i := len(s.data) - 1; i >= 0; i-- {
		if s.data[i] == t {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true
		}
	}
	return false
}

// skipToken reports whether a matched token must be ignored because parsing
// is inside a skip section. The only token interpreted there is the end
// marker of the section itself.
func (s *tokenStack) skipToken(t *token.Token, mt token.MatchType) bool {
	top := s.last()
	if top == nil || !top.Skip() {
		return false
	}
	if top == t {
		return mt != token.End
	}
	return true
}
