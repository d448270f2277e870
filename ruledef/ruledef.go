// Package ruledef converts token-set descriptions written in YAML to token
// definitions, so markup dialects can be defined without Go code.
//
// A rule file contains markdown-style marker tags and/or plain token
// definitions:
//
//	tags:
//	  - char: '\*\*'
//	    params: {is_bold: true}
//	  - char: '`'
//	    skip: true
//	tokens:
//	  - name: link
//	    start: '(?<!\\)\[(?<link>.+?)\]\((?<url>.+?)\)'
//	    params:
//	      text: {group: link}
//	      link_target: {group: url, func: url}
//
// Param values are either literals or references to named capture groups
// of the token pattern, optionally transformed by a registered func.
package ruledef

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mikos/remark"
	"github.com/mikos/remark/markdown"
	"github.com/mikos/remark/parser"
	"github.com/mikos/remark/token"
)

// Error codes used by ruledef:
const (
	// ErrBadFile indicates that the source is not a valid rule file.
	// Error message contains the yaml error.
	ErrBadFile = remark.RuleDefErrors + iota

	// ErrNoRules indicates a rule file defining neither tags nor tokens.
	ErrNoRules

	// ErrBadTag indicates a tag rule without a marker.
	ErrBadTag

	// ErrBadToken indicates a token rule without a name or start pattern.
	ErrBadToken

	// ErrBadFunc indicates a param referencing an unregistered transform func.
	ErrBadFunc
)

// Transform funcs that may be referenced from rule files.
var valueFuncs = map[string]token.ValueFunc{
	"url": markdown.CompleteURL,
}

// paramValue is either a literal value or a {group, func} reference.
type paramValue struct {
	literal any
	group   string
	fn      string
}

func (p *paramValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var ref struct {
			Group string `yaml:"group"`
			Func  string `yaml:"func"`
		}
		if e := node.Decode(&ref); e == nil && ref.Group != "" {
			p.group = ref.Group
			p.fn = ref.Func
			return nil
		}
	}
	return node.Decode(&p.literal)
}

type tagRule struct {
	Char   string                `yaml:"char"`
	Skip   bool                  `yaml:"skip"`
	Params map[string]paramValue `yaml:"params"`
}

type tokenRule struct {
	Name   string                `yaml:"name"`
	Start  string                `yaml:"start"`
	End    string                `yaml:"end"`
	Skip   bool                  `yaml:"skip"`
	Params map[string]paramValue `yaml:"params"`
}

type ruleFile struct {
	Tags   []tagRule   `yaml:"tags"`
	Tokens []tokenRule `yaml:"tokens"`
}

// RuleSet is a token set built from a rule file. Order of tags and tokens
// follows the file; it determines match precedence.
type RuleSet struct {
	Tags   []*markdown.Tag
	Tokens []*token.Token
}

// NewParser creates a parser for the rule set.
func (rs *RuleSet) NewParser() (*parser.Parser, error) {
	return markdown.NewParser(rs.Tags, rs.Tokens...)
}

// ParseBytes parses a YAML rule file.
func ParseBytes(src []byte) (*RuleSet, error) {
	var rf ruleFile
	if e := yaml.Unmarshal(src, &rf); e != nil {
		return nil, remark.FormatError(ErrBadFile, "cannot parse rule file: %s", e)
	}
	if len(rf.Tags) == 0 && len(rf.Tokens) == 0 {
		return nil, remark.NewError(ErrNoRules, "rule file defines no tags and no tokens")
	}

	rs := &RuleSet{}
	for i, r := range rf.Tags {
		if r.Char == "" {
			return nil, remark.FormatError(ErrBadTag, "tag #%d: missing char", i+1)
		}
		params, e := buildParams(r.Params)
		if e != nil {
			return nil, e
		}
		if r.Skip {
			rs.Tags = append(rs.Tags, markdown.NewSkipTag(r.Char, params))
		} else {
			rs.Tags = append(rs.Tags, markdown.NewTag(r.Char, params))
		}
	}
	for i, r := range rf.Tokens {
		if r.Name == "" || r.Start == "" {
			return nil, remark.FormatError(ErrBadToken, "token #%d: missing name or start pattern", i+1)
		}
		params, e := buildParams(r.Params)
		if e != nil {
			return nil, e
		}
		if r.Skip {
			rs.Tokens = append(rs.Tokens, token.NewSkip(r.Name, r.Start, r.End, params))
		} else {
			rs.Tokens = append(rs.Tokens, token.New(r.Name, r.Start, r.End, params))
		}
	}
	return rs, nil
}

// ParseString parses a YAML rule file given as a string.
func ParseString(src string) (*RuleSet, error) {
	return ParseBytes([]byte(src))
}

// ParseFile reads and parses a YAML rule file.
func ParseFile(name string) (*RuleSet, error) {
	src, e := os.ReadFile(name)
	if e != nil {
		return nil, remark.FormatError(ErrBadFile, "cannot read rule file: %s", e)
	}
	return ParseBytes(src)
}

func buildParams(values map[string]paramValue) (token.Params, error) {
	if len(values) == 0 {
		return nil, nil
	}
	params := token.Params{}
	for key, v := range values {
		if v.group == "" {
			params[key] = v.literal
			continue
		}
		ref := token.GroupRef{Group: v.group}
		if v.fn != "" {
			fn, found := valueFuncs[v.fn]
			if !found {
				return nil, remark.FormatError(ErrBadFunc, "param %q: unknown func %q", key, v.fn)
			}
			ref.Func = fn
		}
		params[key] = ref
	}
	return params, nil
}
