// Copyright 2018 Open Source Robotics Foundation, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rclargs

import "fmt"

// ruleParser recursive-descends over a lookahead buffer to recognize one
// of the remap/param/log-level mini-language rules. One ruleParser is
// created per argument being considered as a rule; a parse failure simply
// returns an error and the caller tries the next rule kind, the way
// arguments.c's parse_arguments loop cascades through _rcl_parse_* calls.
type ruleParser struct {
	la   *lookahead
	text string
}

func newRuleParser(arg string) *ruleParser {
	return &ruleParser{la: newLookahead(arg), text: arg}
}

// parseNodeNamePrefix recognizes an optional "token:" scope prefix shared
// by remap and param rules, grounded on _rcl_parse_remap_nodename_prefix /
// _rcl_parse_nodename_prefix in arguments.c.
func (p *ruleParser) parseNodeNamePrefix() (string, bool, error) {
	if p.la.Peek() != Token {
		return "", false, nil
	}
	if p.la.Peek2() != Colon {
		return "", false, nil
	}
	tok, err := p.la.Accept()
	if err != nil {
		return "", false, err
	}
	if _, err := p.la.Expect(Colon); err != nil {
		return "", false, err
	}
	name := tok.Text(p.text)
	if err := DefaultValidator.ValidateNodeName(name); err != nil {
		return "", false, err
	}
	return name, true, nil
}

// parseResourceName recognizes one MatchName/ReplName production: an
// optional '~/' or '/' prefix, then a name segment, then zero or more '/'
// name segment pairs, grounded on _rcl_parse_resource_match /
// _rcl_parse_remap_replacement_name. When requireEOF is set, the full
// remainder of the input must be consumed by this production (the ReplName
// side, which must end at Eof); otherwise parsing simply stops at whatever
// non-'/' lexeme follows (the MatchName side, which the caller expects to
// be immediately followed by Separator).
func (p *ruleParser) parseResourceName(requireEOF bool) (string, error) {
	start := p.la.textIdx
	switch p.la.Peek() {
	case TildeSlash, ForwardSlash:
		if _, err := p.la.Accept(); err != nil {
			return "", err
		}
	}
	if err := p.acceptNameSegment(); err != nil {
		return "", err
	}
	for p.la.Peek() == ForwardSlash {
		if _, err := p.la.Accept(); err != nil {
			return "", err
		}
		if err := p.acceptNameSegment(); err != nil {
			return "", err
		}
	}
	if requireEOF {
		if _, err := p.la.Expect(EOF); err != nil {
			return "", fmt.Errorf("%w: trailing garbage after replacement name in %q: %v", ErrInvalidRemapRule, p.text, err)
		}
	}
	return p.text[start:p.la.textIdx], nil
}

// acceptNameSegment consumes one token of a MatchName/ReplName: a plain
// Token, or a wildcard token, which the lexer accepts so forward-compatible
// rules parse without error even though the matcher always treats a
// wildcard-bearing rule as non-matching (see matchesLiteral in remap.go).
// Backreferences are reserved but unimplemented and fail here instead.
func (p *ruleParser) acceptNameSegment() error {
	switch p.la.Peek() {
	case Token, WildOne, WildMulti:
		_, err := p.la.Accept()
		return err
	case Br1, Br2, Br3, Br4, Br5, Br6, Br7, Br8, Br9:
		return fmt.Errorf("%w: backreferences are not implemented in %q", ErrNotImplemented, p.text)
	default:
		_, err := p.la.Expect(Token)
		return fmt.Errorf("%w: %v", ErrInvalidRemapRule, err)
	}
}

// parseRemapRule parses one "--ros-args -r <arg>" or deprecated bare remap
// argument, grounded on _rcl_parse_remap_rule / _rcl_parse_remap_begin_remap_rule.
func parseRemapRule(arg string) (RemapRule, error) {
	p := newRuleParser(arg)

	scope := AnyNodeScope()
	if name, ok, err := p.parseNodeNamePrefix(); err != nil {
		return RemapRule{}, err
	} else if ok {
		scope = RemapScope{NodeName: name}
	}

	switch p.la.Peek() {
	case Node:
		if _, err := p.la.Accept(); err != nil {
			return RemapRule{}, err
		}
		if _, err := p.la.Expect(Separator); err != nil {
			return RemapRule{}, fmt.Errorf("%w: __node rule must be '__node:=<name>': %v", ErrInvalidRemapRule, err)
		}
		replacement := p.la.Remaining()
		if err := DefaultValidator.ValidateNodeName(replacement); err != nil {
			return RemapRule{}, fmt.Errorf("%w: %v", ErrInvalidRemapRule, err)
		}
		return RemapRule{Scope: scope, Kind: RemapNodeName, Replacement: replacement}, nil

	case Ns:
		if _, err := p.la.Accept(); err != nil {
			return RemapRule{}, err
		}
		if _, err := p.la.Expect(Separator); err != nil {
			return RemapRule{}, fmt.Errorf("%w: __ns rule must be '__ns:=<namespace>': %v", ErrInvalidRemapRule, err)
		}
		replacement := p.la.Remaining()
		if err := DefaultValidator.ValidateNamespace(replacement); err != nil {
			return RemapRule{}, fmt.Errorf("%w: %v", ErrInvalidRemapRule, err)
		}
		return RemapRule{Scope: scope, Kind: RemapNamespace, Replacement: replacement}, nil
	}

	kind := RemapTopicOrService
	switch p.la.Peek() {
	case URLTopic:
		kind = RemapTopic
		if _, err := p.la.Accept(); err != nil {
			return RemapRule{}, err
		}
	case URLService:
		kind = RemapService
		if _, err := p.la.Accept(); err != nil {
			return RemapRule{}, err
		}
	}

	match, err := p.parseResourceName(false)
	if err != nil {
		return RemapRule{}, err
	}
	if _, err := p.la.Expect(Separator); err != nil {
		return RemapRule{}, fmt.Errorf("%w: missing ':=' separator in %q: %v", ErrInvalidRemapRule, arg, err)
	}
	replacement, err := p.parseResourceName(true)
	if err != nil {
		return RemapRule{}, err
	}

	return RemapRule{Scope: scope, Kind: kind, Match: match, Replacement: replacement}, nil
}

// parseParamRule parses one "-p <arg>" parameter override rule, grounded
// on _rcl_parse_param_rule: "[nodename:]dotted.path:=yaml-value", where
// nodename defaults to the "/**" wildcard glob when absent.
func parseParamRule(arg string) (ParameterOverride, error) {
	p := newRuleParser(arg)

	nodeGlob := "/**"
	if name, ok, err := p.parseNodeNamePrefix(); err != nil {
		return ParameterOverride{}, err
	} else if ok {
		nodeGlob = "/" + name
	}

	dottedStart := p.la.textIdx
loop:
	for {
		switch p.la.Peek() {
		case Token, Dot:
			if _, err := p.la.Accept(); err != nil {
				return ParameterOverride{}, err
			}
		case Separator:
			break loop
		default:
			return ParameterOverride{}, fmt.Errorf("%w: malformed parameter name in %q", ErrInvalidParamRule, arg)
		}
	}
	dotted := p.text[dottedStart:p.la.textIdx]
	if dotted == "" {
		return ParameterOverride{}, fmt.Errorf("%w: missing parameter name in %q", ErrInvalidParamRule, arg)
	}
	if _, err := p.la.Expect(Separator); err != nil {
		return ParameterOverride{}, fmt.Errorf("%w: missing ':=' in %q", ErrInvalidParamRule, arg)
	}

	valueText := p.la.Remaining()
	if valueText == "" {
		return ParameterOverride{}, fmt.Errorf("%w: missing value in %q", ErrInvalidParamRule, arg)
	}
	var valNode yamlScalarNode
	v, err := valNode.decode(valueText)
	if err != nil {
		return ParameterOverride{}, fmt.Errorf("%w: %v", ErrInvalidParamRule, err)
	}

	return ParameterOverride{NodeGlob: nodeGlob, Path: splitDottedPath(dotted), Value: v}, nil
}

// yamlScalarNode decodes a bare CLI "-p name:=value" value tail. The value
// is taken verbatim (it may itself be a YAML flow sequence like "[1,2,3]"),
// so decoding goes through the same path as a parameter file's scalar/
// sequence nodes rather than re-implementing a second parser.
type yamlScalarNode struct{}

func (yamlScalarNode) decode(text string) (ParamValue, error) {
	return decodeParamValueText(text)
}
