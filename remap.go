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

// RemapKind is a bitmask of the name kinds a remap rule applies to.
type RemapKind uint8

const (
	RemapTopic RemapKind = 1 << iota
	RemapService
	RemapNodeName
	RemapNamespace

	RemapTopicOrService = RemapTopic | RemapService
)

// RemapScope is the node a rule applies to: either a specific node or any
// node ("nodename:" prefix absent).
type RemapScope struct {
	Any      bool
	NodeName string
}

// AnyNodeScope is the scope of a rule with no "nodename:" prefix.
func AnyNodeScope() RemapScope { return RemapScope{Any: true} }

// RemapRule is a single parsed "match:=replacement" rule, optionally scoped
// to one node, grounded on rcl_remap_t (remap_impl.h).
type RemapRule struct {
	Scope       RemapScope
	Kind        RemapKind
	Match       string // empty for NodeName/Namespace rules
	Replacement string
}

func (s RemapScope) appliesTo(nodeName string) bool {
	return s.Any || s.NodeName == nodeName
}

// firstMatch scans rules in order and returns the index of the first rule
// whose scope, kind and match (if any) apply, mirroring
// _rcl_remap_first_match in remap.c. ok is false if nothing matched.
func firstMatch(rules []RemapRule, kindMask RemapKind, nodeName, name string) (int, bool) {
	for i, r := range rules {
		if r.Kind&kindMask == 0 {
			continue
		}
		if !r.Scope.appliesTo(nodeName) {
			continue
		}
		if r.Match != "" && !matchesLiteral(r.Match, name) {
			continue
		}
		return i, true
	}
	return 0, false
}

// matchesLiteral reports whether name equals pattern, mirroring
// _rcl_remap_first_match's plain strcmp comparison. A pattern containing a
// wildcard token ('*' or '**') never matches: name resolution never expands
// wildcards on the candidate side, so such a rule can never equal a
// concrete, wildcard-free candidate name.
func matchesLiteral(pattern, name string) bool {
	if containsWildcardToken(pattern) {
		return false
	}
	return pattern == name
}

func containsWildcardToken(pattern string) bool {
	start := 0
	for i := 0; i <= len(pattern); i++ {
		if i == len(pattern) || pattern[i] == '/' {
			tok := pattern[start:i]
			if tok == "*" || tok == "**" {
				return true
			}
			start = i + 1
		}
	}
	return false
}

// Remapper resolves names against a set of local (node-specific) rules and
// a set of process-wide global rules, mirroring _rcl_remap_name: local
// rules are tried first in the order they were declared, then global rules,
// unless global rule use is disabled. The first matching rule wins.
type Remapper struct {
	Local  []RemapRule
	Global []RemapRule
}

// Resolve looks up a replacement for name (a topic or service name) of the
// given kind, as seen by nodeName. useGlobal=false disables the fallback
// onto Global rules, as rcl_node_options_t.use_global_arguments does.
func (r Remapper) Resolve(kind RemapKind, nodeName, name string, useGlobal bool) (string, bool) {
	if i, ok := firstMatch(r.Local, kind, nodeName, name); ok {
		recordRemapOutcome("matched")
		return r.Local[i].Replacement, true
	}
	if useGlobal {
		if i, ok := firstMatch(r.Global, kind, nodeName, name); ok {
			recordRemapOutcome("matched")
			return r.Global[i].Replacement, true
		}
	}
	recordRemapOutcome("unmatched")
	return "", false
}

// ResolveNodeName returns the first applicable node-name remap rule's
// replacement for the given node, if any.
func (r Remapper) ResolveNodeName(nodeName string, useGlobal bool) (string, bool) {
	if i, ok := firstMatch(r.Local, RemapNodeName, nodeName, ""); ok {
		return r.Local[i].Replacement, true
	}
	if useGlobal {
		if i, ok := firstMatch(r.Global, RemapNodeName, nodeName, ""); ok {
			return r.Global[i].Replacement, true
		}
	}
	return "", false
}

// ResolveNamespace returns the first applicable namespace remap rule's
// replacement for the given node, if any.
func (r Remapper) ResolveNamespace(nodeName string, useGlobal bool) (string, bool) {
	if i, ok := firstMatch(r.Local, RemapNamespace, nodeName, ""); ok {
		return r.Local[i].Replacement, true
	}
	if useGlobal {
		if i, ok := firstMatch(r.Global, RemapNamespace, nodeName, ""); ok {
			return r.Global[i].Replacement, true
		}
	}
	return "", false
}
