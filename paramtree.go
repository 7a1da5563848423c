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

// ParamValueKind identifies the type a ParamValue holds, mirroring the
// union rcl_variant_t exposes in rcl_yaml_param_parser/types.h.
type ParamValueKind int

const (
	ParamBool ParamValueKind = iota
	ParamInt
	ParamDouble
	ParamString
	ParamByteArray
	ParamBoolArray
	ParamIntArray
	ParamDoubleArray
	ParamStringArray
)

// ParamValue is a single decoded parameter value. Exactly one of the
// fields matching Kind is meaningful; this mirrors the C union but, since
// Go unions aren't memory-efficient the same way, is expressed as a
// small struct with typed slices instead.
type ParamValue struct {
	Kind         ParamValueKind
	BoolValue    bool
	IntValue     int64
	DoubleValue  float64
	StringValue  string
	ByteArray    []byte
	BoolArray    []bool
	IntArray     []int64
	DoubleArray  []float64
	StringArray  []string
}

// ParameterOverride is a single (node glob, dotted parameter path, value)
// triple, as produced by a "-p" rule or a parameter YAML file entry.
type ParameterOverride struct {
	NodeGlob string
	Path     []string
	Value    ParamValue
}

// ParameterTree indexes ParameterOverrides by node glob and then by dotted
// parameter path, mirroring the nested rcl_node_params_t /
// rcl_variant_t maps built by rcl_yaml_param_parser.
type ParameterTree struct {
	// Nodes maps a node glob (e.g. "/**" or "/talker") to its parameters,
	// keyed by the "."-joined dotted path.
	Nodes map[string]map[string]ParamValue
}

// NewParameterTree returns an empty tree.
func NewParameterTree() *ParameterTree {
	return &ParameterTree{Nodes: map[string]map[string]ParamValue{}}
}

// Set installs or overwrites a single override, later overrides for the
// same (glob, path) taking precedence over earlier ones - the order
// parameter files and -p rules are applied in the argument pipeline.
func (t *ParameterTree) Set(o ParameterOverride) {
	params, ok := t.Nodes[o.NodeGlob]
	if !ok {
		params = map[string]ParamValue{}
		t.Nodes[o.NodeGlob] = params
	}
	params[dottedPathKey(o.Path)] = o.Value
}

// Merge copies every override from other into t, overwriting any
// conflicting (glob, path) entries the way later --params-file arguments
// are layered over earlier ones.
func (t *ParameterTree) Merge(other *ParameterTree) {
	if other == nil {
		return
	}
	for glob, params := range other.Nodes {
		dst, ok := t.Nodes[glob]
		if !ok {
			dst = map[string]ParamValue{}
			t.Nodes[glob] = dst
		}
		for path, v := range params {
			dst[path] = v
		}
	}
}

func dottedPathKey(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

func splitDottedPath(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// ForNode returns every parameter value whose glob matches nodeFQN, the
// way a node consuming its own overrides at init time would. Matching
// globs are visited in Go map order, so when the same path is set under
// more than one matching glob (e.g. "/**" and "/talker"), which value is
// returned is not defined.
func (t *ParameterTree) ForNode(nodeFQN string) map[string]ParamValue {
	out := map[string]ParamValue{}
	for glob, params := range t.Nodes {
		if nodeGlobMatches(glob, nodeFQN) {
			for path, v := range params {
				out[path] = v
			}
		}
	}
	return out
}

// nodeGlobMatches reports whether nodeFQN matches glob, where glob may use
// '*' to match a single namespace token and '**' to match zero or more
// tokens - the wildcard matching a bare node_glob needs (e.g. the default
// "/**" override glob matching every node), unlike a remap rule's match
// expression, which is always a plain string comparison (see remap.go).
func nodeGlobMatches(glob, nodeFQN string) bool {
	return matchGlobTokens(splitPathTokens(glob), splitPathTokens(nodeFQN))
}

func splitPathTokens(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func matchGlobTokens(glob, name []string) bool {
	if len(glob) == 0 {
		return len(name) == 0
	}
	head := glob[0]
	switch head {
	case "**":
		if matchGlobTokens(glob[1:], name) {
			return true
		}
		if len(name) == 0 {
			return false
		}
		return matchGlobTokens(glob, name[1:])
	case "*":
		if len(name) == 0 {
			return false
		}
		return matchGlobTokens(glob[1:], name[1:])
	default:
		if len(name) == 0 || name[0] != head {
			return false
		}
		return matchGlobTokens(glob[1:], name[1:])
	}
}

func (v ParamValue) String() string {
	switch v.Kind {
	case ParamBool:
		return fmt.Sprintf("%t", v.BoolValue)
	case ParamInt:
		return fmt.Sprintf("%d", v.IntValue)
	case ParamDouble:
		return fmt.Sprintf("%g", v.DoubleValue)
	case ParamString:
		return v.StringValue
	default:
		return fmt.Sprintf("%v", v)
	}
}
