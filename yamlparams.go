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

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlTrueWords / yamlFalseWords are the boolean scalar spellings this
// ingester accepts, deliberately wider than YAML 1.2's bare true/false -
// the original rcl_yaml_param_parser accepts the same historical YAML 1.1
// boolean word list, so scalars are decoded by hand rather than trusting
// yaml.v3's (1.2) resolver.
var yamlTrueWords = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"yes": true, "Yes": true, "YES": true,
	"on": true, "On": true, "ON": true,
	"y": true, "Y": true,
}

var yamlFalseWords = map[string]bool{
	"false": true, "False": true, "FALSE": true,
	"no": true, "No": true, "NO": true,
	"off": true, "Off": true, "OFF": true,
	"n": true, "N": true,
}

// decodeParamValueText decodes the raw text following a "-p name:=" flag
// as a single YAML node, accepting either a scalar or a flow sequence
// (e.g. "[1, 2, 3]"), the way an inline -p value may.
func decodeParamValueText(text string) (ParamValue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return ParamValue{}, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return ParamValue{Kind: ParamString, StringValue: text}, nil
	}
	n := root.Content[0]
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		return decodeSequence(n)
	default:
		return ParamValue{}, fmt.Errorf("unsupported value %q", text)
	}
}

// ParseParamFile reads a ROS parameter override YAML file and merges its
// contents into a ParameterTree, following the nested document shape
// rcl_parse_yaml_file expects:
//
//	node_name:
//	  ros__parameters:
//	    ns:
//	      name: value
func ParseParamFile(path string) (*ParameterTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file %q: %w", path, err)
	}
	return ParseParamYAML(data)
}

// ParseParamYAML decodes the bytes of a parameter override YAML document.
func ParseParamYAML(data []byte) (*ParameterTree, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParamRule, err)
	}
	tree := NewParameterTree()
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return tree, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level of a parameter file must be a mapping", ErrInvalidParamRule)
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		nodeBody := top.Content[i+1]
		if nodeBody.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: node entry %q must be a mapping", ErrInvalidParamRule, key)
		}
		if err := walkNodeBody(tree, key, nodeBody); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// normalizeNodeGlob mirrors the "nodename:" prefix default: a bare
// parameter path with no node prefix applies to every node ("/**").
func normalizeNodeGlob(name string) string {
	if name == "" {
		return "/**"
	}
	if name[0] != '/' {
		return "/" + name
	}
	return name
}

// withLeadingSlash prefixes name with '/' if it doesn't already carry one,
// without normalizeNodeGlob's empty-name default - used for the namespace
// half of a two-level node entry, which is never itself a full node glob.
func withLeadingSlash(name string) string {
	if name == "" || name[0] == '/' {
		return name
	}
	return "/" + name
}

// findParamsKey scans one mapping's direct children for the "ros__parameters"
// sentinel key, returning its value node if present.
func findParamsKey(body *yaml.Node) (*yaml.Node, bool) {
	for i := 0; i+1 < len(body.Content); i += 2 {
		if body.Content[i].Value == "ros__parameters" {
			return body.Content[i+1], true
		}
	}
	return nil, false
}

// walkNodeBody resolves one entry below the document's top level, following
// the same two-shape rule rcl_yaml_param_parser's parse_key applies at
// MAP_NODE_NS_LVL: if name's body already holds "ros__parameters" directly,
// name is itself the node name (the single-level sentinel form). Otherwise
// name is a node namespace, and each of body's entries is one node name
// within it, formed as "{ns}/{name}" - matching the original's
// node_ns + "/" + value concatenation when the namespace level isn't
// elided.
func walkNodeBody(tree *ParameterTree, name string, body *yaml.Node) error {
	if params, ok := findParamsKey(body); ok {
		if params.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: ros__parameters must be a mapping", ErrInvalidParamRule)
		}
		return walkParams(tree, normalizeNodeGlob(name), nil, params)
	}

	ns := withLeadingSlash(name)
	for i := 0; i+1 < len(body.Content); i += 2 {
		nodeName := body.Content[i].Value
		nodeBody := body.Content[i+1]
		if nodeBody.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: node entry %q must be a mapping", ErrInvalidParamRule, nodeName)
		}
		params, ok := findParamsKey(nodeBody)
		if !ok {
			return fmt.Errorf("%w: expected ros__parameters under node %q", ErrInvalidParamRule, nodeName)
		}
		if params.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: ros__parameters must be a mapping", ErrInvalidParamRule)
		}
		if err := walkParams(tree, ns+"/"+nodeName, nil, params); err != nil {
			return err
		}
	}
	return nil
}

func walkParams(tree *ParameterTree, nodeGlob string, prefix []string, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping at %q", ErrInvalidParamRule, dottedPathKey(prefix))
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		path := append(append([]string{}, prefix...), keyNode.Value)

		switch valNode.Kind {
		case yaml.MappingNode:
			if len(path) > 1 {
				return fmt.Errorf("%w: %q nests deeper than one parameter namespace level", ErrInvalidParamRule, dottedPathKey(path))
			}
			if err := walkParams(tree, nodeGlob, path, valNode); err != nil {
				return err
			}
		case yaml.ScalarNode:
			v, err := decodeScalar(valNode)
			if err != nil {
				return err
			}
			tree.Set(ParameterOverride{NodeGlob: nodeGlob, Path: path, Value: v})
		case yaml.SequenceNode:
			v, err := decodeSequence(valNode)
			if err != nil {
				return err
			}
			tree.Set(ParameterOverride{NodeGlob: nodeGlob, Path: path, Value: v})
		default:
			return fmt.Errorf("%w: unsupported YAML node kind for %q", ErrInvalidParamRule, dottedPathKey(path))
		}
	}
	return nil
}

func decodeScalar(n *yaml.Node) (ParamValue, error) {
	s := n.Value
	if yamlTrueWords[s] {
		return ParamValue{Kind: ParamBool, BoolValue: true}, nil
	}
	if yamlFalseWords[s] {
		return ParamValue{Kind: ParamBool, BoolValue: false}, nil
	}
	if n.Tag == "!!str" {
		return ParamValue{Kind: ParamString, StringValue: s}, nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ParamValue{Kind: ParamInt, IntValue: i}, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ParamValue{Kind: ParamDouble, DoubleValue: f}, nil
	}
	return ParamValue{Kind: ParamString, StringValue: s}, nil
}

// decodeSequence decodes a YAML sequence into one of the homogeneous array
// kinds rcl_yaml_param_parser enforces: every element must decode to the
// same ParamValueKind as the first.
func decodeSequence(n *yaml.Node) (ParamValue, error) {
	if len(n.Content) == 0 {
		return ParamValue{Kind: ParamStringArray}, nil
	}
	elems := make([]ParamValue, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return ParamValue{}, fmt.Errorf("%w: array elements must be scalars", ErrInvalidParamRule)
		}
		v, err := decodeScalar(c)
		if err != nil {
			return ParamValue{}, err
		}
		elems = append(elems, v)
	}
	kind := elems[0].Kind
	for _, e := range elems[1:] {
		if e.Kind != kind {
			return ParamValue{}, fmt.Errorf("%w: array elements must share one type", ErrInvalidParamRule)
		}
	}
	switch kind {
	case ParamBool:
		out := make([]bool, len(elems))
		for i, e := range elems {
			out[i] = e.BoolValue
		}
		return ParamValue{Kind: ParamBoolArray, BoolArray: out}, nil
	case ParamInt:
		out := make([]int64, len(elems))
		for i, e := range elems {
			out[i] = e.IntValue
		}
		return ParamValue{Kind: ParamIntArray, IntArray: out}, nil
	case ParamDouble:
		out := make([]float64, len(elems))
		for i, e := range elems {
			out[i] = e.DoubleValue
		}
		return ParamValue{Kind: ParamDoubleArray, DoubleArray: out}, nil
	default:
		out := make([]string, len(elems))
		for i, e := range elems {
			out[i] = e.StringValue
		}
		return ParamValue{Kind: ParamStringArray, StringArray: out}, nil
	}
}
