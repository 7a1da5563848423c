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
	"strings"
)

const (
	substitutionNode         = "{node}"
	substitutionNamespace    = "{ns}"
	substitutionNamespace2   = "{namespace}"
)

// ExpandOptions bundles the context ExpandTopicName needs, mirroring the
// parameters threaded through rcl_expand_topic_name.
type ExpandOptions struct {
	NodeName      string
	NodeNamespace string
	// Substitutions maps additional {key} tokens (besides {node}/{ns}) to
	// their replacement text, as rcl_get_default_topic_name_substitutions
	// would populate in a full middleware stack.
	Substitutions map[string]string
	Validator     NameValidator
}

// ExpandTopicName expands input_topic_name into a fully-qualified,
// substitution-free topic name, following expand_topic_name.c: validate,
// "~/" replacement, "{key}" substitution, and finally namespace
// prefixing if the result is still relative.
func ExpandTopicName(inputName string, opts ExpandOptions) (string, error) {
	v := opts.Validator
	if v == nil {
		v = DefaultValidator
	}
	if err := v.ValidateNodeName(opts.NodeName); err != nil {
		return "", err
	}
	if err := v.ValidateNamespace(opts.NodeNamespace); err != nil {
		return "", err
	}

	// Fast path: already absolute and has nothing to substitute.
	if strings.HasPrefix(inputName, "/") && !strings.ContainsAny(inputName, "~{") {
		if err := v.ValidateTopicName(inputName); err != nil {
			return "", err
		}
		return inputName, nil
	}

	name := inputName

	if strings.HasPrefix(name, "~/") || name == "~" {
		ns := opts.NodeNamespace
		rest := strings.TrimPrefix(name, "~")
		if len(ns) == 1 {
			// ns == "/": avoid a doubled slash.
			name = ns + opts.NodeName + rest
		} else {
			name = ns + "/" + opts.NodeName + rest
		}
	}

	for strings.Contains(name, "{") {
		start := strings.IndexByte(name, '{')
		end := strings.IndexByte(name[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated substitution in %q", ErrUnknownSubstitution, inputName)
		}
		end += start
		key := name[start : end+1]

		var replacement string
		switch key {
		case substitutionNode:
			replacement = opts.NodeName
		case substitutionNamespace, substitutionNamespace2:
			replacement = opts.NodeNamespace
		default:
			val, ok := opts.Substitutions[key[1:len(key)-1]]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUnknownSubstitution, key)
			}
			replacement = val
		}
		name = name[:start] + replacement + name[end+1:]
	}

	if !strings.HasPrefix(name, "/") {
		ns := opts.NodeNamespace
		if len(ns) == 1 {
			name = ns + name
		} else {
			name = ns + "/" + name
		}
	}

	if err := v.ValidateTopicName(name); err != nil {
		return "", err
	}
	return name, nil
}

// ExpandAndRemapTopicName composes name expansion with remap resolution,
// the way a node actually resolving a publisher/subscriber topic would: the
// input is first expanded to a fully-qualified name, then the remapper is
// given the chance to substitute it (rcl_remap_topic_name's documented
// contract of operating on already-expanded names).
func ExpandAndRemapTopicName(inputName string, opts ExpandOptions, r Remapper, useGlobal bool) (string, error) {
	expanded, err := ExpandTopicName(inputName, opts)
	if err != nil {
		return "", err
	}
	if replacement, ok := r.Resolve(RemapTopic, opts.NodeName, expanded, useGlobal); ok {
		return ExpandTopicName(replacement, opts)
	}
	return expanded, nil
}
