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

// NameValidator is the collaborator interface full name-validation rules
// are delegated to (rcl_validate_topic_name / rmw_validate_node_name /
// rmw_validate_namespace live in sibling libraries upstream; this package
// only needs something that implements their contract).
type NameValidator interface {
	ValidateTopicName(name string) error
	ValidateServiceName(name string) error
	ValidateNodeName(name string) error
	ValidateNamespace(ns string) error
}

type defaultValidator struct{}

// DefaultValidator implements NameValidator with the structural rules the
// GLOSSARY and expand_topic_name.c assume of their inputs: non-empty, no
// empty tokens, no "//", balanced substitution braces, '~' only as a
// leading "~/", and tokens that don't start with a digit.
var DefaultValidator NameValidator = defaultValidator{}

func (defaultValidator) ValidateTopicName(name string) error {
	return validateNameLike(name, "topic")
}

func (defaultValidator) ValidateServiceName(name string) error {
	return validateNameLike(name, "service")
}

func (defaultValidator) ValidateNodeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: node name must not be empty", ErrNodeInvalidName)
	}
	if strings.ContainsAny(name, "/~{}") {
		return fmt.Errorf("%w: node name %q must not contain '/', '~', '{' or '}'", ErrNodeInvalidName, name)
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("%w: node name %q must not start with a digit", ErrNodeInvalidName, name)
	}
	return nil
}

func (defaultValidator) ValidateNamespace(ns string) error {
	if ns == "" || ns == "/" {
		return nil
	}
	if ns != "/" && strings.HasSuffix(ns, "/") {
		return fmt.Errorf("%w: namespace %q must not end with '/'", ErrNodeInvalidNamespace, ns)
	}
	if !strings.HasPrefix(ns, "/") {
		return fmt.Errorf("%w: namespace %q must be absolute", ErrNodeInvalidNamespace, ns)
	}
	return validateNameLike(ns, "namespace")
}

func validateNameLike(name, kind string) error {
	errFor := func(msg string) error {
		switch kind {
		case "topic":
			return fmt.Errorf("%w: %s", ErrTopicNameInvalid, msg)
		case "service":
			return fmt.Errorf("%w: %s", ErrServiceNameInvalid, msg)
		default:
			return fmt.Errorf("%w: %s", ErrNodeInvalidNamespace, msg)
		}
	}
	if name == "" {
		return errFor(fmt.Sprintf("%s name must not be empty", kind))
	}
	if strings.Contains(name, "//") {
		return errFor(fmt.Sprintf("%s name %q must not contain '//'", kind, name))
	}
	if strings.Count(name, "{") != strings.Count(name, "}") {
		return errFor(fmt.Sprintf("%s name %q has unbalanced substitution braces", kind, name))
	}
	if strings.Contains(strings.TrimPrefix(name, "~/"), "~") {
		return errFor(fmt.Sprintf("%s name %q may only use '~' as a leading \"~/\"", kind, name))
	}
	for _, tok := range strings.Split(strings.TrimPrefix(name, "/"), "/") {
		if tok == "" {
			return errFor(fmt.Sprintf("%s name %q must not contain an empty token", kind, name))
		}
		if tok[0] >= '0' && tok[0] <= '9' {
			return errFor(fmt.Sprintf("%s name %q has a token starting with a digit", kind, name))
		}
	}
	return nil
}

// ValidateEnclaveName checks an enclave name against the simplified rule
// set: it must be a namespace-shaped absolute path no longer than 255
// characters (ROS's historical enclave name length limit).
func ValidateEnclaveName(name string) error {
	const maxEnclaveNameLength = 255
	if name == "" {
		return fmt.Errorf("%w: enclave name must not be empty", ErrEnclaveInvalid)
	}
	if len(name) > maxEnclaveNameLength {
		return fmt.Errorf("%w: enclave name %q is %d characters, limit is %d",
			ErrEnclaveTooLong, name, len(name), maxEnclaveNameLength)
	}
	return DefaultValidator.ValidateNamespace(name)
}
