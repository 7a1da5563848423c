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

import "testing"

func TestValidateTopicNameValid(t *testing.T) {
	for _, name := range []string{"/foo", "/foo/bar", "/foo/{node}", "chatter"} {
		if err := DefaultValidator.ValidateTopicName(name); err != nil {
			t.Errorf("ValidateTopicName(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateTopicNameInvalid(t *testing.T) {
	tests := []string{"", "/foo//bar", "/foo/", "/foo/{unbalanced"}
	for _, name := range tests {
		if err := DefaultValidator.ValidateTopicName(name); err == nil {
			t.Errorf("ValidateTopicName(%q) = nil, want an error", name)
		}
	}
	// "/foo/" is actually caught by the empty-token rule (trailing slash
	// produces an empty final token), not a dedicated suffix check.
}

func TestValidateNodeName(t *testing.T) {
	if err := DefaultValidator.ValidateNodeName("talker"); err != nil {
		t.Fatal(err)
	}
	if err := DefaultValidator.ValidateNodeName(""); err == nil {
		t.Fatal("empty node name should be rejected")
	}
	if err := DefaultValidator.ValidateNodeName("9talker"); err == nil {
		t.Fatal("node name starting with a digit should be rejected")
	}
	if err := DefaultValidator.ValidateNodeName("tal/ker"); err == nil {
		t.Fatal("node name containing '/' should be rejected")
	}
}

func TestValidateNamespace(t *testing.T) {
	if err := DefaultValidator.ValidateNamespace(""); err != nil {
		t.Fatal("empty namespace should be accepted (process default)")
	}
	if err := DefaultValidator.ValidateNamespace("/"); err != nil {
		t.Fatal(err)
	}
	if err := DefaultValidator.ValidateNamespace("/foo/bar"); err != nil {
		t.Fatal(err)
	}
	if err := DefaultValidator.ValidateNamespace("foo/bar"); err == nil {
		t.Fatal("a relative namespace should be rejected")
	}
	if err := DefaultValidator.ValidateNamespace("/foo/bar/"); err == nil {
		t.Fatal("a namespace with a trailing slash should be rejected")
	}
}

func TestValidateEnclaveName(t *testing.T) {
	if err := ValidateEnclaveName("/my_enclave"); err != nil {
		t.Fatal(err)
	}
	if err := ValidateEnclaveName(""); err == nil {
		t.Fatal("empty enclave name should be rejected")
	}
	longName := "/" + repeatByte('a', 256)
	if err := ValidateEnclaveName(longName); err == nil {
		t.Fatal("enclave name over 255 characters should be rejected")
	}
}

func repeatByte(b byte, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return string(out)
}
