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

func TestParameterTreeSetAndForNode(t *testing.T) {
	tree := NewParameterTree()
	tree.Set(ParameterOverride{NodeGlob: "/**", Path: []string{"use_sim_time"}, Value: ParamValue{Kind: ParamBool, BoolValue: true}})
	tree.Set(ParameterOverride{NodeGlob: "/talker", Path: []string{"rate"}, Value: ParamValue{Kind: ParamInt, IntValue: 10}})

	params := tree.ForNode("/talker")
	if len(params) != 2 {
		t.Fatalf("ForNode(/talker) = %v, want 2 entries", params)
	}
	if !params["use_sim_time"].BoolValue {
		t.Fatalf("use_sim_time = %+v, want true", params["use_sim_time"])
	}
	if params["rate"].IntValue != 10 {
		t.Fatalf("rate = %+v, want 10", params["rate"])
	}

	unrelated := tree.ForNode("/listener")
	if len(unrelated) != 1 {
		t.Fatalf("ForNode(/listener) = %v, want only the wildcard entry", unrelated)
	}
}

func TestParameterTreeMergeOverwritesConflicts(t *testing.T) {
	base := NewParameterTree()
	base.Set(ParameterOverride{NodeGlob: "/**", Path: []string{"rate"}, Value: ParamValue{Kind: ParamInt, IntValue: 10}})

	overlay := NewParameterTree()
	overlay.Set(ParameterOverride{NodeGlob: "/**", Path: []string{"rate"}, Value: ParamValue{Kind: ParamInt, IntValue: 20}})

	base.Merge(overlay)
	got := base.ForNode("/anything")["rate"]
	if got.IntValue != 20 {
		t.Fatalf("rate after merge = %+v, want 20 (overlay wins)", got)
	}
}

func TestParameterTreeMergeNilIsNoop(t *testing.T) {
	tree := NewParameterTree()
	tree.Set(ParameterOverride{NodeGlob: "/**", Path: []string{"a"}, Value: ParamValue{Kind: ParamBool, BoolValue: true}})
	tree.Merge(nil)
	if len(tree.ForNode("/x")) != 1 {
		t.Fatal("Merge(nil) should not change the tree")
	}
}

func TestDottedPathRoundTrip(t *testing.T) {
	path := []string{"group", "sub", "leaf"}
	key := dottedPathKey(path)
	if key != "group.sub.leaf" {
		t.Fatalf("dottedPathKey = %q", key)
	}
	got := splitDottedPath(key)
	if len(got) != len(path) {
		t.Fatalf("splitDottedPath = %v, want %v", got, path)
	}
	for i := range path {
		if got[i] != path[i] {
			t.Fatalf("splitDottedPath[%d] = %q, want %q", i, got[i], path[i])
		}
	}
}
