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

func TestParseArgv0AlwaysAppArg(t *testing.T) {
	// argv[0] looks like a valid remap rule, but must still land in
	// UnparsedAppArgs rather than being consumed as a rule: the deliberate
	// divergence from the deprecated-rule cascade.
	parsed, err := Parse([]string{"/foo:=/bar"})
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.UnparsedAppArgs) != 1 || parsed.UnparsedAppArgs[0] != 0 {
		t.Fatalf("UnparsedAppArgs = %v, want [0]", parsed.UnparsedAppArgs)
	}
	if len(parsed.RemapRules) != 0 {
		t.Fatalf("RemapRules = %v, want none (argv[0] must not be parsed as a rule)", parsed.RemapRules)
	}
}

func TestParseEmptyArgv(t *testing.T) {
	parsed, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.UnparsedAppArgs) != 0 {
		t.Fatalf("UnparsedAppArgs = %v, want empty for a nil argv", parsed.UnparsedAppArgs)
	}
}

func TestParseRosArgsRemapAndParam(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "-r", "/foo:=/bar", "-p", "rate:=10", "--"})
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.RemapRules) != 1 || parsed.RemapRules[0].Match != "/foo" || parsed.RemapRules[0].Replacement != "/bar" {
		t.Fatalf("RemapRules = %+v", parsed.RemapRules)
	}
	params := parsed.ParameterOverrides.ForNode("/anything")
	if params["rate"].IntValue != 10 {
		t.Fatalf("rate = %+v", params["rate"])
	}
}

func TestParseRosArgsTrailingAppArgsAfterEnd(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "-r", "/foo:=/bar", "--", "extra"})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, idx := range parsed.UnparsedAppArgs {
		if idx == 5 {
			found = true
		}
	}
	if !found {
		t.Fatalf("UnparsedAppArgs = %v, want index 5 (\"extra\") included", parsed.UnparsedAppArgs)
	}
}

func TestParseRosArgsUnknownFlagIsUnparsed(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "--not-a-real-flag", "--"})
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.UnparsedROSArgs) != 1 || parsed.UnparsedROSArgs[0] != 2 {
		t.Fatalf("UnparsedROSArgs = %v, want [2]", parsed.UnparsedROSArgs)
	}
}

func TestParseRosArgsMissingValueErrors(t *testing.T) {
	if _, err := Parse([]string{"prog", "--ros-args", "-r"}); err == nil {
		t.Fatal("expected an error for a trailing -r with no value")
	}
}

func TestParseRosArgsLogLevel(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "--log-level", "talker:=DEBUG", "--"})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Log.PerLogger["talker"] != SeverityDebug {
		t.Fatalf("PerLogger[talker] = %v, want SeverityDebug", parsed.Log.PerLogger["talker"])
	}
}

func TestParseRosArgsDefaultLogLevel(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "--log-level", "WARN", "--"})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Log.DefaultLevel != SeverityWarn {
		t.Fatalf("DefaultLevel = %v, want SeverityWarn", parsed.Log.DefaultLevel)
	}
}

func TestParseRosArgsEnableDisableFlags(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "--disable-stdout-logs", "--enable-rosout-logs", "--"})
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Log.StdoutLogsDisabled {
		t.Fatal("StdoutLogsDisabled should be true after --disable-stdout-logs")
	}
	if parsed.Log.RosoutLogsDisabled {
		t.Fatal("RosoutLogsDisabled should be false after --enable-rosout-logs")
	}
}

func TestParseDeprecatedBareRemap(t *testing.T) {
	parsed, err := Parse([]string{"prog", "/foo:=/bar"})
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.RemapRules) != 1 || parsed.RemapRules[0].Match != "/foo" {
		t.Fatalf("RemapRules = %+v, want the bare rule picked up by the deprecated cascade", parsed.RemapRules)
	}
}

func TestParseDeprecatedBareLogDisable(t *testing.T) {
	parsed, err := Parse([]string{"prog", "__log_disable_stdout:=true"})
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Log.StdoutLogsDisabled {
		t.Fatal("StdoutLogsDisabled should be true from the deprecated bare form")
	}
}

func TestParseUnrecognizedAppArgPassesThrough(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--some-app-flag", "value"})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2}
	if len(parsed.UnparsedAppArgs) != len(want) {
		t.Fatalf("UnparsedAppArgs = %v, want %v", parsed.UnparsedAppArgs, want)
	}
	for i, idx := range want {
		if parsed.UnparsedAppArgs[i] != idx {
			t.Fatalf("UnparsedAppArgs = %v, want %v", parsed.UnparsedAppArgs, want)
		}
	}
}

func TestParseNoParameterOverridesLeavesTreeNil(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--some-app-flag"})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.ParameterOverrides != nil {
		t.Fatalf("ParameterOverrides = %+v, want nil when no overrides were parsed", parsed.ParameterOverrides)
	}
}

func TestParsedArgumentsCloseTwiceErrors(t *testing.T) {
	parsed, err := Parse([]string{"prog"})
	if err != nil {
		t.Fatal(err)
	}
	if err := parsed.Close(); err != nil {
		t.Fatal(err)
	}
	if err := parsed.Close(); err == nil {
		t.Fatal("expected an error closing an already-finalized ParsedArguments")
	}
}

func TestParsedArgumentsCopyIsIndependent(t *testing.T) {
	parsed, err := Parse([]string{"prog", "--ros-args", "-r", "/foo:=/bar", "-p", "rate:=10", "--"})
	if err != nil {
		t.Fatal(err)
	}
	dup := parsed.Copy()
	dup.RemapRules[0].Replacement = "/mutated"
	if parsed.RemapRules[0].Replacement == "/mutated" {
		t.Fatal("Copy should deep-copy RemapRules, not alias them")
	}
	dup.ParameterOverrides.Set(ParameterOverride{NodeGlob: "/**", Path: []string{"rate"}, Value: ParamValue{Kind: ParamInt, IntValue: 99}})
	if parsed.ParameterOverrides.ForNode("/x")["rate"].IntValue == 99 {
		t.Fatal("Copy should deep-copy ParameterOverrides, not alias them")
	}
}

func TestParseBoolArgLiterals(t *testing.T) {
	for _, s := range []string{"T", "t", "True", "true", "Y", "y", "Yes", "yes", "1"} {
		v, err := parseBoolArg(s)
		if err != nil || !v {
			t.Errorf("parseBoolArg(%q) = (%v, %v), want (true, nil)", s, v, err)
		}
	}
	for _, s := range []string{"F", "f", "False", "false", "N", "n", "No", "no", "0"} {
		v, err := parseBoolArg(s)
		if err != nil || v {
			t.Errorf("parseBoolArg(%q) = (%v, %v), want (false, nil)", s, v, err)
		}
	}
	if _, err := parseBoolArg("maybe"); err == nil {
		t.Fatal("expected an error for an unrecognized boolean literal")
	}
}
