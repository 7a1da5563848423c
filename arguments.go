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

// Flag spellings recognized inside a --ros-args ... -- block.
const (
	flagROSArgs       = "--ros-args"
	flagROSArgsEnd    = "--"
	flagRemap         = "--remap"
	flagRemapShort    = "-r"
	flagParam         = "--param"
	flagParamShort    = "-p"
	flagParamFile     = "--params-file"
	flagLogLevel      = "--log-level"
	flagLogConfigFile = "--log-config-file"

	logStdoutSuffix      = "stdout-logs"
	logRosoutSuffix      = "rosout-logs"
	logExternalLibSuffix = "external-lib-logs"

	enablePrefix  = "--enable-"
	disablePrefix = "--disable-"
)

// ParsedArguments is the output of Parse: every rule extracted from an
// argv slice, plus the leftover indices neither the ROS pipeline nor the
// caller's own flag parser claimed. It owns its slices/maps outright;
// there is no allocator to thread through as in rcl_arguments_t, since Go's
// garbage collector retires that bookkeeping.
type ParsedArguments struct {
	RemapRules         []RemapRule
	ParameterOverrides *ParameterTree
	ParameterFiles     []string
	Log                LogConfig

	// UnparsedROSArgs holds argv indices that looked like --ros-args
	// content but matched no known flag.
	UnparsedROSArgs []int
	// UnparsedAppArgs holds argv indices outside any recognized ROS
	// syntax. Index 0 (the process name) is always included here,
	// regardless of whether argv[0] happens to parse as a deprecated-form
	// rule - this is a deliberate divergence from rcl_parse_arguments,
	// which never special-cases index 0.
	UnparsedAppArgs []int

	finalized bool
}

// Copy returns a deep clone of a, the Go analogue of rcl_arguments_copy.
func (a *ParsedArguments) Copy() *ParsedArguments {
	out := &ParsedArguments{
		RemapRules:      append([]RemapRule(nil), a.RemapRules...),
		ParameterFiles:  append([]string(nil), a.ParameterFiles...),
		UnparsedROSArgs: append([]int(nil), a.UnparsedROSArgs...),
		UnparsedAppArgs: append([]int(nil), a.UnparsedAppArgs...),
	}
	out.Log = a.Log
	out.Log.PerLogger = make(map[string]Severity, len(a.Log.PerLogger))
	for k, v := range a.Log.PerLogger {
		out.Log.PerLogger[k] = v
	}
	if a.ParameterOverrides != nil {
		out.ParameterOverrides = NewParameterTree()
		out.ParameterOverrides.Merge(a.ParameterOverrides)
		for _, params := range out.ParameterOverrides.Nodes {
			for path, v := range params {
				v.ByteArray = append([]byte(nil), v.ByteArray...)
				v.BoolArray = append([]bool(nil), v.BoolArray...)
				v.IntArray = append([]int64(nil), v.IntArray...)
				v.DoubleArray = append([]float64(nil), v.DoubleArray...)
				v.StringArray = append([]string(nil), v.StringArray...)
				params[path] = v
			}
		}
	}
	return out
}

// Close marks a finalized, the way rcl_arguments_fini releases the
// underlying allocations. Go's GC means there is nothing to release, but
// the double-finalization contract (fini twice is an error) is a tested
// property in its own right, so it is preserved here.
func (a *ParsedArguments) Close() error {
	if a.finalized {
		return fmt.Errorf("%w: arguments already finalized", ErrAlreadyInit)
	}
	a.finalized = true
	return nil
}

// Parse parses argv (argv[0] conventionally the process name) into a
// ParsedArguments, following the dispatch loop in rcl_parse_arguments:
// everything between a "--ros-args" flag and a "--" end token (or end of
// argv) is ROS syntax; anything else is either a deprecated-form rule or
// an application argument.
func Parse(argv []string) (*ParsedArguments, error) {
	defer metricRecord()()

	out := &ParsedArguments{
		ParameterOverrides: NewParameterTree(),
		Log:                newLogConfig(),
	}

	if len(argv) == 0 {
		return out, nil
	}

	// argv[0] is the process name: always an application argument, a
	// deliberate divergence from the original C behavior of feeding it
	// through the deprecated-rule cascade like any other token.
	out.UnparsedAppArgs = append(out.UnparsedAppArgs, 0)

	parsingROS := false
	for i := 1; i < len(argv); i++ {
		arg := argv[i]

		if !parsingROS {
			if arg == flagROSArgs {
				parsingROS = true
				continue
			}
			if consumed, err := parseDeprecatedArg(out, arg); err != nil {
				return nil, err
			} else if !consumed {
				out.UnparsedAppArgs = append(out.UnparsedAppArgs, i)
			}
			continue
		}

		if arg == flagROSArgs {
			continue
		}
		if arg == flagROSArgsEnd {
			parsingROS = false
			continue
		}

		consumed, advance, err := parseROSFlag(out, argv, i)
		if err != nil {
			return nil, err
		}
		if consumed {
			i += advance
			continue
		}
		if suggestion, ok := suggestFlag(arg); ok {
			log().Warnw("unrecognized ros-args flag", "arg", arg, "did_you_mean", suggestion)
		}
		out.UnparsedROSArgs = append(out.UnparsedROSArgs, i)
	}

	if len(out.ParameterOverrides.Nodes) == 0 {
		out.ParameterOverrides = nil
	}
	return out, nil
}

// parseROSFlag attempts to interpret argv[i] (and, for flags that take a
// value, argv[i+1]) as one recognized --ros-args flag. advance is the
// number of extra argv slots consumed beyond argv[i] itself.
func parseROSFlag(out *ParsedArguments, argv []string, i int) (consumed bool, advance int, err error) {
	arg := argv[i]

	needValue := func(flag string) (string, error) {
		if i+1 >= len(argv) {
			return "", fmt.Errorf("%w: trailing %s flag, no value provided", ErrInvalidRosArgs, flag)
		}
		return argv[i+1], nil
	}

	switch arg {
	case flagParam, flagParamShort:
		val, verr := needValue(arg)
		if verr != nil {
			return false, 0, verr
		}
		override, perr := parseParamRule(val)
		if perr != nil {
			return false, 0, fmt.Errorf("%w: couldn't parse parameter override rule %q %q: %v",
				ErrInvalidRosArgs, arg, val, perr)
		}
		out.ParameterOverrides.Set(override)
		log().Debugw("parsed param override", "arg", val)
		return true, 1, nil

	case flagRemap, flagRemapShort:
		val, verr := needValue(arg)
		if verr != nil {
			return false, 0, verr
		}
		rule, perr := parseRemapRule(val)
		if perr != nil {
			return false, 0, fmt.Errorf("%w: couldn't parse remap rule %q %q: %v",
				ErrInvalidRosArgs, arg, val, perr)
		}
		out.RemapRules = append(out.RemapRules, rule)
		log().Debugw("parsed remap rule", "arg", val)
		return true, 1, nil

	case flagParamFile:
		val, verr := needValue(arg)
		if verr != nil {
			return false, 0, verr
		}
		tree, perr := ParseParamFile(val)
		if perr != nil {
			return false, 0, fmt.Errorf("%w: couldn't parse params file %q %q: %v",
				ErrInvalidRosArgs, arg, val, perr)
		}
		out.ParameterOverrides.Merge(tree)
		out.ParameterFiles = append(out.ParameterFiles, val)
		return true, 1, nil

	case flagLogLevel:
		val, verr := needValue(arg)
		if verr != nil {
			return false, 0, verr
		}
		entry, perr := parseLogLevelArg(val)
		if perr != nil {
			return false, 0, fmt.Errorf("%w: couldn't parse log level %q %q: %v",
				ErrInvalidRosArgs, arg, val, perr)
		}
		out.Log.apply(entry)
		return true, 1, nil

	case flagLogConfigFile:
		val, verr := needValue(arg)
		if verr != nil {
			return false, 0, verr
		}
		if out.Log.ExternalConfigFile != "" {
			log().Debugw("overriding log configuration file", "previous", out.Log.ExternalConfigFile)
		}
		out.Log.ExternalConfigFile = val
		return true, 1, nil
	}

	if ok, value := parseDisablingFlag(arg, logStdoutSuffix); ok {
		out.Log.StdoutLogsDisabled = value
		return true, 0, nil
	}
	if ok, value := parseDisablingFlag(arg, logRosoutSuffix); ok {
		out.Log.RosoutLogsDisabled = value
		return true, 0, nil
	}
	if ok, value := parseDisablingFlag(arg, logExternalLibSuffix); ok {
		out.Log.ExternalLibLogsDisabled = value
		return true, 0, nil
	}

	return false, 0, nil
}

// parseDisablingFlag recognizes "--enable-<suffix>" / "--disable-<suffix>",
// grounded on _rcl_parse_disabling_flag.
func parseDisablingFlag(arg, suffix string) (ok bool, value bool) {
	if arg == enablePrefix+suffix {
		return true, false
	}
	if arg == disablePrefix+suffix {
		return true, true
	}
	return false, false
}

// parseDeprecatedArg attempts every deprecated bare-argument form in the
// same cascade order as rcl_parse_arguments' app-mode branch: remap rule,
// parameter file, log level, then the three disable booleans. Each
// successful match emits a deprecation warning.
func parseDeprecatedArg(out *ParsedArguments, arg string) (bool, error) {
	if rule, err := parseRemapRule(arg); err == nil {
		out.RemapRules = append(out.RemapRules, rule)
		log().Warnw("deprecated remap syntax", "arg", arg, "use", flagROSArgs+" "+flagRemap+" "+arg)
		return true, nil
	}

	if tree, err := ParseParamFile(arg); err == nil {
		out.ParameterOverrides.Merge(tree)
		out.ParameterFiles = append(out.ParameterFiles, arg)
		log().Warnw("deprecated parameter file syntax", "arg", arg, "use", flagROSArgs+" "+flagParamFile+" "+arg)
		return true, nil
	}

	if entry, err := parseLogLevelArg(arg); err == nil {
		out.Log.apply(entry)
		log().Warnw("deprecated log level syntax", "arg", arg, "use", flagROSArgs+" "+flagLogLevel+" "+arg)
		return true, nil
	}

	if strings.HasPrefix(arg, "__log_disable_stdout:=") {
		v, err := parseBoolArg(strings.TrimPrefix(arg, "__log_disable_stdout:="))
		if err == nil {
			out.Log.StdoutLogsDisabled = v
			log().Warnw("deprecated log_stdout_disabled syntax", "arg", arg)
			return true, nil
		}
	}
	if strings.HasPrefix(arg, "__log_disable_rosout:=") {
		v, err := parseBoolArg(strings.TrimPrefix(arg, "__log_disable_rosout:="))
		if err == nil {
			out.Log.RosoutLogsDisabled = v
			log().Warnw("deprecated log_rosout_disabled syntax", "arg", arg)
			return true, nil
		}
	}
	if strings.HasPrefix(arg, "__log_disable_external_lib:=") {
		v, err := parseBoolArg(strings.TrimPrefix(arg, "__log_disable_external_lib:="))
		if err == nil {
			out.Log.ExternalLibLogsDisabled = v
			log().Warnw("deprecated log_ext_lib_disabled syntax", "arg", arg)
			return true, nil
		}
	}

	return false, nil
}

// parseBoolArg parses the CLI-flag boolean literal set, grounded on
// _atob: distinct from the YAML scalar boolean word list used by parameter
// values (it accepts "t"/"f"/"1"/"0" but not "on"/"off").
func parseBoolArg(s string) (bool, error) {
	switch s {
	case "T", "t", "True", "true", "Y", "y", "Yes", "yes", "1":
		return true, nil
	case "F", "f", "False", "false", "N", "n", "No", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a recognized boolean literal", ErrInvalidArgument, s)
}
