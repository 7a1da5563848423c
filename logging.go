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
	"sync"

	"go.uber.org/zap"
)

// Severity mirrors RCUTILS_LOG_SEVERITY.
type Severity int

const (
	SeverityUnset Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

var severityNames = map[string]Severity{
	"UNSET": SeverityUnset,
	"DEBUG": SeverityDebug,
	"INFO":  SeverityInfo,
	"WARN":  SeverityWarn,
	"ERROR": SeverityError,
	"FATAL": SeverityFatal,
}

func (s Severity) String() string {
	for name, v := range severityNames {
		if v == s {
			return name
		}
	}
	return "UNKNOWN"
}

// ParseSeverity parses a case-insensitive severity name, the way
// rcutils_logging_severity_level_from_string does.
func ParseSeverity(s string) (Severity, error) {
	if sev, ok := severityNames[strings.ToUpper(s)]; ok {
		return sev, nil
	}
	return SeverityUnset, fmt.Errorf("%w: unknown severity %q", ErrInvalidLogLevel, s)
}

// LoggerLevel is one "[logger-name:=]severity" entry from a --log-level
// flag. An empty LoggerName sets the process default level.
type LoggerLevel struct {
	LoggerName string
	Severity   Severity
}

// parseLogLevelArg parses one --log-level value (or deprecated bare rule),
// grounded on _rcl_parse_log_level / _rcl_parse_log_level_rule in
// arguments.c: either "<severity>" or "<logger-name>:=<severity>".
func parseLogLevelArg(arg string) (LoggerLevel, error) {
	if idx := strings.Index(arg, ":="); idx >= 0 {
		name := arg[:idx]
		if name == "" {
			return LoggerLevel{}, fmt.Errorf("%w: empty logger name in %q", ErrInvalidLogLevelRule, arg)
		}
		sev, err := ParseSeverity(arg[idx+2:])
		if err != nil {
			return LoggerLevel{}, fmt.Errorf("%w: %v", ErrInvalidLogLevelRule, err)
		}
		return LoggerLevel{LoggerName: name, Severity: sev}, nil
	}
	sev, err := ParseSeverity(arg)
	if err != nil {
		return LoggerLevel{}, fmt.Errorf("%w: %v", ErrInvalidLogLevelRule, err)
	}
	return LoggerLevel{Severity: sev}, nil
}

// LogConfig collects everything the argument pipeline accumulates about
// logging: the default severity, one override per named logger (later
// --log-level flags for the same logger overwrite earlier ones, per the
// resolved Open Question in SPEC_FULL.md), the external logging
// configuration file, and the three stdout/rosout/external-lib disable
// toggles.
type LogConfig struct {
	DefaultLevel          Severity
	PerLogger             map[string]Severity
	ExternalConfigFile    string
	StdoutLogsDisabled    bool
	RosoutLogsDisabled    bool
	ExternalLibLogsDisabled bool
}

func newLogConfig() LogConfig {
	return LogConfig{DefaultLevel: SeverityUnset, PerLogger: map[string]Severity{}}
}

func (c *LogConfig) apply(entry LoggerLevel) {
	if entry.LoggerName == "" {
		c.DefaultLevel = entry.Severity
		return
	}
	c.PerLogger[entry.LoggerName] = entry.Severity
}

var (
	loggerOnce sync.Once
	logger     *zap.SugaredLogger
)

// log returns the package-wide structured logger, named the way rcl's
// RCUTILS_LOG_*_NAMED macros tag every message with a component name.
func log() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		base, err := zap.NewProduction()
		if err != nil {
			base = zap.NewNop()
		}
		logger = base.Sugar().Named("rclargs")
	})
	return logger
}

// SetLogger overrides the package-wide logger, for callers that already
// have their own zap.Logger (embedding applications, tests). Safe to call
// before or after the first log() call: it consumes loggerOnce itself so a
// later lazy init in log() never clobbers an explicitly set logger.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	logger = l.Sugar().Named("rclargs")
}
