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
	"sync/atomic"
)

const defaultDomainID = 0

// instanceIDCounter is the process-wide atomic instance-id counter: init=1,
// fetch-and-increment, wraparound to 0 reported as exhausted. Grounded on
// rcl's use of an atomic uint64 shared across every rcl_init_options_t.
var instanceIDCounter = func() *atomic.Uint64 {
	var c atomic.Uint64
	c.Store(1)
	return &c
}()

// nextInstanceID returns the next process-wide instance id, or
// ErrInstanceIDsExhausted once the counter has wrapped around to zero.
func nextInstanceID() (uint64, error) {
	id := instanceIDCounter.Add(1) - 1
	if id == 0 {
		return 0, ErrInstanceIDsExhausted
	}
	return id, nil
}

// DomainID reads ROS_DOMAIN_ID, grounded on rcl_get_default_domain_id in
// domain_id.c: an unsigned integer, defaulting when unset or empty, and
// erroring on a non-numeric or out-of-range value.
func DomainID() (uint64, error) {
	raw, ok := os.LookupEnv("ROS_DOMAIN_ID")
	if !ok || raw == "" {
		return defaultDomainID, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, fmt.Errorf("%w: ROS_DOMAIN_ID is out of range", ErrUnspecified)
		}
		return 0, fmt.Errorf("%w: ROS_DOMAIN_ID is not an integral number", ErrUnspecified)
	}
	return id, nil
}

// LocalhostOnly reads ROS_LOCALHOST_ONLY using the same boolean literal
// set as the deprecated __log_disable_*:= arguments (parseBoolArg, after
// _atob), defaulting to false.
func LocalhostOnly() (bool, error) {
	raw, ok := os.LookupEnv("ROS_LOCALHOST_ONLY")
	if !ok || raw == "" {
		return false, nil
	}
	return parseBoolArg(raw)
}

// Context composes everything a node needs at init time: the parsed
// process-wide arguments, the resolved domain id, the localhost-only
// toggle, security options, and a unique instance id - mirroring
// rcl_context_t / rcl_init_options_t.
type Context struct {
	Args          *ParsedArguments
	DomainID      uint64
	LocalhostOnly bool
	Security      SecurityOptions
	InstanceID    uint64

	finalized bool
}

// NewContext builds a Context from argv and the process environment.
func NewContext(argv []string) (*Context, error) {
	args, err := Parse(argv)
	if err != nil {
		return nil, err
	}
	domainID, err := DomainID()
	if err != nil {
		return nil, err
	}
	localhostOnly, err := LocalhostOnly()
	if err != nil {
		return nil, err
	}
	security, err := ResolveSecurityOptions(DefaultFilesystem, "")
	if err != nil {
		return nil, err
	}
	instanceID, err := nextInstanceID()
	if err != nil {
		return nil, err
	}
	return &Context{
		Args:          args,
		DomainID:      domainID,
		LocalhostOnly: localhostOnly,
		Security:      security,
		InstanceID:    instanceID,
	}, nil
}

// Close finalizes a Context, rejecting a second call the way rcl_shutdown
// followed by a second rcl_context_fini would (RCL_RET_ALREADY_SHUTDOWN-
// like double-fini detection, expressed here as ErrAlreadyInit).
func (c *Context) Close() error {
	if c.finalized {
		return fmt.Errorf("%w: context already finalized", ErrAlreadyInit)
	}
	c.finalized = true
	if c.Args != nil && !c.Args.finalized {
		return c.Args.Close()
	}
	return nil
}

// RemapRules returns the context's remap rules, the kind of accessor
// rcl_arguments_t exposes instead of its raw impl. The returned slice is
// the one held by Args, not a copy.
func (c *Context) RemapRules() []RemapRule {
	return c.Args.RemapRules
}

// ParameterOverrides returns the context's accumulated parameter tree,
// which may be nil if no -p flag or --params-file was given.
func (c *Context) ParameterOverrides() *ParameterTree {
	return c.Args.ParameterOverrides
}
