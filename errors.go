// Copyright 2018 Open Source Robotics Foundation, Inc.
// Copyright 2016 Google Inc. All Rights Reserved.
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

import "errors"

// Sentinel errors mirroring the rcl_ret_t taxonomy. Callers should use
// errors.Is against these; the wrapping fmt.Errorf calls throughout this
// package attach the human-readable context a caller needs to act on them.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrAlreadyInit          = errors.New("already initialized")
	ErrNotInit              = errors.New("not initialized")
	ErrInvalidRosArgs       = errors.New("invalid ros arguments")
	ErrInvalidRemapRule     = errors.New("invalid remap rule")
	ErrInvalidParamRule     = errors.New("invalid parameter rule")
	ErrInvalidLogLevel      = errors.New("invalid log level")
	ErrInvalidLogLevelRule  = errors.New("invalid log level rule")
	ErrTopicNameInvalid     = errors.New("invalid topic name")
	ErrServiceNameInvalid   = errors.New("invalid service name")
	ErrNodeInvalidName      = errors.New("invalid node name")
	ErrNodeInvalidNamespace = errors.New("invalid node namespace")
	ErrUnknownSubstitution  = errors.New("unknown substitution")
	ErrEnclaveInvalid       = errors.New("invalid enclave name")
	ErrEnclaveTooLong       = errors.New("enclave name too long")
	ErrWrongLexeme          = errors.New("wrong lexeme")
	ErrInstanceIDsExhausted = errors.New("instance ids exhausted")
	ErrUnspecified          = errors.New("unspecified error")

	// ErrNotImplemented mirrors the original's NotImplemented result for
	// rule features that are recognized by the lexer but have no match
	// semantics yet, namely remap backreferences ("\1".."\9").
	ErrNotImplemented = errors.New("not implemented")

	// ErrBadAlloc mirrors RCL_RET_BAD_ALLOC. Go allocation failures panic
	// rather than return an error, so this sentinel exists only so that
	// ports of the original error taxonomy have something to point at; it
	// is never produced by this package.
	ErrBadAlloc = errors.New("allocation failed")
)
