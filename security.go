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
	"path/filepath"
)

// Filesystem is the collaborator interface enclave resolution delegates
// directory checks to, so tests don't need a real filesystem.
type Filesystem interface {
	IsDirectory(path string) bool
	JoinPath(elems ...string) string
}

type osFilesystem struct{}

func (osFilesystem) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (osFilesystem) JoinPath(elems ...string) string {
	return filepath.Join(elems...)
}

// DefaultFilesystem is backed by the real os/filepath packages.
var DefaultFilesystem Filesystem = osFilesystem{}

// SecurityOptions is the simplified enclave/security model: unlike the
// original rcl_get_secure_root's directory-scanning exact/prefix match
// strategy (security_directory.c), this resolves a single enclave
// directory by straight concatenation of the keystore root, "enclaves",
// and the enclave path, per SPEC_FULL.md's intentional simplification.
type SecurityOptions struct {
	Enabled   bool
	Strategy  string
	Keystore  string
	Enclave   string
	RootPath  string // resolved directory, empty if security is disabled
}

// ResolveSecurityOptions reads ROS_SECURITY_ENABLE, ROS_SECURITY_STRATEGY,
// ROS_SECURITY_KEYSTORE and ROS_SECURITY_ENCLAVE_OVERRIDE from the
// environment and resolves the enclave's security root directory.
// nodeEnclave is the enclave name the node itself requested (usually its
// fully-qualified name); ROS_SECURITY_ENCLAVE_OVERRIDE, when set,
// takes precedence.
func ResolveSecurityOptions(fs Filesystem, nodeEnclave string) (SecurityOptions, error) {
	opts := SecurityOptions{
		Strategy: "Enforce",
		Enclave:  nodeEnclave,
	}

	enabled, err := parseBoolEnv("ROS_SECURITY_ENABLE", false)
	if err != nil {
		return SecurityOptions{}, err
	}
	opts.Enabled = enabled
	if !enabled {
		return opts, nil
	}

	if strategy := os.Getenv("ROS_SECURITY_STRATEGY"); strategy != "" {
		opts.Strategy = strategy
	}
	opts.Keystore = os.Getenv("ROS_SECURITY_KEYSTORE")
	if opts.Keystore == "" {
		return SecurityOptions{}, fmt.Errorf("%w: ROS_SECURITY_ENABLE is true but ROS_SECURITY_KEYSTORE is unset", ErrUnspecified)
	}

	if override := os.Getenv("ROS_SECURITY_ENCLAVE_OVERRIDE"); override != "" {
		opts.Enclave = override
	}
	if opts.Enclave == "" {
		opts.Enclave = "/"
	}
	if err := ValidateEnclaveName(opts.Enclave); err != nil {
		return SecurityOptions{}, err
	}

	opts.RootPath = fs.JoinPath(opts.Keystore, "enclaves", opts.Enclave)
	if !fs.IsDirectory(opts.RootPath) {
		if opts.Strategy == "Enforce" {
			return SecurityOptions{}, fmt.Errorf("%w: enclave directory %q does not exist", ErrUnspecified, opts.RootPath)
		}
		// Permissive strategies (e.g. "Permissive") run unsecured when the
		// directory is missing instead of failing node creation.
		opts.RootPath = ""
	}
	return opts, nil
}

func parseBoolEnv(name string, def bool) (bool, error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return def, nil
	}
	return parseBoolArg(raw)
}
