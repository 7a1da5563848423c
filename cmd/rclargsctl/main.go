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

// rclargsctl is a small inspection tool over the argument-and-remap core:
// given an argv tail, it prints the remap rules, parameter overrides and
// log configuration Parse extracted from it.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ros2go/rclargs"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rclargsctl",
		Short: "Inspect how rclargs parses a ROS-style argv",
	}

	parseCmd := &cobra.Command{
		Use:   "parse -- [argv...]",
		Short: "Parse an argv tail and print the resulting rules as JSON",
		RunE:  runParse,
	}
	rootCmd.AddCommand(parseCmd)

	expandCmd := &cobra.Command{
		Use:   "expand <topic> <node> <namespace>",
		Short: "Expand a topic name relative to a node name and namespace",
		Args:  cobra.ExactArgs(3),
		RunE:  runExpand,
	}
	rootCmd.AddCommand(expandCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rclargsctl:", err)
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	argv := append([]string{"rclargsctl"}, args...)
	parsed, err := rclargs.Parse(argv)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}

func runExpand(cmd *cobra.Command, args []string) error {
	topic, node, ns := args[0], args[1], args[2]
	expanded, err := rclargs.ExpandTopicName(topic, rclargs.ExpandOptions{
		NodeName:      node,
		NodeNamespace: ns,
	})
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}
	fmt.Println(expanded)
	return nil
}
