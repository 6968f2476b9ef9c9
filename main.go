// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the xgtsh command-line console.
// It provides an interactive and non-interactive shell for driving a
// remote xGT graph-database server.
package main

import (
	"xgtsh/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
