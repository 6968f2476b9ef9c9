// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

// Version is the client version, overridable at build time with
// -ldflags "-X xgtsh/cli/cmd.Version=...".
var Version = "dev"
