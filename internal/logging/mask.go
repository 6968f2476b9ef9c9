// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure diagnostics: masking
// credentials in messages shown to the user and presenting gRPC errors
// in a friendly form.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)(password=|--pw[= ])(\S+)`)
	reBasic    = regexp.MustCompile(`(?i)(basic\s+)([A-Za-z0-9+/=._-]+)`)
	reUserPass = regexp.MustCompile(`(?i)(://)([^:/@\s]+):([^@\s]+)(@)`)
)

// Mask replaces credential material in the input string with "*".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reBasic.ReplaceAllString(out, "$1***")
	out = reUserPass.ReplaceAllString(out, "$1*:*$4")
	return out
}
