// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"strings"
)

// completeNamespace is the completion callback shared by the commands
// that take a namespace argument. Candidates are the namespace names
// starting with the partial token; a disconnected session completes to
// nothing rather than failing.
func (s *Session) completeNamespace(partial, line string, start, end int) []string {
	if s.verbose {
		fmt.Fprintf(s.out, "\nnamespace_completion: text: %s, line: %s, begidx: %d, endidx: %d\n",
			partial, line, start, end)
	}
	if s.svc == nil {
		return nil
	}
	namespaces, err := s.svc.GetNamespaces(s.ctx)
	if err != nil {
		return nil
	}
	candidates := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		if strings.HasPrefix(ns, partial) {
			candidates = append(candidates, ns)
		}
	}
	return candidates
}
