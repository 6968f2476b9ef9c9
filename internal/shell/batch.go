// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// RunQueryOnce executes a single query and renders its result set in
// the requested format: table (column-aligned), json (pretty-printed
// array), or csv (header row plus comma-separated rows).
func (s *Session) RunQueryOnce(query, format string) error {
	if s.svc == nil {
		return errors.New("Not connected to a server")
	}
	result, err := s.svc.RunQuery(s.ctx, query)
	if err != nil {
		return errors.Wrap(err, "executing query")
	}
	switch format {
	case "json":
		return renderJSON(s.out, result)
	case "csv":
		return renderCSV(s.out, result)
	default:
		renderTable(s.out, result)
		return nil
	}
}

// RunCommandOnce dispatches a single command line exactly like the
// interactive loop, then returns. An unknown verb is an error so the
// process can exit nonzero.
func (s *Session) RunCommandOnce(commandLine string) error {
	if s.svc == nil {
		return errors.New("Not connected to a server")
	}
	_, err := s.Dispatch(commandLine)
	return err
}

// RunScript executes commands from a file, one per line. Blank lines
// and comment lines starting with # are skipped. Per-line errors are
// reported with their 1-based line number and processing continues; an
// explicit termination signal from a handler stops the script.
func (s *Session) RunScript(filename string) error {
	if s.svc == nil {
		return errors.New("Not connected to a server")
	}
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("File not found: %s", filename)
		}
		return errors.Wrapf(err, "reading file %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := s.Dispatch(line)
		if err != nil {
			if _, ok := err.(*UnknownCommandError); ok {
				fmt.Fprintf(s.errOut, "Line %d: %v\n", lineNum, err)
			} else {
				fmt.Fprintf(s.errOut, "Line %d: Error executing '%s': %v\n", lineNum, line, err)
			}
			continue
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading file %s", filename)
	}
	return nil
}
