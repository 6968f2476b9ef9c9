// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"xgtsh/cli/internal/xgt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ParseConfigValue coerces a raw config token: case-insensitive
// true/false become booleans, optionally signed integers become ints,
// anything else stays a string.
func ParseConfigValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}

func (s *Session) cmdCancel(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	fields := strings.Fields(args)
	if len(fields) < 1 {
		fmt.Fprintf(s.out, "Usage: %s cancel <job-id>\n", s.prompt)
		return false, nil
	}
	jobID, err := strconv.Atoi(fields[0])
	if err != nil {
		fmt.Fprintf(s.out, "Usage: %s cancel <job-id>\n", s.prompt)
		fmt.Fprintln(s.out, "where:  <job-id> must be an integer")
		return false, nil
	}
	return false, s.svc.CancelJob(s.ctx, jobID)
}

func (s *Session) cmdConfig(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		config, err := s.svc.GetConfig(s.ctx)
		if err != nil {
			return false, err
		}
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(s.out, "%s = %v\n", k, config[k])
		}
		return false, nil
	}
	if len(fields) == 4 && fields[0] == "set" && fields[2] == "=" {
		param := fields[1]
		value := ParseConfigValue(fields[3])
		if err := s.svc.SetConfig(s.ctx, map[string]any{param: value}); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		return false, nil
	}
	fmt.Fprintf(s.out, "Unknown config parameters: %v\n", fields)
	return false, nil
}

func (s *Session) cmdDebug(args string) (bool, error) {
	s.debug = strings.EqualFold(strings.TrimSpace(args), "on")
	return false, nil
}

func (s *Session) cmdDefaultNamespace(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	name := strings.TrimSpace(args)
	if name == "" {
		ns, err := s.svc.GetDefaultNamespace(s.ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Default namespace: %s\n", ns)
		return false, nil
	}
	return false, s.svc.SetDefaultNamespace(s.ctx, name)
}

func (s *Session) cmdDrop(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	name := strings.TrimSpace(args)
	if name == "" {
		fmt.Fprintln(s.out, "Command:  DROP <frame-name>")
		return false, nil
	}
	return false, s.svc.DropFrame(s.ctx, name)
}

func (s *Session) cmdExit(args string) (bool, error) {
	return true, nil
}

func (s *Session) cmdHelp(args string) (bool, error) {
	verb := strings.TrimSpace(args)
	if verb != "" {
		cmd, ok := s.commands[verb]
		if !ok {
			fmt.Fprintf(s.out, "No help for %s\n", verb)
			return false, nil
		}
		fmt.Fprintln(s.out, cmd.help)
		return false, nil
	}
	fmt.Fprintln(s.out, "Available commands:")
	for _, v := range s.verbs {
		fmt.Fprintf(s.out, "  %-18s %s\n", v, s.commands[v].help)
	}
	return false, nil
}

func (s *Session) cmdJob(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	fields := strings.Fields(args)
	if len(fields) < 1 || len(fields) > 2 {
		fmt.Fprintln(s.out, "Command format: job <job_id> (<end-job-number>)")
		return false, nil
	}
	startJob, err := strconv.Atoi(fields[0])
	if err != nil {
		fmt.Fprintln(s.out, "Command format: job <job_id> (<end-job-number>)")
		return false, nil
	}
	endJob := startJob
	if len(fields) > 1 {
		endJob, err = strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, "Command format: job <job_id> (<end-job-number>)")
			return false, nil
		}
	}
	jobs, err := s.svc.GetJobs(s.ctx)
	if err != nil {
		return false, err
	}
	s.renderJobRange(startJob, endJob, jobs)
	return false, nil
}

func (s *Session) cmdJobs(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	jobs, err := s.svc.GetJobs(s.ctx)
	if err != nil {
		return false, err
	}
	state := strings.TrimSpace(args)
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	for _, job := range jobs {
		if state == "" || job.Status == state {
			fmt.Fprintf(s.out, "%3d: %s\n", job.ID, jobSummary(job))
		}
	}
	return false, nil
}

func (s *Session) cmdMemory(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	mem, err := s.svc.MemoryInfo(s.ctx)
	if err != nil {
		return false, err
	}
	footprint := mem.MaxGiB - mem.FreeGiB
	fmt.Fprintf(s.out, "Current RAM footprint: %s GiB used out of %s GiB available.\n",
		humanize.CommafWithDigits(footprint, 3), humanize.CommafWithDigits(mem.MaxGiB, 3))
	return false, nil
}

func (s *Session) cmdNamespaces(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	namespaces, err := s.svc.GetNamespaces(s.ctx)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, strings.Join(namespaces, ", "))
	return false, nil
}

func (s *Session) cmdQuery(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	result, err := s.svc.RunQuery(s.ctx, args)
	if err != nil {
		return false, err
	}
	renderTable(s.out, result)
	return false, nil
}

func (s *Session) cmdSave(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	fields := strings.Fields(args)
	if len(fields) != 2 {
		fmt.Fprintf(s.out, "Usage: %s save <frame-name> <filename>\n", s.prompt)
		return false, nil
	}
	frameName, filename := fields[0], fields[1]
	if _, err := s.resolveFrame(frameName); err != nil {
		if errors.Is(err, xgt.ErrFrameNotFound) {
			fmt.Fprintf(s.out, "Frame %s does not exist\n", frameName)
			return false, nil
		}
		return false, err
	}
	return false, s.svc.SaveFrame(s.ctx, frameName, filename)
}

func (s *Session) cmdSchema(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	frameName := strings.TrimSpace(args)
	fmt.Fprintf(s.out, "Showing schema of frame %s\n", frameName)
	frame, err := s.resolveFrame(frameName)
	if err != nil {
		if errors.Is(err, xgt.ErrFrameNotFound) {
			fmt.Fprintf(s.out, "Frame %s does not exist\n", frameName)
			return false, nil
		}
		return false, err
	}
	fmt.Fprintf(s.out, "Schema: %s\n", formatSchema(frame.Schema))
	if frame.Kind == xgt.FrameEdge {
		fmt.Fprintf(s.out, "Source frame: %s, Target frame: %s\n", frame.Source, frame.Target)
	}
	return false, nil
}

func (s *Session) cmdScroll(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	frameName := strings.TrimSpace(args)
	frame, err := s.resolveFrame(frameName)
	if err != nil {
		if errors.Is(err, xgt.ErrFrameNotFound) {
			fmt.Fprintf(s.out, "Frame %s does not exist\n", frameName)
			return false, nil
		}
		return false, err
	}
	rows, err := s.svc.GetFrameData(s.ctx, frame.Name, 0, 20)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, "Data:")
	for _, row := range rows {
		fmt.Fprintln(s.out, formatRow(row))
	}
	return false, nil
}

func (s *Session) cmdShow(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	fields := strings.Fields(args)
	if len(fields) != 1 {
		fmt.Fprintf(s.out, "Usage: %s show <namespace>\n", s.prompt)
		return false, nil
	}
	return false, s.showNamespace(fields[0])
}

func (s *Session) cmdShowFrames(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	return false, s.showDefaultNamespaceFrames()
}

func (s *Session) cmdUserLabels(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	labels, err := s.svc.GetUserLabels(s.ctx)
	if err != nil {
		return false, errors.Wrap(err, "retrieving user labels")
	}
	if len(labels) == 0 {
		fmt.Fprintln(s.out, "User has no security labels")
		return false, nil
	}
	fmt.Fprintln(s.out, "User security labels:")
	for _, label := range labels {
		fmt.Fprintf(s.out, "  %s\n", label)
	}
	return false, nil
}

func (s *Session) cmdVerbose(args string) (bool, error) {
	fields := strings.Fields(args)
	s.verbose = len(fields) < 1 || !strings.EqualFold(fields[0], "off")
	return false, nil
}

func (s *Session) cmdVersion(args string) (bool, error) {
	fmt.Fprintf(s.out, "Client version: %s\n", s.clientVersion)
	if s.svc == nil {
		fmt.Fprintln(s.out, "Server is not connected")
		return false, nil
	}
	fmt.Fprintf(s.out, "Server version: %s\n", s.svc.ServerVersion())
	return false, nil
}

func (s *Session) cmdZap(args string) (bool, error) {
	if !s.connected() {
		return false, nil
	}
	fields := strings.Fields(args)
	if len(fields) != 1 {
		fmt.Fprintf(s.out, "Usage: %s zap <namespace>\n", s.prompt)
		return false, nil
	}
	return false, s.zapNamespace(fields[0])
}

// resolveFrame looks a bare frame name up by trying each kind in the
// fixed probe order, short-circuiting on the first hit.
func (s *Session) resolveFrame(name string) (*xgt.Frame, error) {
	for _, kind := range xgt.ProbeOrder {
		frame, err := s.svc.GetFrame(s.ctx, name, kind)
		if err == nil {
			return frame, nil
		}
		if !errors.Is(err, xgt.ErrFrameNotFound) {
			return nil, err
		}
	}
	return nil, xgt.ErrFrameNotFound
}

func formatSchema(schema []xgt.Column) string {
	parts := make([]string, len(schema))
	for i, col := range schema {
		parts[i] = col.Name + ":" + col.Type
	}
	return strings.Join(parts, ", ")
}

func formatRow(row []any) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = formatCell(v)
	}
	return strings.Join(parts, ", ")
}
