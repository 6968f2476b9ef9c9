// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"strings"

	"xgtsh/cli/internal/xgt"

	"github.com/dustin/go-humanize"
)

// kindSpec carries the per-kind vocabulary of the inventory listing.
type kindSpec struct {
	kind  xgt.FrameKind
	title string // frame type name as printed
	unit  string // counting unit
	total string // label of the running-total line
}

// showOrder fixes the listing order: tables, then vertices, then edges.
var showOrder = []kindSpec{
	{xgt.FrameTable, "TableFrame", "rows", "Total table rows over all frames"},
	{xgt.FrameVertex, "VertexFrame", "vertices", "Total vertices over all frames"},
	{xgt.FrameEdge, "EdgeFrame", "edges", "Total edges over all frames"},
}

// zapOrder fixes the deletion order: edges must go before the frames
// their endpoints live in, tables before vertices.
var zapOrder = []xgt.FrameKind{xgt.FrameEdge, xgt.FrameTable, xgt.FrameVertex}

// hidden reports whether a frame is filtered from listings: internal
// frames stay hidden unless verbose mode is on.
func (s *Session) hidden(name string) bool {
	return !s.verbose && strings.HasPrefix(name, internalFramePrefix)
}

// showNamespace prints the frame inventory of one namespace: each
// kind's frames with thousands-grouped counts and ACL annotations,
// followed by a running total that counts only the frames actually
// printed.
func (s *Session) showNamespace(namespace string) error {
	for _, spec := range showOrder {
		frames, err := s.svc.GetFrames(s.ctx, namespace, spec.kind)
		if err != nil {
			return err
		}
		var total int64
		for _, frame := range frames {
			if s.hidden(frame.Name) {
				continue
			}
			total += frame.NumRows
			acl := s.frameLabelSummary(frame.Name)
			fmt.Fprintf(s.out, "%s %s has %s %s%s\n",
				spec.title, frame.Name, humanize.Comma(frame.NumRows), spec.unit, acl)
		}
		fmt.Fprintf(s.out, "%s: %s\n", spec.total, humanize.Comma(total))
	}
	return nil
}

// showDefaultNamespaceFrames prints a grouped listing of every frame in
// the default namespace.
func (s *Session) showDefaultNamespaceFrames() error {
	namespace, err := s.svc.GetDefaultNamespace(s.ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Frames in namespace '%s':\n\n", namespace)
	found := false
	for _, spec := range showOrder {
		frames, err := s.svc.GetFrames(s.ctx, namespace, spec.kind)
		if err != nil {
			return err
		}
		printed := false
		for _, frame := range frames {
			if s.hidden(frame.Name) {
				continue
			}
			if !printed {
				fmt.Fprintf(s.out, "%s Frames:\n", strings.TrimSuffix(spec.title, "Frame"))
				printed = true
				found = true
			}
			fmt.Fprintf(s.out, "  %s (%s %s)\n", frame.Name, humanize.Comma(frame.NumRows), spec.unit)
		}
	}
	if !found {
		fmt.Fprintln(s.out, "  No frames found")
	}
	return nil
}

// frameLabelSummary renders the CRUD access labels of a frame as a
// bracketed annotation, or an empty string when no labels exist.
func (s *Session) frameLabelSummary(name string) string {
	labels, err := s.svc.GetFrameLabels(s.ctx, name)
	if err != nil {
		if s.debug {
			return fmt.Sprintf("  [Error retrieving labels: %v]", err)
		}
		return ""
	}
	if labels.Empty() {
		return ""
	}
	ops := []struct {
		name string
		set  []string
	}{
		{"create", labels.Create},
		{"read", labels.Read},
		{"update", labels.Update},
		{"delete", labels.Delete},
	}
	parts := make([]string, 0, len(ops))
	for _, op := range ops {
		if len(op.set) > 0 {
			parts = append(parts, op.name+"="+strings.Join(op.set, ","))
		}
	}
	return fmt.Sprintf("  [ACLs: %s]", strings.Join(parts, "; "))
}

// zapNamespace deletes every frame in a namespace, edges first so no
// edge ever dangles on a dropped endpoint frame.
func (s *Session) zapNamespace(namespace string) error {
	deleted := 0
	for _, kind := range zapOrder {
		frames, err := s.svc.GetFrames(s.ctx, namespace, kind)
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			continue
		}
		names := make([]string, len(frames))
		for i, frame := range frames {
			names[i] = frame.Name
		}
		if err := s.svc.DropFrames(s.ctx, names); err != nil {
			return err
		}
		if s.verbose {
			for _, frame := range frames {
				fmt.Fprintf(s.out, "%s %s deleted\n", kindTitle(kind), frame.Name)
			}
		}
		deleted += len(frames)
	}
	if deleted == 0 {
		fmt.Fprintf(s.out, "No frames found in namespace %s\n", namespace)
		return nil
	}
	fmt.Fprintf(s.out, "Deleted %d frames in namespace %s\n", deleted, namespace)
	return nil
}

func kindTitle(kind xgt.FrameKind) string {
	for _, spec := range showOrder {
		if spec.kind == kind {
			return spec.title
		}
	}
	return string(kind)
}
