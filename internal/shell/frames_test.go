// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"reflect"
	"strings"
	"testing"

	"xgtsh/cli/internal/xgt"
)

func populateNamespace(svc *fakeService) {
	svc.frames[xgt.FrameTable] = []xgt.Frame{
		{Name: "results", Kind: xgt.FrameTable, NumRows: 1234567},
		{Name: "xgt__scratch", Kind: xgt.FrameTable, NumRows: 10},
	}
	svc.frames[xgt.FrameVertex] = []xgt.Frame{
		{Name: "people", Kind: xgt.FrameVertex, NumRows: 1000},
	}
	svc.frames[xgt.FrameEdge] = []xgt.Frame{
		{Name: "knows", Kind: xgt.FrameEdge, NumRows: 2500, Source: "people", Target: "people"},
	}
}

func TestShowHidesInternalFrames(t *testing.T) {
	svc := newFakeService()
	populateNamespace(svc)
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("show graph"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if strings.Contains(got, "xgt__scratch") {
		t.Errorf("internal frame listed: %q", got)
	}
	if !strings.Contains(got, "TableFrame results has 1,234,567 rows") {
		t.Errorf("table listing wrong: %q", got)
	}
	if !strings.Contains(got, "VertexFrame people has 1,000 vertices") {
		t.Errorf("vertex listing wrong: %q", got)
	}
	if !strings.Contains(got, "EdgeFrame knows has 2,500 edges") {
		t.Errorf("edge listing wrong: %q", got)
	}
	// Hidden frames do not contribute to the totals.
	if !strings.Contains(got, "Total table rows over all frames: 1,234,567") {
		t.Errorf("table total wrong: %q", got)
	}
}

func TestShowVerboseIncludesInternalFrames(t *testing.T) {
	svc := newFakeService()
	populateNamespace(svc)
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("verbose"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Dispatch("show graph"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "xgt__scratch") {
		t.Errorf("internal frame not listed in verbose mode: %q", got)
	}
	if !strings.Contains(got, "Total table rows over all frames: 1,234,577") {
		t.Errorf("verbose total should include internal frames: %q", got)
	}
}

func TestShowKindOrder(t *testing.T) {
	svc := newFakeService()
	populateNamespace(svc)
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("show graph"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	ti := strings.Index(got, "TableFrame")
	vi := strings.Index(got, "VertexFrame")
	ei := strings.Index(got, "EdgeFrame")
	if !(ti < vi && vi < ei) {
		t.Errorf("kinds out of order (table=%d vertex=%d edge=%d):\n%s", ti, vi, ei, got)
	}
}

func TestShowACLAnnotation(t *testing.T) {
	svc := newFakeService()
	svc.frames[xgt.FrameTable] = []xgt.Frame{{Name: "secure", Kind: xgt.FrameTable, NumRows: 1}}
	svc.labels["secure"] = xgt.FrameLabels{
		Create: []string{"admin"},
		Read:   []string{"analyst", "admin"},
	}
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("show graph"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[ACLs: create=admin; read=analyst,admin]") {
		t.Errorf("ACL annotation wrong: %q", out.String())
	}
}

func TestShowNoACLAnnotationWhenEmpty(t *testing.T) {
	svc := newFakeService()
	svc.frames[xgt.FrameTable] = []xgt.Frame{{Name: "open", Kind: xgt.FrameTable, NumRows: 1}}
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("show graph"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "ACLs") {
		t.Errorf("unexpected ACL annotation: %q", out.String())
	}
}

func TestZapDeletesInDependencyOrder(t *testing.T) {
	svc := newFakeService()
	svc.frames[xgt.FrameEdge] = []xgt.Frame{
		{Name: "knows", Kind: xgt.FrameEdge}, {Name: "likes", Kind: xgt.FrameEdge},
	}
	svc.frames[xgt.FrameTable] = []xgt.Frame{{Name: "results", Kind: xgt.FrameTable}}
	svc.frames[xgt.FrameVertex] = []xgt.Frame{
		{Name: "people", Kind: xgt.FrameVertex}, {Name: "places", Kind: xgt.FrameVertex},
		{Name: "things", Kind: xgt.FrameVertex},
	}
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("zap graph"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"knows", "likes"},
		{"results"},
		{"people", "places", "things"},
	}
	if !reflect.DeepEqual(svc.dropCalls, want) {
		t.Errorf("dropCalls = %v, want %v", svc.dropCalls, want)
	}
	if !strings.Contains(out.String(), "Deleted 6 frames in namespace graph") {
		t.Errorf("zap report wrong: %q", out.String())
	}
}

func TestZapEmptyNamespace(t *testing.T) {
	svc := newFakeService()
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("zap empty"); err != nil {
		t.Fatal(err)
	}
	if len(svc.dropCalls) != 0 {
		t.Errorf("zap issued drop calls on empty namespace: %v", svc.dropCalls)
	}
	if !strings.Contains(out.String(), "No frames found in namespace empty") {
		t.Errorf("zap report wrong: %q", out.String())
	}
}

func TestZapUsage(t *testing.T) {
	svc := newFakeService()
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("zap"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("expected usage, got %q", out.String())
	}
}

func TestShowFramesGrouped(t *testing.T) {
	svc := newFakeService()
	svc.defaultNS = "graph"
	populateNamespace(svc)
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("show_frames"); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"Frames in namespace 'graph':",
		"Table Frames:",
		"  results (1,234,567 rows)",
		"Vertex Frames:",
		"  people (1,000 vertices)",
		"Edge Frames:",
		"  knows (2,500 edges)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestShowFramesEmptyNamespace(t *testing.T) {
	svc := newFakeService()
	svc.defaultNS = "empty"
	s, out := newTestSession(svc)
	if _, err := s.Dispatch("show_frames"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No frames found") {
		t.Errorf("empty notice missing: %q", out.String())
	}
}
