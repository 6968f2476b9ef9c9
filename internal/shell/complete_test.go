// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"reflect"
	"testing"
)

func TestCompleteNamespacePrefix(t *testing.T) {
	svc := newFakeService()
	svc.namespaces = []string{"alpha", "apex", "beta"}
	s, _ := newTestSession(svc)

	tests := []struct {
		name    string
		partial string
		want    []string
	}{
		{name: "prefix a", partial: "a", want: []string{"alpha", "apex"}},
		{name: "prefix ap", partial: "ap", want: []string{"apex"}},
		{name: "empty partial returns all", partial: "", want: []string{"alpha", "apex", "beta"}},
		{name: "no match", partial: "z", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.completeNamespace(tt.partial, "show "+tt.partial, 5, 5+len(tt.partial))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("completeNamespace(%q) = %v, want %v", tt.partial, got, tt.want)
			}
		})
	}
}

func TestCompleteNamespaceDisconnected(t *testing.T) {
	s := NewSession(nil, Options{})
	got := s.completeNamespace("a", "show a", 5, 6)
	if len(got) != 0 {
		t.Errorf("disconnected completion = %v, want empty", got)
	}
}

func TestLastToken(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "after space", line: "show gra", want: "gra"},
		{name: "after equals", line: "config set x=val", want: "val"},
		{name: "bare word", line: "show", want: "show"},
		{name: "trailing space", line: "show ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastToken(tt.line); got != tt.want {
				t.Errorf("lastToken(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
