// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"context"

	"xgtsh/cli/internal/xgt"
)

// fakeService is an in-memory xgt.Service that records mutating calls.
type fakeService struct {
	version    string
	config     map[string]any
	defaultNS  string
	namespaces []string
	jobs       []xgt.Job
	frames     map[xgt.FrameKind][]xgt.Frame
	labels     map[string]xgt.FrameLabels
	frameData  map[string][][]any
	memory     xgt.MemoryInfo
	userLabels []string
	result     *xgt.QueryResult

	setConfigCalls []map[string]any
	cancelCalls    []int
	dropCalls      [][]string
	savedFrames    []string
	queries        []string

	err error // returned by every call when set
}

func newFakeService() *fakeService {
	return &fakeService{
		version:   "2.0.9",
		config:    map[string]any{},
		frames:    map[xgt.FrameKind][]xgt.Frame{},
		labels:    map[string]xgt.FrameLabels{},
		frameData: map[string][][]any{},
	}
}

func (f *fakeService) ServerVersion() string { return f.version }

func (f *fakeService) GetConfig(ctx context.Context) (map[string]any, error) {
	return f.config, f.err
}

func (f *fakeService) SetConfig(ctx context.Context, settings map[string]any) error {
	if f.err != nil {
		return f.err
	}
	f.setConfigCalls = append(f.setConfigCalls, settings)
	for k, v := range settings {
		f.config[k] = v
	}
	return nil
}

func (f *fakeService) GetDefaultNamespace(ctx context.Context) (string, error) {
	return f.defaultNS, f.err
}

func (f *fakeService) SetDefaultNamespace(ctx context.Context, namespace string) error {
	if f.err != nil {
		return f.err
	}
	f.defaultNS = namespace
	return nil
}

func (f *fakeService) GetNamespaces(ctx context.Context) ([]string, error) {
	return f.namespaces, f.err
}

func (f *fakeService) GetJobs(ctx context.Context) ([]xgt.Job, error) {
	return f.jobs, f.err
}

func (f *fakeService) CancelJob(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.cancelCalls = append(f.cancelCalls, id)
	return nil
}

func (f *fakeService) RunQuery(ctx context.Context, query string) (*xgt.QueryResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, query)
	return f.result, nil
}

func (f *fakeService) GetFrames(ctx context.Context, namespace string, kind xgt.FrameKind) ([]xgt.Frame, error) {
	return f.frames[kind], f.err
}

func (f *fakeService) GetFrame(ctx context.Context, name string, kind xgt.FrameKind) (*xgt.Frame, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, frame := range f.frames[kind] {
		if frame.Name == name {
			fr := frame
			return &fr, nil
		}
	}
	return nil, xgt.ErrFrameNotFound
}

func (f *fakeService) GetFrameLabels(ctx context.Context, name string) (xgt.FrameLabels, error) {
	return f.labels[name], f.err
}

func (f *fakeService) GetFrameData(ctx context.Context, name string, offset, count int) ([][]any, error) {
	return f.frameData[name], f.err
}

func (f *fakeService) DropFrame(ctx context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	f.dropCalls = append(f.dropCalls, []string{name})
	return nil
}

func (f *fakeService) DropFrames(ctx context.Context, names []string) error {
	if f.err != nil {
		return f.err
	}
	f.dropCalls = append(f.dropCalls, names)
	return nil
}

func (f *fakeService) SaveFrame(ctx context.Context, name, filename string) error {
	if f.err != nil {
		return f.err
	}
	f.savedFrames = append(f.savedFrames, name+" "+filename)
	return nil
}

func (f *fakeService) MemoryInfo(ctx context.Context) (xgt.MemoryInfo, error) {
	return f.memory, f.err
}

func (f *fakeService) GetUserLabels(ctx context.Context) ([]string, error) {
	return f.userLabels, f.err
}

var _ xgt.Service = (*fakeService)(nil)
