// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xgt defines the data model of the remote xGT graph server and
// the Service interface the shell talks to. The server owns all domain
// data; the shell never keeps a durable mirror, every render starts from
// a fresh query against this interface.
package xgt

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// FrameKind classifies a frame as table-like, vertex-like, or edge-like.
type FrameKind string

// The three frame kinds known to the server.
const (
	FrameTable  FrameKind = "table"
	FrameVertex FrameKind = "vertex"
	FrameEdge   FrameKind = "edge"
)

// ProbeOrder is the fixed order in which a bare frame name is resolved
// when the caller does not know its kind. The first kind whose lookup
// succeeds wins, which determines the metadata shown (edges carry
// source/target, the others do not).
var ProbeOrder = []FrameKind{FrameVertex, FrameEdge, FrameTable}

// Job statuses reported by the server. The set is open ended; the shell
// only branches on the values below.
const (
	StatusScheduled = "scheduled"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
	StatusUnknown   = "unknown_job_status"
)

// ErrFrameNotFound reports that no frame with the requested name and
// kind exists on the server.
var ErrFrameNotFound = errors.New("frame not found")

// Column is one name/type pair of a frame or result schema.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Job is a unit of query execution tracked by the server. Optional
// fields carry tagged presence: a nil pointer or empty slice means the
// server omitted the field, and renderers must probe before reading.
type Job struct {
	ID          int        `json:"id"`
	User        string     `json:"user"`
	Status      string     `json:"status"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Description string     `json:"description"`
	Schema      []Column   `json:"schema,omitempty"`

	QueryPlan         string   `json:"query_plan,omitempty"`
	VisitedEdges      []string `json:"visited_edges,omitempty"`
	TotalVisitedEdges *int64   `json:"total_visited_edges,omitempty"`
	Timing            []string `json:"timing,omitempty"`
	InternalTiming    []string `json:"internal_timing,omitempty"`
}

// Finished reports whether the job has left the scheduler, i.e. its end
// time may be read. end_time is undefined for running and scheduled jobs.
func (j Job) Finished() bool {
	return j.Status != StatusRunning && j.Status != StatusScheduled
}

// Frame describes one named dataset on the server. NumRows holds the
// kind-appropriate count (rows, vertices, or edges). Source and Target
// are set for edge frames only.
type Frame struct {
	Name    string    `json:"name"`
	Kind    FrameKind `json:"kind"`
	NumRows int64     `json:"num_rows"`
	Schema  []Column  `json:"schema,omitempty"`
	Source  string    `json:"source,omitempty"`
	Target  string    `json:"target,omitempty"`
}

// FrameLabels holds the per-operation access-control label sets of a
// frame. An empty set means the operation carries no labels.
type FrameLabels struct {
	Create []string `json:"create,omitempty"`
	Read   []string `json:"read,omitempty"`
	Update []string `json:"update,omitempty"`
	Delete []string `json:"delete,omitempty"`
}

// Empty reports whether no operation carries any label.
func (l FrameLabels) Empty() bool {
	return len(l.Create) == 0 && len(l.Read) == 0 && len(l.Update) == 0 && len(l.Delete) == 0
}

// QueryResult is the materialized result set of one query job.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// MemoryInfo reports the server's user-memory pool sizes in GiB.
type MemoryInfo struct {
	MaxGiB  float64 `json:"max_gib"`
	FreeGiB float64 `json:"free_gib"`
}

// Service is the shell's view of a connected xGT server. Implementations
// must be safe for sequential use from a single goroutine; the shell is
// single threaded and never calls concurrently.
type Service interface {
	// ServerVersion returns the version string captured at connect time.
	ServerVersion() string

	GetConfig(ctx context.Context) (map[string]any, error)
	SetConfig(ctx context.Context, settings map[string]any) error

	GetDefaultNamespace(ctx context.Context) (string, error)
	SetDefaultNamespace(ctx context.Context, namespace string) error
	GetNamespaces(ctx context.Context) ([]string, error)

	GetJobs(ctx context.Context) ([]Job, error)
	CancelJob(ctx context.Context, id int) error
	RunQuery(ctx context.Context, query string) (*QueryResult, error)

	// GetFrames lists the frames of one kind within a namespace.
	GetFrames(ctx context.Context, namespace string, kind FrameKind) ([]Frame, error)
	// GetFrame looks up a single frame by name and kind, returning
	// ErrFrameNotFound when no such frame exists.
	GetFrame(ctx context.Context, name string, kind FrameKind) (*Frame, error)
	GetFrameLabels(ctx context.Context, name string) (FrameLabels, error)
	GetFrameData(ctx context.Context, name string, offset, count int) ([][]any, error)
	DropFrame(ctx context.Context, name string) error
	DropFrames(ctx context.Context, names []string) error
	SaveFrame(ctx context.Context, name, filename string) error

	MemoryInfo(ctx context.Context) (MemoryInfo, error)
	GetUserLabels(ctx context.Context) ([]string, error)
}
