// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"xgtsh/cli/internal/xgt"

	"github.com/hako/durafmt"
)

// jobTimeLayout renders job timestamps to the second.
const jobTimeLayout = "2006-01-02 15:04:05"

// renderJobRange prints the detail report for every job in the
// inclusive id range [start, end] that exists in jobs, ascending. Ids
// absent from the job set are skipped without a message.
func (s *Session) renderJobRange(start, end int, jobs []xgt.Job) {
	byID := make(map[int]xgt.Job, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}
	for id := start; id <= end; id++ {
		job, ok := byID[id]
		if !ok {
			continue
		}
		renderJob(s.out, job)
	}
}

// renderJob emits one job block. The field order is fixed and each
// field prints only when applicable: a running job shows its start time
// only, a finished job shows start, end, and duration, and a scheduled
// or unknown-status job shows no timing block at all.
func renderJob(w io.Writer, job xgt.Job) {
	fmt.Fprintf(w, "Job #%d, username: %s, status %s:\n", job.ID, job.User, job.Status)

	switch {
	case job.Status == xgt.StatusRunning:
		if job.StartTime != nil {
			fmt.Fprintf(w, "  start time: %s\n", job.StartTime.Format(jobTimeLayout))
		}
	case job.Finished() && job.Status != xgt.StatusUnknown:
		if job.StartTime != nil && job.EndTime != nil {
			duration := job.EndTime.Sub(*job.StartTime)
			fmt.Fprintf(w, "    start time: %s\n", job.StartTime.Format(jobTimeLayout))
			fmt.Fprintf(w, "      end time: %s\n", job.EndTime.Format(jobTimeLayout))
			fmt.Fprintf(w, "      duration: %s\n", formatDuration(duration))
		}
	}

	if len(job.Description) > 0 {
		fmt.Fprintf(w, "   description: %s\n", job.Description)
	}
	if len(job.QueryPlan) > 0 {
		fmt.Fprintf(w, "   query plan: %s\n", job.QueryPlan)
	}
	if len(job.VisitedEdges) > 0 {
		fmt.Fprintf(w, " visited edges: %s\n", strings.Join(job.VisitedEdges, ", "))
	}
	if job.TotalVisitedEdges != nil {
		fmt.Fprintf(w, " total visited: %d\n", *job.TotalVisitedEdges)
	}
	if len(job.Timing) > 0 {
		fmt.Fprintln(w, "        timing:")
		for _, line := range job.Timing {
			fmt.Fprintln(w, line)
		}
	}
	if len(job.InternalTiming) > 0 {
		fmt.Fprintln(w, "       _timing:")
		for _, line := range job.InternalTiming {
			fmt.Fprintln(w, line)
		}
	}
	if len(job.Schema) > 0 {
		fmt.Fprintf(w, "       schema: %s\n", formatSchema(job.Schema))
	}
}

// jobSummary is the one-line form used by the jobs listing.
func jobSummary(job xgt.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "user %s, status %s", job.User, job.Status)
	if job.StartTime != nil {
		fmt.Fprintf(&b, ", started %s", job.StartTime.Format(jobTimeLayout))
	}
	if len(job.Description) > 0 {
		fmt.Fprintf(&b, ", %s", job.Description)
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	return durafmt.Parse(d.Round(time.Millisecond)).String()
}
