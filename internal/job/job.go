// Package job defines the Job contract the worker runs, plus a few concrete
// implementations: a closure adapter, a subprocess runner, and a randomized
// demo job used by the worker's own tests.
//
// The contract deliberately says nothing about how a job does its work or
// what its payload looks like. That is the domain object's business, not
// the worker's. The worker only needs run/kill/identity/logging.
package job

import (
	"context"

	"github.com/plynxio/worker/pkg/types"
)

// Status is the outcome of a finished Job.Run.
type Status string

const (
	// Success means the job completed without error.
	Success Status = "SUCCESS"
	// Failed means the job completed with an error, or panicked/errored out.
	Failed Status = "FAILED"
)

// LogSink is where a job's worker-attributed log ends up. ResourceID is
// assigned by the worker after a crash-log upload; zero value means nothing
// has been uploaded for this sink yet.
type LogSink struct {
	Name       string
	ResourceID string
}

// Job is the external collaborator the runner loop drives. Run blocks until
// the job finishes or ctx is cancelled; Kill is async and idempotent. It
// may be called zero, one, or (racily) more than once for the same Job.
type Job interface {
	// NodeID identifies the underlying node this job executes, for logging.
	NodeID() string

	// Run executes the job to completion. It may return an error instead of
	// (or in addition to) a non-nil error from the caller's perspective;
	// the runner treats any error as Failed.
	Run(ctx context.Context) error

	// Kill asks a running job to stop. It must be safe to call multiple
	// times and must not block waiting for Run to return.
	Kill()

	// LogByName returns the mutable log sink the worker should attach a
	// crash-log resource ID to, creating it if this is the first time the
	// given name has been requested.
	LogByName(name string) *LogSink
}

// Envelope pairs a constructed Job with the wire metadata the runner needs
// to send back to the master (graph id, attempt) without the Job
// implementation having to know about the wire protocol.
type Envelope struct {
	Job     Job
	GraphID types.GraphID
	Attempt int
}
