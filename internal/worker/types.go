package worker

import (
	"sync"

	"github.com/plynxio/worker/internal/job"
	"github.com/plynxio/worker/pkg/types"
)

// state holds everything the heartbeat loop and the runner loop share. Both
// loops read and write it, always under mu. It is the single piece of
// shared mutable state the two goroutines coordinate through.
type state struct {
	mu sync.Mutex

	runStatus types.RunStatus
	job       job.Job
	envelope  *types.JobEnvelope
	graphID   *types.GraphID
	jobKilled bool
}

func newState() *state {
	return &state{runStatus: types.StatusIdle, jobKilled: true}
}

// snapshot is an immutable copy of the fields the heartbeat loop needs to
// build its outgoing message without holding the lock while it dials out.
type snapshot struct {
	runStatus types.RunStatus
	job       job.Job
	envelope  *types.JobEnvelope
	graphID   *types.GraphID
}

func (s *state) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{runStatus: s.runStatus, job: s.job, envelope: s.envelope, graphID: s.graphID}
}

func (s *state) setRunStatus(status types.RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runStatus = status
}

func (s *state) getRunStatus() types.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runStatus
}

// beginJob resets the kill latch and installs a freshly assigned job: the
// latch is cleared, the status set to RUNNING, and the job, envelope and
// graph id recorded, all under one lock, so no reader ever observes RUNNING
// without a job. env is the envelope the master sent with SET_JOB, retained verbatim so it
// can be echoed back unchanged in the terminal-status report.
func (s *state) beginJob(j job.Job, env *types.JobEnvelope, graphID types.GraphID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobKilled = false
	s.runStatus = types.StatusRunning
	s.job = j
	s.envelope = env
	s.graphID = &graphID
}

// finishJob closes the kill latch unconditionally, even on a natural,
// un-killed success, and records the terminal status. The latch closing
// here means "no further Kill() calls are meaningful for this job", not
// "this job was killed".
func (s *state) finishJob(status types.RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobKilled = true
	s.runStatus = status
}

// clearJob returns to IDLE after the master has acknowledged a terminal
// status, dropping the reference to the finished job.
func (s *state) clearJob() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runStatus = types.StatusIdle
	s.job = nil
	s.envelope = nil
	s.graphID = nil
}

// tryKill marks the kill latch closed and returns the job to kill, or nil if
// there is no job or it has already been killed. Mirrors the original's
// "if self._job and not self._job_killed" guard.
func (s *state) tryKill() job.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.job == nil || s.jobKilled {
		return nil
	}
	s.jobKilled = true
	return s.job
}
