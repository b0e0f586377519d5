package worker

import "errors"

// ErrIllegalState is raised when the runner loop observes RunStatus RUNNING
// at the top of an iteration. Reaching RUNNING there means a previous
// iteration returned from Job.Run without transitioning to SUCCESS or
// FAILED: a bug in this package, not a recoverable runtime condition, so
// the runner stops instead of looping forever on its own broken invariant.
var ErrIllegalState = errors.New("worker: observed RUNNING at top of runner loop")

// ErrRetryExhausted is surfaced by Worker.Serve when the heartbeat loop
// fails to reach the master NumberOfAttempts times in a row.
var ErrRetryExhausted = errors.New("worker: heartbeat retry budget exhausted")
