// Package master implements a minimal reference Master: enough of the
// worker-facing protocol to drive a real worker through its full state
// machine in tests and local development. It implements no scheduling
// policy beyond FIFO dispatch. The master scheduler's matching policy is
// explicitly out of scope for this repository.
package master

import (
	"sync"

	"github.com/plynxio/worker/pkg/types"
)

// queuedJob is a job waiting for a worker, or already assigned to one.
type queuedJob struct {
	env     *types.JobEnvelope
	graphID types.GraphID
}

// workerRecord is everything the master tracks about one worker between
// connections. The master itself is stateless across restarts, so this
// lives only in memory.
type workerRecord struct {
	runStatus   types.RunStatus
	job         *queuedJob
	killRequest bool
	heartbeats  int
}

// Queue is the reference master's job bookkeeping: a FIFO pending queue plus
// a per-worker assignment table. Adapted from the hybrid map+index design
// used for job lifecycle tracking elsewhere in this codebase's lineage.
// Here the lifecycle is Pending -> Assigned -> Finished rather than
// Pending -> InFlight -> Completed/Dead, since the master itself does not
// persist or retry; the worker owns retry/crash semantics.
type Queue struct {
	mu      sync.Mutex
	pending []queuedJob
	workers map[types.WorkerID]*workerRecord
}

// NewQueue creates an empty reference master queue.
func NewQueue() *Queue {
	return &Queue{
		workers: make(map[types.WorkerID]*workerRecord),
	}
}

// Enqueue adds a job to the pending queue. It will be handed to the next
// worker that asks for one via GET_JOB, in FIFO order.
func (q *Queue) Enqueue(env *types.JobEnvelope, graphID types.GraphID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, queuedJob{env: env, graphID: graphID})
}

// recordFor returns the worker's record, creating it on first contact.
func (q *Queue) recordFor(id types.WorkerID) *workerRecord {
	rec, ok := q.workers[id]
	if !ok {
		rec = &workerRecord{runStatus: types.StatusIdle}
		q.workers[id] = rec
	}
	return rec
}

// HandleHeartbeat updates bookkeeping for a HEARTBEAT message and returns
// the master's reply: KILL if a kill has been requested for this worker
// and not yet delivered, NONE otherwise.
func (q *Queue) HandleHeartbeat(msg types.WorkerMessage) types.MasterMessage {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec := q.recordFor(msg.WorkerID)
	rec.runStatus = msg.RunStatus
	rec.heartbeats++

	if rec.killRequest {
		rec.killRequest = false
		return types.MasterMessage{MessageType: types.MsgKill}
	}
	return types.MasterMessage{MessageType: types.MsgNone}
}

// HandleGetJob pops the next pending job (if any) and assigns it to the
// requesting worker, returning SET_JOB; returns NONE if nothing is pending.
func (q *Queue) HandleGetJob(workerID types.WorkerID) types.MasterMessage {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return types.MasterMessage{MessageType: types.MsgNone}
	}

	next := q.pending[0]
	q.pending = q.pending[1:]

	rec := q.recordFor(workerID)
	rec.job = &next
	rec.runStatus = types.StatusRunning

	graphID := next.graphID
	return types.MasterMessage{MessageType: types.MsgSetJob, Job: next.env, GraphID: &graphID}
}

// HandleJobFinished records the terminal status reported by a worker and
// acknowledges it, freeing the worker's assignment slot.
func (q *Queue) HandleJobFinished(msg types.WorkerMessage) types.MasterMessage {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec := q.recordFor(msg.WorkerID)
	rec.runStatus = msg.RunStatus
	rec.job = nil

	return types.MasterMessage{MessageType: types.MsgAcknowledge}
}

// RequestKill marks that the next heartbeat from workerID should carry a
// KILL instruction. A no-op if the worker is unknown or idle, mirroring the
// worker's own "nothing to kill" guard on the other end of the wire.
func (q *Queue) RequestKill(workerID types.WorkerID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec, ok := q.workers[workerID]
	if !ok || rec.job == nil {
		return
	}
	rec.killRequest = true
}

// Stats returns a point-in-time snapshot of pending/assigned counts, for the
// master's own metrics and for tests.
func (q *Queue) Stats() (pending, assigned int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	pending = len(q.pending)
	for _, rec := range q.workers {
		if rec.job != nil {
			assigned++
		}
	}
	return pending, assigned
}
