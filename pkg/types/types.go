// Package types defines the core domain models shared by the worker and the
// reference master: identifiers, the run-status enum, and the two message
// envelopes exchanged over the wire.
//
// Core Types:
//   - WorkerID / GraphID: identifiers, kept as distinct string types to avoid
//     passing one where the other is expected.
//   - RunStatus: the worker's run-status enum (idle/running/success/failed).
//   - WorkerMessage / MasterMessage: the two message shapes that cross the
//     wire, one per direction. A connection carries exactly one of each.
//   - JobEnvelope: the wire-transportable projection of a Job.
//
// Timestamps are not part of this package: the protocol is connection-per-
// interaction and stateless, so there is nothing here to version or persist
// across restarts.
package types

// WorkerID uniquely identifies a worker. Arbitrary, chosen by the operator
// or generated at startup; the master does not validate its shape.
type WorkerID string

// GraphID identifies the graph (pipeline) a job belongs to.
type GraphID string

// RunStatus is the worker's run-status enum.
type RunStatus string

const (
	// StatusIdle means the worker has no job and is polling for one.
	StatusIdle RunStatus = "IDLE"
	// StatusRunning means a job is currently executing.
	StatusRunning RunStatus = "RUNNING"
	// StatusSuccess means the last job finished and awaits acknowledgement.
	StatusSuccess RunStatus = "SUCCESS"
	// StatusFailed means the last job finished and awaits acknowledgement.
	StatusFailed RunStatus = "FAILED"
)

// WorkerMessageType enumerates messages a worker can send to the master.
type WorkerMessageType string

const (
	// MsgHeartbeat is sent on the heartbeat connection every tick.
	MsgHeartbeat WorkerMessageType = "HEARTBEAT"
	// MsgGetJob is sent by the runner loop while idle, asking for work.
	MsgGetJob WorkerMessageType = "GET_JOB"
	// MsgJobFinishedSuccess reports a successfully completed job.
	MsgJobFinishedSuccess WorkerMessageType = "JOB_FINISHED_SUCCESS"
	// MsgJobFinishedFailed reports a failed job.
	MsgJobFinishedFailed WorkerMessageType = "JOB_FINISHED_FAILED"
)

// MasterMessageType enumerates messages the master can send to a worker.
type MasterMessageType string

const (
	// MsgSetJob assigns a job in response to GET_JOB.
	MsgSetJob MasterMessageType = "SET_JOB"
	// MsgKill asks the worker to kill its current job.
	MsgKill MasterMessageType = "KILL"
	// MsgAcknowledge is the wire value historically spelled AKNOWLEDGE by the
	// system this protocol is compatible with. The Go identifier is spelled
	// correctly; the constant's value is not, on purpose.
	MsgAcknowledge MasterMessageType = "AKNOWLEDGE"
	// MsgNone is returned when the master has nothing to say (e.g. no job
	// available yet for a GET_JOB). It is a valid, idle reply, not an error.
	MsgNone MasterMessageType = "NONE"
)

// JobEnvelope is the wire-transportable projection of a Job: enough for the
// worker to reconstruct a runnable job.Job (see internal/job) and for the
// master to track which node/attempt it refers to.
type JobEnvelope struct {
	NodeID  string                 `json:"node_id"`
	Kind    string                 `json:"kind"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Attempt int                    `json:"attempt"`
}

// WorkerMessage is sent by a worker to the master over a fresh connection.
// Body is only set when RunStatus is not IDLE (the running or just-finished
// job), mirroring the protocol's "the job body is irrelevant while idle"
// convention.
type WorkerMessage struct {
	WorkerID    WorkerID          `json:"worker_id"`
	RunStatus   RunStatus         `json:"run_status"`
	MessageType WorkerMessageType `json:"message_type"`
	Body        *JobEnvelope      `json:"body,omitempty"`
	GraphID     *GraphID          `json:"graph_id,omitempty"`
}

// MasterMessage is the master's reply on the same connection.
type MasterMessage struct {
	MessageType MasterMessageType `json:"message_type"`
	Job         *JobEnvelope      `json:"job,omitempty"`
	GraphID     *GraphID          `json:"graph_id,omitempty"`
}
