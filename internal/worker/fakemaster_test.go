package worker_test

import (
	"net"
	"sync"

	"github.com/plynxio/worker/internal/wire"
	"github.com/plynxio/worker/pkg/types"
)

// fakeMaster is a minimal, single-purpose stand-in for the reference master,
// used only by this package's scenario tests. It accepts one connection at
// a time, decodes a WorkerMessage, and replies according to programmable
// behavior: no real job-queue semantics, just enough to drive the worker's
// state machine through a specific scenario.
type fakeMaster struct {
	ln net.Listener

	mu             sync.Mutex
	pendingJob     *types.JobEnvelope
	pendingGraph   *types.GraphID
	killNext       bool
	acknowledge    bool
	heartbeats     int
	lastHeartbeat  types.WorkerMessage
	failHeartbeats int
	acked          []types.WorkerMessageType
}

func newFakeMaster() *fakeMaster {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		panic(err)
	}
	fm := &fakeMaster{ln: ln, acknowledge: true}
	go fm.serve()
	return fm
}

func (fm *fakeMaster) addr() string {
	return fm.ln.Addr().String()
}

func (fm *fakeMaster) close() {
	fm.ln.Close()
}

func (fm *fakeMaster) setJob(env *types.JobEnvelope, graphID types.GraphID) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.pendingJob = env
	fm.pendingGraph = &graphID
}

func (fm *fakeMaster) setKillNext(v bool) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.killNext = v
}

func (fm *fakeMaster) setAcknowledge(v bool) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.acknowledge = v
}

// setFailHeartbeats makes the next n HEARTBEAT connections drop without a
// reply, surfacing as a transport error on the worker's end, before
// replying normally again.
func (fm *fakeMaster) setFailHeartbeats(n int) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.failHeartbeats = n
}

func (fm *fakeMaster) heartbeatCount() int {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.heartbeats
}

// lastHeartbeatMsg returns the most recent HEARTBEAT message answered.
func (fm *fakeMaster) lastHeartbeatMsg() types.WorkerMessage {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return fm.lastHeartbeat
}

func (fm *fakeMaster) ackedTypes() []types.WorkerMessageType {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	out := make([]types.WorkerMessageType, len(fm.acked))
	copy(out, fm.acked)
	return out
}

func (fm *fakeMaster) serve() {
	for {
		conn, err := fm.ln.Accept()
		if err != nil {
			return
		}
		go fm.handle(conn)
	}
}

func (fm *fakeMaster) handle(conn net.Conn) {
	defer conn.Close()

	var msg types.WorkerMessage
	if err := wire.RecvMessage(conn, &msg); err != nil {
		return
	}

	if msg.MessageType == types.MsgHeartbeat && fm.consumeHeartbeatFailure() {
		return
	}

	reply := fm.reply(msg)
	_ = wire.SendMessage(conn, reply)
}

// consumeHeartbeatFailure reports whether this heartbeat should be dropped,
// decrementing the remaining failure count if so.
func (fm *fakeMaster) consumeHeartbeatFailure() bool {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.failHeartbeats <= 0 {
		return false
	}
	fm.failHeartbeats--
	return true
}

func (fm *fakeMaster) reply(msg types.WorkerMessage) types.MasterMessage {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	switch msg.MessageType {
	case types.MsgHeartbeat:
		fm.heartbeats++
		fm.lastHeartbeat = msg
		if fm.killNext {
			fm.killNext = false
			return types.MasterMessage{MessageType: types.MsgKill}
		}
		return types.MasterMessage{MessageType: types.MsgNone}

	case types.MsgGetJob:
		if fm.pendingJob == nil {
			return types.MasterMessage{MessageType: types.MsgNone}
		}
		job := fm.pendingJob
		graph := fm.pendingGraph
		fm.pendingJob = nil
		fm.pendingGraph = nil
		return types.MasterMessage{MessageType: types.MsgSetJob, Job: job, GraphID: graph}

	case types.MsgJobFinishedSuccess, types.MsgJobFinishedFailed:
		fm.acked = append(fm.acked, msg.MessageType)
		if fm.acknowledge {
			return types.MasterMessage{MessageType: types.MsgAcknowledge}
		}
		return types.MasterMessage{MessageType: types.MsgNone}
	}

	return types.MasterMessage{MessageType: types.MsgNone}
}
