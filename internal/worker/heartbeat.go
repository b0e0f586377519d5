package worker

import (
	"fmt"
	"time"

	"github.com/plynxio/worker/pkg/types"
)

// heartbeatTimeout is the poll interval between heartbeat-loop iterations.
const heartbeatTimeout = 1 * time.Second

// heartbeatOnce sends one HEARTBEAT message and handles a KILL reply. It
// returns the error from the round trip, if any, for the caller's retry
// bookkeeping. Transport errors are the only ones expected here, since the
// wire codec never returns a decoding error for a well-formed master.
func (w *Worker) heartbeatOnce() error {
	snap := w.state.snapshot()

	msg := types.WorkerMessage{
		WorkerID:    w.id,
		RunStatus:   snap.runStatus,
		MessageType: types.MsgHeartbeat,
		GraphID:     snap.graphID,
	}
	if snap.runStatus != types.StatusIdle {
		msg.Body = snap.envelope
	}

	var reply types.MasterMessage
	if err := roundTrip(w.addr(), msg, &reply); err != nil {
		w.recordHeartbeat(false)
		return err
	}
	w.recordHeartbeat(true)

	if reply.MessageType == types.MsgKill {
		w.logger.Info("received kill message")
		if j := w.state.tryKill(); j != nil {
			j.Kill()
			if w.metrics != nil {
				w.metrics.RecordKill()
			}
		} else {
			w.logger.Info("already attempted to kill")
		}
	}

	return nil
}

func (w *Worker) recordHeartbeat(ok bool) {
	if w.metrics != nil {
		w.metrics.RecordHeartbeat(ok)
	}
}

// runHeartbeatLoop runs on the caller's goroutine until Stop is called or
// the retry budget (NumberOfAttempts consecutive failures) is exhausted.
// It returns an error wrapping both ErrRetryExhausted and the last transport
// error in the latter case, nil otherwise.
func (w *Worker) runHeartbeatLoop() error {
	attempt := 0
	var lastErr error
	for !w.stopped() {
		err := w.heartbeatOnce()
		switch {
		case err == nil:
			if attempt > 0 {
				w.logger.Info("connected")
			}
			attempt = 0
		default:
			attempt++
			lastErr = err
			w.logger.Warn("failed to connect", "attempt", attempt, "of", NumberOfAttempts, "error", err)
			if attempt == NumberOfAttempts {
				w.Stop()
				return fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
			}
		}

		w.sleep(heartbeatTimeout)
	}
	return nil
}
