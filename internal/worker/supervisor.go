package worker

import "context"

// Serve runs the worker until Stop is called, the heartbeat retry budget is
// exhausted, or ctx is cancelled. The runner loop runs as a background,
// daemon-like goroutine. Serve does not wait for it on the way out, exactly
// as the original's run thread is never joined, only abandoned at process
// exit.
func (w *Worker) Serve(ctx context.Context) error {
	go w.runRunnerLoop(ctx)

	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	err := w.runHeartbeatLoop()
	if err != nil {
		select {
		case fatalErr := <-w.fatalErr:
			return fatalErr
		default:
			return err
		}
	}

	select {
	case fatalErr := <-w.fatalErr:
		return fatalErr
	default:
		return nil
	}
}

// runRunnerLoop runs the job-acquisition/runner state machine until Stop is
// called or runOnce reports an unrecoverable condition.
func (w *Worker) runRunnerLoop(ctx context.Context) {
	for !w.stopped() {
		if !w.runOnce(ctx) {
			return
		}
		w.sleep(runnerTimeout)
	}
	w.logger.Info("runner loop exiting")
}
