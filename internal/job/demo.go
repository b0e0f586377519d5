package job

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// Demo simulates work by waiting a random delay, with a 10% induced failure
// rate. It backs the worker binary's "demo" job kind, for manual end-to-end
// exercises against the reference master; it has no real payload semantics.
type Demo struct {
	nodeID  string
	maxWork time.Duration

	mu   sync.Mutex
	logs map[string]*LogSink
	done chan struct{}
}

// NewDemo returns a Demo job that runs for up to maxWork before resolving.
func NewDemo(nodeID string, maxWork time.Duration) *Demo {
	return &Demo{
		nodeID:  nodeID,
		maxWork: maxWork,
		logs:    make(map[string]*LogSink),
		done:    make(chan struct{}),
	}
}

func (d *Demo) NodeID() string { return d.nodeID }

func (d *Demo) Run(ctx context.Context) error {
	workDuration := time.Duration(rand.Int63n(int64(d.maxWork)))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return errors.New("demo job killed")
	case <-time.After(workDuration):
		if rand.Intn(100) < 10 {
			return errors.New("simulated execution failure")
		}
		return nil
	}
}

func (d *Demo) Kill() {
	d.mu.Lock()
	defer d.mu.Unlock()
	select {
	case <-d.done:
		// already closed, kill is idempotent
	default:
		close(d.done)
	}
}

func (d *Demo) LogByName(name string) *LogSink {
	d.mu.Lock()
	defer d.mu.Unlock()
	sink, ok := d.logs[name]
	if !ok {
		sink = &LogSink{Name: name}
		d.logs[name] = sink
	}
	return sink
}
