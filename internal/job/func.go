package job

import (
	"context"
	"sync"
)

// Func wraps a plain function as a Job. Kill cancels the context passed to
// the wrapped function; the function itself decides how quickly it notices.
type Func struct {
	nodeID string
	fn     func(ctx context.Context) error

	mu     sync.Mutex
	logs   map[string]*LogSink
	cancel context.CancelFunc
}

// NewFunc returns a Job that runs fn when Run is called.
func NewFunc(nodeID string, fn func(ctx context.Context) error) *Func {
	return &Func{
		nodeID: nodeID,
		fn:     fn,
		logs:   make(map[string]*LogSink),
	}
}

func (f *Func) NodeID() string { return f.nodeID }

func (f *Func) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()
	defer cancel()

	return f.fn(ctx)
}

func (f *Func) Kill() {
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (f *Func) LogByName(name string) *LogSink {
	f.mu.Lock()
	defer f.mu.Unlock()
	sink, ok := f.logs[name]
	if !ok {
		sink = &LogSink{Name: name}
		f.logs[name] = sink
	}
	return sink
}
