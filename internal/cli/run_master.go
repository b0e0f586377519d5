package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/plynxio/worker/internal/logging"
	"github.com/plynxio/worker/internal/master"
	"github.com/plynxio/worker/internal/metrics"
	"github.com/plynxio/worker/pkg/types"
)

// jobFilePayload is the JSON shape --jobs-file expects: a flat array, each
// entry becoming one pending job at startup.
type jobFilePayload struct {
	NodeID  string                 `json:"node_id"`
	Kind    string                 `json:"kind"`
	Payload map[string]interface{} `json:"payload"`
	GraphID string                 `json:"graph_id"`
}

// RunMaster builds and runs the reference master until ctx is cancelled.
func RunMaster(ctx context.Context, opts MasterOptions) error {
	logger := logging.FromVerbosity(1)

	queue := master.NewQueue()
	if opts.JobsFile != "" {
		if err := preloadJobs(queue, opts.JobsFile); err != nil {
			return fmt.Errorf("cli: %w", err)
		}
	}

	if opts.MetricsPort != 0 {
		go func() {
			if err := metrics.StartServer(opts.MetricsPort); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	addr := net.JoinHostPort("", fmt.Sprintf("%d", opts.Port))
	srv, err := master.Listen(addr, queue, logger)
	if err != nil {
		return fmt.Errorf("cli: listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.Info("master listening", "addr", srv.Addr())
	err = srv.Serve()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func preloadJobs(queue *master.Queue, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read jobs file: %w", err)
	}

	var jobs []jobFilePayload
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("parse jobs file: %w", err)
	}

	for _, j := range jobs {
		queue.Enqueue(&types.JobEnvelope{NodeID: j.NodeID, Kind: j.Kind, Payload: j.Payload}, types.GraphID(j.GraphID))
	}
	return nil
}
