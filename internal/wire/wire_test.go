package wire_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plynxio/worker/internal/wire"
	"github.com/plynxio/worker/pkg/types"
)

func TestSendRecvRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sent := types.WorkerMessage{
		WorkerID:    "worker-1",
		RunStatus:   types.StatusIdle,
		MessageType: types.MsgGetJob,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- wire.SendMessage(client, sent)
	}()

	var got types.WorkerMessage
	require.NoError(t, wire.RecvMessage(server, &got))
	require.NoError(t, <-errCh)

	assert.Equal(t, sent, got)
}

func TestRecvMessageTransportError(t *testing.T) {
	client, server := net.Pipe()
	server.Close()
	defer client.Close()

	var got types.MasterMessage
	err := wire.RecvMessage(server, &got)
	assert.ErrorIs(t, err, wire.ErrTransport)
}

func TestSendMessageWithBody(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	graphID := types.GraphID("graph-9")
	sent := types.MasterMessage{
		MessageType: types.MsgSetJob,
		Job: &types.JobEnvelope{
			NodeID:  "node-42",
			Kind:    "demo",
			Attempt: 1,
		},
		GraphID: &graphID,
	}

	go func() {
		_ = wire.SendMessage(client, sent)
	}()

	var got types.MasterMessage
	require.NoError(t, wire.RecvMessage(server, &got))
	require.NotNil(t, got.Job)
	assert.Equal(t, "node-42", got.Job.NodeID)
	assert.Equal(t, graphID, *got.GraphID)
}
