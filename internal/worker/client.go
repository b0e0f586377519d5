package worker

import (
	"fmt"
	"net"
	"time"

	"github.com/plynxio/worker/internal/wire"
	"github.com/plynxio/worker/pkg/types"
)

// dialTimeout bounds how long a single connection attempt to the master may
// take, and is also the read/write deadline of the connection once open, so
// a master that accepts but never responds can't wedge a loop iteration
// indefinitely.
const dialTimeout = 5 * time.Second

// roundTrip opens a fresh connection to addr, sends msg, reads the reply
// into reply, and closes the connection. The worker never reuses a
// connection across interactions.
func roundTrip(addr string, msg types.WorkerMessage, reply *types.MasterMessage) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", wire.ErrTransport, addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(dialTimeout)); err != nil {
		return fmt.Errorf("%w: set deadline: %v", wire.ErrTransport, err)
	}

	if err := wire.SendMessage(conn, msg); err != nil {
		return err
	}
	return wire.RecvMessage(conn, reply)
}
