package master

import (
	"log/slog"
	"net"

	"github.com/plynxio/worker/internal/wire"
	"github.com/plynxio/worker/pkg/types"
)

// Server accepts one connection per interaction, exactly like the worker's
// side of the protocol: read one WorkerMessage, write one MasterMessage,
// close. It holds no per-connection state across requests beyond Queue.
type Server struct {
	ln     net.Listener
	queue  *Queue
	logger *slog.Logger
}

// Listen starts a Server on addr (host:port). The caller should call Serve
// to run the accept loop and Close to stop it.
func Listen(addr string, queue *Queue, logger *slog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{ln: ln, queue: queue, logger: logger}, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve runs the accept loop until Close is called. Each connection is
// handled on its own goroutine; connections never outlive one request.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	return s.ln.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	var msg types.WorkerMessage
	if err := wire.RecvMessage(conn, &msg); err != nil {
		s.logger.Debug("failed to read worker message", "error", err)
		return
	}

	reply := s.dispatch(msg)

	if err := wire.SendMessage(conn, reply); err != nil {
		s.logger.Debug("failed to write master reply", "error", err)
	}
}

func (s *Server) dispatch(msg types.WorkerMessage) types.MasterMessage {
	switch msg.MessageType {
	case types.MsgHeartbeat:
		return s.queue.HandleHeartbeat(msg)
	case types.MsgGetJob:
		return s.queue.HandleGetJob(msg.WorkerID)
	case types.MsgJobFinishedSuccess, types.MsgJobFinishedFailed:
		return s.queue.HandleJobFinished(msg)
	default:
		s.logger.Warn("unknown message type", "type", msg.MessageType, "worker_id", msg.WorkerID)
		return types.MasterMessage{MessageType: types.MsgNone}
	}
}
