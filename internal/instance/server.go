package instance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"
)

const connTimeout = 5 * time.Second

// Handler processes arguments relayed from another invocation.
type Handler func(args []string) error

// Server accepts relayed invocations from later processes.
type Server struct {
	endpoint string
	handler  Handler

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer creates a server for endpoint. Call Listen and Serve to start
// accepting.
func NewServer(endpoint string, handler Handler) *Server {
	return &Server{endpoint: endpoint, handler: handler}
}

// Endpoint returns the socket path or pipe name the server listens on.
func (s *Server) Endpoint() string { return s.endpoint }

// Listen binds the endpoint. Connections made after Listen returns wait in
// the backlog until Serve accepts them. Calling it again is a no-op.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	listener, err := listen(s.endpoint)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.endpoint, err)
	}
	s.listener = listener
	slog.Info("Instance relay listening", "endpoint", s.endpoint)
	return nil
}

// Serve handles connections until ctx is cancelled, calling Listen first
// if that has not happened yet.
func (s *Server) Serve(ctx context.Context) error {
	if s.handler == nil {
		return errors.New("relay server requires a handler")
	}
	if err := s.Listen(); err != nil {
		return err
	}
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			slog.Warn("Instance relay: accept failed", "error", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic in instance relay", "panic", r)
		}
	}()

	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	var req Request
	if err := readFrame(bufio.NewReaderSize(conn, maxFrameBytes+1), &req); err != nil {
		slog.Warn("Instance relay: invalid request", "error", err)
		return
	}
	slog.Info("Instance relay: received invocation", "id", req.ID, "args", req.Args)

	resp := Response{ID: req.ID, OK: true}
	if err := s.handler(req.Args); err != nil {
		resp.OK = false
		resp.Error = err.Error()
	}
	if err := writeFrame(conn, resp); err != nil {
		slog.Warn("Instance relay: failed to write response", "id", req.ID, "error", err)
	}
}
