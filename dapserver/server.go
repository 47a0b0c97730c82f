// Copyright © 2026 The gripdap authors

// Package dapserver speaks the Debug Adapter Protocol on behalf of the
// grip adapter layer. It answers the variable-inspection requests
// (scopes, variables, threads) from the registry and scope adapters in
// the adapter package.
//
// Two transport modes are supported:
//   - TCP: the server listens on a TCP port and accepts a single
//     client connection.
//   - Stdio: the server reads from stdin and writes to stdout, as
//     expected by editors that launch the debug adapter as a child
//     process.
package dapserver

import (
	"bufio"
	"io"
	"net"
	"sync"

	"github.com/google/go-dap"
	"github.com/sirupsen/logrus"

	"github.com/rdbg/gripdap/adapter"
)

// ScopeSource supplies the scope adapters visible in a stack frame.
// The frame owner (which holds call-stack state and decides when
// scopes are created or torn down) implements this; the DAP handler
// only reads from it while the debuggee is paused.
type ScopeSource interface {
	// FrameScopes returns the scope adapters for the given frame id,
	// or nil when the frame is unknown or the debuggee is running.
	FrameScopes(frameID int) []adapter.ScopeAdapter
}

// Server is a DAP protocol server bridging a client to one debuggee
// thread's variable state.
type Server struct {
	thread *adapter.ThreadAdapter
	scopes ScopeSource
	log    *logrus.Logger

	mu     sync.Mutex
	seq    int
	writer io.Writer
	reader *bufio.Reader

	// done is closed when the server should stop processing messages.
	done chan struct{}
}

// New creates a DAP server for the given thread. scopes may be nil, in
// which case every scopes request answers with an empty list.
func New(thread *adapter.ThreadAdapter, scopes ScopeSource, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		thread: thread,
		scopes: scopes,
		log:    logger,
		done:   make(chan struct{}),
	}
}

// ServeConn serves DAP messages on a single connection. It blocks
// until the connection is closed or a disconnect request is received.
func (s *Server) ServeConn(conn io.ReadWriteCloser) error {
	defer conn.Close() //nolint:errcheck // best-effort cleanup
	return s.serve(conn, conn)
}

// ServeTCP listens on the given address and serves a single DAP
// client. It blocks until the client disconnects.
func (s *Server) ServeTCP(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close() //nolint:errcheck // best-effort cleanup
	return s.ServeListener(ln)
}

// ServeListener accepts a single connection from the listener and
// serves DAP messages on it.
func (s *Server) ServeListener(ln net.Listener) error {
	conn, err := ln.Accept()
	if err != nil {
		return err
	}
	return s.ServeConn(conn)
}

// ServeStdio serves DAP messages on the given reader and writer,
// typically os.Stdin and os.Stdout.
func (s *Server) ServeStdio(r io.Reader, w io.Writer) error {
	return s.serve(r, w)
}

func (s *Server) serve(r io.Reader, w io.Writer) error {
	s.mu.Lock()
	s.writer = w
	s.reader = bufio.NewReader(r)
	s.mu.Unlock()

	h := newHandler(s)

	for {
		select {
		case <-s.done:
			return nil
		default:
		}

		msg, err := dap.ReadProtocolMessage(s.reader)
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		h.handle(msg)
	}
}

// send writes a DAP protocol message to the client. Callers set the
// Seq field first via the newResponse/newEvent helpers.
func (s *Server) send(msg dap.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return dap.WriteProtocolMessage(s.writer, msg)
}

// nextSeq returns the next sequence number for outgoing messages.
func (s *Server) nextSeq() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// close signals the server to stop processing messages.
func (s *Server) close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
