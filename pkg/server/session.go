package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tessera-ui/tessera/pkg/block"
	"github.com/tessera-ui/tessera/pkg/dom"
	"github.com/tessera-ui/tessera/pkg/protocol"
)

// Session errors.
var ErrSessionClosed = errors.New("tessera: session closed")

// maxClientMessageSize bounds messages read from the client. The client
// only sends control frames today, so the limit is small.
const maxClientMessageSize = 4096

// Session is one live connection. It owns a server-side document with a
// mounted block instance and streams every mutation to the client as a
// sequenced patch frame.
//
// Update is safe for concurrent use; all other methods are called by the
// server.
type Session struct {
	// ID is the server-unique session ID.
	ID uint64

	srv    *Server
	conn   *websocket.Conn
	doc    *dom.Document
	root   *dom.Node
	inst   *block.Instance
	rec    *patchRecorder
	logger *slog.Logger

	mu     sync.Mutex
	seq    uint64
	closed bool
	done   chan struct{}
}

// Root returns the session's mount point element.
func (s *Session) Root() *dom.Node { return s.root }

// Instance returns the currently mounted block instance.
func (s *Session) Instance() *block.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inst
}

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// Update patches the mounted instance toward next and flushes the
// resulting patches to the client as one frame. An update that dirties
// nothing sends nothing.
func (s *Session) Update(next *block.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	_, span := otel.Tracer("tessera/server").Start(context.Background(), "session.update",
		trace.WithAttributes(attribute.Int64("session.id", int64(s.ID))))
	defer span.End()

	start := time.Now()
	if err := s.inst.Patch(next); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	patches := s.rec.drain()
	span.SetAttributes(attribute.Int("patches.count", len(patches)))
	if len(patches) == 0 {
		return nil
	}

	s.seq++
	payload := protocol.EncodePatches(&protocol.PatchesFrame{
		Seq:     s.seq,
		Patches: patches,
	})
	frame := protocol.NewFrame(protocol.FramePatches, payload)
	span.SetAttributes(attribute.Int("patches.bytes", len(payload)+protocol.FrameHeaderSize))

	if err := s.write(frame); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	s.srv.metrics.patchesSent.Add(float64(len(patches)))
	s.srv.metrics.patchBytes.Add(float64(len(payload) + protocol.FrameHeaderSize))
	s.srv.metrics.updateDuration.Observe(time.Since(start).Seconds())
	return nil
}

// sendHello sends the session setup frame with the full starting markup.
func (s *Session) sendHello() error {
	payload := protocol.EncodeHello(&protocol.HelloMessage{
		SessionID: s.ID,
		RootID:    s.root.ID(),
		RootHTML:  s.root.HTML(),
	})
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(protocol.NewFrame(protocol.FrameHello, payload))
}

// sendError reports an error to the client. Best effort; write failures
// are ignored because the connection is usually about to close.
func (s *Session) sendError(code protocol.ErrorCode, msg string) {
	payload := protocol.EncodeError(&protocol.ErrorMessage{Code: code, Message: msg})
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.write(protocol.NewFrame(protocol.FrameError, payload))
}

// write sends a frame on the connection. Callers hold s.mu.
func (s *Session) write(f *protocol.Frame) error {
	s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, f.Encode())
}

// Close ends the session and releases it from the server.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.conn.Close()
	s.srv.removeSession(s.ID)
	s.logger.Info("session closed", "session_id", s.ID)
}

// readLoop consumes client messages until the connection drops. The
// client sends no application frames today; the loop exists to surface
// disconnects and process pong control frames.
func (s *Session) readLoop() {
	defer s.Close()

	pongWait := s.srv.config.HeartbeatInterval * 2
	s.conn.SetReadLimit(maxClientMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("session read failed", "session_id", s.ID, "error", err)
			}
			return
		}
	}
}

// heartbeatLoop pings the client until the session ends.
func (s *Session) heartbeatLoop() {
	ticker := time.NewTicker(s.srv.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
			err := s.conn.WriteMessage(websocket.PingMessage, nil)
			s.mu.Unlock()
			if err != nil {
				s.Close()
				return
			}
		}
	}
}
