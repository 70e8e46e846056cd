package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/nebula-forge/internal/console"
	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// StreamMessage is a server to client websocket frame.
type StreamMessage struct {
	Type     string       `json:"type"` // snapshot, error, help or bye
	Snapshot *SnapshotDTO `json:"snapshot,omitempty"`
	Error    string       `json:"error,omitempty"`
	Text     string       `json:"text,omitempty"`
}

// streamConn owns one websocket. Only the write pump writes to ws.
type streamConn struct {
	ws     *websocket.Conn
	sess   *session.Session
	send   chan []byte
	logger *log.Logger
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &streamConn{
		ws:     ws,
		sess:   sess,
		send:   make(chan []byte, 64),
		logger: s.logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	snaps, unsubscribe := sess.Subscribe(8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		c.writePump(ctx, snaps)
	}()

	c.enqueue(ctx, snapshotMessage(sess.Snapshot()))
	s.logger.Info("stream opened", "session", string(sess.ID()))

	c.readPump(ctx)

	unsubscribe()
	cancel()
	<-done
	s.logger.Info("stream closed", "session", string(sess.ID()))
}

// readPump handles client frames until the connection fails or the client
// quits. Each text frame is one console command.
func (c *streamConn) readPump(ctx context.Context) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read", "err", err)
			}
			return
		}
		if quit := c.handle(ctx, string(message)); quit {
			return
		}
	}
}

func (c *streamConn) handle(ctx context.Context, line string) bool {
	cmd, err := console.Parse(line)
	switch {
	case errors.Is(err, console.ErrEmpty):
		return false
	case err != nil:
		c.enqueue(ctx, StreamMessage{Type: "error", Error: err.Error()})
		return false
	}

	switch cmd.Verb {
	case console.VerbQuit:
		c.enqueue(ctx, StreamMessage{Type: "bye"})
		return true
	case console.VerbHelp:
		c.enqueue(ctx, StreamMessage{Type: "help", Text: console.HelpText})
	case console.VerbLook:
		c.enqueue(ctx, snapshotMessage(c.sess.Snapshot()))
	default:
		// The subscription delivers the resulting snapshot.
		c.sess.Do(ctx, cmd.Apply)
	}
	return false
}

func (c *streamConn) enqueue(ctx context.Context, msg StreamMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	case <-ctx.Done():
	}
}

// writePump writes queued frames and snapshots until ctx is cancelled or
// the session ends.
func (c *streamConn) writePump(ctx context.Context, snaps <-chan nebula.Snapshot) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case data := <-c.send:
			if err := c.write(websocket.TextMessage, data); err != nil {
				return
			}

		case snap := <-snaps:
			data, err := json.Marshal(snapshotMessage(snap))
			if err != nil {
				return
			}
			if err := c.write(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.sess.Done():
			c.closeWith("session ended")
			return

		case <-ctx.Done():
			c.flush()
			c.closeWith("")
			return
		}
	}
}

// flush writes frames still queued when the reader stops.
func (c *streamConn) flush() {
	for {
		select {
		case data := <-c.send:
			if err := c.write(websocket.TextMessage, data); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *streamConn) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	w, err := c.ws.NextWriter(messageType)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

func (c *streamConn) closeWith(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func snapshotMessage(snap nebula.Snapshot) StreamMessage {
	dto := newSnapshotDTO(snap)
	return StreamMessage{Type: "snapshot", Snapshot: &dto}
}
