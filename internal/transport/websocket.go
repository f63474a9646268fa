// Package transport adapts a controller.ClientSink to a real network
// connection, following the teacher's long-connection shape: a dedicated
// write pump fed by a channel, a ping ticker, and a read loop that hands
// decoded frames to a callback rather than blocking the caller.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lamyinia/mahjongmatch/internal/localstate"
	"github.com/lamyinia/mahjongmatch/internal/logging"
	"github.com/lamyinia/mahjongmatch/internal/protocol"
)

const (
	pongWait     = 30 * time.Second
	writeWait    = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
	maxFrameSize = 1 << 16
)

// Upgrader is shared by callers that accept incoming websocket
// connections (e.g. internal/app's /join handler).
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Sink is a controller.ClientSink backed by a live websocket connection.
// Its zero value is not usable; construct with NewSink.
type Sink struct {
	connID string
	conn   *websocket.Conn

	writeChan chan []byte
	closeChan chan struct{}
	closeOnce sync.Once

	OnRequest func(protocol.ClientRequest)
}

// NewSink wraps conn and starts its read/write pumps. OnRequest is called
// from the read pump's goroutine for every decoded client request; it
// must not block for long.
func NewSink(connID string, conn *websocket.Conn) *Sink {
	s := &Sink{
		connID:    connID,
		conn:      conn,
		writeChan: make(chan []byte, 32),
		closeChan: make(chan struct{}),
	}
	go s.writePump()
	go s.readPump()
	return s
}

func (s *Sink) SendSnapshot(snap *localstate.State) error {
	return s.sendEnvelope(struct {
		Kind     string           `json:"kind"`
		Snapshot *localstate.State `json:"snapshot"`
	}{Kind: "Snapshot", Snapshot: snap})
}

func (s *Sink) SendEvent(ev protocol.MatchEvent) error {
	data, err := protocol.EncodeEvent(ev)
	if err != nil {
		return err
	}
	return s.enqueue(data)
}

func (s *Sink) sendEnvelope(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.enqueue(data)
}

func (s *Sink) enqueue(data []byte) error {
	select {
	case s.writeChan <- data:
		return nil
	case <-s.closeChan:
		return websocket.ErrCloseSent
	}
}

func (s *Sink) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case msg, ok := <-s.writeChan:
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logging.Error("transport: write to %s failed: %v", s.connID, err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.closeChan:
			return
		}
	}
}

func (s *Sink) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warn("transport: connection %s closed unexpectedly: %v", s.connID, err)
			}
			return
		}

		req, err := protocol.DecodeRequest(data)
		if err != nil {
			logging.Warn("transport: %s sent malformed request: %v", s.connID, err)
			continue
		}
		if s.OnRequest != nil {
			s.OnRequest(req)
		}
	}
}

// Close shuts the sink down, safe to call more than once.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		close(s.closeChan)
		_ = s.conn.Close()
	})
}
