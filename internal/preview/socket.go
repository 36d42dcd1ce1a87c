package preview

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// socketRequest is the incoming WebSocket message format.
type socketRequest struct {
	Type    string `json:"type"` // "edit"
	Content string `json:"content"`
}

// socketResponse is the outgoing WebSocket message format.
type socketResponse struct {
	Type      string `json:"type"` // "ready", "render" or "error"
	SessionID string `json:"session_id"`
	Document  string `json:"document,omitempty"`
	Error     string `json:"error,omitempty"`
}

// session is one editor connection with its own pipeline.
type session struct {
	id       string
	conn     *websocket.Conn
	pipeline *Pipeline

	writeMu sync.Mutex
}

func (s *session) send(resp socketResponse) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	resp.SessionID = s.id
	return s.conn.WriteJSON(resp)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("preview: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxBytes)

	s := &session{
		id:       uuid.NewString(),
		conn:     conn,
		pipeline: NewPipeline(h.clock, h.delay),
	}
	defer s.pipeline.Close()

	h.log.PreviewSession("open", s.id)
	defer h.log.PreviewSession("close", s.id)

	if err := s.send(socketResponse{Type: "ready"}); err != nil {
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("preview: websocket read", "session_id", s.id, "error", err)
			}
			return
		}

		var req socketRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.send(socketResponse{Type: "error", Error: "invalid message format"})
			continue
		}

		switch req.Type {
		case "edit":
			s.pipeline.Schedule(req.Content, func(doc Document) {
				if err := s.send(socketResponse{Type: "render", Document: doc.String()}); err != nil {
					h.log.Debug("preview: send render", "session_id", s.id, "error", err)
				}
			})
		default:
			s.send(socketResponse{Type: "error", Error: "unknown message type: " + req.Type})
		}
	}
}
