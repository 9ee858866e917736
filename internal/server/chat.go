package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ngofund/ngoai/internal/agent"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatTurn is one prior exchange resent by the client.
type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the incoming WebSocket message format. The server keeps no
// history; the client resends it with every message.
type chatRequest struct {
	SessionID string     `json:"session_id"` // empty for new sessions
	Message   string     `json:"message"`
	History   []chatTurn `json:"history"`
	Language  string     `json:"language,omitempty"`
	Provider  string     `json:"provider,omitempty"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string `json:"type"` // "reply" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	Provider  string `json:"provider,omitempty"`
}

func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendChat(conn, chatResponse{Type: "error", Content: "invalid message format"})
			continue
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}
		if req.Message == "" {
			s.sendChat(conn, chatResponse{Type: "error", SessionID: req.SessionID, Content: "message is required"})
			continue
		}

		resp, err := s.executor.Execute(r.Context(), chatAgentRequest(req))
		if err != nil {
			s.logger.Error("chat message failed", "session_id", req.SessionID, "error", err)
			s.sendChat(conn, chatResponse{Type: "error", SessionID: req.SessionID, Content: err.Error()})
			continue
		}

		s.sendChat(conn, chatResponse{
			Type:      "reply",
			SessionID: req.SessionID,
			Content:   resp.Result.Text,
			Provider:  string(resp.Provider),
		})
	}
}

// chatAgentRequest turns a socket frame into a chatbot capability request.
func chatAgentRequest(req chatRequest) agent.AgentRequest {
	history := make([]any, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, map[string]any{"role": turn.Role, "content": turn.Content})
	}
	return agent.AgentRequest{
		Capability: string(agent.Chatbot),
		Context: map[string]any{
			"message": req.Message,
			"history": history,
		},
		Language: req.Language,
		Provider: req.Provider,
	}
}

func (s *Server) sendChat(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Warn("websocket write failed", "error", err)
	}
}
