package ws

import (
	"encoding/json"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/logger"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the editor connections watching each survey
type Hub struct {
	// surveyID -> connections
	conns map[string]map[*Connection]struct{}

	log *logger.Logger

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	disconnect chan string
	count      chan countRequest
}

// Connection represents a WebSocket connection
type Connection struct {
	SurveyID string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast to every editor of a survey
type BroadcastMessage struct {
	SurveyID string
	Message  *Message
}

type countRequest struct {
	surveyID string
	reply    chan int
}

// NewHub creates a new WebSocket hub
func NewHub(log *logger.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		log:        log,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		disconnect: make(chan string),
		count:      make(chan countRequest),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			if h.conns[conn.SurveyID] == nil {
				h.conns[conn.SurveyID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SurveyID][conn] = struct{}{}
			h.log.Debug("editor connected", "surveyId", conn.SurveyID, "editors", len(h.conns[conn.SurveyID]))

		case conn := <-h.unregister:
			if editors, ok := h.conns[conn.SurveyID]; ok {
				if _, ok := editors[conn]; ok {
					delete(editors, conn)
					close(conn.Send)
					if len(editors) == 0 {
						delete(h.conns, conn.SurveyID)
					}
					h.log.Debug("editor disconnected", "surveyId", conn.SurveyID)
				}
			}

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error("failed to encode ws message", "type", msg.Message.Type, "error", err)
				continue
			}
			for conn := range h.conns[msg.SurveyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}

		case surveyID := <-h.disconnect:
			for conn := range h.conns[surveyID] {
				close(conn.Send)
			}
			delete(h.conns, surveyID)

		case req := <-h.count:
			req.reply <- len(h.conns[req.surveyID])
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Editors returns the number of connections watching surveyID
func (h *Hub) Editors(surveyID string) int {
	reply := make(chan int)
	h.count <- countRequest{surveyID: surveyID, reply: reply}
	return <-reply
}

// BroadcastToSurvey sends a message to every editor of a survey (implements service.Broadcaster)
func (h *Hub) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to encode ws payload", "surveyId", surveyID, "type", msgType, "error", err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectSurvey closes every connection watching a survey (implements service.Broadcaster)
func (h *Hub) DisconnectSurvey(surveyID string) {
	h.disconnect <- surveyID
}
