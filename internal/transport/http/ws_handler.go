package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"healing-companion-service/internal/assessment"
	"healing-companion-service/internal/domain"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *assessment.Service
	upgrader websocket.Upgrader
}

func NewWSHandler(service *assessment.Service) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Value int `json:"value"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type pendingPayload struct{}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// questionnaire use cases. One connection drives one session; all frames
// are written by the read loop, so no writer goroutine is needed.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	userID := r.URL.Query().Get("userId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	defer h.service.End(sessionID)

	view := h.service.Start(sessionID, userID)
	h.send(conn, "question", view)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.send(conn, "error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			view, err := h.service.Answer(r.Context(), sessionID, payload.Value)
			if err != nil {
				h.send(conn, "error", errorPayload{Message: err.Error()})
				h.send(conn, "question", view)
				continue
			}
			h.send(conn, "question", view)

		case "next":
			view, err := h.service.Next(sessionID)
			if err != nil {
				msg := view.Error
				if msg == "" {
					msg = err.Error()
				}
				h.send(conn, "error", errorPayload{Message: msg})
				h.send(conn, "question", view)
				continue
			}
			h.send(conn, "question", view)

		case "previous":
			view, err := h.service.Previous(sessionID)
			if err != nil {
				h.send(conn, "error", errorPayload{Message: err.Error()})
				continue
			}
			h.send(conn, "question", view)

		case "submit":
			// The report needs both the persisted result and the content
			// fetch; the client shows a pending state in between.
			h.send(conn, "pending", pendingPayload{})
			report, err := h.service.Submit(r.Context(), sessionID)
			if err != nil {
				h.sendSubmitError(conn, sessionID, err)
				continue
			}
			h.send(conn, "report", report)

		default:
			h.send(conn, "error", errorPayload{Message: "unsupported message type"})
		}
	}
}

func (h *WSHandler) sendSubmitError(conn *websocket.Conn, sessionID string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnanswered):
		if view, viewErr := h.service.Current(sessionID); viewErr == nil {
			h.send(conn, "error", errorPayload{Message: view.Error})
			h.send(conn, "question", view)
			return
		}
		h.send(conn, "error", errorPayload{Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadySubmitted):
		if report, repErr := h.service.Report(sessionID); repErr == nil {
			h.send(conn, "report", report)
			return
		}
		h.send(conn, "error", errorPayload{Message: err.Error()})
	default:
		// Submission failure is retryable: the session keeps its answers
		// and stays on the final question.
		h.send(conn, "error", errorPayload{Message: "Server error. Please try again."})
		if view, viewErr := h.service.Current(sessionID); viewErr == nil {
			h.send(conn, "question", view)
		}
	}
}

func (h *WSHandler) send(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}
