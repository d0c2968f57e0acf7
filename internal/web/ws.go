package web

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/ask-assistant/internal/assistant"
	"github.com/ziadkadry99/ask-assistant/internal/page"
)

// Frame types that are not page instructions.
const (
	frameSubmit = "submit"
	frameError  = "error"
)

// submitFrame is the incoming WebSocket message format.
type submitFrame struct {
	Type    string `json:"type"` // "submit"
	Content string `json:"content"`
}

// eventFrame is the outgoing WebSocket message format. Type is either a
// page instruction type or "error" for protocol errors.
type eventFrame struct {
	Type       string         `json:"type"`
	ExchangeID string         `json:"exchange_id,omitempty"`
	Text       string         `json:"text,omitempty"`
	Kind       assistant.Kind `json:"kind,omitempty"`
	HTML       template.HTML  `json:"html,omitempty"`
}

// wsSession serializes writes to one connection and allows a single
// exchange in flight.
type wsSession struct {
	conn *websocket.Conn
	mu   sync.Mutex
	busy atomic.Bool
	wg   sync.WaitGroup
}

func (s *wsSession) send(f eventFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(f); err != nil {
		log.Printf("web: websocket write: %v", err)
	}
}

func (s *wsSession) sendError(message string) {
	s.send(eventFrame{Type: frameError, Text: message})
}

// checkOrigin follows the server's CORS policy: same-origin and loopback
// pages only, unless every origin is allowed.
func (h *Web) checkOrigin(r *http.Request) bool {
	if h.opts.AllowAllOrigins {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

func (h *Web) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	s := &wsSession{conn: conn}
	defer s.wg.Wait()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: websocket read: %v", err)
			}
			return
		}

		var req submitFrame
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError("invalid message format")
			continue
		}

		if req.Type != frameSubmit {
			s.sendError("unknown message type: " + req.Type)
			continue
		}

		if page.IsBlank(req.Content) {
			s.sendError("prompt is required")
			continue
		}

		if !s.busy.CompareAndSwap(false, true) {
			s.sendError("busy: a question is already in flight")
			continue
		}

		s.wg.Add(1)
		go h.runExchange(r, s, req.Content)
	}
}

// runExchange drives one submit through the page and mirrors every
// instruction to the client, tagged with a fresh exchange id.
func (h *Web) runExchange(r *http.Request, s *wsSession, prompt string) {
	defer s.wg.Done()

	id := uuid.NewString()
	_, asked := h.page.Submit(r.Context(), prompt, func(in page.Instruction) {
		f := eventFrame{
			Type:       string(in.Type),
			ExchangeID: id,
			Text:       in.Text,
			Kind:       in.Kind,
		}
		switch in.Type {
		case page.InstructionSpinnerOff:
			// The client re-enables its input on spinner_off.
			s.busy.Store(false)
		case page.InstructionMessage:
			f.HTML = h.messageHTML(assistant.Result{Kind: in.Kind, Text: in.Text})
		}
		s.send(f)
	})
	if !asked {
		s.busy.Store(false)
	}
}
