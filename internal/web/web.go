// Package web serves the assistant page to browsers: a server-rendered HTML
// page, a form fallback, a JSON endpoint and a WebSocket submit channel.
package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/ask-assistant/internal/page"
	"github.com/ziadkadry99/ask-assistant/internal/render"
)

// Options configures the browser front-end.
type Options struct {
	// AllowAllOrigins lets pages from any origin open the WebSocket. When
	// false only same-origin and loopback pages may connect.
	AllowAllOrigins bool
}

// Web renders a page.Page over HTTP.
type Web struct {
	page     *page.Page
	md       *render.Markdown
	opts     Options
	upgrader websocket.Upgrader
}

// New creates a Web front-end for p.
func New(p *page.Page, opts Options) *Web {
	h := &Web{
		page: p,
		md:   render.NewMarkdown(),
		opts: opts,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// RegisterRoutes mounts all page routes onto the given router.
func (h *Web) RegisterRoutes(r chi.Router) {
	r.Get("/", h.ServeIndex)
	r.Post("/ask", h.handleFormAsk)
	r.Post("/api/ask", h.handleAPIAsk)
	r.Get("/ws/ask", h.handleWebSocket)
}
