package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/ziadkadry99/ask-assistant/internal/assistant"
	"github.com/ziadkadry99/ask-assistant/internal/page"
)

// maxPromptBytes bounds request bodies on the ask endpoints.
const maxPromptBytes = 1 << 20

// askRequest is the JSON body of POST /api/ask.
type askRequest struct {
	Prompt string `json:"prompt"`
}

// askResponse is the JSON response of POST /api/ask.
type askResponse struct {
	Type    assistant.Kind `json:"type"`
	Content string         `json:"content"`
	HTML    template.HTML  `json:"html"`
}

// ServeIndex serves the idle page.
func (h *Web) ServeIndex(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, "", nil)
}

// handleFormAsk is the no-JavaScript path: the form posts here and the page
// is rendered again with the message below the input.
func (h *Web) handleFormAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPromptBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	prompt := r.PostFormValue("prompt")

	result, asked := h.page.Submit(r.Context(), prompt, func(page.Instruction) {})
	if !asked {
		h.renderIndex(w, prompt, nil)
		return
	}

	h.renderIndex(w, prompt, &messageView{Kind: result.Kind, HTML: h.messageHTML(result)})
}

func (h *Web) handleAPIAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPromptBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, asked := h.page.Submit(r.Context(), req.Prompt, func(page.Instruction) {})
	if !asked {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "prompt is required"})
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Type:    result.Kind,
		Content: result.Text,
		HTML:    h.messageHTML(result),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
