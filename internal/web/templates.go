package web

import (
	_ "embed"
	"html/template"
	"log"
	"net/http"

	"github.com/ziadkadry99/ask-assistant/internal/assistant"
)

//go:embed templates/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// indexData is the view model of the page template.
type indexData struct {
	Title       string
	Placeholder string
	BusyText    string
	Prompt      string
	Message     *messageView
}

type messageView struct {
	Kind assistant.Kind
	HTML template.HTML
}

func (h *Web) renderIndex(w http.ResponseWriter, prompt string, msg *messageView) {
	texts := h.page.Texts()
	data := indexData{
		Title:       texts.Title,
		Placeholder: texts.Placeholder,
		BusyText:    texts.BusyText,
		Prompt:      prompt,
		Message:     msg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: rendering index: %v", err)
	}
}

// messageHTML renders successful answers as Markdown; failure reasons are
// shown as escaped text.
func (h *Web) messageHTML(r assistant.Result) template.HTML {
	if r.OK() {
		return h.md.HTMLOrText(r.Text)
	}
	return template.HTML(template.HTMLEscapeString(r.Text))
}
