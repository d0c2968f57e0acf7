// Package page models the assistant page as a stream of render
// instructions. Front-ends (browser, terminal) bind their submit event to
// Page.Submit and draw whatever instructions it emits.
package page

import (
	"context"
	"strings"

	"github.com/ziadkadry99/ask-assistant/internal/assistant"
)

// InstructionType names one render primitive.
type InstructionType string

const (
	InstructionTitle      InstructionType = "title"
	InstructionTextInput  InstructionType = "text_input"
	InstructionSpinnerOn  InstructionType = "spinner_on"
	InstructionSpinnerOff InstructionType = "spinner_off"
	InstructionMessage    InstructionType = "message"
)

// Instruction is a single render step. Text holds the title, the input
// label, the busy text or the message body depending on Type; Kind is only
// set for messages.
type Instruction struct {
	Type InstructionType `json:"type"`
	Text string          `json:"text,omitempty"`
	Kind assistant.Kind  `json:"kind,omitempty"`
}

// Asker answers one prompt. *assistant.Handler implements it.
type Asker interface {
	Ask(ctx context.Context, prompt string) assistant.Result
}

// Texts are the fixed strings shown on the page.
type Texts struct {
	Title       string
	Placeholder string
	BusyText    string
}

// Page binds the page texts to an Asker.
type Page struct {
	texts Texts
	asker Asker
}

// New creates a Page.
func New(asker Asker, texts Texts) *Page {
	return &Page{texts: texts, asker: asker}
}

// Texts returns the page strings.
func (p *Page) Texts() Texts { return p.texts }

// Layout returns the instructions that draw the idle page.
func (p *Page) Layout() []Instruction {
	return []Instruction{
		{Type: InstructionTitle, Text: p.texts.Title},
		{Type: InstructionTextInput, Text: p.texts.Placeholder},
	}
}

// IsBlank reports whether input is empty after trimming whitespace.
func IsBlank(input string) bool {
	return strings.TrimSpace(input) == ""
}

// Submit handles one submit event. Blank input emits nothing and never
// reaches the Asker; ok is false in that case. Otherwise Submit emits
// spinner_on, asks, emits spinner_off and finally one message styled by the
// result kind. The input is forwarded exactly as typed.
func (p *Page) Submit(ctx context.Context, input string, emit func(Instruction)) (result assistant.Result, ok bool) {
	if IsBlank(input) {
		return assistant.Result{}, false
	}

	emit(Instruction{Type: InstructionSpinnerOn, Text: p.texts.BusyText})
	result = p.asker.Ask(ctx, input)
	emit(Instruction{Type: InstructionSpinnerOff})
	emit(MessageFor(result))

	return result, true
}

// MessageFor converts a result into its message instruction.
func MessageFor(r assistant.Result) Instruction {
	return Instruction{Type: InstructionMessage, Text: r.Text, Kind: r.Kind}
}
