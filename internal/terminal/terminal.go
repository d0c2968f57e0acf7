// Package terminal renders the assistant page on a terminal: one-shot
// questions and an interactive loop of independent questions.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/ask-assistant/internal/assistant"
	"github.com/ziadkadry99/ask-assistant/internal/page"
	"github.com/ziadkadry99/ask-assistant/internal/progress"
)

// ErrEmptyPrompt is returned by AskOnce for blank questions.
var ErrEmptyPrompt = errors.New("question must not be empty")

// FailureError reports a failed exchange to the caller so that the process
// can exit non-zero. The reason has already been displayed.
type FailureError struct {
	Reason string
}

func (e *FailureError) Error() string { return e.Reason }

// Prompter reads one line of user input.
type Prompter interface {
	Prompt(label string) (string, error)
}

// PromptUI reads input with promptui.
type PromptUI struct{}

func (PromptUI) Prompt(label string) (string, error) {
	p := promptui.Prompt{Label: label}
	return p.Run()
}

// Terminal draws page instructions on out (answers) and errOut (spinner and
// failures).
type Terminal struct {
	page    *page.Page
	out     io.Writer
	errOut  io.Writer
	spinner func(w io.Writer, text string) progress.Spinner

	running progress.Spinner
}

// New creates a Terminal for p.
func New(p *page.Page, out, errOut io.Writer) *Terminal {
	return &Terminal{
		page:    p,
		out:     out,
		errOut:  errOut,
		spinner: progress.Start,
	}
}

// AskOnce runs a single exchange. Blank questions are rejected without a
// remote call.
func (t *Terminal) AskOnce(ctx context.Context, question string) error {
	result, asked := t.page.Submit(ctx, question, t.draw)
	if !asked {
		return ErrEmptyPrompt
	}
	if !result.OK() {
		return &FailureError{Reason: result.Text}
	}
	return nil
}

// Chat prompts repeatedly until the user interrupts or input ends. Each
// question is independent; blank lines are ignored and failures are shown
// without ending the loop.
func (t *Terminal) Chat(ctx context.Context, in Prompter) error {
	texts := t.page.Texts()
	fmt.Fprintln(t.out, texts.Title)
	fmt.Fprintln(t.out)

	for {
		line, err := in.Prompt(texts.Placeholder)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading question: %w", err)
		}
		t.page.Submit(ctx, line, t.draw)
	}
}

func (t *Terminal) draw(in page.Instruction) {
	switch in.Type {
	case page.InstructionSpinnerOn:
		t.running = t.spinner(t.errOut, in.Text)
	case page.InstructionSpinnerOff:
		if t.running != nil {
			t.running.Stop()
			t.running = nil
		}
	case page.InstructionMessage:
		if in.Kind == assistant.KindSuccess {
			fmt.Fprintln(t.out, in.Text)
		} else {
			fmt.Fprintf(t.errOut, "Error: %s\n", in.Text)
		}
	}
}
