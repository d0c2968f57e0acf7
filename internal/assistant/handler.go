// Package assistant forwards a single prompt to a completion service and
// turns the outcome into a displayable Result.
package assistant

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ziadkadry99/ask-assistant/internal/llm"
)

// Options configures a Handler.
type Options struct {
	// Model is sent with every request; empty defers to the provider's model.
	Model string
	// MaxTokens caps the completion length; zero leaves the service default.
	MaxTokens int
	// Verbose logs every exchange, not just failures.
	Verbose bool
}

// Handler sends one prompt per call to the configured provider. It holds no
// per-request state, so consecutive calls are independent.
type Handler struct {
	provider llm.Provider
	opts     Options
}

// New creates a Handler backed by provider.
func New(provider llm.Provider, opts Options) *Handler {
	return &Handler{provider: provider, opts: opts}
}

// Ask performs exactly one completion call for prompt. It never returns an
// error: every failure is converted into a Failure result whose text names
// the failure category. The prompt is not validated.
//
// Cancellation of ctx is not propagated; once dispatched the call runs until
// the service answers or fails. Deadlines are left to the provider.
func (h *Handler) Ask(ctx context.Context, prompt string) (result Result) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("assistant: %s provider panicked: %v", h.provider.Name(), r)
			result = Failure(llm.ErrServer.Error())
		}
	}()

	resp, err := h.provider.Complete(ctx, llm.CompletionRequest{
		Model:     h.opts.Model,
		MaxTokens: h.opts.MaxTokens,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
	})
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		kind := llm.Classify(err)
		log.Printf("assistant: %s completion failed after %s (%v): %v", h.provider.Name(), elapsed, kind, err)
		return Failure(kind.Error())
	}

	if h.opts.Verbose {
		log.Printf("assistant: %s completion in %s (finish: %s), %d in / %d out tokens%s",
			h.provider.Name(), elapsed, finishReason(resp), resp.InputTokens, resp.OutputTokens, h.costNote(resp))
	}

	return Success(resp.Content)
}

func finishReason(resp *llm.CompletionResponse) string {
	if resp.FinishReason == "" {
		return "unknown"
	}
	return resp.FinishReason
}

func (h *Handler) costNote(resp *llm.CompletionResponse) string {
	model := h.opts.Model
	if model == "" {
		model = resp.Model
	}
	cost := llm.EstimateCost(model, resp.InputTokens, resp.OutputTokens)
	if cost == 0 {
		return ""
	}
	return fmt.Sprintf(", ~$%.6f", cost)
}
