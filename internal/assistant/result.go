package assistant

// Kind tags the variant of a Result. The values double as display styles.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "error"
)

// Result is the outcome of one exchange: either the completion text or a
// human-readable failure reason. It is never stored.
type Result struct {
	Kind Kind   `json:"type"`
	Text string `json:"content"`
}

// Success returns a successful Result carrying the completion text verbatim.
func Success(text string) Result {
	return Result{Kind: KindSuccess, Text: text}
}

// Failure returns a failed Result carrying a reason suitable for display.
func Failure(reason string) Result {
	return Result{Kind: KindFailure, Text: reason}
}

// OK reports whether the exchange succeeded.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}
