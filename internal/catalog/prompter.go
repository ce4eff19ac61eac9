package catalog

import (
	"context"
	"sync"
)

// Prompter is the user-facing side of the Store: blocking notifications and
// yes/no confirmations. Implementations decide how the user is reached.
type Prompter interface {
	// Alert notifies the user and returns once the message is delivered
	Alert(ctx context.Context, message string)

	// Confirm asks a yes/no question; false aborts the pending action
	Confirm(ctx context.Context, message string) bool
}

// AutoPrompter answers every confirmation with Answer and records alerts.
// Useful for non-interactive callers and tests.
type AutoPrompter struct {
	Answer bool

	mu      sync.Mutex
	alerts  []string
	prompts []string
}

func NewAutoPrompter(answer bool) *AutoPrompter {
	return &AutoPrompter{Answer: answer}
}

func (p *AutoPrompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	p.alerts = append(p.alerts, message)
	p.mu.Unlock()
}

func (p *AutoPrompter) Confirm(_ context.Context, message string) bool {
	p.mu.Lock()
	p.prompts = append(p.prompts, message)
	p.mu.Unlock()
	return p.Answer
}

// Alerts returns the messages received so far
func (p *AutoPrompter) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.alerts...)
}

// Prompts returns the confirmation questions asked so far
func (p *AutoPrompter) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.prompts...)
}

type prompterKey struct{}

// WithPrompter attaches a Prompter to ctx. Store operations called with the
// returned context prompt through p instead of the Store's default.
func WithPrompter(ctx context.Context, p Prompter) context.Context {
	return context.WithValue(ctx, prompterKey{}, p)
}

func prompterFrom(ctx context.Context, fallback Prompter) Prompter {
	if p, ok := ctx.Value(prompterKey{}).(Prompter); ok && p != nil {
		return p
	}
	return fallback
}
