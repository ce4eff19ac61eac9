package adminapi

import (
	"context"
	"sync"
)

// apiPrompter collects alerts for the response body. Confirmation comes from
// the confirm query parameter of the request.
type apiPrompter struct {
	confirmed bool

	mu     sync.Mutex
	alerts []string
}

func (p *apiPrompter) Alert(_ context.Context, message string) {
	p.mu.Lock()
	p.alerts = append(p.alerts, message)
	p.mu.Unlock()
}

func (p *apiPrompter) Confirm(_ context.Context, _ string) bool {
	return p.confirmed
}

func (p *apiPrompter) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.alerts...)
}
