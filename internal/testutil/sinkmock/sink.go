package sinkmock

import (
	"context"
	"sync"

	notifDomain "loanserve-backend/internal/domain/notification"
)

// Ensure compile-time compliance
var _ notifDomain.Sink = (*Sink)(nil)

// Sink records delivered notifications; set DeliverFn to override.
type Sink struct {
	mu        sync.Mutex
	DeliverFn func(ctx context.Context, n *notifDomain.Notification) error
	delivered []notifDomain.Notification
}

func New() *Sink { return &Sink{} }

func (m *Sink) Deliver(ctx context.Context, n *notifDomain.Notification) error {
	if m.DeliverFn != nil {
		return m.DeliverFn(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delivered = append(m.delivered, *n)
	return nil
}

func (m *Sink) Delivered() []notifDomain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifDomain.Notification(nil), m.delivered...)
}
