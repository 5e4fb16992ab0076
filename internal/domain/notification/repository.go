package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByNotificationID(ctx context.Context, notificationID string) (*Notification, error)
	ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	Save(ctx context.Context, n *Notification) error
}

// Sink hands a durably stored notification to an asynchronous delivery
// channel. Delivery is best effort; the row in storage is the source of
// truth.
type Sink interface {
	Deliver(ctx context.Context, n *Notification) error
}
