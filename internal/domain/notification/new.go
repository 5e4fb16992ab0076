package notification

import (
	"loanserve-backend/pkg/id"
)

// New builds an unread notification row ready for persistence.
func New(userID string, typ Type, title, message string) *Notification {
	return &Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Message:        message,
	}
}
