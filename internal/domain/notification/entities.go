package notification

import (
	"time"
)

type Type string

const (
	TypeApplicationReceived Type = "application_received"
	TypeApplicationApproved Type = "application_approved"
	TypeApplicationRejected Type = "application_rejected"
	TypeLoanDisbursed       Type = "loan_disbursed"
	TypeLoanRejected        Type = "loan_rejected"
	TypePaymentReceived     Type = "payment_received"
	TypeLoanCompleted       Type = "loan_completed"
)

type Notification struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string    `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`
	UserID         string    `gorm:"size:32;index:idx_notifications_user" json:"user_id"`
	Type           Type      `gorm:"size:32" json:"type"`
	Title          string    `gorm:"size:255" json:"title"`
	Message        string    `gorm:"type:text" json:"message"`
	Read           bool      `gorm:"default:false;index:idx_notifications_read" json:"read"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Notification) TableName() string { return "notifications" }
