package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	notifDomain "loanserve-backend/internal/domain/notification"
	"loanserve-backend/pkg/apperr"
)

type ListInput struct {
	UserID     string `json:"user_id"`
	UnreadOnly bool   `json:"unread_only"`
}

func (ListInput) RequestName() string { return "notification.list" }

type MarkReadInput struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
}

func (MarkReadInput) RequestName() string { return "notification.mark_read" }

type NotificationDTO struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDTO(n *notifDomain.Notification) NotificationDTO {
	return NotificationDTO{
		NotificationID: n.NotificationID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

type Usecase struct{ repo notifDomain.Repository }

func NewUsecase(r notifDomain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) List(ctx context.Context, in ListInput) ([]NotificationDTO, error) {
	rows, err := u.repo.ListByUserID(ctx, in.UserID, in.UnreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// MarkRead flips the read flag; the only mutation notifications allow.
func (u *Usecase) MarkRead(ctx context.Context, in MarkReadInput) (*NotificationDTO, error) {
	n, err := u.repo.GetByNotificationID(ctx, in.NotificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notification", in.NotificationID)
		}
		return nil, err
	}
	if in.UserID != "" && n.UserID != in.UserID {
		return nil, apperr.NotFound("notification", in.NotificationID)
	}
	if !n.Read {
		n.Read = true
		if err := u.repo.Save(ctx, n); err != nil {
			return nil, err
		}
	}
	dto := toDTO(n)
	return &dto, nil
}
