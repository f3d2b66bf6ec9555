package service

import (
	"context"

	"github.com/noah-isme/farm-register-api/internal/models"
	appErrors "github.com/noah-isme/farm-register-api/pkg/errors"
)

type notificationInbox interface {
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// NotificationService serves the caller's own inbox.
type NotificationService struct {
	repo notificationInbox
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationInbox) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the caller's notifications newest first.
func (s *NotificationService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Notification, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch notifications")
	}
	return items, nil
}

// MarkAllRead marks every unread notification of the caller as read. Calling
// it with nothing unread is a no-op.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor *models.JWTClaims) (int64, error) {
	if err := authorize(actor, models.RoleAdmin, models.RoleForecaster); err != nil {
		return 0, err
	}
	changed, err := s.repo.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notifications")
	}
	return changed, nil
}
