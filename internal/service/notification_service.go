package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/model"
	"github.com/avoronov/chessmentor/internal/storage"
)

// NotificationService owns recipient-keyed inbox entries.
type NotificationService struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewNotificationService(store *storage.Store, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		logger: logger,
	}
}

// Create stores an unread notification for the recipient.
func (n *NotificationService) Create(ctx context.Context, recipientID, title, message, ntype, link string) (*model.Notification, error) {
	notifications, err := n.store.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	notification := model.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Type:        ntype,
		Link:        link,
		CreatedAt:   time.Now().UTC(),
	}

	notifications = append(notifications, notification)
	if err := n.store.SaveNotifications(ctx, notifications); err != nil {
		return nil, fmt.Errorf("save notifications: %w", err)
	}

	return &notification, nil
}

// ListByRecipient returns the recipient's notifications, newest first.
func (n *NotificationService) ListByRecipient(ctx context.Context, recipientID string) ([]model.Notification, error) {
	notifications, err := n.store.Notifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	var inbox []model.Notification
	for _, notification := range notifications {
		if notification.RecipientID == recipientID {
			inbox = append(inbox, notification)
		}
	}

	sort.SliceStable(inbox, func(i, j int) bool {
		return inbox[i].CreatedAt.After(inbox[j].CreatedAt)
	})

	return inbox, nil
}

// MarkRead flips the read flag. Only the recipient may do so; any other
// caller, or a missing id, reports false without side effects.
func (n *NotificationService) MarkRead(ctx context.Context, id, recipientID string) (bool, error) {
	notifications, err := n.store.Notifications(ctx)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}

	for i := range notifications {
		if notifications[i].ID != id {
			continue
		}
		if notifications[i].RecipientID != recipientID {
			return false, nil
		}

		if notifications[i].Read {
			return true, nil
		}

		notifications[i].Read = true
		if err := n.store.SaveNotifications(ctx, notifications); err != nil {
			return false, fmt.Errorf("save notifications: %w", err)
		}

		return true, nil
	}

	return false, nil
}
