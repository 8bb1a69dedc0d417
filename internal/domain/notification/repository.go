package notification

import "context"

// Repository - interface for the notifications table
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, notificationIDs []string, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}

// Service queues and serves in-app notifications. Queueing is
// best-effort: a failure is logged, never propagated into the caller's
// transaction.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	GetNotifications(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Subscribe(ctx context.Context, recipientID string) (<-chan SSEEvent, func())
	Stop()
}
