package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	List(ctx context.Context, filters AnnouncementFilters) ([]*models.Announcement, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

// NotificationRepository is the append-only notification sink; rows are
// write-once with a read toggle.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateBatch(ctx context.Context, notifications []*models.Notification) error

	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)

	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
}
