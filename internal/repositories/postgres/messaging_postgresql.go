package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type announcementPostgres struct {
	db *gorm.DB
}

func NewAnnouncementPostgres(db *gorm.DB) repositories.AnnouncementRepository {
	return &announcementPostgres{db: db}
}

func (r *announcementPostgres) Create(ctx context.Context, announcement *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return translateError(err, "announcement")
	}
	return nil
}

func (r *announcementPostgres) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.WithContext(ctx).
		Preload("Poster").
		Preload("Department").
		First(&announcement, id).Error; err != nil {
		return nil, translateError(err, "announcement")
	}
	return &announcement, nil
}

func (r *announcementPostgres) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error) {
	query := r.db.WithContext(ctx).
		Preload("Poster").
		Preload("Department")
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var announcements []*models.Announcement
	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, translateError(err, "announcement")
	}
	return announcements, nil
}

func (r *announcementPostgres) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return translateError(result.Error, "announcement")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("announcement")
	}
	return nil
}

func (r *announcementPostgres) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return translateError(result.Error, "announcement")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("announcement")
	}
	return nil
}

// ===== NOTIFICATIONS =====

type notificationPostgres struct {
	db *gorm.DB
}

func NewNotificationPostgres(db *gorm.DB) repositories.NotificationRepository {
	return &notificationPostgres{db: db}
}

func (r *notificationPostgres) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return translateError(err, "notification")
	}
	return nil
}

func (r *notificationPostgres) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(notifications, 100).Error; err != nil {
		return translateError(err, "notification")
	}
	return nil
}

func (r *notificationPostgres) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notifications []*models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, translateError(err, "notification")
	}
	return notifications, nil
}

func (r *notificationPostgres) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, translateError(err, "notification")
	}
	return count, nil
}

func (r *notificationPostgres) MarkRead(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return translateError(result.Error, "notification")
	}
	if result.RowsAffected == 0 {
		return repositories.NotFound("notification")
	}
	return nil
}

func (r *notificationPostgres) MarkAllRead(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return translateError(err, "notification")
	}
	return nil
}
