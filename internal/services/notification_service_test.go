package services

import (
	"context"
	"testing"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/validator"
)

func TestNotificationServiceSendDirect(t *testing.T) {
	ctx := context.Background()
	teacher := models.Identity{ID: 10, Role: models.RoleTeacher, Username: "prof"}

	setup := func() (*mockRepository, NotificationService) {
		repo := newMockRepository()
		repo.users.add(&models.User{ID: 1, Username: "s1", Role: models.RoleStudent, IsActive: true})
		repo.users.add(&models.User{ID: 2, Username: "s2", Role: models.RoleStudent, IsActive: true})
		repo.users.add(&models.User{ID: 3, Username: "s3", Role: models.RoleStudent, IsActive: false})
		repo.enrollments.taughtBy[[2]uint{1, 10}] = true

		svc := NewNotificationService(repo, testLogger(), validator.NewBusinessValidator())
		return repo, svc
	}

	t.Run("delivers to an enrolled student", func(t *testing.T) {
		repo, svc := setup()

		notification, err := svc.SendDirect(ctx, teacher, &SendMessageRequest{
			StudentID: 1,
			Title:     "Office hours",
			Message:   "Please drop by after the Thursday lecture.",
		})
		if err != nil {
			t.Fatalf("SendDirect failed: %v", err)
		}
		if notification.Type != models.NotificationMessage {
			t.Errorf("notification type = %q, want %q", notification.Type, models.NotificationMessage)
		}
		if len(repo.notifications.created) != 1 || repo.notifications.created[0].UserID != 1 {
			t.Errorf("unexpected created notifications: %+v", repo.notifications.created)
		}
	})

	t.Run("rejects a student not in any of the teacher's subjects", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.SendDirect(ctx, teacher, &SendMessageRequest{
			StudentID: 2,
			Title:     "Hello",
			Message:   "You are in someone else's class.",
		})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("admins may message any student", func(t *testing.T) {
		repo, svc := setup()

		admin := models.Identity{ID: 99, Role: models.RoleAdmin}
		_, err := svc.SendDirect(ctx, admin, &SendMessageRequest{
			StudentID: 2,
			Title:     "Records",
			Message:   "Your enrollment record needs attention.",
		})
		if err != nil {
			t.Fatalf("SendDirect failed: %v", err)
		}
		if len(repo.notifications.created) != 1 {
			t.Errorf("created %d notifications, want 1", len(repo.notifications.created))
		}
	})

	t.Run("inactive recipient is a validation error", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.SendDirect(ctx, teacher, &SendMessageRequest{
			StudentID: 3,
			Title:     "Hello",
			Message:   "This account is disabled.",
		})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("students may not send", func(t *testing.T) {
		_, svc := setup()

		student := models.Identity{ID: 1, Role: models.RoleStudent}
		_, err := svc.SendDirect(ctx, student, &SendMessageRequest{
			StudentID: 2,
			Title:     "Hi",
			Message:   "Peer to peer.",
		})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})
}
