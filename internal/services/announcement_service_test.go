package services

import (
	"context"
	"testing"

	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/validator"
)

func TestAnnouncementServicePublish(t *testing.T) {
	ctx := context.Background()
	teacher := models.Identity{ID: 10, Role: models.RoleTeacher, Username: "prof"}

	setup := func() (*mockRepository, *events.MockEventPublisher, AnnouncementService) {
		repo := newMockRepository()
		repo.users.add(&models.User{ID: 1, Username: "s1", Role: models.RoleStudent, Department: "Physics", IsActive: true})
		repo.users.add(&models.User{ID: 2, Username: "s2", Role: models.RoleStudent, Department: "Chemistry", IsActive: true})
		repo.users.add(&models.User{ID: 3, Username: "t1", Role: models.RoleTeacher, Department: "Physics", IsActive: true})
		repo.users.add(&models.User{ID: 4, Username: "s3", Role: models.RoleStudent, Department: "Physics", IsActive: false})
		repo.departments.byID[5] = &models.Department{ID: 5, Name: "Physics", Code: "PHY"}

		publisher := events.NewMockEventPublisher(testLogger())
		svc := NewAnnouncementService(repo, publisher, testLogger(), validator.NewBusinessValidator())
		return repo, publisher, svc
	}

	t.Run("fans out to every active user when untargeted", func(t *testing.T) {
		repo, publisher, svc := setup()

		result, err := svc.Publish(ctx, teacher, &CreateAnnouncementRequest{
			Title:   "Semester dates",
			Content: "The semester starts on Monday.",
		})
		if err != nil {
			t.Fatalf("Publish failed: %v", err)
		}

		if result.NotifiedUsers != 3 {
			t.Errorf("NotifiedUsers = %d, want 3 (inactive users are skipped)", result.NotifiedUsers)
		}
		if len(repo.notifications.created) != 3 {
			t.Errorf("created %d notifications, want 3", len(repo.notifications.created))
		}
		if len(repo.announcements.created) != 1 {
			t.Fatalf("created %d announcements, want 1", len(repo.announcements.created))
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventAnnouncementPublished {
			t.Errorf("unexpected events: %+v", published)
		}
	})

	t.Run("targets a single role", func(t *testing.T) {
		repo, _, svc := setup()

		role := models.RoleStudent
		result, err := svc.Publish(ctx, teacher, &CreateAnnouncementRequest{
			Title:      "Exam schedule",
			Content:    "Check the notice board.",
			TargetRole: &role,
		})
		if err != nil {
			t.Fatalf("Publish failed: %v", err)
		}

		if result.NotifiedUsers != 2 {
			t.Errorf("NotifiedUsers = %d, want 2 active students", result.NotifiedUsers)
		}
		for _, n := range repo.notifications.created {
			if n.Type != models.NotificationAnnouncement {
				t.Errorf("notification type = %q, want %q", n.Type, models.NotificationAnnouncement)
			}
			if n.Title != "Announcement: Exam schedule" {
				t.Errorf("notification title = %q", n.Title)
			}
		}
	})

	t.Run("targets a department by name label", func(t *testing.T) {
		repo, _, svc := setup()

		deptID := uint(5)
		result, err := svc.Publish(ctx, teacher, &CreateAnnouncementRequest{
			Title:        "Lab closure",
			Content:      "The Physics lab is closed this week.",
			DepartmentID: &deptID,
		})
		if err != nil {
			t.Fatalf("Publish failed: %v", err)
		}

		// Active Physics users: one student, one teacher.
		if result.NotifiedUsers != 2 {
			t.Errorf("NotifiedUsers = %d, want 2", result.NotifiedUsers)
		}
		if len(repo.notifications.created) != 2 {
			t.Errorf("created %d notifications, want 2", len(repo.notifications.created))
		}
	})

	t.Run("unknown department is a validation error", func(t *testing.T) {
		_, _, svc := setup()

		deptID := uint(99)
		_, err := svc.Publish(ctx, teacher, &CreateAnnouncementRequest{
			Title:        "Ghost department",
			Content:      "Nobody should see this.",
			DepartmentID: &deptID,
		})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("students may not publish", func(t *testing.T) {
		_, _, svc := setup()

		student := models.Identity{ID: 1, Role: models.RoleStudent}
		_, err := svc.Publish(ctx, student, &CreateAnnouncementRequest{
			Title:   "Party",
			Content: "My place, tonight.",
		})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})
}
