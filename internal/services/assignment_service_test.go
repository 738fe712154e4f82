package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/validator"
)

func newTestAssignmentService(repo *mockRepository, publisher events.EventPublisher) AssignmentService {
	v := validator.NewBusinessValidator()
	notifier := NewNotificationService(repo, testLogger(), v)
	return NewAssignmentService(repo, notifier, publisher, testLogger(), v)
}

func TestAssignmentServiceSubmit(t *testing.T) {
	ctx := context.Background()
	student := models.Identity{ID: 1, Role: models.RoleStudent, FullName: "Demo Student"}

	setup := func() (*mockRepository, *events.MockEventPublisher, AssignmentService) {
		repo := newMockRepository()
		repo.assignments.byID[5] = &models.Assignment{
			ID:        5,
			Title:     "Sorting lab",
			SubjectID: 100,
			TeacherID: 10,
			DueDate:   time.Now().AddDate(0, 0, 7),
			MaxMarks:  100,
			IsActive:  true,
		}
		repo.enrollments.enrolled[[2]uint{1, 100}] = true

		publisher := events.NewMockEventPublisher(testLogger())
		return repo, publisher, newTestAssignmentService(repo, publisher)
	}

	t.Run("enrolled student submits and the teacher is notified", func(t *testing.T) {
		repo, publisher, svc := setup()

		submission, err := svc.Submit(ctx, student, 5, &SubmitAssignmentRequest{Content: "my solution"})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if submission.ID == 0 || submission.StudentID != 1 {
			t.Errorf("unexpected submission: %+v", submission)
		}

		if len(repo.notifications.created) != 1 {
			t.Fatalf("created %d notifications, want 1", len(repo.notifications.created))
		}
		notification := repo.notifications.created[0]
		if notification.UserID != 10 || notification.Type != models.NotificationAssignment {
			t.Errorf("unexpected teacher notification: %+v", notification)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventSubmissionCreated {
			t.Errorf("unexpected events: %+v", published)
		}
	})

	t.Run("unenrolled student is rejected", func(t *testing.T) {
		_, _, svc := setup()

		outsider := models.Identity{ID: 2, Role: models.RoleStudent}
		_, err := svc.Submit(ctx, outsider, 5, &SubmitAssignmentRequest{Content: "sneaky"})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("closed assignment rejects submissions", func(t *testing.T) {
		repo, _, svc := setup()
		repo.assignments.byID[5].IsActive = false

		_, err := svc.Submit(ctx, student, 5, &SubmitAssignmentRequest{Content: "late"})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("empty submission is rejected", func(t *testing.T) {
		_, _, svc := setup()

		_, err := svc.Submit(ctx, student, 5, &SubmitAssignmentRequest{})
		if !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("resubmission replaces the row and clears the grade", func(t *testing.T) {
		repo, _, svc := setup()
		teacher := models.Identity{ID: 10, Role: models.RoleTeacher}

		first, err := svc.Submit(ctx, student, 5, &SubmitAssignmentRequest{Content: "draft"})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if _, err := svc.Grade(ctx, teacher, first.ID, &GradeRequest{Marks: 80}); err != nil {
			t.Fatalf("Grade failed: %v", err)
		}

		second, err := svc.Submit(ctx, student, 5, &SubmitAssignmentRequest{Content: "final"})
		if err != nil {
			t.Fatalf("resubmit failed: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("resubmission created a new row: first ID %d, second ID %d", first.ID, second.ID)
		}

		stored := repo.submissions.byID[second.ID]
		if stored.IsGraded() {
			t.Errorf("resubmission kept the prior grade: %+v", stored)
		}
		if stored.SubmissionText != "final" {
			t.Errorf("submission text = %q, want %q", stored.SubmissionText, "final")
		}
	})
}

func TestAssignmentServiceGrade(t *testing.T) {
	ctx := context.Background()
	owner := models.Identity{ID: 10, Role: models.RoleTeacher}

	setup := func() (*mockRepository, AssignmentService) {
		repo := newMockRepository()
		repo.assignments.byID[5] = &models.Assignment{
			ID:        5,
			Title:     "Sorting lab",
			SubjectID: 100,
			TeacherID: 10,
			MaxMarks:  50,
			IsActive:  true,
		}
		repo.submissions.byID[1] = &models.AssignmentSubmission{
			ID:           1,
			AssignmentID: 5,
			StudentID:    1,
			SubmittedAt:  time.Now(),
		}
		repo.submissions.nextID = 1

		publisher := events.NewMockEventPublisher(testLogger())
		return repo, newTestAssignmentService(repo, publisher)
	}

	t.Run("owning teacher records the grade and notifies the student", func(t *testing.T) {
		repo, svc := setup()

		feedback := "well structured"
		graded, err := svc.Grade(ctx, owner, 1, &GradeRequest{Marks: 42, Feedback: &feedback})
		if err != nil {
			t.Fatalf("Grade failed: %v", err)
		}
		if !graded.IsGraded() || *graded.MarksObtained != 42 {
			t.Errorf("unexpected graded submission: %+v", graded)
		}
		if *graded.GradedBy != 10 {
			t.Errorf("GradedBy = %d, want 10", *graded.GradedBy)
		}

		if len(repo.notifications.created) != 1 {
			t.Fatalf("created %d notifications, want 1", len(repo.notifications.created))
		}
		notification := repo.notifications.created[0]
		if notification.UserID != 1 || notification.Type != models.NotificationGrade {
			t.Errorf("unexpected student notification: %+v", notification)
		}
	})

	t.Run("a different teacher is rejected before any write", func(t *testing.T) {
		repo, svc := setup()

		intruder := models.Identity{ID: 11, Role: models.RoleTeacher}
		_, err := svc.Grade(ctx, intruder, 1, &GradeRequest{Marks: 42})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
		if repo.submissions.gradeCalls != 0 {
			t.Errorf("grade was written %d times despite the rejection", repo.submissions.gradeCalls)
		}
		if repo.submissions.byID[1].IsGraded() {
			t.Errorf("submission was graded despite the rejection: %+v", repo.submissions.byID[1])
		}
	})

	t.Run("marks above the assignment maximum are rejected", func(t *testing.T) {
		repo, svc := setup()

		_, err := svc.Grade(ctx, owner, 1, &GradeRequest{Marks: 51})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
		if repo.submissions.gradeCalls != 0 {
			t.Errorf("grade was written %d times despite the rejection", repo.submissions.gradeCalls)
		}
	})

	t.Run("students may not grade", func(t *testing.T) {
		_, svc := setup()

		student := models.Identity{ID: 1, Role: models.RoleStudent}
		_, err := svc.Grade(ctx, student, 1, &GradeRequest{Marks: 10})
		if !IsPermissionError(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("unknown submission", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.Grade(ctx, owner, 99, &GradeRequest{Marks: 10})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
