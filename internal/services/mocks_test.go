package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository implements repositories.Repository for service tests. Only
// the sub-repositories a test exercises are populated; touching an unwired
// one panics, which points straight at the missing mock.
type mockRepository struct {
	users         *mockUserRepo
	departments   *mockDepartmentRepo
	announcements *mockAnnouncementRepo
	notifications *mockNotificationRepo
	enrollments   *mockEnrollmentRepo
	assignments   *mockAssignmentRepo
	submissions   *mockAssignmentSubmissionRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:         newMockUserRepo(),
		departments:   &mockDepartmentRepo{byID: map[uint]*models.Department{}},
		announcements: &mockAnnouncementRepo{},
		notifications: &mockNotificationRepo{},
		enrollments:   &mockEnrollmentRepo{taughtBy: map[[2]uint]bool{}, enrolled: map[[2]uint]bool{}},
		assignments:   &mockAssignmentRepo{byID: map[uint]*models.Assignment{}},
		submissions:   &mockAssignmentSubmissionRepo{byID: map[uint]*models.AssignmentSubmission{}},
	}
}

func (m *mockRepository) User() repositories.UserRepository             { return m.users }
func (m *mockRepository) Department() repositories.DepartmentRepository { return m.departments }
func (m *mockRepository) Announcement() repositories.AnnouncementRepository {
	return m.announcements
}
func (m *mockRepository) Notification() repositories.NotificationRepository {
	return m.notifications
}

func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return m.enrollments }

func (m *mockRepository) Subject() repositories.SubjectRepository { panic("subject repo not mocked") }
func (m *mockRepository) Assignment() repositories.AssignmentRepository { return m.assignments }
func (m *mockRepository) AssignmentSubmission() repositories.AssignmentSubmissionRepository {
	return m.submissions
}

func (m *mockRepository) Attendance() repositories.AttendanceRepository { panic("attendance repo not mocked") }
func (m *mockRepository) Project() repositories.ProjectRepository { panic("project repo not mocked") }
func (m *mockRepository) ProjectSubmission() repositories.ProjectSubmissionRepository {
	panic("project submission repo not mocked")
}
func (m *mockRepository) Result() repositories.ResultRepository           { panic("result repo not mocked") }
func (m *mockRepository) Certificate() repositories.CertificateRepository { panic("certificate repo not mocked") }
func (m *mockRepository) Resume() repositories.ResumeRepository           { panic("resume repo not mocked") }
func (m *mockRepository) Report() repositories.ReportRepository           { panic("report repo not mocked") }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USER REPO MOCK =====

type mockUserRepo struct {
	repositories.UserRepository
	byID       map[uint]*models.User
	byUsername map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:       map[uint]*models.User{},
		byUsername: map[string]*models.User{},
	}
}

func (m *mockUserRepo) add(user *models.User) {
	m.byID[user.ID] = user
	m.byUsername[user.Username] = user
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, repositories.NotFound("user")
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, repositories.NotFound("user")
	}
	return user, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	m.add(user)
	return nil
}

func (m *mockUserRepo) ListActive(_ context.Context, role *models.UserRole, department *string) ([]*models.User, error) {
	var out []*models.User
	for _, user := range m.byID {
		if !user.IsActive {
			continue
		}
		if role != nil && user.Role != *role {
			continue
		}
		if department != nil && !strings.EqualFold(user.Department, *department) {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

// ===== DEPARTMENT REPO MOCK =====

type mockDepartmentRepo struct {
	repositories.DepartmentRepository
	byID map[uint]*models.Department
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id uint) (*models.Department, error) {
	dept, ok := m.byID[id]
	if !ok {
		return nil, repositories.NotFound("department")
	}
	return dept, nil
}

// ===== ANNOUNCEMENT REPO MOCK =====

type mockAnnouncementRepo struct {
	repositories.AnnouncementRepository
	created []*models.Announcement
}

func (m *mockAnnouncementRepo) Create(_ context.Context, announcement *models.Announcement) error {
	announcement.ID = uint(len(m.created) + 1)
	m.created = append(m.created, announcement)
	return nil
}

// ===== ENROLLMENT REPO MOCK =====

type mockEnrollmentRepo struct {
	repositories.EnrollmentRepository
	taughtBy map[[2]uint]bool // (studentID, teacherID)
	enrolled map[[2]uint]bool // (studentID, subjectID)
}

func (m *mockEnrollmentRepo) IsEnrolled(_ context.Context, studentID, subjectID uint) (bool, error) {
	return m.enrolled[[2]uint{studentID, subjectID}], nil
}

func (m *mockEnrollmentRepo) IsEnrolledWithTeacher(_ context.Context, studentID, teacherID uint) (bool, error) {
	return m.taughtBy[[2]uint{studentID, teacherID}], nil
}

// ===== ASSIGNMENT REPO MOCKS =====

type mockAssignmentRepo struct {
	repositories.AssignmentRepository
	byID map[uint]*models.Assignment
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id uint) (*models.Assignment, error) {
	assignment, ok := m.byID[id]
	if !ok {
		return nil, repositories.NotFound("assignment")
	}
	return assignment, nil
}

type mockAssignmentSubmissionRepo struct {
	repositories.AssignmentSubmissionRepository
	byID       map[uint]*models.AssignmentSubmission
	nextID     uint
	gradeCalls int
}

// Upsert mirrors the store contract: one row per (assignment, student), and
// a resubmission replaces the row with its grade fields cleared.
func (m *mockAssignmentSubmissionRepo) Upsert(_ context.Context, submission *models.AssignmentSubmission) error {
	for id, existing := range m.byID {
		if existing.AssignmentID == submission.AssignmentID && existing.StudentID == submission.StudentID {
			submission.ID = id
			m.byID[id] = submission
			return nil
		}
	}
	m.nextID++
	submission.ID = m.nextID
	m.byID[submission.ID] = submission
	return nil
}

func (m *mockAssignmentSubmissionRepo) GetByID(_ context.Context, id uint) (*models.AssignmentSubmission, error) {
	submission, ok := m.byID[id]
	if !ok {
		return nil, repositories.NotFound("submission")
	}
	return submission, nil
}

func (m *mockAssignmentSubmissionRepo) UpdateGrade(_ context.Context, id uint, marks int, feedback *string, gradedBy uint) error {
	m.gradeCalls++
	submission, ok := m.byID[id]
	if !ok {
		return repositories.NotFound("submission")
	}
	now := time.Now()
	submission.MarksObtained = &marks
	submission.Feedback = feedback
	submission.GradedBy = &gradedBy
	submission.GradedAt = &now
	return nil
}

// ===== NOTIFICATION REPO MOCK =====

type mockNotificationRepo struct {
	repositories.NotificationRepository
	created []*models.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	m.created = append(m.created, notification)
	return nil
}

func (m *mockNotificationRepo) CreateBatch(_ context.Context, notifications []*models.Notification) error {
	m.created = append(m.created, notifications...)
	return nil
}
