package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
	"github.com/acadboost/academic-service/internal/validator"
)

type adminService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.BusinessValidator
}

func NewAdminService(repo repositories.Repository, logger *slog.Logger, v *validator.BusinessValidator) AdminService {
	return &adminService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func requireAdmin(actor models.Identity, resource, action string) error {
	if actor.Role != models.RoleAdmin {
		return NewPermissionError(actor.ID, 0, resource, action, "admin role required")
	}
	return nil
}

func (s *adminService) CreateUser(ctx context.Context, actor models.Identity, req *CreateUserRequest) (*models.User, error) {
	if err := requireAdmin(actor, "user", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.User().UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, NewValidationError("username", "is already taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		IsActive:     true,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewValidationError("username", "is already taken", req.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", user.Role, "created_by", actor.ID)
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, actor models.Identity, userID uint, req *UpdateUserRequest) (*models.User, error) {
	if err := requireAdmin(actor, "user", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated", "user_id", user.ID, "updated_by", actor.ID)
	return user, nil
}

func (s *adminService) ListUsers(ctx context.Context, actor models.Identity, filters repositories.UserFilters) ([]*models.User, int64, error) {
	if err := requireAdmin(actor, "user", "list"); err != nil {
		return nil, 0, err
	}
	return s.repo.User().List(ctx, filters)
}

func (s *adminService) CreateDepartment(ctx context.Context, actor models.Identity, req *CreateDepartmentRequest) (*models.Department, error) {
	if err := requireAdmin(actor, "department", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.HeadID != nil {
		head, err := s.repo.User().GetByID(ctx, *req.HeadID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, NewValidationError("head_id", "user does not exist", *req.HeadID)
			}
			return nil, fmt.Errorf("failed to load department head: %w", err)
		}
		if head.Role != models.RoleTeacher {
			return nil, NewValidationError("head_id", "department head must be a teacher", *req.HeadID)
		}
	}

	dept := &models.Department{
		Name:   req.Name,
		Code:   req.Code,
		HeadID: req.HeadID,
	}
	if err := s.repo.Department().Create(ctx, dept); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewValidationError("name", "department name or code already exists", req.Name)
		}
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	s.logger.Info("Department created", "department_id", dept.ID, "created_by", actor.ID)
	return dept, nil
}

func (s *adminService) ListDepartments(ctx context.Context, actor models.Identity) ([]*models.Department, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleTeacher {
		return nil, NewPermissionError(actor.ID, 0, "department", "list", "admin or teacher role required")
	}
	return s.repo.Department().List(ctx)
}

func (s *adminService) CreateSubject(ctx context.Context, actor models.Identity, req *CreateSubjectRequest) (*models.Subject, error) {
	if err := requireAdmin(actor, "subject", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Department().GetByID(ctx, req.DepartmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("department_id", "department does not exist", req.DepartmentID)
		}
		return nil, fmt.Errorf("failed to load department: %w", err)
	}

	subject := &models.Subject{
		Name:         req.Name,
		Code:         req.Code,
		DepartmentID: req.DepartmentID,
		Credits:      req.Credits,
		Semester:     req.Semester,
	}
	if subject.Credits == 0 {
		subject.Credits = 3
	}
	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
		subject.TeacherID = *req.TeacherID
	}

	if err := s.repo.Subject().Create(ctx, subject); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewValidationError("code", "subject code already exists", req.Code)
		}
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	s.logger.Info("Subject created", "subject_id", subject.ID, "created_by", actor.ID)
	return subject, nil
}

func (s *adminService) UpdateSubject(ctx context.Context, actor models.Identity, subjectID uint, req *UpdateSubjectRequest) (*models.Subject, error) {
	if err := requireAdmin(actor, "subject", "update"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	subject, err := s.repo.Subject().GetByID(ctx, subjectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, *req.TeacherID); err != nil {
			return nil, err
		}
		subject.TeacherID = *req.TeacherID
	}
	if req.Credits != nil {
		subject.Credits = *req.Credits
	}
	if req.Semester != nil {
		subject.Semester = *req.Semester
	}

	if err := s.repo.Subject().Update(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return subject, nil
}

func (s *adminService) ListSubjects(ctx context.Context, actor models.Identity, filters repositories.SubjectFilters) ([]*models.Subject, error) {
	// Teachers see their own subjects regardless of the filter.
	if actor.Role == models.RoleTeacher {
		teacherID := actor.ID
		filters.TeacherID = &teacherID
	} else if actor.Role != models.RoleAdmin {
		return nil, NewPermissionError(actor.ID, 0, "subject", "list", "admin or teacher role required")
	}
	return s.repo.Subject().List(ctx, filters)
}

func (s *adminService) EnrollStudent(ctx context.Context, actor models.Identity, req *EnrollRequest) (*models.Enrollment, error) {
	if err := requireAdmin(actor, "enrollment", "create"); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	student, err := s.repo.User().GetByID(ctx, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("student_id", "student does not exist", req.StudentID)
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, NewValidationError("student_id", "user is not a student", req.StudentID)
	}

	if _, err := s.repo.Subject().GetByID(ctx, req.SubjectID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewValidationError("subject_id", "subject does not exist", req.SubjectID)
		}
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Status:    models.EnrollmentActive,
	}
	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewValidationError("student_id", "student is already enrolled in this subject", req.StudentID)
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	s.logger.Info("Student enrolled", "student_id", req.StudentID, "subject_id", req.SubjectID, "enrolled_by", actor.ID)
	return enrollment, nil
}

func (s *adminService) UpsertResult(ctx context.Context, actor models.Identity, req *UpsertResultRequest) (*models.Result, error) {
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleTeacher {
		return nil, NewPermissionError(actor.ID, 0, "result", "upsert", "admin or teacher role required")
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// Weighted composite: assignments 25%, projects 25%, attendance 10%,
	// exam 40%, on a 0-100 scale.
	total := req.AssignmentMarks*0.25 + req.ProjectMarks*0.25 + req.AttendancePercentage*0.10 + req.ExamMarks*0.40

	result := &models.Result{
		StudentID:            req.StudentID,
		SubjectID:            req.SubjectID,
		Semester:             req.Semester,
		AssignmentMarks:      req.AssignmentMarks,
		ProjectMarks:         req.ProjectMarks,
		AttendancePercentage: req.AttendancePercentage,
		ExamMarks:            req.ExamMarks,
		TotalMarks:           total,
		Grade:                GradeForMarks(total),
	}
	if err := s.repo.Result().Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	s.logger.Info("Result recorded",
		"student_id", req.StudentID,
		"subject_id", req.SubjectID,
		"semester", req.Semester,
		"grade", result.Grade)
	return result, nil
}

func (s *adminService) checkTeacher(ctx context.Context, teacherID uint) error {
	teacher, err := s.repo.User().GetByID(ctx, teacherID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return NewValidationError("teacher_id", "user does not exist", teacherID)
		}
		return fmt.Errorf("failed to load teacher: %w", err)
	}
	if teacher.Role != models.RoleTeacher {
		return NewValidationError("teacher_id", "user is not a teacher", teacherID)
	}
	return nil
}
