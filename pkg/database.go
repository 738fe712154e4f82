package pkg

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acadboost/academic-service/internal/config"
	"github.com/acadboost/academic-service/internal/models"
)

// InitDatabase opens the PostgreSQL connection, runs migrations and seeds
// demo fixtures on an empty database.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, err
	}
	if err := seed(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Subject{},
		&models.Enrollment{},
		&models.Attendance{},
		&models.Assignment{},
		&models.AssignmentSubmission{},
		&models.Project{},
		&models.ProjectSubmission{},
		&models.Result{},
		&models.Certificate{},
		&models.Announcement{},
		&models.Notification{},
		&models.Resume{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// seed inserts demo accounts and a starter department when the users table is
// empty. Running it against a populated database is a no-op.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash := func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash seed password: %w", err)
		}
		return string(h), nil
	}

	adminHash, err := hash("admin123")
	if err != nil {
		return err
	}
	teacherHash, err := hash("teacher123")
	if err != nil {
		return err
	}
	studentHash, err := hash("student123")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Username:     "admin",
			PasswordHash: adminHash,
			Role:         models.RoleAdmin,
			FullName:     "System Administrator",
			Email:        "admin@example.edu",
			IsActive:     true,
		}
		teacher := &models.User{
			Username:     "teacher",
			PasswordHash: teacherHash,
			Role:         models.RoleTeacher,
			FullName:     "Demo Teacher",
			Email:        "teacher@example.edu",
			Department:   "Computer Science",
			IsActive:     true,
		}
		student := &models.User{
			Username:     "student",
			PasswordHash: studentHash,
			Role:         models.RoleStudent,
			FullName:     "Demo Student",
			Email:        "student@example.edu",
			Department:   "Computer Science",
			IsActive:     true,
		}
		for _, user := range []*models.User{admin, teacher, student} {
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", user.Username, err)
			}
		}

		department := &models.Department{
			Name:   "Computer Science",
			Code:   "CS",
			HeadID: &teacher.ID,
		}
		if err := tx.Create(department).Error; err != nil {
			return fmt.Errorf("failed to seed department: %w", err)
		}

		subject := &models.Subject{
			Name:         "Introduction to Programming",
			Code:         "CS101",
			DepartmentID: department.ID,
			TeacherID:    teacher.ID,
			Semester:     1,
			Credits:      4,
		}
		if err := tx.Create(subject).Error; err != nil {
			return fmt.Errorf("failed to seed subject: %w", err)
		}

		enrollment := &models.Enrollment{
			StudentID: student.ID,
			SubjectID: subject.ID,
		}
		if err := tx.Create(enrollment).Error; err != nil {
			return fmt.Errorf("failed to seed enrollment: %w", err)
		}

		today := time.Now().Truncate(24 * time.Hour)

		assignment := &models.Assignment{
			Title:       "Hello World in Three Languages",
			Description: "Write and compare a hello world program in three languages of your choice.",
			SubjectID:   subject.ID,
			TeacherID:   teacher.ID,
			DueDate:     today.AddDate(0, 0, 7),
			MaxMarks:    100,
			IsActive:    true,
		}
		if err := tx.Create(assignment).Error; err != nil {
			return fmt.Errorf("failed to seed assignment: %w", err)
		}

		for _, day := range []int{-2, -1} {
			record := &models.Attendance{
				StudentID: student.ID,
				SubjectID: subject.ID,
				Date:      today.AddDate(0, 0, day),
				Status:    models.AttendancePresent,
				MarkedBy:  teacher.ID,
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to seed attendance: %w", err)
			}
		}

		// Same weighting the result upsert applies: 25/25/10/40.
		result := &models.Result{
			StudentID:            student.ID,
			SubjectID:            subject.ID,
			Semester:             1,
			AssignmentMarks:      80,
			ProjectMarks:         75,
			AttendancePercentage: 100,
			ExamMarks:            70,
			TotalMarks:           80*0.25 + 75*0.25 + 100*0.10 + 70*0.40,
			Grade:                "B+",
		}
		if err := tx.Create(result).Error; err != nil {
			return fmt.Errorf("failed to seed result: %w", err)
		}

		announcement := &models.Announcement{
			Title:    "Welcome to the new term",
			Content:  "Timetables and enrollment details are now available from your dashboard.",
			PostedBy: admin.ID,
			IsActive: true,
		}
		if err := tx.Create(announcement).Error; err != nil {
			return fmt.Errorf("failed to seed announcement: %w", err)
		}

		return nil
	})
}
