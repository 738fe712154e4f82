package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/models"
	"github.com/acadboost/academic-service/internal/repositories"
)

type userPostgres struct {
	db *gorm.DB
}

func NewUserPostgres(db *gorm.DB) repositories.UserRepository {
	return &userPostgres{db: db}
}

func (r *userPostgres) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err, "user")
	}
	return nil
}

func (r *userPostgres) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return &user, nil
}

func (r *userPostgres) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return &user, nil
}

func (r *userPostgres) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return translateError(err, "user")
	}
	return nil
}

func (r *userPostgres) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("username ILIKE ? OR full_name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "user")
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var users []*models.User
	if err := query.Order("full_name").Find(&users).Error; err != nil {
		return nil, 0, translateError(err, "user")
	}
	return users, total, nil
}

func (r *userPostgres) ListActive(ctx context.Context, role *models.UserRole, department *string) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	if department != nil {
		// Department match is by name label, not foreign key.
		query = query.Where("department = ?", *department)
	}

	var users []*models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return users, nil
}

func (r *userPostgres) CountByRole(ctx context.Context, role models.UserRole, activeOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, translateError(err, "user")
	}
	return count, nil
}

func (r *userPostgres) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, translateError(err, "user")
	}
	return count > 0, nil
}

// ===== DEPARTMENTS =====

type departmentPostgres struct {
	db *gorm.DB
}

func NewDepartmentPostgres(db *gorm.DB) repositories.DepartmentRepository {
	return &departmentPostgres{db: db}
}

func (r *departmentPostgres) Create(ctx context.Context, dept *models.Department) error {
	if err := r.db.WithContext(ctx).Create(dept).Error; err != nil {
		return translateError(err, "department")
	}
	return nil
}

func (r *departmentPostgres) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).Preload("Head").First(&dept, id).Error; err != nil {
		return nil, translateError(err, "department")
	}
	return &dept, nil
}

func (r *departmentPostgres) GetByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&dept).Error; err != nil {
		return nil, translateError(err, "department")
	}
	return &dept, nil
}

func (r *departmentPostgres) List(ctx context.Context) ([]*models.Department, error) {
	var depts []*models.Department
	if err := r.db.WithContext(ctx).
		Preload("Head").
		Order("name").
		Find(&depts).Error; err != nil {
		return nil, translateError(err, "department")
	}
	return depts, nil
}

func (r *departmentPostgres) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Department{}).Count(&count).Error; err != nil {
		return 0, translateError(err, "department")
	}
	return count, nil
}
