package repositories

import (
	"context"

	"github.com/acadboost/academic-service/internal/models"
)

// UserRepository provides access to user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// ListActive returns active users matching the optional role and
	// department-name filters; both nil means all active users.
	ListActive(ctx context.Context, role *models.UserRole, department *string) ([]*models.User, error)

	CountByRole(ctx context.Context, role models.UserRole, activeOnly bool) (int64, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// DepartmentRepository provides access to department records.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)
	Count(ctx context.Context) (int64, error)
}
