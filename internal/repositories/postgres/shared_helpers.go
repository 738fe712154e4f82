package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/acadboost/academic-service/internal/repositories"
)

const pgUniqueViolation = "23505"

// translateError maps driver-level errors onto the repository sentinels so
// callers never match on gorm or pgx types.
func translateError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.NotFound(entity)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return repositories.Duplicate(entity)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repositories.Duplicate(entity)
	}
	return fmt.Errorf("%s: %w", entity, err)
}
