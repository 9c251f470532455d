package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// mapWriteError turns a unique violation into entity.ErrConflict and passes
// every other error through.
func mapWriteError(err error, conflictMsg string) error {
	if isUniqueViolation(err) {
		return entity.NewConflictError(conflictMsg)
	}
	return err
}
