package repository

import "context"

// UserRepository defines the interface for user-related database operations.
// Email uniqueness is enforced here: Save reports entity.ErrConflict on a duplicate.
type UserRepository interface {
	FindAll(ctx context.Context) ([]UserRecord, error)
	FindByID(ctx context.Context, id int64) (*UserRecord, error)
	Save(ctx context.Context, rec UserRecord) (UserRecord, error)
	Delete(ctx context.Context, rec UserRecord) error
}
