package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

const userColumns = `id, name, email, password, created_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (repository.UserRecord, error) {
	var rec repository.UserRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Password, &rec.CreatedAt)
	return rec, err
}

func (r *UserRepository) FindAll(ctx context.Context) ([]repository.UserRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.UserRecord, 0)
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*repository.UserRecord, error) {
	rec, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *UserRepository) Save(ctx context.Context, rec repository.UserRecord) (repository.UserRecord, error) {
	var row pgx.Row
	if rec.IsNew() {
		row = r.db.QueryRow(ctx, `
			INSERT INTO users (name, email, password, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, rec.Name, rec.Email, rec.Password, rec.CreatedAt)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE users
			SET name = $1, email = $2, password = $3
			WHERE id = $4
			RETURNING id, created_at
		`, rec.Name, rec.Email, rec.Password, rec.ID)
	}

	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.UserRecord{}, entity.NewNotFoundError(fmt.Sprintf("user %d not found", rec.ID))
		}
		return repository.UserRecord{}, mapWriteError(err, fmt.Sprintf("email %q is already registered", rec.Email))
	}
	return rec, nil
}

func (r *UserRepository) Delete(ctx context.Context, rec repository.UserRecord) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, rec.ID)
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
