package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

const productColumns = `id, name, description, price, stock, created_at`

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (repository.ProductRecord, error) {
	var rec repository.ProductRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Price, &rec.Stock, &rec.CreatedAt)
	return rec, err
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]repository.ProductRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.ProductRecord, 0)
	for rows.Next() {
		rec, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*repository.ProductRecord, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*repository.ProductRecord, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
}

func (r *ProductRepository) findOne(ctx context.Context, query string, arg any) (*repository.ProductRecord, error) {
	rec, err := scanProduct(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Save inserts records with a zero ID and updates the rest. created_at is
// written once on insert and never touched by updates.
func (r *ProductRepository) Save(ctx context.Context, rec repository.ProductRecord) (repository.ProductRecord, error) {
	var row pgx.Row
	if rec.IsNew() {
		row = r.db.QueryRow(ctx, `
			INSERT INTO products (name, description, price, stock, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, rec.Name, rec.Description, rec.Price, rec.Stock, rec.CreatedAt)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE products
			SET name = $1, description = $2, price = $3, stock = $4
			WHERE id = $5
			RETURNING id, created_at
		`, rec.Name, rec.Description, rec.Price, rec.Stock, rec.ID)
	}

	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ProductRecord{}, entity.NewNotFoundError(fmt.Sprintf("product %d not found", rec.ID))
		}
		return repository.ProductRecord{}, mapWriteError(err, fmt.Sprintf("product with name %q already exists", rec.Name))
	}
	return rec, nil
}

func (r *ProductRepository) Delete(ctx context.Context, rec repository.ProductRecord) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, rec.ID)
	return err
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
