package repository

import "context"

// ProductRepository defines the persistence operations the product use cases need.
// Lookups return (nil, nil) when nothing matches.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]ProductRecord, error)
	FindByID(ctx context.Context, id int64) (*ProductRecord, error)
	FindByName(ctx context.Context, name string) (*ProductRecord, error)
	// Save inserts when rec.IsNew() and updates otherwise, returning the stored values.
	Save(ctx context.Context, rec ProductRecord) (ProductRecord, error)
	Delete(ctx context.Context, rec ProductRecord) error
}
