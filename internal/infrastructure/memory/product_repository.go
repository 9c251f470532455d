package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

// ProductRepository keeps products in a map and remembers insertion order.
// It enforces name uniqueness the way the Postgres unique index does.
type ProductRepository struct {
	mu     sync.RWMutex
	nextID int64
	order  []int64
	byID   map[int64]repository.ProductRecord
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{byID: make(map[int64]repository.ProductRecord)}
}

func (r *ProductRepository) FindAll(_ context.Context) ([]repository.ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.ProductRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int64) (*repository.ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *ProductRepository) FindByName(_ context.Context, name string) (*repository.ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rec, ok := r.nameTaken(name, 0); ok {
		return &rec, nil
	}
	return nil, nil
}

func (r *ProductRepository) Save(_ context.Context, rec repository.ProductRecord) (repository.ProductRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.nameTaken(rec.Name, rec.ID); taken {
		return repository.ProductRecord{}, entity.NewConflictError(fmt.Sprintf("product with name %q already exists", rec.Name))
	}

	if rec.IsNew() {
		r.nextID++
		rec.ID = r.nextID
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now().UTC()
		}
		r.order = append(r.order, rec.ID)
		r.byID[rec.ID] = rec
		return rec, nil
	}

	prev, ok := r.byID[rec.ID]
	if !ok {
		return repository.ProductRecord{}, entity.NewNotFoundError(fmt.Sprintf("product %d not found", rec.ID))
	}
	rec.CreatedAt = prev.CreatedAt
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *ProductRepository) Delete(_ context.Context, rec repository.ProductRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rec.ID]; !ok {
		return nil
	}
	delete(r.byID, rec.ID)
	r.order = removeID(r.order, rec.ID)
	return nil
}

// nameTaken reports a product other than exceptID that already uses name.
func (r *ProductRepository) nameTaken(name string, exceptID int64) (repository.ProductRecord, bool) {
	for _, rec := range r.byID {
		if rec.Name == name && rec.ID != exceptID {
			return rec, true
		}
	}
	return repository.ProductRecord{}, false
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
