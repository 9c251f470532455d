package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

// UserRepository is the in-memory user store. Emails are unique.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	order  []int64
	byID   map[int64]repository.UserRecord
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[int64]repository.UserRecord)}
}

func (r *UserRepository) FindAll(_ context.Context) ([]repository.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]repository.UserRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*repository.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *UserRepository) Save(_ context.Context, rec repository.UserRecord) (repository.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.byID {
		if other.Email == rec.Email && other.ID != rec.ID {
			return repository.UserRecord{}, entity.NewConflictError(fmt.Sprintf("email %q is already registered", rec.Email))
		}
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
		return repository.UserRecord{}, entity.NewNotFoundError(fmt.Sprintf("user %d not found", rec.ID))
	}
	rec.CreatedAt = prev.CreatedAt
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *UserRepository) Delete(_ context.Context, rec repository.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rec.ID]; ok {
		delete(r.byID, rec.ID)
		r.order = removeID(r.order, rec.ID)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
