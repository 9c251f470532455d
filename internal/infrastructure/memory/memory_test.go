package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

func product(name string) repository.ProductRecord {
	return repository.ProductRecord{Name: name, Price: 1, Stock: 1}
}

func TestProductRepository_InsertOrderAndLookup(t *testing.T) {
	r := NewProductRepository()
	ctx := context.Background()

	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		_, err := r.Save(ctx, product(name))
		require.NoError(t, err)
	}

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zebra", all[0].Name)
	assert.Equal(t, int64(2), all[1].ID)
	assert.False(t, all[2].CreatedAt.IsZero())

	got, err := r.FindByName(ctx, "Apple")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)

	missing, err := r.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_UniqueName(t *testing.T) {
	r := NewProductRepository()
	ctx := context.Background()

	first, err := r.Save(ctx, product("Desk"))
	require.NoError(t, err)
	_, err = r.Save(ctx, product("Desk"))
	assert.ErrorIs(t, err, entity.ErrConflict)

	// Saving a product under its own name is not a conflict.
	first.Price = 9
	_, err = r.Save(ctx, first)
	assert.NoError(t, err)
}

func TestProductRepository_UpdateKeepsCreatedAt(t *testing.T) {
	r := NewProductRepository()
	ctx := context.Background()

	saved, err := r.Save(ctx, product("Desk"))
	require.NoError(t, err)

	saved.Stock = 7
	saved.CreatedAt = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	updated, err := r.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Stock)
	assert.NotEqual(t, 2000, updated.CreatedAt.Year())
}

func TestProductRepository_Delete(t *testing.T) {
	r := NewProductRepository()
	ctx := context.Background()

	a, _ := r.Save(ctx, product("Aaa"))
	b, _ := r.Save(ctx, product("Bbb"))
	require.NoError(t, r.Delete(ctx, a))

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	// The name is free again once its owner is gone.
	_, err = r.Save(ctx, product("Aaa"))
	assert.NoError(t, err)
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	u := repository.UserRecord{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}
	saved, err := r.Save(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	_, err = r.Save(ctx, u)
	assert.ErrorIs(t, err, entity.ErrConflict)

	ghost := u
	ghost.ID = 99
	ghost.Email = "ghost@example.com"
	_, err = r.Save(ctx, ghost)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, r.Delete(ctx, saved))
	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
