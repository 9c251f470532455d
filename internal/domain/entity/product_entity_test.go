package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

func mustProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("Keyboard", "mechanical", 49.9, 10)
	require.NoError(t, err)
	return p
}

func TestNewProduct_Valid(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		stock int
	}{
		{"abc", 0, 0},
		{strings.Repeat("x", 150), 0.01, 1},
		{"Monitor 27\"", 199.99, 3},
	}
	for _, tc := range cases {
		p, err := NewProduct(tc.name, "", tc.price, tc.stock)
		require.NoError(t, err, tc.name)
		assert.Zero(t, p.ID())
		assert.False(t, p.CreatedAt().IsZero())
		assert.Equal(t, tc.name, p.Name())
		assert.Equal(t, tc.price, p.Price())
		assert.Equal(t, tc.stock, p.Stock())
	}
}

func TestNewProduct_Invalid(t *testing.T) {
	cases := []struct {
		label, name, desc string
		price             float64
		stock             int
		field             string
	}{
		{"empty name", "", "", 1, 1, "name"},
		{"blank name", "    ", "", 1, 1, "name"},
		{"short name", "ab", "", 1, 1, "name"},
		{"long name", strings.Repeat("n", 151), "", 1, 1, "name"},
		{"long description", "Keyboard", strings.Repeat("d", 501), 1, 1, "description"},
		{"negative price", "Keyboard", "", -1, 1, "price"},
		{"negative stock", "Keyboard", "", 1, -1, "stock"},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			p, err := NewProduct(tc.name, tc.desc, tc.price, tc.stock)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrValidation)

			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.field, de.Field)
			assert.NotEmpty(t, de.Message)
		})
	}
}

func TestProduct_RoundTripThroughRecord(t *testing.T) {
	p := mustProduct(t)

	rec := p.ToRecord()
	assert.True(t, rec.IsNew())

	// storage assigns the id
	rec.ID = 42
	reloaded, err := ProductFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, int64(42), reloaded.ID())
	assert.Equal(t, p.Name(), reloaded.Name())
	assert.Equal(t, p.Description(), reloaded.Description())
	assert.Equal(t, p.Price(), reloaded.Price())
	assert.Equal(t, p.Stock(), reloaded.Stock())
	assert.True(t, p.CreatedAt().Equal(reloaded.CreatedAt()))

	again := reloaded.ToRecord()
	assert.False(t, again.IsNew())
	assert.Equal(t, int64(42), again.ID)
}

func TestProductFromRecord_KeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := repository.ProductRecord{
		Model: repository.Model{ID: 7, CreatedAt: created},
		Name:  "Mouse",
		Price: 10,
		Stock: 2,
	}
	p, err := ProductFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, created, p.CreatedAt())

	require.NoError(t, p.FullUpdate("Mouse Pro", "wireless", 20, 3))
	assert.Equal(t, created, p.CreatedAt())
	assert.Equal(t, int64(7), p.ID())
}

func TestProduct_FullUpdate(t *testing.T) {
	p := mustProduct(t)
	require.NoError(t, p.FullUpdate("Keyboard v2", "", 59, 4))
	assert.Equal(t, "Keyboard v2", p.Name())
	assert.Equal(t, "", p.Description())
	assert.Equal(t, 59.0, p.Price())
	assert.Equal(t, 4, p.Stock())
}

func TestProduct_FullUpdate_InvalidLeavesEntityUnchanged(t *testing.T) {
	p := mustProduct(t)
	before := *p

	err := p.FullUpdate("New name", "new", 10, -1)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, *p)

	err = p.FullUpdate("  ", "new", 10, 1)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, *p)
}

func TestProduct_PartialUpdate_OnlyPrice(t *testing.T) {
	p := mustProduct(t)

	require.NoError(t, p.PartialUpdate(ProductPatch{Price: Some(99.5)}))
	assert.Equal(t, 99.5, p.Price())
	assert.Equal(t, "Keyboard", p.Name())
	assert.Equal(t, "mechanical", p.Description())
	assert.Equal(t, 10, p.Stock())
}

func TestProduct_PartialUpdate_InvalidIsAllOrNothing(t *testing.T) {
	p := mustProduct(t)
	before := *p

	err := p.PartialUpdate(ProductPatch{
		Name:  Some("Renamed keyboard"),
		Stock: Some(50),
		Price: Some(-5.0),
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before, *p)
}

func TestProduct_PartialUpdate_Description(t *testing.T) {
	p := mustProduct(t)

	require.NoError(t, p.PartialUpdate(ProductPatch{Description: Some("")}))
	assert.Equal(t, "", p.Description())

	require.NoError(t, p.PartialUpdate(ProductPatch{Description: Some("back")}))
	require.NoError(t, p.PartialUpdate(ProductPatch{Description: Null[string]()}))
	assert.Equal(t, "", p.Description())

	err := p.PartialUpdate(ProductPatch{Description: Some(strings.Repeat("d", 501))})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProduct_PartialUpdate_NullRequiredField(t *testing.T) {
	p := mustProduct(t)
	before := *p

	for _, patch := range []ProductPatch{
		{Name: Null[string]()},
		{Price: Null[float64]()},
		{Stock: Null[int]()},
	} {
		assert.ErrorIs(t, p.PartialUpdate(patch), ErrValidation)
		assert.Equal(t, before, *p)
	}
}

func TestProduct_PartialUpdate_NameLength(t *testing.T) {
	p := mustProduct(t)
	assert.ErrorIs(t, p.PartialUpdate(ProductPatch{Name: Some("ab")}), ErrValidation)
	assert.Equal(t, "Keyboard", p.Name())
}
