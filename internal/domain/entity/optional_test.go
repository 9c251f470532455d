package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistinguishesAbsentNullAndValue(t *testing.T) {
	var in struct {
		Name        Optional[string]  `json:"name"`
		Description Optional[string]  `json:"description"`
		Price       Optional[float64] `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"description": null, "price": 0}`), &in))

	assert.False(t, in.Name.Set)

	assert.True(t, in.Description.Set)
	assert.True(t, in.Description.Null)
	_, ok := in.Description.Get()
	assert.False(t, ok)

	v, ok := in.Price.Get()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestOptional_EmptyStringIsAValue(t *testing.T) {
	var o Optional[string]
	require.NoError(t, json.Unmarshal([]byte(`""`), &o))
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestErrorKinds(t *testing.T) {
	err := NewNotFoundError("product not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "not_found: product not found", err.Error())

	assert.ErrorIs(t, NewConflictError("dup"), ErrConflict)
	assert.ErrorIs(t, NewValidationDetails(map[string]string{"name": "is required"}), ErrValidation)
}
