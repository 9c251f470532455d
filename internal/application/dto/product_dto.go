package dto

import (
	"time"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/pkg/validation"
)

// CreateProductRequest is the inbound shape for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// UpdateProductRequest replaces every mutable field.
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// PatchProductRequest carries only the fields the caller sent.
type PatchProductRequest struct {
	Name        entity.Optional[string]  `json:"name"`
	Description entity.Optional[string]  `json:"description"`
	Price       entity.Optional[float64] `json:"price"`
	Stock       entity.Optional[int]     `json:"stock"`
}

// ProductResponse is what callers receive.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"created_at"`
}

func validateProductFields(name, description string, price float64, stock int) error {
	details := map[string]string{}
	validation.Check(details, "name", name, "required,notblank,min=3,max=150")
	validation.Check(details, "description", description, "max=500")
	validation.Check(details, "price", price, "nonneg")
	validation.Check(details, "stock", stock, "nonneg")
	if len(details) > 0 {
		return entity.NewValidationDetails(details)
	}
	return nil
}

func (r CreateProductRequest) Validate() error {
	return validateProductFields(r.Name, r.Description, r.Price, r.Stock)
}

func (r UpdateProductRequest) Validate() error {
	return validateProductFields(r.Name, r.Description, r.Price, r.Stock)
}

func (r PatchProductRequest) Validate() error {
	details := map[string]string{}
	if r.Name.Set {
		if r.Name.Null {
			details["name"] = "must not be null"
		} else {
			validation.Check(details, "name", r.Name.Value, "required,notblank,min=3,max=150")
		}
	}
	if v, ok := r.Description.Get(); ok {
		validation.Check(details, "description", v, "max=500")
	}
	if r.Price.Set {
		if r.Price.Null {
			details["price"] = "must not be null"
		} else {
			validation.Check(details, "price", r.Price.Value, "nonneg")
		}
	}
	if r.Stock.Set {
		if r.Stock.Null {
			details["stock"] = "must not be null"
		} else {
			validation.Check(details, "stock", r.Stock.Value, "nonneg")
		}
	}
	if len(details) > 0 {
		return entity.NewValidationDetails(details)
	}
	return nil
}

// ToEntity validates the request and builds an unsaved product.
func (r CreateProductRequest) ToEntity() (*entity.Product, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return entity.NewProduct(r.Name, r.Description, r.Price, r.Stock)
}

// ToPatch converts the request into the domain patch.
func (r PatchProductRequest) ToPatch() entity.ProductPatch {
	return entity.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		CreatedAt:   formatTime(p.CreatedAt()),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
