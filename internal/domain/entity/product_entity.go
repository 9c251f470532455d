package entity

import (
	"time"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

// Product is the aggregate root for the catalog.
// Every exported constructor and mutator keeps name, description, price and stock valid.
type Product struct {
	id          int64
	name        string
	description string
	price       float64
	stock       int
	createdAt   time.Time
}

// ProductPatch carries the fields of a partial update; unset fields are left alone.
type ProductPatch struct {
	Name        Optional[string]
	Description Optional[string]
	Price       Optional[float64]
	Stock       Optional[int]
}

// NewProduct builds a product that has not been stored yet.
func NewProduct(name, description string, price float64, stock int) (*Product, error) {
	return newProduct(0, name, description, price, stock, time.Now().UTC())
}

// ProductFromRecord rehydrates a stored product, keeping its id and creation time.
// Stored data is re-validated.
func ProductFromRecord(rec repository.ProductRecord) (*Product, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return newProduct(rec.ID, rec.Name, rec.Description, rec.Price, rec.Stock, createdAt)
}

func newProduct(id int64, name, description string, price float64, stock int, createdAt time.Time) (*Product, error) {
	if err := firstErr(
		ValidateProductName(name),
		ValidateDescription(description),
		ValidatePrice(price),
		ValidateStock(stock),
	); err != nil {
		return nil, err
	}
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		stock:       stock,
		createdAt:   createdAt,
	}, nil
}

func (p *Product) ID() int64            { return p.id }
func (p *Product) Name() string         { return p.name }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() float64       { return p.price }
func (p *Product) Stock() int           { return p.stock }
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// FullUpdate replaces every mutable field, or none of them.
func (p *Product) FullUpdate(name, description string, price float64, stock int) error {
	if err := firstErr(
		ValidateProductName(name),
		ValidateDescription(description),
		ValidatePrice(price),
		ValidateStock(stock),
	); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.price = price
	p.stock = stock
	return nil
}

// PartialUpdate applies only the provided fields. A null description clears it;
// null for any other field is rejected. Nothing is assigned unless every provided field is valid.
func (p *Product) PartialUpdate(patch ProductPatch) error {
	next := *p

	if patch.Name.Set {
		if patch.Name.Null {
			return NewValidationError("name", "name is required")
		}
		if err := ValidateProductName(patch.Name.Value); err != nil {
			return err
		}
		next.name = patch.Name.Value
	}
	if patch.Description.Set {
		desc := patch.Description.Value
		if patch.Description.Null {
			desc = ""
		}
		if err := ValidateDescription(desc); err != nil {
			return err
		}
		next.description = desc
	}
	if patch.Price.Set {
		if patch.Price.Null {
			return NewValidationError("price", "price is required")
		}
		if err := ValidatePrice(patch.Price.Value); err != nil {
			return err
		}
		next.price = patch.Price.Value
	}
	if patch.Stock.Set {
		if patch.Stock.Null {
			return NewValidationError("stock", "stock is required")
		}
		if err := ValidateStock(patch.Stock.Value); err != nil {
			return err
		}
		next.stock = patch.Stock.Value
	}

	*p = next
	return nil
}

// ToRecord converts the product to its storage shape. An unsaved product
// yields a record with a zero ID, which Save treats as an insert.
func (p *Product) ToRecord() repository.ProductRecord {
	rec := repository.ProductRecord{
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		Stock:       p.stock,
	}
	rec.CreatedAt = p.createdAt
	if p.id > 0 {
		rec.ID = p.id
	}
	return rec
}
