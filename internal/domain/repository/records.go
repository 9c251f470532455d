package repository

import "time"

// Model holds the fields every persisted record shares.
// ID == 0 means the record has not been stored yet; the persistence layer
// assigns ID and, when it owns the default, CreatedAt. The serialized form
// leaves id out entirely until then.
type Model struct {
	ID        int64     `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsNew reports whether Save should insert rather than update.
func (m Model) IsNew() bool { return m.ID == 0 }

// ProductRecord is the storage shape of a product.
type ProductRecord struct {
	Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// UserRecord is the storage shape of a user. Password is stored as supplied.
type UserRecord struct {
	Model
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
