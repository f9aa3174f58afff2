package domain

import (
	"github.com/go-playground/validator/v10"
)

// Partition labels. Products in any other category are stored and served
// but never listed on the home page.
const (
	CategoryNode   = "Node.js Products"
	CategoryDotNet = ".NET Products"
)

var validate = validator.New()

// Product represents a product in the showcase catalog
type Product struct {
	ID          int      `json:"id" validate:"gt=0"`
	Name        string   `json:"name" validate:"required"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// Validate checks the record invariants of a stored product
func (p Product) Validate() error {
	return validate.Struct(p)
}
