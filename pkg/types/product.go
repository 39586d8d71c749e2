// Product entity for the inventory tracker.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one stocked item. Name is the natural key and is compared
// case-insensitively.
type Product struct {
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// NewProduct builds a Product from its three fields.
func NewProduct(name string, price decimal.Decimal, stock int) Product {
	return Product{Name: name, Price: price, StockQuantity: stock}
}

// Validate returns ErrInvalidName when the product has no name.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// HasName reports whether name matches the product's name, ignoring case.
func (p Product) HasName(name string) bool {
	return strings.EqualFold(p.Name, name)
}

// AdjustStock adds delta to the stock quantity. The result is not clamped;
// a negative quantity records a shortfall. A delta that would overflow int
// leaves the quantity unchanged and returns ErrStockOverflow.
func (p *Product) AdjustStock(delta int) error {
	sum := p.StockQuantity + delta
	if (delta > 0 && sum < p.StockQuantity) || (delta < 0 && sum > p.StockQuantity) {
		return ErrStockOverflow
	}
	p.StockQuantity = sum
	return nil
}
