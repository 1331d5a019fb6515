package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidQuantity = errors.New("product quantity must be positive")

// Product is a line item in an order.
type Product struct {
	id       string
	name     string
	price    Money
	weight   Weight
	quantity int64
}

// NewProduct creates a line item; quantity must be >= 1. Use
// NewUnitProduct for the common quantity-of-one case.
func NewProduct(id, name string, price Money, weight Weight, quantity int64) (Product, error) {
	if quantity < 1 {
		return Product{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	return Product{id: id, name: name, price: price, weight: weight, quantity: quantity}, nil
}

func NewUnitProduct(id, name string, price Money, weight Weight) Product {
	return Product{id: id, name: name, price: price, weight: weight, quantity: 1}
}

func (p Product) ID() string      { return p.id }
func (p Product) Name() string    { return p.name }
func (p Product) Price() Money    { return p.price }
func (p Product) Weight() Weight  { return p.weight }
func (p Product) Quantity() int64 { return p.quantity }

func (p Product) TotalPrice() Money {
	return p.price.Multiply(p.quantity)
}

func (p Product) TotalWeight() Weight {
	return p.weight.Multiply(p.quantity)
}
