package domain

import (
	"errors"
	"fmt"
	"slices"
)

var ErrEmptyProductList = errors.New("order must contain at least one product")

// Order is the read-only input to the calculation engine: what is shipped,
// where, and when. Built once via a factory, never mutated afterwards.
type Order struct {
	id          string
	products    []Product
	totalWeight Weight
	cartValue   Money
	country     Country
	orderDate   OrderDate
}

// NewOrder derives total weight and cart value by summing the product list,
// which must be non-empty.
func NewOrder(id string, products []Product, country Country, orderDate OrderDate) (*Order, error) {
	if len(products) == 0 {
		return nil, ErrEmptyProductList
	}

	totalWeight := ZeroWeight()
	var cartValue Money
	for i, p := range products {
		totalWeight = totalWeight.Add(p.TotalWeight())
		if i == 0 {
			cartValue = p.TotalPrice()
			continue
		}
		sum, err := cartValue.Add(p.TotalPrice())
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", p.ID(), err)
		}
		cartValue = sum
	}

	return &Order{
		id:          id,
		products:    slices.Clone(products),
		totalWeight: totalWeight,
		cartValue:   cartValue,
		country:     country,
		orderDate:   orderDate,
	}, nil
}

// NewOrderWithTotals takes explicit totals, for callers that do not carry
// line-item detail. The product list may be empty here.
func NewOrderWithTotals(id string, products []Product, totalWeight Weight, cartValue Money, country Country, orderDate OrderDate) *Order {
	return &Order{
		id:          id,
		products:    slices.Clone(products),
		totalWeight: totalWeight,
		cartValue:   cartValue,
		country:     country,
		orderDate:   orderDate,
	}
}

func (o *Order) ID() string          { return o.id }
func (o *Order) TotalWeight() Weight { return o.totalWeight }
func (o *Order) CartValue() Money    { return o.cartValue }
func (o *Order) Country() Country    { return o.country }
func (o *Order) Date() OrderDate     { return o.orderDate }

func (o *Order) Products() []Product {
	return slices.Clone(o.products)
}

func (o *Order) ProductCount() int64 {
	var n int64
	for _, p := range o.products {
		n += p.Quantity()
	}
	return n
}
