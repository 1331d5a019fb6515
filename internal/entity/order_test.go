package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCountry(t *testing.T, code string) Country {
	t.Helper()
	c, err := NewCountry(1, code, code, true)
	require.NoError(t, err)
	return c
}

func mustDate(t *testing.T, s string) OrderDate {
	t.Helper()
	d, err := ParseOrderDate(s)
	require.NoError(t, err)
	return d
}

func TestNewProductRejectsZeroQuantity(t *testing.T) {
	t.Parallel()

	price, _ := NewMoney(100, PLN)
	weight, _ := WeightFromGrams(500)

	_, err := NewProduct("p1", "widget", price, weight, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewProduct("p1", "widget", price, weight, -3)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestProductTotals(t *testing.T) {
	t.Parallel()

	price, _ := NewMoney(2500, PLN)
	weight, _ := WeightFromGrams(400)

	p, err := NewProduct("p1", "widget", price, weight, 3)
	require.NoError(t, err)
	require.Equal(t, int64(7500), p.TotalPrice().Cents())
	require.Equal(t, int64(1200), p.TotalWeight().Grams())
}

func TestNewOrderDerivesTotals(t *testing.T) {
	t.Parallel()

	priceA, _ := NewMoney(10000, PLN)
	weightA, _ := WeightFromGrams(1500)
	priceB, _ := NewMoney(5000, PLN)
	weightB, _ := WeightFromGrams(250)

	a := NewUnitProduct("a", "lamp", priceA, weightA)
	b, err := NewProduct("b", "bulb", priceB, weightB, 2)
	require.NoError(t, err)

	order, err := NewOrder("o1", []Product{a, b}, mustCountry(t, "PL"), mustDate(t, "2026-08-24"))
	require.NoError(t, err)
	require.Equal(t, int64(20000), order.CartValue().Cents())
	require.Equal(t, int64(2000), order.TotalWeight().Grams())
	require.Equal(t, int64(3), order.ProductCount())
}

func TestNewOrderRejectsEmptyProducts(t *testing.T) {
	t.Parallel()

	_, err := NewOrder("o1", nil, mustCountry(t, "PL"), mustDate(t, "2026-08-24"))
	require.ErrorIs(t, err, ErrEmptyProductList)
}

func TestNewOrderRejectsMixedCurrencies(t *testing.T) {
	t.Parallel()

	pln, _ := NewMoney(100, PLN)
	eur, _ := NewMoney(100, "EUR")
	w, _ := WeightFromGrams(100)

	a := NewUnitProduct("a", "x", pln, w)
	b := NewUnitProduct("b", "y", eur, w)

	_, err := NewOrder("o1", []Product{a, b}, mustCountry(t, "PL"), mustDate(t, "2026-08-24"))
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestNewOrderWithTotalsAllowsEmptyProducts(t *testing.T) {
	t.Parallel()

	value, _ := NewMoney(40000, PLN)
	weight, _ := WeightFromGrams(2000)

	order := NewOrderWithTotals("o1", nil, weight, value, mustCountry(t, "DE"), mustDate(t, "2026-08-24"))
	require.Equal(t, int64(40000), order.CartValue().Cents())
	require.Empty(t, order.Products())
	require.Zero(t, order.ProductCount())
}

func TestOrderProductsReturnsCopy(t *testing.T) {
	t.Parallel()

	price, _ := NewMoney(100, PLN)
	weight, _ := WeightFromGrams(100)
	p := NewUnitProduct("a", "x", price, weight)

	order, err := NewOrder("o1", []Product{p}, mustCountry(t, "PL"), mustDate(t, "2026-08-24"))
	require.NoError(t, err)

	got := order.Products()
	got[0] = Product{}
	require.Equal(t, "a", order.Products()[0].ID())
}
