package domain

import (
	"errors"
	"fmt"
	"math"
)

const gramsPerKilogram = 1000

var ErrNegativeWeight = errors.New("weight cannot be negative")

// Weight is a mass stored in grams to avoid float precision issues.
type Weight struct {
	grams int64
}

func WeightFromGrams(grams int64) (Weight, error) {
	if grams < 0 {
		return Weight{}, fmt.Errorf("%w: %d", ErrNegativeWeight, grams)
	}
	return Weight{grams: grams}, nil
}

func WeightFromKilograms(kilograms float64) (Weight, error) {
	return WeightFromGrams(int64(math.Round(kilograms * gramsPerKilogram)))
}

func ZeroWeight() Weight {
	return Weight{}
}

func (w Weight) Grams() int64 { return w.grams }

func (w Weight) Kilograms() float64 {
	return float64(w.grams) / gramsPerKilogram
}

// CeilingKilograms returns the number of full kilograms, rounded up.
func (w Weight) CeilingKilograms() int64 {
	return (w.grams + gramsPerKilogram - 1) / gramsPerKilogram
}

// ExcessKilogramsAbove returns the number of "started" kilograms above the
// given limit: every fraction of a kilogram counts as a full one. Zero when
// the weight does not exceed the limit.
func (w Weight) ExcessKilogramsAbove(limit Weight) int64 {
	if w.grams <= limit.grams {
		return 0
	}
	excess := w.grams - limit.grams
	return (excess + gramsPerKilogram - 1) / gramsPerKilogram
}

func (w Weight) GreaterThan(other Weight) bool {
	return w.grams > other.grams
}

func (w Weight) LessThanOrEqual(other Weight) bool {
	return w.grams <= other.grams
}

func (w Weight) Add(other Weight) Weight {
	return Weight{grams: w.grams + other.grams}
}

func (w Weight) Multiply(factor int64) Weight {
	return Weight{grams: w.grams * factor}
}

func (w Weight) Equals(other Weight) bool {
	return w.grams == other.grams
}

func (w Weight) Format() string {
	if w.grams >= gramsPerKilogram {
		return fmt.Sprintf("%.2f kg", w.Kilograms())
	}
	return fmt.Sprintf("%d g", w.grams)
}

func (w Weight) String() string {
	return w.Format()
}
