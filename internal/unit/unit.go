// Package unit implements measurement-unit conversion for inventory
// quantities. Units are partitioned into dimensions (mass, volume, count);
// conversion is only defined within a dimension and never silently coerces
// across dimensions.
package unit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Unit is a stock measurement unit. The set is closed: adding a unit means
// adding it to the factors table below.
type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Piece      Unit = "pc"
)

// Dimension groups units that can be converted into one another.
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

// ErrUnitMismatch is returned when a conversion crosses dimensions
// (e.g. grams to milliliters).
type ErrUnitMismatch struct {
	From, To Unit
}

func (e *ErrUnitMismatch) Error() string {
	return fmt.Sprintf("unit mismatch: cannot convert %s to %s", e.From, e.To)
}

// factor maps each unit to its dimension and its size in the dimension's
// base unit (g, ml, pc).
var factors = map[Unit]struct {
	dim    Dimension
	toBase decimal.Decimal
}{
	Gram:       {Mass, decimal.NewFromInt(1)},
	Kilogram:   {Mass, decimal.NewFromInt(1000)},
	Milliliter: {Volume, decimal.NewFromInt(1)},
	Liter:      {Volume, decimal.NewFromInt(1000)},
	Piece:      {Count, decimal.NewFromInt(1)},
}

// Valid reports whether u is one of the supported units.
func Valid(u Unit) bool {
	_, ok := factors[u]
	return ok
}

// DimensionOf returns the dimension of u and whether u is a known unit.
func DimensionOf(u Unit) (Dimension, bool) {
	f, ok := factors[u]
	return f.dim, ok
}

// All returns the supported units in a stable order (for validation messages).
func All() []Unit {
	return []Unit{Gram, Kilogram, Milliliter, Liter, Piece}
}

// Convert expresses qty (given in from) in to. Same-unit conversion is an
// identity. Unknown units and cross-dimension conversions fail; the factor
// pairs in use are powers of ten, so round-tripping a value reproduces it
// exactly under decimal arithmetic.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	if from == to {
		return qty, nil
	}
	ff, ok := factors[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown unit %q", from)
	}
	tf, ok := factors[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown unit %q", to)
	}
	if ff.dim != tf.dim {
		return decimal.Zero, &ErrUnitMismatch{From: from, To: to}
	}
	return qty.Mul(ff.toBase).Div(tf.toBase), nil
}
