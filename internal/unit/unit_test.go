package unit

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestConvertIdentity(t *testing.T) {
	for _, u := range All() {
		got, err := Convert(dec("12.5"), u, u)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("12.5")), "identity conversion for %s", u)
	}
}

func TestConvertMass(t *testing.T) {
	got, err := Convert(dec("1.5"), Kilogram, Gram)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1500")))

	got, err = Convert(dec("250"), Gram, Kilogram)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("0.25")))
}

func TestConvertVolume(t *testing.T) {
	got, err := Convert(dec("0.33"), Liter, Milliliter)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("330")))
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := []struct{ a, b Unit }{
		{Gram, Kilogram},
		{Kilogram, Gram},
		{Milliliter, Liter},
		{Liter, Milliliter},
		{Piece, Piece},
	}
	for _, p := range pairs {
		orig := dec("123.456")
		mid, err := Convert(orig, p.a, p.b)
		require.NoError(t, err)
		back, err := Convert(mid, p.b, p.a)
		require.NoError(t, err)
		assert.True(t, back.Equal(orig), "round trip %s→%s→%s", p.a, p.b, p.a)
	}
}

func TestConvertCrossDimension(t *testing.T) {
	cases := []struct{ from, to Unit }{
		{Gram, Milliliter},
		{Liter, Kilogram},
		{Piece, Gram},
		{Milliliter, Piece},
	}
	for _, c := range cases {
		_, err := Convert(dec("1"), c.from, c.to)
		var mismatch *ErrUnitMismatch
		require.Error(t, err)
		assert.True(t, errors.As(err, &mismatch), "%s→%s must be a unit mismatch", c.from, c.to)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	_, err := Convert(dec("1"), Unit("bag"), Gram)
	require.Error(t, err)

	var mismatch *ErrUnitMismatch
	assert.False(t, errors.As(err, &mismatch), "unknown unit is not a dimension mismatch")
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Gram))
	assert.True(t, Valid(Piece))
	assert.False(t, Valid(Unit("oz")))
}
