package money

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{"10", 1000},
		{"10.5", 1050},
		{"10.55", 1055},
		{"-3.20", -320},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseRejectsSubCent(t *testing.T) {
	_, err := Parse("10.555")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotCurrency))

	_, err = Parse("ten dollars")
	assert.True(t, errors.Is(err, ErrNotCurrency))
}

func TestFromFloat(t *testing.T) {
	a, err := FromFloat(25.25)
	require.NoError(t, err)
	assert.Equal(t, Amount(2525), a)

	_, err = FromFloat(0.001)
	assert.ErrorIs(t, err, ErrNotCurrency)
}

func TestMulRatio(t *testing.T) {
	assert.Equal(t, Amount(1500), FromDollars(10).MulRatio(1.5))
	assert.Equal(t, Amount(2500), FromDollars(10).MulRatio(2.5))
	// 10.01 * 1.5 = 15.015 rounds to 15.02
	assert.Equal(t, Amount(1502), Amount(1001).MulRatio(1.5))
	assert.Equal(t, Amount(503), Amount(1005).Half())
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.50", Amount(1250).String())
	assert.Equal(t, "-0.05", Amount(-5).String())
	assert.Equal(t, "0.00", Zero.String())
}

func TestTextRoundTrip(t *testing.T) {
	var a Amount
	require.NoError(t, a.UnmarshalText([]byte("7.25")))
	assert.Equal(t, Amount(725), a)
	assert.Error(t, a.UnmarshalText([]byte("7.255")))
}
