package mathutil

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeilUint64(t *testing.T) {
	tests := []struct {
		value    string
		expected uint64
	}{
		{"0", 0},
		{"0.001", 1},
		{"41", 41},
		{"18446744073709551614.5", math.MaxUint64},
		{"18446744073709551615", math.MaxUint64},
	}
	for _, tt := range tests {
		v, err := CeilUint64(decimal.RequireFromString(tt.value))
		require.NoError(t, err)
		assert.Equal(t, tt.expected, v)
	}

	assert.True(t, FromUint64(math.MaxUint64).Equal(
		decimal.RequireFromString("18446744073709551615"),
	))
}

func TestFailingCeilUint64(t *testing.T) {
	tests := []struct {
		value         string
		expectedError error
	}{
		{"-1", ErrNegativeValue},
		{"18446744073709551616", ErrValueOverflow},
		{"18446744073709551615.2", ErrValueOverflow},
	}
	for _, tt := range tests {
		v, err := CeilUint64(decimal.RequireFromString(tt.value))
		assert.ErrorIs(t, err, tt.expectedError)
		assert.Zero(t, v)
	}
}
