package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	value, ok := ParseAmount("222.137.351")
	assert.True(t, ok)
	assert.Equal(t, int64(222137351), value)

	value, ok = ParseAmount("1500")
	assert.True(t, ok)
	assert.Equal(t, int64(1500), value)
}

func TestParseAmountNegative(t *testing.T) {
	value, ok := ParseAmount("-1.234")
	assert.True(t, ok)
	assert.Equal(t, int64(-1234), value)

	// Trailing sign marker for credit balances.
	value, ok = ParseAmount("1.234-")
	assert.True(t, ok)
	assert.Equal(t, int64(-1234), value)
}

func TestParseAmountNoise(t *testing.T) {
	cases := []string{"", "   ", "ABC", "##ruido##", "12a34", "1,5", "-", "..."}
	for _, c := range cases {
		value, ok := ParseAmount(c)
		assert.False(t, ok, "input %q", c)
		assert.Equal(t, int64(0), value, "input %q", c)
	}
}

func TestIsAmount(t *testing.T) {
	assert.True(t, IsAmount("1.234.567"))
	assert.True(t, IsAmount("-500"))
	assert.False(t, IsAmount("VENTAS"))
	assert.False(t, IsAmount("..."))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$ 1.234.567", FormatAmount(1234567))
	assert.Equal(t, "$ 0", FormatAmount(0))
	assert.Equal(t, "$ 500", FormatAmount(500))
	assert.Equal(t, "$ -42.000.000", FormatAmount(-42000000))
}
