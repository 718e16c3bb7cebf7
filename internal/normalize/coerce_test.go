package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"empty string", "", nil},
		{"blank string", "   ", nil},
		{"integer string", "4500", ptr(4500)},
		{"padded decimal", " 12.5 ", ptr(12.5)},
		{"negative", "-3", ptr(-3)},
		{"garbage", "abc", nil},
		{"nan text", "NaN", nil},
		{"infinity text", "Infinity", nil},
		{"inf text", "inf", nil},
		{"float64", float64(7), ptr(7)},
		{"int64", int64(42), ptr(42)},
		{"int", 3, ptr(3)},
		{"bool true", true, ptr(1)},
		{"bool false", false, ptr(0)},
		{"bytes", []byte("99"), ptr(99)},
		{"json number", json.Number("1.25"), ptr(1.25)},
		{"float nan", math.NaN(), nil},
		{"float inf", math.Inf(1), nil},
		{"slice", []string{"1"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNumber(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestToNumberNeverNonFinite(t *testing.T) {
	inputs := []any{"1e400", "-1e400", math.MaxFloat64, "NaN", "+Inf", math.Inf(-1), float32(math.Inf(1))}
	for _, in := range inputs {
		if got := ToNumber(in); got != nil {
			assert.False(t, math.IsNaN(*got) || math.IsInf(*got, 0), "non-finite result for %v", in)
		}
	}
}

func TestToInt(t *testing.T) {
	got := ToInt("21.9")
	require.NotNil(t, got)
	assert.Equal(t, 21, *got)

	assert.Nil(t, ToInt(""))
	assert.Nil(t, ToInt("1e20"))

	got = ToInt(float64(math.MaxInt32))
	require.NotNil(t, got)
	assert.Equal(t, math.MaxInt32, *got)
	got = ToInt("-2147483648")
	require.NotNil(t, got)
	assert.Equal(t, math.MinInt32, *got)
	assert.Nil(t, ToInt(int64(math.MaxInt32)+1))
	assert.Nil(t, ToInt(int64(math.MinInt32)-1))
}

func TestToBool(t *testing.T) {
	truthy := []any{true, "true", 1, "1", float64(1), int64(1), []byte("true")}
	for _, in := range truthy {
		assert.True(t, ToBool(in), "expected true for %#v", in)
	}

	falsy := []any{false, "false", 0, "0", nil, "", "yes", "TRUE", 2, float64(0), []string{"1"}}
	for _, in := range falsy {
		assert.False(t, ToBool(in), "expected false for %#v", in)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "4500", ToString(float64(4500)))
	assert.Equal(t, "2.5", ToString(2.5))
	assert.Equal(t, "7", ToString(int64(7)))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, `{"a":1}`, ToString(map[string]int{"a": 1}))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy("  "))
	assert.False(t, Truthy(0))
	assert.False(t, Truthy(float64(0)))
	assert.False(t, Truthy(false))

	assert.True(t, Truthy("Gunupur"))
	assert.True(t, Truthy(4500))
	assert.True(t, Truthy([]any{}))
	assert.True(t, Truthy(true))
}

func ptr(f float64) *float64 {
	return &f
}
