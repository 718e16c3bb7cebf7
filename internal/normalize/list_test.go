package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestToStringList(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"empty string", "", []string{}},
		{"blank string", "   ", []string{}},
		{"json array", `["a","b"]`, []string{"a", "b"}},
		{"json array with numbers and null", `[1, null, "x"]`, []string{"1", "", "x"}},
		{"csv", "a, b, c", []string{"a", "b", "c"}},
		{"csv drops empty segments", "a,, b ,", []string{"a", "b"}},
		{"single value", "  WiFi ", []string{"WiFi"}},
		{"broken json falls back to csv", `[a, b]`, []string{"[a", "b]"}},
		{"broken json without comma", `[oops]`, []string{"[oops]"}},
		{"json object keeps document order", `{"z":"first","a":"second"}`, []string{"first", "second"}},
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"any slice keeps nil positions", []any{"a", nil, "b"}, []string{"a", "", "b"}},
		{"typed slice", []int{1, 2}, []string{"1", "2"}},
		{"map sorted by key", map[string]any{"b": "two", "a": "one"}, []string{"one", "two"}},
		{"bytes", []byte(`["x"]`), []string{"x"}},
		{"datatypes json", datatypes.JSON(`["Bed","Table"]`), []string{"Bed", "Table"}},
		{"number", 42, []string{}},
		{"bool", true, []string{}},
		{"nested json string", `"[\"a\"]"`, []string{`"[\"a\"]"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToStringList(tt.in)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStringListIdempotent(t *testing.T) {
	inputs := [][]string{
		{},
		{"a"},
		{"a", "", "b"},
		{"x, y", "[z]"},
	}
	for _, in := range inputs {
		once := ToStringList(in)
		assert.Equal(t, once, ToStringList(once))
	}
}

func TestToStringListDoesNotAlias(t *testing.T) {
	in := []string{"a", "b"}
	out := ToStringList(in)
	out[0] = "changed"
	assert.Equal(t, "a", in[0])
}

func TestToStringListNestedObject(t *testing.T) {
	got := ToStringList(`[{"name":"Bed","qty":2}]`)
	assert.Equal(t, []string{`{"name":"Bed","qty":2}`}, got)
}
