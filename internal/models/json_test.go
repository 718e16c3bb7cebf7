package models

import (
	"encoding/json"
	"testing"

	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeColumn(t *testing.T) {
	assert.Nil(t, DecodeColumn(nil))
	assert.Equal(t, []any{"a", "b"}, DecodeColumn([]byte(`["a","b"]`)))
	assert.Equal(t, "a, b", DecodeColumn(`"a, b"`))
	assert.Equal(t, "WiFi, Geyser", DecodeColumn("WiFi, Geyser"))
	assert.Equal(t, "", DecodeColumn([]byte{}))
	assert.Equal(t, "3", DecodeColumn(3))
	assert.Equal(t, "42", DecodeColumn(int64(42)))
	assert.Equal(t, "42", DecodeColumn([]byte("42")))
	assert.Equal(t, "true", DecodeColumn("true"))
	assert.Nil(t, DecodeColumn("null"))
	assert.Equal(t, true, DecodeColumn(true))
}

func TestDecodeColumnKeepsObjectOrder(t *testing.T) {
	decoded := DecodeColumn([]byte(`{"b":"https://cdn/first.png","a":"https://cdn/second.png"}`))
	assert.Equal(t, []string{"https://cdn/first.png", "https://cdn/second.png"}, normalize.ToStringList(decoded))

	out, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":"https://cdn/first.png","a":"https://cdn/second.png"}`, string(out))

	assert.Equal(t, []string{"WiFi", "AC"}, normalize.ToStringList(DecodeColumn(datatypes.JSON(`{"z":"WiFi","a":"AC"}`))))
	assert.Equal(t, []string{"42"}, normalize.ToStringList(DecodeColumn("42")))
}

func TestJSONList(t *testing.T) {
	assert.Equal(t, `["Bed","Fan"]`, string(JSONList([]string{"Bed", "Fan"}).JSON))
	assert.Equal(t, `[]`, string(JSONList(nil).JSON))

	v, err := JSON{}.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
}
