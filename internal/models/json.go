package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a collection column. It wraps gorm.io/datatypes.JSON so the column type can
// follow the dialect.
type JSON struct {
	datatypes.JSON
}

// JSONList encodes items as a canonical JSON array column value.
func JSONList(items []string) JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return JSON{JSON: datatypes.JSON(b)}
}

// Value promotes the embedded JSON's Value method
func (j JSON) Value() (driver.Value, error) {
	if len(j.JSON) == 0 {
		return nil, nil
	}
	return j.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		j.JSON = nil
		return nil
	}
	return j.JSON.Scan(value)
}

// DecodeColumn turns a raw collection column value into something the normalizer
// understands. JSON arrays and objects are decoded with object members kept in document
// order. A JSON string literal becomes its text. Numbers and any other text, including
// legacy CSV stored in TEXT columns, are returned as a string.
func DecodeColumn(value any) any {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case datatypes.JSON:
		raw = v
	case JSON:
		raw = v.JSON
	case int, int32, int64, float32, float64, json.Number:
		// SQLite gives JSON columns numeric affinity, so scalar text like 42 comes back as a number.
		return normalize.ToString(v)
	default:
		return value
	}

	text := strings.TrimSpace(string(raw))
	switch {
	case text == "":
		return ""
	case text == "null":
		return nil
	case strings.HasPrefix(text, `"`):
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return s
		}
	case strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{"):
		if decoded, err := normalize.DecodeJSON([]byte(text)); err == nil {
			return decoded
		}
	}
	return text
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL does not support the 'json' data type.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
