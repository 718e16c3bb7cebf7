package models

// Row is a record as returned by the record store: column name to driver value.
// An absent column is a missing key; SQL NULL is a nil value.
type Row map[string]any

// Has reports whether the column is present in the row, even when NULL.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// String returns the column as a string when it holds text.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}
