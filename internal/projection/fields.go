// Package projection maps loosely typed store rows onto the view models the
// listing and profile pages render.
package projection

import (
	"strings"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
)

// DefaultRating stands in until ratings are stored on the row.
const DefaultRating = 4.5

// first returns the first truthy value among the columns, or nil.
func first(row models.Row, columns ...string) any {
	for _, c := range columns {
		if v, ok := row[c]; ok && normalize.Truthy(v) {
			return v
		}
	}
	return nil
}

func firstString(row models.Row, columns ...string) string {
	return strings.TrimSpace(normalize.ToString(first(row, columns...)))
}

func text(row models.Row, column string) string {
	return strings.TrimSpace(normalize.ToString(row[column]))
}

func number(row models.Row, column string) *float64 {
	return normalize.ToNumber(row[column])
}

// list normalizes a collection column, decoding JSON column text first.
func list(row models.Row, column string) []string {
	return normalize.ToStringList(models.DecodeColumn(row[column]))
}

// concat joins the normalized lists of each column in order.
func concat(row models.Row, columns ...string) []string {
	out := []string{}
	for _, c := range columns {
		out = append(out, list(row, c)...)
	}
	return out
}

func joinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func rating(row models.Row) float64 {
	if v := first(row, "rating"); v != nil {
		if f := normalize.ToNumber(v); f != nil {
			return *f
		}
	}
	return DefaultRating
}
