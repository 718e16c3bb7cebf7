package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
)

// CollectionReport summarizes a collection normalization pass over one table.
type CollectionReport struct {
	Table   string         `json:"table"`
	Scanned int            `json:"scanned"`
	Updated int            `json:"updated"`
	Columns map[string]int `json:"columns"`
}

// collectionColumns maps each table to the columns rewritten by NormalizeCollections.
var collectionColumns = map[string][]string{
	TableProperties: models.PropertyCollectionColumns,
	TableHelpers:    models.HelperCollectionColumns,
}

// NormalizeCollections rewrites collection columns stored as CSV text, JSON text or
// mixed arrays into canonical JSON arrays of strings. NULL columns are left alone.
// With dryRun set the report is computed but nothing is written.
func NormalizeCollections(ctx context.Context, store *RecordStore, table string, batchSize int, dryRun bool) (CollectionReport, error) {
	columns, ok := collectionColumns[table]
	if !ok {
		return CollectionReport{}, fmt.Errorf("table %s has no collection columns", table)
	}

	report := CollectionReport{Table: table, Columns: make(map[string]int)}
	err := store.Each(ctx, table, batchSize, func(row models.Row) error {
		report.Scanned++

		changes := models.Row{}
		for _, col := range columns {
			v, ok := row[col]
			if !ok || v == nil {
				continue
			}
			list := normalize.ToStringList(v)
			if isCanonicalList(v, list) {
				continue
			}
			changes[col] = list
			report.Columns[col]++
		}
		if len(changes) == 0 {
			return nil
		}

		report.Updated++
		if dryRun {
			return nil
		}
		_, err := store.Update(ctx, table, row.String("id"), changes)
		return err
	})
	if err != nil {
		return report, err
	}

	log.Printf("Normalized %s: scanned=%d updated=%d dryRun=%t", table, report.Scanned, report.Updated, dryRun)
	return report, nil
}

func isCanonicalList(v any, want []string) bool {
	items, ok := v.([]any)
	if !ok || len(items) != len(want) {
		return false
	}
	for i, item := range items {
		if s, ok := item.(string); !ok || s != want[i] {
			return false
		}
	}
	return true
}

// Seed inserts rows per table, skipping ids already present. String timestamps in
// created_at and updated_at are parsed as RFC 3339.
func Seed(ctx context.Context, store *RecordStore, rows map[string][]models.Row) (int, error) {
	inserted := 0
	for _, table := range []string{TableProperties, TableHelpers, TableReviews} {
		for _, row := range rows[table] {
			id := row.String("id")
			if _, err := store.Get(ctx, table, id); err == nil {
				continue
			} else if !IsNotFound(err) {
				return inserted, err
			}

			for _, col := range []string{"created_at", "updated_at"} {
				if s, ok := row[col].(string); ok {
					t, err := time.Parse(time.RFC3339, s)
					if err != nil {
						return inserted, fmt.Errorf("%s %s: invalid %s: %w", table, id, col, err)
					}
					row[col] = t.UTC()
				}
			}

			if _, err := store.Insert(ctx, table, row); err != nil {
				return inserted, fmt.Errorf("failed to seed %s %s: %w", table, id, err)
			}
			inserted++
		}
	}
	return inserted, nil
}
