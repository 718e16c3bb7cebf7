// record_store.go
//
// RoomFinder listings and helper-profile data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of roomfinder-api.
// roomfinder-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// roomfinder-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with roomfinder-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
	"gorm.io/hints"
)

// Record store tables
const (
	TableProperties = "properties"
	TableHelpers    = "domestic_helpers"
	TableReviews    = "reviews"
)

// MaxListLimit caps any list query.
const MaxListLimit = 50

// Query describes a list request: equality filters, a case-insensitive contains search
// across SearchColumns, descending order on OrderBy and a row limit.
type Query struct {
	Equals        map[string]any
	Search        string
	SearchColumns []string
	OrderBy       string
	Limit         int
}

// columnKinds records which columns of a table need decoding when read back.
type columnKinds struct {
	json  map[string]bool
	bools map[string]bool
}

var jsonType = reflect.TypeOf(models.JSON{})

// RecordStore is the record store adapter over GORM. Rows go in and come out as
// loosely typed maps, the shape the projection layer expects.
type RecordStore struct {
	db    *gorm.DB
	kinds map[string]columnKinds
}

// NewRecordStore builds a store over db for the RoomFinder tables.
func NewRecordStore(db *gorm.DB) (*RecordStore, error) {
	rs := &RecordStore{db: db, kinds: make(map[string]columnKinds)}
	cache := &sync.Map{}
	for _, model := range []any{&models.Property{}, &models.DomesticHelper{}, &models.Review{}} {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema for %T: %w", model, err)
		}
		kinds := columnKinds{json: map[string]bool{}, bools: map[string]bool{}}
		for _, f := range s.Fields {
			if f.DBName == "" {
				continue
			}
			if f.FieldType == jsonType {
				kinds.json[f.DBName] = true
			}
			if f.DataType == schema.Bool {
				kinds.bools[f.DBName] = true
			}
		}
		rs.kinds[s.Table] = kinds
	}
	return rs, nil
}

// DB exposes the underlying connection for health checks and migrations.
func (rs *RecordStore) DB() *gorm.DB {
	return rs.db
}

func (rs *RecordStore) table(ctx context.Context, table string) (*gorm.DB, error) {
	if _, ok := rs.kinds[table]; !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return rs.db.WithContext(ctx).Table(table), nil
}

// likeEscaper makes a search needle match literally. '!' works as the escape
// character on every supported dialect; '[' is a wildcard on SQL Server.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

// toColumns converts payload values into column values: string lists become JSON,
// boolean columns are coerced and every key is kept so unset columns are written as NULL.
func (rs *RecordStore) toColumns(table string, payload models.Row) map[string]any {
	kinds := rs.kinds[table]
	values := make(map[string]any, len(payload))
	for k, v := range payload {
		switch t := v.(type) {
		case []string:
			values[k] = models.JSONList(t)
		case []any:
			values[k] = models.JSONList(normalize.ToStringList(t))
		case nil:
			values[k] = nil
		default:
			switch {
			case kinds.json[k]:
				values[k] = models.JSONList(normalize.ToStringList(t))
			case kinds.bools[k]:
				values[k] = normalize.ToBool(t)
			default:
				values[k] = v
			}
		}
	}
	return values
}

// fromColumns turns a scanned row into a Row: text bytes become strings, JSON
// columns are decoded and boolean columns are coerced from driver integers.
func (rs *RecordStore) fromColumns(table string, raw map[string]any) models.Row {
	kinds := rs.kinds[table]
	row := make(models.Row, len(raw))
	for k, v := range raw {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		switch {
		case v == nil:
		case kinds.json[k]:
			v = models.DecodeColumn(v)
		case kinds.bools[k]:
			v = normalize.ToBool(v)
		}
		row[k] = v
	}
	return row
}

// Insert writes one row and returns it as stored.
func (rs *RecordStore) Insert(ctx context.Context, table string, payload models.Row) (models.Row, error) {
	tx, err := rs.table(ctx, table)
	if err != nil {
		return nil, err
	}
	id, _ := payload["id"].(string)
	if id == "" {
		return nil, types.ValidationError("insert into %s requires an id", table)
	}

	if err := tx.Create(rs.toColumns(table, payload)).Error; err != nil {
		return nil, err
	}
	return rs.Get(ctx, table, id)
}

// Get returns the row with the given id or a not-found error.
func (rs *RecordStore) Get(ctx context.Context, table, id string) (models.Row, error) {
	tx, err := rs.table(ctx, table)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := tx.Where("id = ?", id).Limit(1).Find(&raw).Error; err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, types.NotFoundError("%s %s not found", strings.TrimSuffix(table, "s"), id)
	}
	return rs.fromColumns(table, raw[0]), nil
}

// List runs q against table.
func (rs *RecordStore) List(ctx context.Context, table string, q Query) ([]models.Row, error) {
	tx, err := rs.table(ctx, table)
	if err != nil {
		return nil, err
	}

	if rs.db.Dialector.Name() == "mysql" && table == TableProperties && q.OrderBy == "created_at" {
		tx = tx.Clauses(hints.UseIndex("idx_properties_created_at"))
	}

	for col, v := range q.Equals {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: col}, Value: v})
	}

	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" && len(q.SearchColumns) > 0 {
		pattern := "%" + likeEscaper.Replace(needle) + "%"
		var search *gorm.DB
		for _, col := range q.SearchColumns {
			cond := fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", col)
			if search == nil {
				search = rs.db.Where(cond, pattern)
			} else {
				search = search.Or(cond, pattern)
			}
		}
		tx = tx.Where(search)
	}

	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: true})
	}
	limit := q.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	tx = tx.Limit(limit)

	var raw []map[string]any
	if err := tx.Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]models.Row, len(raw))
	for i, r := range raw {
		rows[i] = rs.fromColumns(table, r)
	}
	return rows, nil
}

// Update sets values on the row with the given id and returns the updated row.
func (rs *RecordStore) Update(ctx context.Context, table, id string, values models.Row) (models.Row, error) {
	return rs.UpdateWhere(ctx, table, id, "", values)
}

// UpdateWhere is Update guarded by an extra SQL condition. When no row matches it
// reports not found if the row is missing and a conflict otherwise.
func (rs *RecordStore) UpdateWhere(ctx context.Context, table, id, condition string, values models.Row) (models.Row, error) {
	tx, err := rs.table(ctx, table)
	if err != nil {
		return nil, err
	}

	tx = tx.Where("id = ?", id)
	if condition != "" {
		tx = tx.Where(condition)
	}
	res := tx.Updates(rs.toColumns(table, values))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		row, err := rs.Get(ctx, table, id)
		if err != nil {
			return nil, err
		}
		if condition == "" {
			// Same values written twice; some drivers report zero rows changed.
			return row, nil
		}
		return nil, types.ConflictError(fmt.Sprintf("%s %s cannot be updated in its current state", strings.TrimSuffix(table, "s"), id))
	}
	return rs.Get(ctx, table, id)
}

// Each calls fn for every row of table in primary key order, batchSize rows at a time.
func (rs *RecordStore) Each(ctx context.Context, table string, batchSize int, fn func(models.Row) error) error {
	tx, err := rs.table(ctx, table)
	if err != nil {
		return err
	}

	offset := 0
	for {
		var raw []map[string]any
		if err := tx.Session(&gorm.Session{}).Order("id").Offset(offset).Limit(batchSize).Find(&raw).Error; err != nil {
			return err
		}
		for _, r := range raw {
			if err := fn(rs.fromColumns(table, r)); err != nil {
				return err
			}
		}
		if len(raw) < batchSize {
			return nil
		}
		offset += batchSize
	}
}

// IsNotFound reports whether err is a not-found error from the store.
func IsNotFound(err error) bool {
	var ce *types.CustomError
	return errors.As(err, &ce) && ce.Type == types.ErrTypeNotFound
}
