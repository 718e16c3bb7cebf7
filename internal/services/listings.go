package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/projection"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/roomfinder/roomfinder-api/internal/submission"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

// Cache key prefixes
const (
	cachePrefixProperties = "properties"
	cachePrefixHelpers    = "helpers"
)

// DefaultPropertyLimit is the number of listings on the landing page.
const DefaultPropertyLimit = 6

// Listings implements the listing, helper and review operations over the record store.
type Listings struct {
	Store     *RecordStore
	Cache     *Cache
	Resolver  *storage.Resolver
	Assembler *submission.Assembler
	Now       func() time.Time
	NewID     func() string
}

// NewListings wires the operations together. cache may be nil.
func NewListings(store *RecordStore, objects storage.ObjectStore, cache *Cache) *Listings {
	resolver := storage.NewResolver(objects)
	return &Listings{
		Store:     store,
		Cache:     cache,
		Resolver:  resolver,
		Assembler: submission.NewAssembler(store, resolver),
		Now:       time.Now,
		NewID:     uuid.NewString,
	}
}

// PropertyFilter narrows the public listing query.
type PropertyFilter struct {
	City       string
	State      string
	District   string
	BHK        string
	Status     string
	Search     string
	MaushiOnly bool
	Limit      int
}

func (f PropertyFilter) params() map[string]string {
	return map[string]string{
		"city":     f.City,
		"state":    f.State,
		"district": f.District,
		"bhk":      f.BHK,
		"status":   f.Status,
		"q":        f.Search,
		"maushi":   strconv.FormatBool(f.MaushiOnly),
		"limit":    strconv.Itoa(f.Limit),
	}
}

func equalsFilter(pairs ...string) map[string]any {
	eq := make(map[string]any)
	for i := 0; i+1 < len(pairs); i += 2 {
		if v := strings.TrimSpace(pairs[i+1]); v != "" {
			eq[pairs[i]] = v
		}
	}
	return eq
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// ListProperties returns the newest listings matching f, projected for display.
func (l *Listings) ListProperties(ctx context.Context, f PropertyFilter) ([]projection.PropertyView, error) {
	f.Limit = clampLimit(f.Limit, DefaultPropertyLimit)

	key := QueryCacheKey(cachePrefixProperties, f.params())
	var cached []projection.PropertyView
	if l.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	q := Query{
		Equals:        equalsFilter("city", f.City, "state", f.State, "district", f.District, "bhk", f.BHK, "status", f.Status),
		Search:        f.Search,
		SearchColumns: []string{"title", "area", "full_address"},
		OrderBy:       "created_at",
		Limit:         f.Limit,
	}
	if f.MaushiOnly {
		q.Equals["maushi_available"] = true
	}

	rows, err := l.Store.List(ctx, TableProperties, q)
	if err != nil {
		return nil, types.AsCustomError(err)
	}
	views := projection.Properties(rows, l.Resolver)
	l.Cache.Set(ctx, key, views)
	return views, nil
}

// GetProperty returns one projected listing.
func (l *Listings) GetProperty(ctx context.Context, id string) (projection.PropertyView, error) {
	row, err := l.Store.Get(ctx, TableProperties, id)
	if err != nil {
		return projection.PropertyView{}, types.AsCustomError(err)
	}
	return projection.Property(row, l.Resolver), nil
}

// OwnerProperties returns every listing owned by the session user, newest first.
func (l *Listings) OwnerProperties(ctx context.Context, session *types.Session) ([]projection.PropertyView, error) {
	if session == nil {
		return nil, types.AuthError("authentication required", nil)
	}
	rows, err := l.Store.List(ctx, TableProperties, Query{
		Equals:  map[string]any{"owner_id": session.UserID},
		OrderBy: "created_at",
		Limit:   MaxListLimit,
	})
	if err != nil {
		return nil, types.AsCustomError(err)
	}
	return projection.Properties(rows, l.Resolver), nil
}

// CreateProperty submits a listing form and returns the stored row.
func (l *Listings) CreateProperty(ctx context.Context, session *types.Session, form *submission.PropertyForm, files []submission.PendingFile) (models.Row, error) {
	row, err := l.Assembler.SubmitProperty(ctx, session, form, files)
	if err != nil {
		return nil, err
	}
	l.Cache.Invalidate(ctx, cachePrefixProperties)
	return row, nil
}

// ownedProperty loads a listing and checks the session user may change it.
func (l *Listings) ownedProperty(ctx context.Context, session *types.Session, id string) (models.Row, error) {
	if session == nil {
		return nil, types.AuthError("authentication required", nil)
	}
	row, err := l.Store.Get(ctx, TableProperties, id)
	if err != nil {
		return nil, types.AsCustomError(err)
	}
	if row.String("owner_id") != session.UserID && !session.IsAdmin() {
		return nil, types.ForbiddenError("only the owner can change this listing")
	}
	return row, nil
}

// SetPropertyStatus changes a listing's availability. Owners and admins only.
func (l *Listings) SetPropertyStatus(ctx context.Context, session *types.Session, id, status string) (projection.PropertyView, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidStatus(status) {
		return projection.PropertyView{}, types.ValidationError("status must be one of %s, %s, %s",
			models.StatusAvailable, models.StatusOccupied, models.StatusInactive)
	}
	if _, err := l.ownedProperty(ctx, session, id); err != nil {
		return projection.PropertyView{}, err
	}

	row, err := l.Store.Update(ctx, TableProperties, id, models.Row{"status": status, "updated_at": l.Now().UTC()})
	if err != nil {
		return projection.PropertyView{}, types.AsCustomError(err)
	}
	l.Cache.Invalidate(ctx, cachePrefixProperties)
	return projection.Property(row, l.Resolver), nil
}

// SetPropertyVerified marks a listing verified or not. Admins only.
func (l *Listings) SetPropertyVerified(ctx context.Context, session *types.Session, id string, verified bool) (projection.PropertyView, error) {
	if session == nil {
		return projection.PropertyView{}, types.AuthError("authentication required", nil)
	}
	if !session.IsAdmin() {
		return projection.PropertyView{}, types.ForbiddenError("admin role required")
	}

	row, err := l.Store.Update(ctx, TableProperties, id, models.Row{"verified": verified, "updated_at": l.Now().UTC()})
	if err != nil {
		return projection.PropertyView{}, types.AsCustomError(err)
	}
	l.Cache.Invalidate(ctx, cachePrefixProperties)
	return projection.Property(row, l.Resolver), nil
}
