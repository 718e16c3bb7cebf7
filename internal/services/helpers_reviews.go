package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/projection"
	"github.com/roomfinder/roomfinder-api/internal/submission"
	"github.com/roomfinder/roomfinder-api/internal/types"
)

// DefaultHelperLimit is the helper page size when none is asked for.
const DefaultHelperLimit = 20

// HelperFilter narrows the helper directory query.
type HelperFilter struct {
	City   string
	Search string
	Limit  int
}

// ListHelpers returns the newest helper profiles matching f.
func (l *Listings) ListHelpers(ctx context.Context, f HelperFilter) ([]projection.HelperView, error) {
	f.Limit = clampLimit(f.Limit, DefaultHelperLimit)

	key := QueryCacheKey(cachePrefixHelpers, map[string]string{
		"city":  f.City,
		"q":     f.Search,
		"limit": strconv.Itoa(f.Limit),
	})
	var cached []projection.HelperView
	if l.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := l.Store.List(ctx, TableHelpers, Query{
		Equals:        equalsFilter("city", f.City),
		Search:        f.Search,
		SearchColumns: []string{"full_name", "bio", "description"},
		OrderBy:       "created_at",
		Limit:         f.Limit,
	})
	if err != nil {
		return nil, types.AsCustomError(err)
	}
	views := projection.Helpers(rows, l.Resolver)
	l.Cache.Set(ctx, key, views)
	return views, nil
}

// GetHelper returns one projected helper profile.
func (l *Listings) GetHelper(ctx context.Context, id string) (projection.HelperView, error) {
	row, err := l.Store.Get(ctx, TableHelpers, id)
	if err != nil {
		return projection.HelperView{}, types.AsCustomError(err)
	}
	return projection.Helper(row, l.Resolver), nil
}

// CreateHelper submits a helper registration form and returns the stored row.
func (l *Listings) CreateHelper(ctx context.Context, session *types.Session, form *submission.HelperForm, files []submission.PendingFile) (models.Row, error) {
	row, err := l.Assembler.SubmitHelper(ctx, session, form, files)
	if err != nil {
		return nil, err
	}
	l.Cache.Invalidate(ctx, cachePrefixHelpers)
	return row, nil
}

// ReviewInput is a posted review.
type ReviewInput struct {
	TenantName string        `json:"tenantName"`
	Rating     types.FlexInt `json:"rating"`
	Comment    string        `json:"comment"`
}

// ReplyInput is an owner's reply to a review.
type ReplyInput struct {
	Reply string `json:"reply"`
}

// ListReviews returns a listing's reviews, newest first.
func (l *Listings) ListReviews(ctx context.Context, propertyID string) ([]projection.ReviewView, error) {
	if _, err := l.Store.Get(ctx, TableProperties, propertyID); err != nil {
		return nil, types.AsCustomError(err)
	}
	rows, err := l.Store.List(ctx, TableReviews, Query{
		Equals:  map[string]any{"property_id": propertyID},
		OrderBy: "created_at",
		Limit:   MaxListLimit,
	})
	if err != nil {
		return nil, types.AsCustomError(err)
	}
	return projection.Reviews(rows), nil
}

// CreateReview records a review by the session user. Owners cannot review their own listing.
func (l *Listings) CreateReview(ctx context.Context, session *types.Session, propertyID string, in ReviewInput) (projection.ReviewView, error) {
	if session == nil {
		return projection.ReviewView{}, types.AuthError("authentication required", nil)
	}
	if !in.Rating.Set || in.Rating.Value < 1 || in.Rating.Value > 5 {
		return projection.ReviewView{}, types.ValidationError("rating must be between 1 and 5")
	}

	property, err := l.Store.Get(ctx, TableProperties, propertyID)
	if err != nil {
		return projection.ReviewView{}, types.AsCustomError(err)
	}
	if property.String("owner_id") == session.UserID {
		return projection.ReviewView{}, types.ForbiddenError("owners cannot review their own listing")
	}

	name := strings.TrimSpace(in.TenantName)
	if name == "" {
		name, _, _ = strings.Cut(session.Email, "@")
	}
	if name == "" {
		name = "Anonymous"
	}
	var comment any
	if c := strings.TrimSpace(in.Comment); c != "" {
		comment = c
	}

	now := l.Now().UTC()
	row, err := l.Store.Insert(ctx, TableReviews, models.Row{
		"id":          l.NewID(),
		"property_id": propertyID,
		"author_id":   session.UserID,
		"tenant_name": name,
		"rating":      in.Rating.Value,
		"comment":     comment,
		"owner_reply": nil,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return projection.ReviewView{}, types.AsCustomError(err)
	}
	return projection.Review(row), nil
}

// ReplyToReview stores the listing owner's reply. A review can be answered once;
// later attempts are conflicts.
func (l *Listings) ReplyToReview(ctx context.Context, session *types.Session, reviewID string, in ReplyInput) (projection.ReviewView, error) {
	if session == nil {
		return projection.ReviewView{}, types.AuthError("authentication required", nil)
	}
	reply := strings.TrimSpace(in.Reply)
	if reply == "" {
		return projection.ReviewView{}, types.ValidationError("reply is required")
	}

	review, err := l.Store.Get(ctx, TableReviews, reviewID)
	if err != nil {
		return projection.ReviewView{}, types.AsCustomError(err)
	}
	if _, err := l.ownedProperty(ctx, session, review.String("property_id")); err != nil {
		return projection.ReviewView{}, err
	}

	row, err := l.Store.UpdateWhere(ctx, TableReviews, reviewID, "owner_reply IS NULL", models.Row{
		"owner_reply": reply,
		"updated_at":  l.Now().UTC(),
	})
	if err != nil {
		ce := types.AsCustomError(err)
		if ce.Type == types.ErrTypeConflict {
			return projection.ReviewView{}, types.ConflictError("review already has a reply")
		}
		return projection.ReviewView{}, ce
	}
	return projection.Review(row), nil
}
