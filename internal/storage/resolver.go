package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/roomfinder/roomfinder-api/internal/normalize"
)

// Placeholder is returned whenever an image reference cannot be resolved.
const Placeholder = "/placeholder.svg"

var placeholderTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roomfinder",
	Name:      "asset_placeholder_total",
	Help:      "Image references replaced by the placeholder, by bucket and reason.",
}, []string{"bucket", "reason"})

// Resolver converts stored image references into public URLs.
type Resolver struct {
	Store       ObjectStore
	Placeholder string
}

// NewResolver returns a resolver backed by store.
func NewResolver(store ObjectStore) *Resolver {
	return &Resolver{Store: store, Placeholder: Placeholder}
}

func (r *Resolver) placeholder(bucket, reason string) string {
	placeholderTotal.WithLabelValues(bucket, reason).Inc()
	if r == nil || r.Placeholder == "" {
		return Placeholder
	}
	return r.Placeholder
}

// ResolvePublicURL never fails. Absolute http(s) URLs are returned unchanged without
// consulting the store; other values are treated as paths relative to bucket, with
// one leading slash stripped. Blank input, store errors and empty results give the
// placeholder. Rows mix both forms, so both are accepted.
func (r *Resolver) ResolvePublicURL(raw any, bucket string) (url string) {
	s := strings.TrimSpace(normalize.ToString(raw))
	if s == "" {
		return r.placeholder(bucket, "empty")
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	if r == nil || r.Store == nil {
		return r.placeholder(bucket, "no_store")
	}

	defer func() {
		if rec := recover(); rec != nil {
			url = r.placeholder(bucket, "error")
		}
	}()

	u, err := r.Store.PublicURL(bucket, strings.TrimPrefix(s, "/"))
	if err != nil {
		return r.placeholder(bucket, "error")
	}
	if u == "" {
		return r.placeholder(bucket, "empty_url")
	}
	return u
}

// ResolveAll resolves each reference, skipping blanks.
func (r *Resolver) ResolveAll(refs []string, bucket string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		out = append(out, r.ResolvePublicURL(ref, bucket))
	}
	return out
}

// UploadAndResolve stores body at bucket/objectPath, overwriting any previous
// object, and returns its public URL.
func (r *Resolver) UploadAndResolve(ctx context.Context, bucket, objectPath string, body io.Reader, contentType string) (string, error) {
	if err := r.Store.Upload(ctx, bucket, objectPath, body, contentType, true); err != nil {
		return "", err
	}
	u, err := r.Store.PublicURL(bucket, objectPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s/%s: %w", bucket, objectPath, err)
	}
	return u, nil
}
