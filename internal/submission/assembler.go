// Package submission turns posted forms and uploaded files into insertion
// payloads for the record store.
package submission

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/roomfinder/roomfinder-api/internal/models"
	"github.com/roomfinder/roomfinder-api/internal/storage"
	"github.com/roomfinder/roomfinder-api/internal/types"
	"golang.org/x/sync/errgroup"
)

// Tables written by the assembler
const (
	TableProperties = "properties"
	TableHelpers    = "domestic_helpers"
)

// maxParallelUploads bounds concurrent object store writes per submission.
const maxParallelUploads = 4

var submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "roomfinder",
	Name:      "submissions_total",
	Help:      "Form submissions by kind and result.",
}, []string{"kind", "result"})

// Inserter is the record store's insert-one-returning-row operation.
type Inserter interface {
	Insert(ctx context.Context, table string, payload models.Row) (models.Row, error)
}

// PendingFile is an uploaded file not yet written to the object store.
type PendingFile struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Assembler uploads pending files, builds the payload and inserts it.
type Assembler struct {
	Store    Inserter
	Resolver *storage.Resolver
	Now      func() time.Time
	NewID    func() string
}

// NewAssembler returns an assembler writing rows to store and files through resolver.
func NewAssembler(store Inserter, resolver *storage.Resolver) *Assembler {
	return &Assembler{Store: store, Resolver: resolver, Now: time.Now, NewID: uuid.NewString}
}

// SubmitProperty validates the form, uploads files into property-images under the new
// record id, and inserts the listing owned by the session user. Files already uploaded
// are left in place if the insert fails.
func (a *Assembler) SubmitProperty(ctx context.Context, session *types.Session, form *PropertyForm, files []PendingFile) (models.Row, error) {
	if session == nil || session.UserID == "" {
		return nil, types.AuthError("authentication required", nil)
	}
	if err := ValidateProperty(form); err != nil {
		submissionsTotal.WithLabelValues("property", "invalid").Inc()
		return nil, err
	}

	id := a.NewID()
	uploaded, err := a.uploadAll(ctx, storage.BucketPropertyImages, id, files)
	if err != nil {
		submissionsTotal.WithLabelValues("property", "upload_failed").Inc()
		return nil, types.StorageError(err)
	}

	payload := BuildPropertyPayload(id, session, form, uploaded, a.Now())
	return a.insert(ctx, "property", TableProperties, payload)
}

// SubmitHelper does the same for a domestic helper profile in helper-images.
func (a *Assembler) SubmitHelper(ctx context.Context, session *types.Session, form *HelperForm, files []PendingFile) (models.Row, error) {
	if session == nil || session.UserID == "" {
		return nil, types.AuthError("authentication required", nil)
	}
	if err := ValidateHelper(form); err != nil {
		submissionsTotal.WithLabelValues("helper", "invalid").Inc()
		return nil, err
	}

	id := a.NewID()
	uploaded, err := a.uploadAll(ctx, storage.BucketHelperImages, id, files)
	if err != nil {
		submissionsTotal.WithLabelValues("helper", "upload_failed").Inc()
		return nil, types.StorageError(err)
	}

	payload := BuildHelperPayload(id, session, form, uploaded, a.Now())
	return a.insert(ctx, "helper", TableHelpers, payload)
}

func (a *Assembler) insert(ctx context.Context, kind, table string, payload models.Row) (models.Row, error) {
	row, err := a.Store.Insert(ctx, table, payload)
	if err != nil {
		submissionsTotal.WithLabelValues(kind, "store_failed").Inc()
		return nil, types.AsCustomError(err)
	}
	submissionsTotal.WithLabelValues(kind, "ok").Inc()
	return row, nil
}

// uploadAll writes files concurrently and returns public URLs grouped by form field,
// each group in the order the files were given.
func (a *Assembler) uploadAll(ctx context.Context, bucket, recordID string, files []PendingFile) (map[string][]string, error) {
	urls := make([]string, len(files))
	paths := make([]string, len(files))
	seen := make(map[string]int)
	for i, f := range files {
		paths[i] = fmt.Sprintf("%s/%s-%d-%s", recordID, f.Field, seen[f.Field], safeFilename(f.Filename))
		seen[f.Field]++
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)
	for i, f := range files {
		g.Go(func() error {
			if f.Open == nil {
				return fmt.Errorf("file %q has no content", f.Filename)
			}
			body, err := f.Open()
			if err != nil {
				return fmt.Errorf("failed to open %q: %w", f.Filename, err)
			}
			defer body.Close()

			u, err := a.Resolver.UploadAndResolve(gctx, bucket, paths[i], body, f.ContentType)
			if err != nil {
				return err
			}
			urls[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	grouped := make(map[string][]string)
	for i, f := range files {
		grouped[f.Field] = append(grouped[f.Field], urls[i])
	}
	return grouped, nil
}

func safeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	return name
}
