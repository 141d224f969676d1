// Package mirror copies created invites to Supabase: the page and photos go to
// a storage bucket and a summary row goes to an index table. The local copy
// stays authoritative; the mirror is best effort.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/postgrest-go"
	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"

	"invitely/api-gateway/internal/store"
	"invitely/api-gateway/models"
)

// ErrDisabled is returned by the no-op mirror.
var ErrDisabled = errors.New("invite mirror is not configured")

// Mirror publishes invites to a secondary location and lists recent ones.
type Mirror interface {
	Enabled() bool
	Publish(ctx context.Context, inv *store.Invite, values map[string]string) error
	Recent(ctx context.Context, limit int) ([]models.InviteRecord, error)
}

// Noop is used when no Supabase project is configured.
type Noop struct{}

func (Noop) Enabled() bool { return false }

func (Noop) Publish(context.Context, *store.Invite, map[string]string) error { return nil }

func (Noop) Recent(context.Context, int) ([]models.InviteRecord, error) { return nil, ErrDisabled }

// Options configures a SupabaseMirror.
type Options struct {
	Bucket string
	Table  string
}

// SupabaseMirror stores invites in Supabase storage and indexes them in a
// table through PostgREST.
type SupabaseMirror struct {
	db     *supa.Client
	opts   Options
	logger *logrus.Logger

	// The storage client keeps upload headers on the client itself.
	uploadMu sync.Mutex
}

// NewSupabaseMirror creates a mirror using an initialized Supabase client.
func NewSupabaseMirror(db *supa.Client, opts Options, logger *logrus.Logger) *SupabaseMirror {
	return &SupabaseMirror{db: db, opts: opts, logger: logger}
}

func (m *SupabaseMirror) Enabled() bool { return true }

// Publish uploads the invite page and photos, then inserts the index row.
func (m *SupabaseMirror) Publish(ctx context.Context, inv *store.Invite, values map[string]string) error {
	files := []string{inv.PagePath}
	for _, p := range inv.PhotoPaths {
		files = append(files, p)
	}
	for _, local := range files {
		rel, err := filepath.Rel(inv.Dir, local)
		if err != nil {
			return fmt.Errorf("mirror: resolving %s: %w", local, err)
		}
		objectPath := path.Join(inv.ID, filepath.ToSlash(rel))
		if err := m.upload(ctx, objectPath, local); err != nil {
			return err
		}
	}

	record := models.InviteRecord{
		InviteID:        inv.ID,
		PageTitle:       values["page_title"],
		CoupleTitle:     values["couple_title"],
		WeddingDateText: values["wedding_date_text"],
		VenueName:       values["venue_name"],
		PageURL:         inv.DirectStaticURL,
		CreatedAt:       inv.CreatedAt,
	}
	_, _, err := m.db.From(m.opts.Table).
		Insert(record, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("mirror: inserting index row for %s: %w", inv.ID, err)
	}

	m.logger.WithField("invite_id", inv.ID).Info("Invite mirrored to Supabase")
	return nil
}

// Recent returns up to limit index rows, newest first.
func (m *SupabaseMirror) Recent(ctx context.Context, limit int) ([]models.InviteRecord, error) {
	body, _, err := m.db.From(m.opts.Table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("mirror: listing invites: %w", err)
	}

	var records []models.InviteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("mirror: decoding invite list: %w", err)
	}
	return records, nil
}

// upload sends one file to the storage bucket, replacing any existing object.
func (m *SupabaseMirror) upload(ctx context.Context, objectPath, local string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mirror: uploading %s: %w", objectPath, err)
	}

	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("mirror: reading %s: %w", local, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(local))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := true

	m.uploadMu.Lock()
	defer m.uploadMu.Unlock()
	_, err = m.db.Storage.UploadFile(m.opts.Bucket, objectPath, f, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("mirror: uploading %s: %w", objectPath, err)
	}
	return nil
}
