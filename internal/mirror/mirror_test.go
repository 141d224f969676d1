package mirror

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"

	"invitely/api-gateway/internal/store"
	"invitely/api-gateway/models"
)

type fakeSupabase struct {
	mu      sync.Mutex
	uploads map[string]string
	types   map[string]string
	upserts map[string]string
	rows    []models.InviteRecord
	queries []string
}

func (f *fakeSupabase) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/storage/v1/object/"):
		body, _ := io.ReadAll(r.Body)
		key := strings.TrimPrefix(r.URL.Path, "/storage/v1/object/")
		f.uploads[key] = string(body)
		f.types[key] = r.Header.Get("Content-Type")
		f.upserts[key] = r.Header.Get("x-upsert")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"ok"}`))
	case strings.HasPrefix(r.URL.Path, "/rest/v1/invites") && r.Method == http.MethodPost:
		var row models.InviteRecord
		_ = json.NewDecoder(r.Body).Decode(&row)
		f.rows = append(f.rows, row)
		w.WriteHeader(http.StatusCreated)
	case strings.HasPrefix(r.URL.Path, "/rest/v1/invites"):
		f.queries = append(f.queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.rows)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeInvite(t *testing.T) *store.Invite {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "abcdef0123")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "photos"), 0755))

	inv := &store.Invite{
		ID:              "abcdef0123",
		Dir:             dir,
		PagePath:        filepath.Join(dir, "index.html"),
		DirectStaticURL: "/static/invites/abcdef0123/index.html",
		PhotoPaths:      map[string]string{"photo_cover": filepath.Join(dir, "photos", "01-cover.jpg")},
		CreatedAt:       time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, os.WriteFile(inv.PagePath, []byte("<html>page</html>"), 0644))
	require.NoError(t, os.WriteFile(inv.PhotoPaths["photo_cover"], []byte("jpeg"), 0644))
	return inv
}

func newTestMirror(t *testing.T) (*SupabaseMirror, *fakeSupabase) {
	t.Helper()
	fake := &fakeSupabase{
		uploads: map[string]string{},
		types:   map[string]string{},
		upserts: map[string]string{},
	}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	db, err := supa.NewClient(srv.URL, "service-key", nil)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	m := NewSupabaseMirror(db, Options{Bucket: "invites", Table: "invites"}, logger)
	return m, fake
}

func TestPublishUploadsFilesAndIndexesInvite(t *testing.T) {
	m, fake := newTestMirror(t)
	inv := writeInvite(t)

	err := m.Publish(context.Background(), inv, map[string]string{
		"page_title":        "Our Wedding",
		"couple_title":      "A & B",
		"wedding_date_text": "2026/12/12",
		"venue_name":        "Grand Hotel",
	})
	require.NoError(t, err)

	assert.Equal(t, "<html>page</html>", fake.uploads["invites/abcdef0123/index.html"])
	assert.Equal(t, "jpeg", fake.uploads["invites/abcdef0123/photos/01-cover.jpg"])
	assert.Equal(t, "text/html; charset=utf-8", fake.types["invites/abcdef0123/index.html"])
	assert.Equal(t, "image/jpeg", fake.types["invites/abcdef0123/photos/01-cover.jpg"])
	for key, upsert := range fake.upserts {
		assert.Equal(t, "true", upsert, key)
	}

	require.Len(t, fake.rows, 1)
	assert.Equal(t, "abcdef0123", fake.rows[0].InviteID)
	assert.Equal(t, "A & B", fake.rows[0].CoupleTitle)
	assert.Equal(t, inv.DirectStaticURL, fake.rows[0].PageURL)
}

func TestPublishStopsOnCancelledContext(t *testing.T) {
	m, fake := newTestMirror(t)
	inv := writeInvite(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Publish(ctx, inv, map[string]string{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.uploads)
	assert.Empty(t, fake.rows)
}

func TestRecentReturnsRows(t *testing.T) {
	m, fake := newTestMirror(t)
	fake.rows = []models.InviteRecord{{InviteID: "abcdef0123", PageTitle: "Our Wedding"}}

	records, err := m.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abcdef0123", records[0].InviteID)

	require.Len(t, fake.queries, 1)
	assert.Contains(t, fake.queries[0], "order=created_at.desc")
	assert.Contains(t, fake.queries[0], "limit=5")
}

func TestNoop(t *testing.T) {
	var m Mirror = Noop{}
	assert.False(t, m.Enabled())
	assert.NoError(t, m.Publish(context.Background(), &store.Invite{}, nil))
	_, err := m.Recent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrDisabled)
}
