// Package store persists invites as static directories:
//
//	<root>/invites/<id>/index.html
//	<root>/invites/<id>/photos/01-cover.jpg ...
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"invitely/api-gateway/internal/fields"
)

const (
	invitesDirName = "invites"
	photosDirName  = "photos"
	pageFileName   = "index.html"

	// StaticPrefix is the URL path the static root is served under.
	StaticPrefix = "/static"

	idLength   = 10
	maxIDTries = 3
	dirPerm    = 0755
	filePerm   = 0644
)

// ErrInviteNotFound is returned when an invite id is malformed or unknown.
var ErrInviteNotFound = errors.New("invite not found")

var idPattern = regexp.MustCompile(`^[0-9a-f]{10}$`)

// Invite describes a stored invite.
type Invite struct {
	ID              string
	Dir             string
	PagePath        string
	DirectStaticURL string
	// PhotoPaths and PhotoURLs are keyed by slot form field, e.g. "photo_cover".
	PhotoPaths map[string]string
	PhotoURLs  map[string]string
	CreatedAt  time.Time
}

// RenderFunc produces the page for the given values. The values contain the
// schema fields plus one URL per photo slot.
type RenderFunc func(values map[string]string) ([]byte, error)

// Store writes invites below a static root directory.
type Store struct {
	invitesDir string
}

// New ensures the invites directory exists below staticRoot.
func New(staticRoot string) (*Store, error) {
	dir := filepath.Join(staticRoot, invitesDirName)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}
	return &Store{invitesDir: dir}, nil
}

// Dir returns the directory holding all invites.
func (s *Store) Dir() string {
	return s.invitesDir
}

// Create stores the photos of sub, renders the page and writes it. Writes are
// not rolled back: a failure after the directory is created can leave a
// partially populated invite behind.
func (s *Store) Create(sub *fields.Submission, render RenderFunc) (*Invite, error) {
	id, dir, err := s.allocate()
	if err != nil {
		return nil, err
	}

	photosDir := filepath.Join(dir, photosDirName)
	if err := os.MkdirAll(photosDir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory '%s': %w", photosDir, err)
	}

	inv := &Invite{
		ID:              id,
		Dir:             dir,
		PagePath:        filepath.Join(dir, pageFileName),
		DirectStaticURL: publicURL(id, pageFileName),
		PhotoPaths:      make(map[string]string, len(sub.Photos)),
		PhotoURLs:       make(map[string]string, len(sub.Photos)),
		CreatedAt:       time.Now().UTC(),
	}

	values := sub.Values()
	for _, photo := range sub.Photos {
		name := photo.Slot.FileName(photo.Ext)
		dst := filepath.Join(photosDir, name)
		if err := savePhoto(photo, dst); err != nil {
			return nil, err
		}
		key := photo.Slot.FormField()
		inv.PhotoPaths[key] = dst
		inv.PhotoURLs[key] = publicURL(id, photosDirName, name)
		values[key] = inv.PhotoURLs[key]
	}

	page, err := render(values)
	if err != nil {
		return nil, fmt.Errorf("failed to render invite %s: %w", id, err)
	}
	if err := os.WriteFile(inv.PagePath, page, filePerm); err != nil {
		return nil, fmt.Errorf("failed to write page to '%s': %w", inv.PagePath, err)
	}

	return inv, nil
}

// PagePath returns the path of the stored page for id.
func (s *Store) PagePath(id string) (string, error) {
	if !ValidID(id) {
		return "", ErrInviteNotFound
	}
	p := filepath.Join(s.invitesDir, id, pageFileName)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrInviteNotFound
		}
		return "", fmt.Errorf("failed to stat '%s': %w", p, err)
	}
	if info.IsDir() {
		return "", ErrInviteNotFound
	}
	return p, nil
}

// ValidID reports whether id has the shape of a generated invite id.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// NewID returns a short random invite id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}

// allocate creates a fresh invite directory. Mkdir fails on an existing
// directory, so a collision is detected and retried with a new id.
func (s *Store) allocate() (string, string, error) {
	for i := 0; i < maxIDTries; i++ {
		id := NewID()
		dir := filepath.Join(s.invitesDir, id)
		err := os.Mkdir(dir, dirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	return "", "", fmt.Errorf("failed to allocate an unused invite id after %d attempts", maxIDTries)
}

func savePhoto(photo fields.Photo, dst string) error {
	src, err := photo.File.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload for %s: %w", photo.Slot.FormField(), err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("failed to write '%s': %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write '%s': %w", dst, err)
	}
	return nil
}

func publicURL(id string, elem ...string) string {
	parts := append([]string{StaticPrefix, invitesDirName, id}, elem...)
	return path.Join(parts...)
}
