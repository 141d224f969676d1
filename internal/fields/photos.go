package fields

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Slot is one of the four fixed photo roles of an invite.
type Slot string

const (
	SlotCover   Slot = "cover"
	SlotStory   Slot = "story"
	SlotDetails Slot = "details"
	SlotRSVP    Slot = "rsvp"
)

// Slots lists the photo slots in page order.
var Slots = []Slot{SlotCover, SlotStory, SlotDetails, SlotRSVP}

// PhotoListField is the multi-file form field accepted instead of the four
// named photo fields.
const PhotoListField = "photos"

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Order is the 1-based position of the slot.
func (s Slot) Order() int {
	for i, slot := range Slots {
		if slot == s {
			return i + 1
		}
	}
	return 0
}

// FormField is the name of the form field carrying this slot's upload, and
// also the key of its URL in the render values.
func (s Slot) FormField() string {
	return "photo_" + string(s)
}

// FileName is the stored name for this slot's photo, e.g. "01-cover.jpg".
func (s Slot) FileName(ext string) string {
	return fmt.Sprintf("%02d-%s%s", s.Order(), s, ext)
}

// Photo is a validated upload bound to its slot.
type Photo struct {
	Slot Slot
	File *multipart.FileHeader
	// Ext is the lower-cased extension including the dot.
	Ext string
}

// resolveUploads maps the submitted files onto slots. The four named fields
// are authoritative; the positional list is used only when none of them is
// present.
func resolveUploads(files map[string][]*multipart.FileHeader) (map[Slot]*multipart.FileHeader, error) {
	out := make(map[Slot]*multipart.FileHeader, len(Slots))
	named := false
	for _, slot := range Slots {
		if fh := first(files[slot.FormField()]); fh != nil {
			out[slot] = fh
			named = true
		}
	}

	list := files[PhotoListField]
	if len(list) == 0 {
		return out, nil
	}
	if named {
		return nil, &ValidationError{Field: PhotoListField, Reason: "use either the four named photo fields or the photo list, not both"}
	}
	if len(list) != len(Slots) {
		return nil, &ValidationError{Field: PhotoListField, Reason: fmt.Sprintf("expected exactly %d photos, got %d", len(Slots), len(list))}
	}
	for i, slot := range Slots {
		out[slot] = list[i]
	}
	return out, nil
}

func first(fhs []*multipart.FileHeader) *multipart.FileHeader {
	if len(fhs) == 0 {
		return nil
	}
	return fhs[0]
}

// checkPhoto validates the upload for slot and returns its extension.
func checkPhoto(slot Slot, fh *multipart.FileHeader) (string, error) {
	if fh == nil || strings.TrimSpace(fh.Filename) == "" {
		return "", &ValidationError{Field: slot.FormField(), Reason: "missing photo"}
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", &ValidationError{
			Field:  slot.FormField(),
			Reason: fmt.Sprintf("unsupported image format %q (allowed: jpg, jpeg, png, webp)", ext),
		}
	}
	return ext, nil
}
